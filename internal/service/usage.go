package service

import (
	"sync/atomic"
	"time"

	"github.com/xaenox/spam-detector/internal/models"
)

// Usage keeps the process-lifetime request counters. Increments are
// atomic so concurrent requests never lose updates, and spam/ham
// increments bump the prediction total in the same call, keeping
// total_predictions == spam_detected + ham_detected.
type Usage struct {
	startedAt        time.Time
	totalRequests    atomic.Uint64
	totalPredictions atomic.Uint64
	spamDetected     atomic.Uint64
	hamDetected      atomic.Uint64
}

func NewUsage() *Usage {
	return &Usage{startedAt: time.Now()}
}

// RecordRequest counts one serviced request of any kind.
func (u *Usage) RecordRequest() {
	u.totalRequests.Add(1)
}

// RecordSpam counts n spam predictions.
func (u *Usage) RecordSpam(n uint64) {
	u.totalPredictions.Add(n)
	u.spamDetected.Add(n)
}

// RecordHam counts n ham predictions.
func (u *Usage) RecordHam(n uint64) {
	u.totalPredictions.Add(n)
	u.hamDetected.Add(n)
}

// Snapshot returns a point-in-time read of all counters.
func (u *Usage) Snapshot(now time.Time) models.UsageSnapshot {
	return models.UsageSnapshot{
		StartedAt:        u.startedAt,
		UptimeSeconds:    now.Sub(u.startedAt).Seconds(),
		TotalRequests:    u.totalRequests.Load(),
		TotalPredictions: u.totalPredictions.Load(),
		SpamDetected:     u.spamDetected.Load(),
		HamDetected:      u.hamDetected.Load(),
	}
}
