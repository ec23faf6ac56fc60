package models

import "time"

// Label values returned by the classifier.
const (
	LabelSpam = "spam"
	LabelHam  = "ham"
)

// PredictionResult is the outcome of classifying a single message
type PredictionResult struct {
	Message    string   `json:"message"`
	Prediction string   `json:"prediction"`
	IsSpam     bool     `json:"is_spam"`
	Confidence *float64 `json:"confidence,omitempty"`
}

// BatchResult aggregates the per-message results of a batch call
type BatchResult struct {
	Predictions []PredictionResult `json:"predictions"`
	Total       int                `json:"total"`
	SpamCount   int                `json:"spam_count"`
	HamCount    int                `json:"ham_count"`
}

// EvaluationMetrics is the offline-computed model quality record,
// loaded read-only from the metrics artifact next to the model
type EvaluationMetrics struct {
	Model           string   `json:"model,omitempty"`
	Accuracy        float64  `json:"accuracy,omitempty"`
	Precision       float64  `json:"precision,omitempty"`
	Recall          float64  `json:"recall,omitempty"`
	F1              float64  `json:"f1,omitempty"`
	RocAuc          *float64 `json:"roc_auc,omitempty"`
	ConfusionMatrix [][]int  `json:"confusion_matrix,omitempty"`
}

// IsEmpty reports whether the record carries no metrics at all
// (e.g. the metrics artifact was missing).
func (m EvaluationMetrics) IsEmpty() bool {
	return m.Model == "" && m.ConfusionMatrix == nil
}

// Health is the liveness report. Status stays "healthy" regardless of
// model state; ModelLoaded is the readiness signal.
type Health struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
	ModelName   string `json:"model_name,omitempty"`
	Version     string `json:"version"`
}

// SystemMetrics joins the usage counters with the model load state.
type SystemMetrics struct {
	UsageSnapshot
	ModelLoaded bool `json:"model_loaded"`
}

// MetricsSnapshot is the combined metrics report: offline evaluation
// metrics plus the live usage counters.
type MetricsSnapshot struct {
	ModelMetrics  EvaluationMetrics `json:"model_metrics"`
	SystemMetrics SystemMetrics     `json:"system_metrics"`
}

// UsageSnapshot is a point-in-time read of the running usage counters
type UsageSnapshot struct {
	StartedAt        time.Time `json:"-"`
	UptimeSeconds    float64   `json:"uptime_seconds"`
	TotalRequests    uint64    `json:"total_requests"`
	TotalPredictions uint64    `json:"total_predictions"`
	SpamDetected     uint64    `json:"spam_detected"`
	HamDetected      uint64    `json:"ham_detected"`
}
