package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/xaenox/spam-detector/internal/classifier"
	"github.com/xaenox/spam-detector/internal/models"
	"github.com/xaenox/spam-detector/internal/storage"
	"go.uber.org/zap"
)

// MaxBatchSize caps how many messages one batch call may carry.
const MaxBatchSize = 100

var (
	// ErrEmptyMessage rejects messages that are empty after trimming.
	ErrEmptyMessage = errors.New("message must not be empty")

	// ErrEmptyBatch rejects batch calls with no messages.
	ErrEmptyBatch = errors.New("batch must contain at least one message")

	// ErrBatchTooLarge rejects batch calls above MaxBatchSize.
	ErrBatchTooLarge = fmt.Errorf("batch must contain at most %d messages", MaxBatchSize)

	// ErrModelUnavailable means no pipeline could be produced for a
	// predict call. The cause (artifact missing, corrupt, ...) is
	// attached as detail.
	ErrModelUnavailable = errors.New("model not loaded")

	// ErrInference wraps unexpected failures inside the pipeline.
	ErrInference = errors.New("prediction failed")
)

// Service orchestrates inference requests against the model cache and
// keeps the usage counters current.
type Service struct {
	cache   *storage.Cache
	usage   *Usage
	logger  *zap.Logger
	version string
}

func New(cache *storage.Cache, usage *Usage, version string, logger *zap.Logger) *Service {
	return &Service{
		cache:   cache,
		usage:   usage,
		logger:  logger,
		version: version,
	}
}

// PredictOne classifies a single message.
func (s *Service) PredictOne(ctx context.Context, message string) (models.PredictionResult, error) {
	s.usage.RecordRequest()

	if strings.TrimSpace(message) == "" {
		return models.PredictionResult{}, ErrEmptyMessage
	}

	results, err := s.predict(ctx, []string{message})
	if err != nil {
		return models.PredictionResult{}, err
	}

	result := results[0]
	if result.IsSpam {
		s.usage.RecordSpam(1)
	} else {
		s.usage.RecordHam(1)
	}
	return result, nil
}

// PredictBatch classifies 1..MaxBatchSize messages in one pipeline
// pass. Validation happens before any model access; once past it, the
// batch succeeds or fails as a whole.
func (s *Service) PredictBatch(ctx context.Context, messages []string) (models.BatchResult, error) {
	s.usage.RecordRequest()

	if len(messages) == 0 {
		return models.BatchResult{}, ErrEmptyBatch
	}
	if len(messages) > MaxBatchSize {
		return models.BatchResult{}, ErrBatchTooLarge
	}

	results, err := s.predict(ctx, messages)
	if err != nil {
		return models.BatchResult{}, err
	}

	batch := models.BatchResult{
		Predictions: results,
		Total:       len(results),
	}
	for _, r := range results {
		if r.IsSpam {
			batch.SpamCount++
		} else {
			batch.HamCount++
		}
	}
	s.usage.RecordSpam(uint64(batch.SpamCount))
	s.usage.RecordHam(uint64(batch.HamCount))
	return batch, nil
}

func (s *Service) predict(ctx context.Context, messages []string) ([]models.PredictionResult, error) {
	pipeline, err := s.cache.GetPipeline(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}

	labels, err := pipeline.Predict(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInference, err)
	}

	confidences := s.confidences(ctx, pipeline, messages)

	results := make([]models.PredictionResult, len(messages))
	for i, message := range messages {
		label := models.LabelHam
		if labels[i] {
			label = models.LabelSpam
		}
		results[i] = models.PredictionResult{
			Message:    message,
			Prediction: label,
			IsSpam:     labels[i],
		}
		if confidences != nil {
			c := confidences[i]
			results[i].Confidence = &c
		}
	}
	return results, nil
}

// confidences squashes decision values through the logistic function
// when the pipeline exposes a margin; otherwise nil means "absent",
// which callers must not confuse with low confidence.
func (s *Service) confidences(ctx context.Context, pipeline classifier.Pipeline, messages []string) []float64 {
	scorer, ok := pipeline.(classifier.Scorer)
	if !ok {
		return nil
	}
	decisions, err := scorer.DecisionFunction(ctx, messages)
	if err != nil {
		s.logger.Warn("Decision function failed, reporting confidence as absent", zap.Error(err))
		return nil
	}
	out := make([]float64, len(decisions))
	for i, d := range decisions {
		out[i] = 1 / (1 + math.Exp(-d))
	}
	return out
}

// Health never fails and never triggers a model load. Status is
// "healthy" even when the model is not loaded; callers that need
// prediction readiness must check ModelLoaded.
func (s *Service) Health(_ context.Context) models.Health {
	s.usage.RecordRequest()

	h := models.Health{
		Status:      "healthy",
		ModelLoaded: s.cache.IsLoaded(),
		Version:     s.version,
	}
	if p := s.cache.Peek(); p != nil {
		h.ModelName = p.Name()
	}
	return h
}

// Metrics joins the offline evaluation record with the live counters.
func (s *Service) Metrics(ctx context.Context) models.MetricsSnapshot {
	s.usage.RecordRequest()

	modelMetrics, err := s.cache.GetMetrics(ctx)
	if err != nil {
		s.logger.Warn("Failed to load evaluation metrics", zap.Error(err))
		modelMetrics = models.EvaluationMetrics{}
	}

	snapshot := s.usage.Snapshot(time.Now())
	snapshot.UptimeSeconds = math.Round(snapshot.UptimeSeconds*100) / 100

	return models.MetricsSnapshot{
		ModelMetrics: modelMetrics,
		SystemMetrics: models.SystemMetrics{
			UsageSnapshot: snapshot,
			ModelLoaded:   s.cache.IsLoaded(),
		},
	}
}

// Reload drops the cached model and loads a fresh one.
func (s *Service) Reload(ctx context.Context) (string, error) {
	if err := s.cache.ForceReload(ctx); err != nil {
		return "", err
	}
	if p := s.cache.Peek(); p != nil {
		return p.Name(), nil
	}
	return "", nil
}
