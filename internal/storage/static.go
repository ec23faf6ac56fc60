package storage

import (
	"context"

	"github.com/xaenox/spam-detector/internal/classifier"
	"github.com/xaenox/spam-detector/internal/models"
)

// StaticStore serves a pipeline constructed in-process, such as the
// LLM-backed classifier, where there is no artifact on disk. Also
// handy as a test double.
type StaticStore struct {
	Pipeline classifier.Pipeline
	Metrics  models.EvaluationMetrics
}

func NewStaticStore(pipeline classifier.Pipeline) *StaticStore {
	return &StaticStore{Pipeline: pipeline}
}

func (s *StaticStore) LoadPipeline(_ context.Context) (classifier.Pipeline, error) {
	return s.Pipeline, nil
}

func (s *StaticStore) LoadMetrics(_ context.Context) (models.EvaluationMetrics, error) {
	return s.Metrics, nil
}
