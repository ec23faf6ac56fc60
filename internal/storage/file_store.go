package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/xaenox/spam-detector/internal/classifier"
	"github.com/xaenox/spam-detector/internal/models"
	"go.uber.org/zap"
)

// FileStore reads the pipeline artifact and its sibling metrics record
// from the filesystem, where the offline training job left them.
type FileStore struct {
	modelPath   string
	metricsPath string
	logger      *zap.Logger
}

func NewFileStore(modelPath, metricsPath string, logger *zap.Logger) *FileStore {
	return &FileStore{
		modelPath:   modelPath,
		metricsPath: metricsPath,
		logger:      logger,
	}
}

func (s *FileStore) LoadPipeline(_ context.Context) (classifier.Pipeline, error) {
	s.logger.Info("Loading model artifact", zap.String("path", s.modelPath))
	pipeline, err := classifier.LoadArtifact(s.modelPath)
	if err != nil {
		s.logger.Error("Failed to load model artifact", zap.Error(err))
		return nil, err
	}
	s.logger.Info("Model loaded", zap.String("model", pipeline.Name()))
	return pipeline, nil
}

// LoadMetrics treats a missing metrics file as an empty record rather
// than a failure: the service can predict without evaluation metrics.
func (s *FileStore) LoadMetrics(_ context.Context) (models.EvaluationMetrics, error) {
	data, err := os.ReadFile(s.metricsPath)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Warn("Metrics file not found", zap.String("path", s.metricsPath))
			return models.EvaluationMetrics{}, nil
		}
		return models.EvaluationMetrics{}, fmt.Errorf("reading metrics %s: %w", s.metricsPath, err)
	}

	var m models.EvaluationMetrics
	if err := json.Unmarshal(data, &m); err != nil {
		return models.EvaluationMetrics{}, fmt.Errorf("decoding metrics %s: %w", s.metricsPath, err)
	}
	s.logger.Info("Metrics loaded", zap.String("model", m.Model))
	return m, nil
}
