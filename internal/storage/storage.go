package storage

import (
	"context"

	"github.com/xaenox/spam-detector/internal/classifier"
	"github.com/xaenox/spam-detector/internal/models"
)

// ArtifactStore produces the trained pipeline and its evaluation
// metrics. Implementations are read-only from the serving path's point
// of view; the Cache decides when loads happen.
type ArtifactStore interface {
	LoadPipeline(ctx context.Context) (classifier.Pipeline, error)
	LoadMetrics(ctx context.Context) (models.EvaluationMetrics, error)
}
