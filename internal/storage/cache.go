package storage

import (
	"context"
	"sync"

	"github.com/xaenox/spam-detector/internal/classifier"
	"github.com/xaenox/spam-detector/internal/models"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Cache holds the at-most-one loaded pipeline (and its evaluation
// metrics) for the process. The first caller triggers the load;
// concurrent callers share that one load via singleflight and may give
// up waiting through their context without spawning another. A failed
// load leaves the slot empty so a later call can retry.
type Cache struct {
	store  ArtifactStore
	logger *zap.Logger

	group    singleflight.Group
	reloadMu sync.Mutex

	mu       sync.RWMutex
	pipeline classifier.Pipeline
	metrics  *models.EvaluationMetrics
}

func NewCache(store ArtifactStore, logger *zap.Logger) *Cache {
	return &Cache{store: store, logger: logger}
}

// GetPipeline returns the cached pipeline, loading it on first use.
func (c *Cache) GetPipeline(ctx context.Context) (classifier.Pipeline, error) {
	if p := c.Peek(); p != nil {
		return p, nil
	}

	ch := c.group.DoChan("pipeline", c.loadPipeline)
	select {
	case <-ctx.Done():
		// The in-flight load keeps running for the callers still
		// waiting on it; this caller just stops waiting.
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(classifier.Pipeline), nil
	}
}

func (c *Cache) loadPipeline() (any, error) {
	c.mu.RLock()
	p := c.pipeline
	c.mu.RUnlock()
	if p != nil {
		return p, nil
	}

	// Detached context: the load is shared, so no single caller's
	// deadline should cancel it for everyone.
	p, err := c.store.LoadPipeline(context.Background())
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.pipeline = p
	c.mu.Unlock()
	return p, nil
}

// GetMetrics returns the cached evaluation metrics, loading them on
// first use. An empty record is a valid, cacheable outcome.
func (c *Cache) GetMetrics(ctx context.Context) (models.EvaluationMetrics, error) {
	c.mu.RLock()
	m := c.metrics
	c.mu.RUnlock()
	if m != nil {
		return *m, nil
	}

	ch := c.group.DoChan("metrics", c.loadMetrics)
	select {
	case <-ctx.Done():
		return models.EvaluationMetrics{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return models.EvaluationMetrics{}, res.Err
		}
		return res.Val.(models.EvaluationMetrics), nil
	}
}

func (c *Cache) loadMetrics() (any, error) {
	c.mu.RLock()
	cached := c.metrics
	c.mu.RUnlock()
	if cached != nil {
		return *cached, nil
	}

	m, err := c.store.LoadMetrics(context.Background())
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.metrics = &m
	c.mu.Unlock()
	return m, nil
}

// IsLoaded reports whether a pipeline is in the cache. Never loads.
func (c *Cache) IsLoaded() bool {
	return c.Peek() != nil
}

// Peek returns the cached pipeline or nil. Never loads.
func (c *Cache) Peek() classifier.Pipeline {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.pipeline
}

// ForceReload drops the cached artifacts and loads fresh ones.
// Concurrent reloads are serialized; concurrent GetPipeline callers
// join whichever load is in flight instead of starting their own.
func (c *Cache) ForceReload(ctx context.Context) error {
	c.reloadMu.Lock()
	defer c.reloadMu.Unlock()

	c.logger.Info("Reloading model cache")
	c.mu.Lock()
	c.pipeline = nil
	c.metrics = nil
	c.mu.Unlock()

	if _, err := c.GetPipeline(ctx); err != nil {
		return err
	}
	_, err := c.GetMetrics(ctx)
	return err
}
