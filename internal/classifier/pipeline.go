package classifier

import "context"

// Pipeline is a fitted, immutable model. Implementations must be safe
// for concurrent use: the serving path never mutates a loaded pipeline.
type Pipeline interface {
	// Name identifies the model variant (e.g. "linear_svc").
	Name() string
	// Predict classifies each message, true meaning spam. Results are
	// positional and independent of batch composition.
	Predict(ctx context.Context, messages []string) ([]bool, error)
}

// Scorer is the optional margin capability. Pipelines whose classifier
// exposes a signed decision value implement it; callers type-assert
// and fall back to "no confidence" when it is missing.
type Scorer interface {
	DecisionFunction(ctx context.Context, messages []string) ([]float64, error)
}

// Model is the classifier stage of a trained pipeline.
type Model interface {
	Classify(vec FeatureVector) bool
}

// MarginModel is a Model that also exposes a signed margin.
type MarginModel interface {
	Model
	Score(vec FeatureVector) float64
}

// TrainedPipeline composes normalization, the frozen vectorizer and a
// fitted classifier. All fields are read-only after construction.
type TrainedPipeline struct {
	ModelName  string
	Vectorizer *TfidfVectorizer
	Model      Model
}

func (p *TrainedPipeline) Name() string { return p.ModelName }

func (p *TrainedPipeline) Predict(_ context.Context, messages []string) ([]bool, error) {
	vecs := p.vectorize(messages)
	labels := make([]bool, len(vecs))
	for i, vec := range vecs {
		labels[i] = p.Model.Classify(vec)
	}
	return labels, nil
}

// DecisionFunction is only wired up when the underlying classifier has
// a margin; NewTrainedPipeline hides it otherwise.
func (p *TrainedPipeline) DecisionFunction(_ context.Context, messages []string) ([]float64, error) {
	scorer, ok := p.Model.(MarginModel)
	if !ok {
		return nil, ErrNoDecisionFunction
	}
	vecs := p.vectorize(messages)
	scores := make([]float64, len(vecs))
	for i, vec := range vecs {
		scores[i] = scorer.Score(vec)
	}
	return scores, nil
}

func (p *TrainedPipeline) vectorize(messages []string) []FeatureVector {
	normalized := make([]string, len(messages))
	for i, m := range messages {
		normalized[i] = Normalize(m)
	}
	return p.Vectorizer.Transform(normalized)
}

// marginless hides DecisionFunction so the wrapped pipeline does not
// satisfy Scorer.
type marginless struct{ p *TrainedPipeline }

func (m marginless) Name() string { return m.p.Name() }

func (m marginless) Predict(ctx context.Context, messages []string) ([]bool, error) {
	return m.p.Predict(ctx, messages)
}

// NewTrainedPipeline returns the pipeline as a Pipeline, advertising
// the Scorer capability only when the model actually has a margin.
func NewTrainedPipeline(name string, vectorizer *TfidfVectorizer, model Model) Pipeline {
	p := &TrainedPipeline{ModelName: name, Vectorizer: vectorizer, Model: model}
	if _, ok := model.(MarginModel); ok {
		return p
	}
	return marginless{p: p}
}
