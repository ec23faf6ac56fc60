package classifier

import (
	"encoding/json"
	"fmt"
	"os"
)

// Classifier variants understood by the artifact decoder.
const (
	TypeLinear        = "linear"
	TypeMultinomialNB = "multinomial_nb"
)

// Artifact is the on-disk form of a trained pipeline, produced offline
// by the training job and consumed read-only here.
type Artifact struct {
	Model      string             `json:"model"`
	Vectorizer VectorizerArtifact `json:"vectorizer"`
	Classifier ClassifierArtifact `json:"classifier"`
}

type VectorizerArtifact struct {
	NgramRange [2]int         `json:"ngram_range"`
	MinDF      int            `json:"min_df"`
	Vocabulary map[string]int `json:"vocabulary"`
	Idf        []float64      `json:"idf"`
}

type ClassifierArtifact struct {
	Type           string      `json:"type"`
	Coef           []float64   `json:"coef,omitempty"`
	Intercept      float64     `json:"intercept,omitempty"`
	ClassLogPrior  []float64   `json:"class_log_prior,omitempty"`
	FeatureLogProb [][]float64 `json:"feature_log_prob,omitempty"`
}

// LoadArtifact reads and validates a pipeline artifact from disk.
func LoadArtifact(path string) (Pipeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrArtifactNotFound, path)
		}
		return nil, fmt.Errorf("reading model artifact %s: %w", path, err)
	}

	var art Artifact
	if err := json.Unmarshal(data, &art); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArtifactCorrupt, err)
	}
	return art.Build()
}

// Build assembles the in-memory pipeline, checking that weight shapes
// agree with the vocabulary.
func (a Artifact) Build() (Pipeline, error) {
	dim := len(a.Vectorizer.Idf)
	if len(a.Vectorizer.Vocabulary) == 0 || dim == 0 {
		return nil, fmt.Errorf("%w: empty vocabulary", ErrArtifactCorrupt)
	}
	for term, col := range a.Vectorizer.Vocabulary {
		if col < 0 || col >= dim {
			return nil, fmt.Errorf("%w: term %q maps to column %d outside idf table of size %d",
				ErrArtifactCorrupt, term, col, dim)
		}
	}

	vectorizer := &TfidfVectorizer{
		Vocabulary: a.Vectorizer.Vocabulary,
		Idf:        a.Vectorizer.Idf,
		NgramMin:   a.Vectorizer.NgramRange[0],
		NgramMax:   a.Vectorizer.NgramRange[1],
		MinDF:      a.Vectorizer.MinDF,
	}
	if vectorizer.NgramMin == 0 && vectorizer.NgramMax == 0 {
		vectorizer.NgramMin, vectorizer.NgramMax = 1, 2
	}
	if vectorizer.NgramMin < 1 || vectorizer.NgramMax < vectorizer.NgramMin {
		return nil, fmt.Errorf("%w: invalid ngram range [%d, %d]",
			ErrArtifactCorrupt, vectorizer.NgramMin, vectorizer.NgramMax)
	}

	model, err := a.Classifier.build(dim)
	if err != nil {
		return nil, err
	}

	name := a.Model
	if name == "" {
		name = a.Classifier.Type
	}
	return NewTrainedPipeline(name, vectorizer, model), nil
}

func (c ClassifierArtifact) build(dim int) (Model, error) {
	switch c.Type {
	case TypeLinear:
		if len(c.Coef) != dim {
			return nil, fmt.Errorf("%w: coef has %d weights for %d features",
				ErrArtifactCorrupt, len(c.Coef), dim)
		}
		return &LinearModel{Coef: c.Coef, Intercept: c.Intercept}, nil

	case TypeMultinomialNB:
		if len(c.ClassLogPrior) != 2 || len(c.FeatureLogProb) != 2 {
			return nil, fmt.Errorf("%w: multinomial_nb needs two classes", ErrArtifactCorrupt)
		}
		nb := &MultinomialNB{
			ClassLogPrior: [2]float64{c.ClassLogPrior[0], c.ClassLogPrior[1]},
		}
		for cls := 0; cls < 2; cls++ {
			if len(c.FeatureLogProb[cls]) != dim {
				return nil, fmt.Errorf("%w: feature_log_prob[%d] has %d weights for %d features",
					ErrArtifactCorrupt, cls, len(c.FeatureLogProb[cls]), dim)
			}
			nb.FeatureLogProb[cls] = c.FeatureLogProb[cls]
		}
		return nb, nil

	default:
		return nil, fmt.Errorf("%w: unknown classifier type %q", ErrArtifactCorrupt, c.Type)
	}
}
