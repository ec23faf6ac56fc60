package classifier

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeArtifact(t *testing.T, art Artifact) string {
	t.Helper()
	data, err := json.Marshal(art)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestLoadArtifact(t *testing.T) {
	path := writeArtifact(t, fixtureArtifact())

	p, err := LoadArtifact(path)
	require.NoError(t, err)
	assert.Equal(t, "linear_svc", p.Name())
}

func TestLoadArtifactNotFound(t *testing.T) {
	_, err := LoadArtifact(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, ErrArtifactNotFound)
}

func TestLoadArtifactCorruptJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, []byte("not json at all {"), 0o644))

	_, err := LoadArtifact(path)
	assert.ErrorIs(t, err, ErrArtifactCorrupt)
}

func TestBuildRejectsInconsistentShapes(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Artifact)
	}{
		{
			name:   "empty vocabulary",
			mutate: func(a *Artifact) { a.Vectorizer.Vocabulary = nil },
		},
		{
			name:   "column outside idf table",
			mutate: func(a *Artifact) { a.Vectorizer.Vocabulary["rogue"] = 99 },
		},
		{
			name:   "coef length mismatch",
			mutate: func(a *Artifact) { a.Classifier.Coef = []float64{1, 2} },
		},
		{
			name:   "unknown classifier type",
			mutate: func(a *Artifact) { a.Classifier.Type = "decision_tree" },
		},
		{
			name:   "inverted ngram range",
			mutate: func(a *Artifact) { a.Vectorizer.NgramRange = [2]int{2, 1} },
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			art := fixtureArtifact()
			tc.mutate(&art)
			_, err := art.Build()
			assert.ErrorIs(t, err, ErrArtifactCorrupt)
		})
	}
}

func TestBuildDefaultsNgramRange(t *testing.T) {
	art := fixtureArtifact()
	art.Vectorizer.NgramRange = [2]int{0, 0}

	p, err := art.Build()
	require.NoError(t, err)

	tp, ok := p.(*TrainedPipeline)
	require.True(t, ok)
	assert.Equal(t, 1, tp.Vectorizer.NgramMin)
	assert.Equal(t, 2, tp.Vectorizer.NgramMax)
}
