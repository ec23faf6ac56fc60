package classifier

// MultinomialNB classifies by comparing per-class joint log-likelihoods.
// It exposes no decision margin, so pipelines built on it report
// confidence as absent rather than inventing one.
type MultinomialNB struct {
	ClassLogPrior  [2]float64   // [ham, spam]
	FeatureLogProb [2][]float64 // per-class log P(term|class) over the vocabulary
}

func (m *MultinomialNB) Classify(vec FeatureVector) bool {
	ham := m.ClassLogPrior[0]
	spam := m.ClassLogPrior[1]
	for i, col := range vec.Indices {
		ham += m.FeatureLogProb[0][col] * vec.Values[i]
		spam += m.FeatureLogProb[1][col] * vec.Values[i]
	}
	return spam >= ham
}
