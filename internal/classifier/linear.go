package classifier

// LinearModel is a linear classifier over the tf-idf feature space:
// a learned weight per vocabulary column plus a bias. The sign of the
// margin gives the class, spam when non-negative.
type LinearModel struct {
	Coef      []float64
	Intercept float64
}

// Score returns the signed decision value for one feature vector.
func (m *LinearModel) Score(vec FeatureVector) float64 {
	s := m.Intercept
	for i, col := range vec.Indices {
		s += m.Coef[col] * vec.Values[i]
	}
	return s
}

func (m *LinearModel) Classify(vec FeatureVector) bool {
	return m.Score(vec) >= 0
}
