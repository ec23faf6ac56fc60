package classifier

import (
	"math"
	"sort"
	"strings"
)

// FeatureVector is a sparse vector over the trained vocabulary.
// Indices are sorted ascending and unique.
type FeatureVector struct {
	Indices []int
	Values  []float64
}

// TfidfVectorizer maps normalized text onto a fixed vocabulary with
// tf-idf weighting. The vocabulary and idf table are learned offline
// and frozen: unseen terms contribute nothing and the vocabulary
// never grows at inference time.
type TfidfVectorizer struct {
	Vocabulary map[string]int
	Idf        []float64
	NgramMin   int
	NgramMax   int
	MinDF      int
}

// NumFeatures returns the dimensionality of the output space.
func (v *TfidfVectorizer) NumFeatures() int {
	return len(v.Idf)
}

// Transform vectorizes each text independently. The same text always
// produces the same vector regardless of what else is in the slice.
func (v *TfidfVectorizer) Transform(texts []string) []FeatureVector {
	out := make([]FeatureVector, len(texts))
	for i, text := range texts {
		out[i] = v.transformOne(text)
	}
	return out
}

func (v *TfidfVectorizer) transformOne(text string) FeatureVector {
	counts := make(map[int]float64)
	tokens := strings.Fields(text)

	for n := v.NgramMin; n <= v.NgramMax; n++ {
		if n < 1 || n > len(tokens) {
			continue
		}
		for i := 0; i+n <= len(tokens); i++ {
			term := strings.Join(tokens[i:i+n], " ")
			if col, ok := v.Vocabulary[term]; ok {
				counts[col]++
			}
		}
	}

	vec := FeatureVector{
		Indices: make([]int, 0, len(counts)),
		Values:  make([]float64, 0, len(counts)),
	}
	for col := range counts {
		vec.Indices = append(vec.Indices, col)
	}
	sort.Ints(vec.Indices)

	var norm float64
	for _, col := range vec.Indices {
		w := counts[col] * v.Idf[col]
		vec.Values = append(vec.Values, w)
		norm += w * w
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec.Values {
			vec.Values[i] /= norm
		}
	}
	return vec
}
