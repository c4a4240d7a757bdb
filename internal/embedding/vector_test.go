package embedding

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeUnitLength(t *testing.T) {
	v := Normalize([]float32{3, 4})

	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	require.InDelta(t, 1.0, math.Sqrt(sum), 1e-6)
	require.InDelta(t, 0.6, float64(v[0]), 1e-6)
	require.InDelta(t, 0.8, float64(v[1]), 1e-6)
}

func TestNormalizeZeroVector(t *testing.T) {
	v := Normalize([]float32{0, 0, 0})
	require.Equal(t, []float32{0, 0, 0}, v)
}

func TestCosine(t *testing.T) {
	a := []float32{1, 0}
	b := []float32{0, 1}
	require.InDelta(t, 0.0, Cosine(a, b), 1e-6)
	require.InDelta(t, 1.0, Cosine(a, a), 1e-6)
	require.InDelta(t, -1.0, Cosine(a, []float32{-1, 0}), 1e-6)
}

func TestCosineMismatchedLengths(t *testing.T) {
	a := []float32{1, 0, 5}
	b := []float32{1, 0}
	require.InDelta(t, 1.0, Cosine(a, b), 1e-6)
	require.InDelta(t, 1.0, Cosine(b, a), 1e-6)
}
