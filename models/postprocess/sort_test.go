package postprocess

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomDetections(rng *rand.Rand, n int, levels int) []Detection {
	dets := make([]Detection, n)
	for i := range dets {
		// Quantized confidences force plenty of ties.
		dets[i] = Detection{
			Label:      i,
			Confidence: float32(rng.Intn(levels)) / float32(levels),
		}
	}
	return dets
}

func TestSortByConfidence(t *testing.T) {
	dets := []Detection{
		{Label: 0, Confidence: 0.3},
		{Label: 1, Confidence: 0.9},
		{Label: 2, Confidence: 0.3},
		{Label: 3, Confidence: 0.5},
		{Label: 4, Confidence: 0.9},
	}
	SortByConfidence(dets)

	labels := make([]int, len(dets))
	for i, d := range dets {
		labels[i] = d.Label
	}
	assert.Equal(t, []int{1, 4, 3, 0, 2}, labels, "ties keep input order")

	SortByConfidence(nil)
	single := []Detection{{Label: 7, Confidence: 0.1}}
	SortByConfidence(single)
	assert.Equal(t, 7, single[0].Label)
}

func TestSortByConfidence_Postcondition(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	dets := randomDetections(rng, 1000, 50)
	SortByConfidence(dets)

	for i := 1; i < len(dets); i++ {
		require.GreaterOrEqual(t, dets[i-1].Confidence, dets[i].Confidence)
	}
}

func TestSortByConfidenceParallel_MatchesSerial(t *testing.T) {
	rng := rand.New(rand.NewSource(99))

	for _, tc := range []struct {
		n, workers int
	}{
		{10, 4},
		{parallelSortMinLen, 2},
		{10000, 3},
		{10001, 8},
		{20000, 16},
	} {
		dets := randomDetections(rng, tc.n, 100)
		serial := append([]Detection(nil), dets...)
		parallel := append([]Detection(nil), dets...)

		SortByConfidence(serial)
		SortByConfidenceParallel(parallel, tc.workers)
		assert.Equal(t, serial, parallel, "n=%d workers=%d", tc.n, tc.workers)
	}
}

func TestMergeDesc(t *testing.T) {
	a := []Detection{{Label: 0, Confidence: 0.9}, {Label: 1, Confidence: 0.5}}
	b := []Detection{{Label: 2, Confidence: 0.9}, {Label: 3, Confidence: 0.7}, {Label: 4, Confidence: 0.1}}
	out := make([]Detection, 5)
	mergeDesc(out, a, b)

	labels := make([]int, len(out))
	for i, d := range out {
		labels[i] = d.Label
	}
	assert.Equal(t, []int{0, 2, 3, 1, 4}, labels)
}
