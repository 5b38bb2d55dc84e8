package postprocess

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvr-ai/go-yolo/images"
)

// boxA and boxB overlap with IoU exactly 0.6 (7500 / 12500).
var (
	boxA = images.Rect{X: 0, Y: 0, Width: 100, Height: 100}
	boxB = images.Rect{X: 25, Y: 0, Width: 100, Height: 100}
)

func TestApplyNMS_SameLabelSuppressed(t *testing.T) {
	require.InDelta(t, 0.6, images.CalculateIoU(boxA, boxB), 1e-6)

	dets := []Detection{
		{Box: boxA, Label: 0, Confidence: 0.9},
		{Box: boxB, Label: 0, Confidence: 0.8},
	}
	kept := ApplyNMS(dets, NMSConfig{IoUThreshold: 0.5})
	require.Len(t, kept, 1)
	assert.Equal(t, float32(0.9), kept[0].Confidence)
}

func TestApplyNMS_DifferentLabelsKept(t *testing.T) {
	dets := []Detection{
		{Box: boxA, Label: 0, Confidence: 0.9},
		{Box: boxB, Label: 1, Confidence: 0.8},
	}
	kept := ApplyNMS(dets, NMSConfig{IoUThreshold: 0.5})
	assert.Len(t, kept, 2)

	kept = ApplyNMS(dets, NMSConfig{IoUThreshold: 0.5, Agnostic: true})
	require.Len(t, kept, 1)
	assert.Equal(t, 0, kept[0].Label)
}

func TestApplyNMS_ThresholdIsStrict(t *testing.T) {
	dets := []Detection{
		{Box: boxA, Label: 0, Confidence: 0.9},
		{Box: boxB, Label: 0, Confidence: 0.8},
	}
	// IoU equal to the threshold does not suppress.
	assert.Len(t, ApplyNMS(dets, NMSConfig{IoUThreshold: 0.6}), 2)
}

func TestNMSSorted_OnlyPickedBoxesSuppress(t *testing.T) {
	// B overlaps A and is suppressed. C overlaps B above the threshold but A
	// below it, so C survives.
	dets := []Detection{
		{Box: images.Rect{X: 0, Y: 0, Width: 100, Height: 100}, Confidence: 0.9},
		{Box: images.Rect{X: 50, Y: 0, Width: 100, Height: 100}, Confidence: 0.8},
		{Box: images.Rect{X: 80, Y: 0, Width: 100, Height: 100}, Confidence: 0.7},
	}
	assert.Equal(t, []int{0, 2}, NMSSorted(dets, NMSConfig{IoUThreshold: 0.3}))
}

func TestApplyNMS_ZeroAreaBoxes(t *testing.T) {
	empty := images.Rect{X: 10, Y: 10}
	dets := []Detection{
		{Box: empty, Confidence: 0.9},
		{Box: empty, Confidence: 0.8},
		{Box: images.Rect{X: 0, Y: 0, Width: 50, Height: 50}, Confidence: 0.7},
	}
	assert.Len(t, ApplyNMS(dets, NMSConfig{IoUThreshold: 0.1}), 3)
}

func TestApplyNMS_Empty(t *testing.T) {
	assert.Nil(t, ApplyNMS(nil, NMSConfig{IoUThreshold: 0.5}))
	assert.Empty(t, NMSSorted(nil, NMSConfig{IoUThreshold: 0.5}))
}

// TestNMSSorted_Properties checks over random inputs that the picked indices form
// an increasing subsequence, that no two kept boxes of the same label overlap above
// the threshold and that every dropped box overlaps a higher-ranked kept one.
func TestNMSSorted_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(2024))
	const threshold = float32(0.45)

	for round := 0; round < 20; round++ {
		dets := make([]Detection, 300)
		for i := range dets {
			dets[i] = Detection{
				Box: images.Rect{
					X:      rng.Float32() * 500,
					Y:      rng.Float32() * 500,
					Width:  10 + rng.Float32()*120,
					Height: 10 + rng.Float32()*120,
				},
				Label:      rng.Intn(3),
				Confidence: rng.Float32(),
			}
		}
		SortByConfidence(dets)

		picked := NMSSorted(dets, NMSConfig{IoUThreshold: threshold})
		require.NotEmpty(t, picked)

		kept := make(map[int]bool, len(picked))
		for n, idx := range picked {
			if n > 0 {
				require.Greater(t, idx, picked[n-1])
			}
			kept[idx] = true
		}

		for x := 0; x < len(picked); x++ {
			for y := x + 1; y < len(picked); y++ {
				a, b := dets[picked[x]], dets[picked[y]]
				if a.Label == b.Label {
					require.LessOrEqual(t, images.CalculateIoU(a.Box, b.Box), threshold)
				}
			}
		}

		for i := range dets {
			if kept[i] {
				continue
			}
			suppressed := false
			for _, j := range picked {
				if j >= i {
					break
				}
				if dets[j].Label == dets[i].Label && images.CalculateIoU(dets[i].Box, dets[j].Box) > threshold {
					suppressed = true
					break
				}
			}
			require.True(t, suppressed, "dropped detection %d has no suppressor", i)
		}
	}
}
