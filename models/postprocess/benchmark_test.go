package postprocess

import (
	"fmt"
	"math/rand"
	"runtime"
	"testing"

	"github.com/nvr-ai/go-yolo/images"
)

func benchmarkDetections(n int) []Detection {
	rng := rand.New(rand.NewSource(1))
	dets := make([]Detection, n)
	for i := range dets {
		dets[i] = Detection{
			Box: images.Rect{
				X:      rng.Float32() * 1200,
				Y:      rng.Float32() * 700,
				Width:  8 + rng.Float32()*200,
				Height: 8 + rng.Float32()*200,
			},
			Label:      rng.Intn(80),
			Confidence: rng.Float32(),
		}
	}
	return dets
}

func BenchmarkSortByConfidence(b *testing.B) {
	for _, n := range []int{1000, 10000, 50000} {
		src := benchmarkDetections(n)
		work := make([]Detection, n)

		b.Run(fmt.Sprintf("serial/%d", n), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				copy(work, src)
				SortByConfidence(work)
			}
		})
		b.Run(fmt.Sprintf("parallel/%d", n), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				copy(work, src)
				SortByConfidenceParallel(work, runtime.NumCPU())
			}
		})
	}
}

func BenchmarkNMSSorted(b *testing.B) {
	for _, n := range []int{100, 1000, 5000} {
		dets := benchmarkDetections(n)
		SortByConfidence(dets)

		for _, agnostic := range []bool{false, true} {
			b.Run(fmt.Sprintf("n=%d/agnostic=%t", n, agnostic), func(b *testing.B) {
				cfg := NMSConfig{IoUThreshold: 0.45, Agnostic: agnostic}
				b.ReportAllocs()
				for i := 0; i < b.N; i++ {
					NMSSorted(dets, cfg)
				}
			})
		}
	}
}
