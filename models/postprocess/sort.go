package postprocess

import (
	"cmp"
	"slices"
	"sync"
)

// parallelSortMinLen is the list length below which the parallel sort falls
// back to a single goroutine.
const parallelSortMinLen = 4096

func byConfidenceDesc(a, b Detection) int {
	return cmp.Compare(b.Confidence, a.Confidence)
}

// SortByConfidence orders detections in place by descending confidence.
// Equal confidences keep their relative input order.
func SortByConfidence(dets []Detection) {
	slices.SortStableFunc(dets, byConfidenceDesc)
}

// SortByConfidenceParallel sorts like SortByConfidence, splitting the list into
// one chunk per worker, sorting chunks concurrently and merging them pairwise.
// The result is identical to SortByConfidence.
//
// Arguments:
//   - dets: Detections to sort in place.
//   - workers: Maximum number of concurrent chunk sorts. Values <= 1 sort serially.
func SortByConfidenceParallel(dets []Detection, workers int) {
	n := len(dets)
	if workers <= 1 || n < parallelSortMinLen {
		SortByConfidence(dets)
		return
	}

	chunk := (n + workers - 1) / workers
	var runs [][2]int
	for lo := 0; lo < n; lo += chunk {
		runs = append(runs, [2]int{lo, min(lo+chunk, n)})
	}

	var wg sync.WaitGroup
	for _, r := range runs {
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			SortByConfidence(dets[lo:hi])
		}(r[0], r[1])
	}
	wg.Wait()

	src, dst := dets, make([]Detection, n)
	for len(runs) > 1 {
		next := make([][2]int, 0, (len(runs)+1)/2)
		for i := 0; i < len(runs); i += 2 {
			if i+1 == len(runs) {
				lo, hi := runs[i][0], runs[i][1]
				copy(dst[lo:hi], src[lo:hi])
				next = append(next, runs[i])
				continue
			}
			lo, mid, hi := runs[i][0], runs[i][1], runs[i+1][1]
			wg.Add(1)
			go func() {
				defer wg.Done()
				mergeDesc(dst[lo:hi], src[lo:mid], src[mid:hi])
			}()
			next = append(next, [2]int{lo, hi})
		}
		wg.Wait()
		runs = next
		src, dst = dst, src
	}

	if &src[0] != &dets[0] {
		copy(dets, src)
	}
}

// mergeDesc merges two descending runs into out. Ties take from a first.
func mergeDesc(out, a, b []Detection) {
	i, j, k := 0, 0, 0
	for i < len(a) && j < len(b) {
		if b[j].Confidence > a[i].Confidence {
			out[k] = b[j]
			j++
		} else {
			out[k] = a[i]
			i++
		}
		k++
	}
	k += copy(out[k:], a[i:])
	copy(out[k:], b[j:])
}
