package pitch

import "math"

// viterbiState holds the forward-pass scratch buffers for the Analyzer's
// Viterbi path search. pathCosts[k] is the best cumulative cost of any path
// ending at candidate k of the most recent step; pathIndexes accumulates one
// row of K back-pointers per step (append-only, never trimmed), so
// reconstruction can walk backward from the final argmin.
type viterbiState struct {
	pathCosts   []float64
	pathIndexes [][]int // one row per step, each of length K
}

func (v *viterbiState) reset() {
	v.pathCosts = nil
	v.pathIndexes = nil
}

// fargmin returns the index of the first occurrence of the minimum value in
// v. Panics if v is empty, mirroring the original's assertion.
func fargmin(v []float64) int {
	if len(v) == 0 {
		panic("pitch: fargmin called on empty slice")
	}
	best := 0
	for i := 1; i < len(v); i++ {
		if v[i] < v[best] {
			best = i
		}
	}
	return best
}

// update extends the Viterbi forward pass by one step given the candidates
// generated for that step (exactly K of them). On the first step it simply
// seeds pathCosts[k] = -weight(k). On later steps it computes, for every new
// candidate k, the minimum over every previous candidate j of
// pathCosts[j] + transitionCost(old[j], new[k]) - weight(new[k]), recording
// the minimizing j as this step's back-pointer for k.
func (v *viterbiState) update(a *Analyzer, prevCandidates, newCandidates []Candidate) {
	k := len(newCandidates)
	if len(v.pathCosts) == 0 {
		costs := make([]float64, k)
		for i, c := range newCandidates {
			costs[i] = -c.Weight()
		}
		v.pathCosts = costs
		identity := make([]int, k)
		for i := range identity {
			identity[i] = i
		}
		v.pathIndexes = append(v.pathIndexes, identity)
		return
	}

	newCosts := make([]float64, k)
	newIndexes := make([]int, k)
	for kk, newC := range newCandidates {
		best := math.Inf(1)
		bestJ := 0
		for j, oldC := range prevCandidates {
			score := v.pathCosts[j] + a.cfg.TransitionCost(a, oldC, newC) - newC.Weight()
			if score < best {
				best = score
				bestJ = j
			}
		}
		newCosts[kk] = best
		newIndexes[kk] = bestJ
	}
	v.pathCosts = newCosts
	v.pathIndexes = append(v.pathIndexes, newIndexes)
}

// path reconstructs the frequency sequence from the accumulated
// back-pointers. candidates is the full T*K candidate matrix (row-major,
// row i holding step i's K candidates). Returns ErrNoPath if no steps have
// been computed yet.
func (v *viterbiState) path(candidates []Candidate, k int) ([]float64, error) {
	t := len(v.pathIndexes)
	if t == 0 || k == 0 {
		return nil, ErrNoPath
	}

	best := fargmin(v.pathCosts)
	freq := make([]float64, t)

	for i := t - 1; i >= 1; i-- {
		freq[i] = candidates[i*k+best].Frequency
		best = v.pathIndexes[i][best]
	}
	freq[0] = candidates[best].Frequency

	return freq, nil
}
