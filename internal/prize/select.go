package prize

import "github.com/michael-h-patrianna/prizewheel-go/internal/rng"

// Selection is the outcome of one weighted draw.
type Selection struct {
	Index int   `json:"index"`
	Seed  int64 `json:"seed"`
}

// Select deterministically picks one winning index from the prize list using
// a single draw from a generator seeded with seed. It builds the cumulative
// distribution in order and returns the smallest index whose cumulative sum
// reaches the drawn sample. The same (prizes, seed) pair always yields the
// same index.
func Select(prizes []Prize, seed int64) (Selection, error) {
	if len(prizes) == 0 {
		return Selection{}, domainErrorf("cannot select from an empty prize list")
	}
	for _, p := range prizes {
		if p.Probability <= 0 {
			return Selection{}, domainErrorf("prize %q has non-positive probability %g", p.ID, p.Probability)
		}
	}

	r := rng.New(seed).Float64()

	var cumulative float64
	for i, p := range prizes {
		cumulative += p.Probability
		if cumulative >= r {
			return Selection{Index: i, Seed: seed}, nil
		}
	}

	// Floating-point drift can leave the cumulative sum a few ULPs short of
	// 1.0 when r is very close to 1. Clamp to the last valid index.
	return Selection{Index: len(prizes) - 1, Seed: seed}, nil
}
