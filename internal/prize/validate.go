package prize

import "math"

const (
	// MinCount and MaxCount bound how many wedges a wheel can carry.
	MinCount = 3
	MaxCount = 8

	// ProbabilityTolerance is the fixed absolute epsilon for the sum-to-one
	// invariant. Deliberately independent of prize count.
	ProbabilityTolerance = 1e-9
)

// ValidateSet checks the structural invariants of a candidate prize set.
// Every session must pass this gate before it is shown to the user.
func ValidateSet(prizes []Prize) error {
	if len(prizes) < MinCount || len(prizes) > MaxCount {
		return validationErrorf("prize count %d outside [%d, %d]", len(prizes), MinCount, MaxCount)
	}

	seen := make(map[string]bool, len(prizes))
	var total float64
	for _, p := range prizes {
		if p.ID == "" {
			return validationErrorf("prize with empty id")
		}
		if seen[p.ID] {
			return validationErrorf("duplicate prize id %q", p.ID)
		}
		seen[p.ID] = true
		total += p.Probability
	}

	if math.Abs(total-1.0) > ProbabilityTolerance {
		return validationErrorf("probabilities sum to %.12f, want 1.0 ± %g", total, ProbabilityTolerance)
	}
	return nil
}

// ValidateWinningIndex checks an externally supplied winning index against
// the number of prizes in play.
func ValidateWinningIndex(count, index int) error {
	if index < 0 || index >= count {
		return validationErrorf("winning index %d out of bounds for %d prizes", index, count)
	}
	return nil
}
