package prize

import (
	"errors"
	"testing"
)

func validSet(n int) []Prize {
	prizes := make([]Prize, n)
	for i := range prizes {
		prizes[i] = Prize{
			ID:          string(rune('a' + i)),
			Category:    CategoryFreeReward,
			Probability: 1.0 / float64(n),
			Title:       "prize",
		}
	}
	return prizes
}

func TestValidateSet(t *testing.T) {
	for n := MinCount; n <= MaxCount; n++ {
		if err := ValidateSet(validSet(n)); err != nil {
			t.Errorf("count %d should be valid: %v", n, err)
		}
	}
}

func TestValidateSetRejectsBadCounts(t *testing.T) {
	for _, n := range []int{0, 1, 2, 9, 12} {
		err := ValidateSet(validSet(n))
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("count %d: expected ValidationError, got %v", n, err)
		}
	}
}

func TestValidateSetRejectsDuplicateIDs(t *testing.T) {
	prizes := validSet(4)
	prizes[2].ID = prizes[0].ID

	err := ValidateSet(prizes)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestValidateSetRejectsEmptyID(t *testing.T) {
	prizes := validSet(3)
	prizes[1].ID = ""

	var verr *ValidationError
	if !errors.As(ValidateSet(prizes), &verr) {
		t.Error("expected ValidationError for empty id")
	}
}

func TestValidateSetProbabilitySum(t *testing.T) {
	prizes := validSet(4)
	prizes[0].Probability += 1e-6

	var verr *ValidationError
	if !errors.As(ValidateSet(prizes), &verr) {
		t.Error("expected ValidationError for off-tolerance sum")
	}

	// Drift within tolerance passes.
	prizes = validSet(4)
	prizes[0].Probability += 1e-12
	if err := ValidateSet(prizes); err != nil {
		t.Errorf("drift within tolerance should pass: %v", err)
	}
}

func TestValidateWinningIndex(t *testing.T) {
	tests := []struct {
		count, index int
		ok           bool
	}{
		{6, 0, true},
		{6, 5, true},
		{6, 6, false},
		{6, -1, false},
		{3, 2, true},
	}

	for _, tt := range tests {
		err := ValidateWinningIndex(tt.count, tt.index)
		if tt.ok && err != nil {
			t.Errorf("(%d,%d): unexpected error %v", tt.count, tt.index, err)
		}
		if !tt.ok {
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("(%d,%d): expected ValidationError, got %v", tt.count, tt.index, err)
			}
		}
	}
}
