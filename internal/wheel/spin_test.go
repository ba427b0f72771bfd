package wheel

import (
	"errors"
	"math"
	"sync/atomic"
	"testing"
	"time"

	"github.com/michael-h-patrianna/prizewheel-go/internal/prize"
	"github.com/michael-h-patrianna/prizewheel-go/internal/rng"
)

func testTiming() Timing {
	return Timing{Lead: 30 * time.Millisecond, Settle: 15 * time.Millisecond}
}

func testSession(t *testing.T, winning int) *prize.Session {
	t.Helper()
	prizes, err := prize.NormalizeProbabilities(sessionPrizes())
	if err != nil {
		t.Fatal(err)
	}
	return &prize.Session{Prizes: prizes, WinningIndex: winning, Seed: 1, Source: "test"}
}

func TestComputePlanTargetsWinningSegment(t *testing.T) {
	for count := 3; count <= 8; count++ {
		for winning := 0; winning < count; winning++ {
			plan := ComputePlan(count, winning, 0, rng.New(int64(count*100+winning)), testTiming())
			if got := SegmentAt(plan.Target, count); got != winning {
				t.Errorf("count=%d winning=%d: target %f maps to segment %d", count, winning, plan.Target, got)
			}
			if plan.ExtraTurns < minExtraTurns || plan.ExtraTurns > maxExtraTurns {
				t.Errorf("extra turns %d outside [%d, %d]", plan.ExtraTurns, minExtraTurns, maxExtraTurns)
			}
			if plan.Overshoot <= 0 {
				t.Errorf("overshoot %f should be positive", plan.Overshoot)
			}
		}
	}
}

func TestComputePlanMonotonic(t *testing.T) {
	r := rng.New(7)
	current := 0.0
	for i := 0; i < 100; i++ {
		plan := ComputePlan(6, i%6, current, r, testTiming())
		if plan.Target <= current {
			t.Fatalf("spin %d: target %f does not advance past %f", i, plan.Target, current)
		}
		current = plan.Target
	}
}

func TestComputePlanDeterminism(t *testing.T) {
	a := ComputePlan(6, 2, 1234.5, rng.New(42), testTiming())
	b := ComputePlan(6, 2, 1234.5, rng.New(42), testTiming())
	if a != b {
		t.Errorf("identical inputs produced different plans: %+v vs %+v", a, b)
	}
}

func TestComputePlanPanicsOnBadIndex(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for out-of-range winning index")
		}
	}()
	ComputePlan(6, 6, 0, rng.New(1), testTiming())
}

func TestSegmentAt(t *testing.T) {
	tests := []struct {
		angle float64
		count int
		want  int
	}{
		{330, 6, 0},  // center of segment 0: 360 - 30
		{270, 6, 1},  // 360 - (60 + 30)
		{210, 6, 2},  // 360 - (2*60 + 30)
		{30, 6, 5},   // last segment
		{2010, 6, 2}, // full turns fall away
		{337.5, 8, 0},
		{300, 3, 0},
	}

	for _, tt := range tests {
		if got := SegmentAt(tt.angle, tt.count); got != tt.want {
			t.Errorf("SegmentAt(%f, %d) = %d, want %d", tt.angle, tt.count, got, tt.want)
		}
	}
}

func TestSpinLandsOnWinningSegment(t *testing.T) {
	c := NewController(testTiming(), rng.New(11))
	if err := c.SetSession(testSession(t, 2)); err != nil {
		t.Fatal(err)
	}

	done := make(chan Result, 1)
	c.OnComplete(func(r Result) { done <- r })

	if err := c.StartSpin(); err != nil {
		t.Fatal(err)
	}
	if got := c.State(); got != StateSpinning {
		t.Fatalf("state after StartSpin = %q", got)
	}

	var result Result
	select {
	case result = <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("spin never completed")
	}

	if result.SegmentIndex != 2 {
		t.Errorf("landed on segment %d, want 2", result.SegmentIndex)
	}
	if got := c.Rotation(); got != result.Angle {
		t.Errorf("rotation %f does not match completed angle %f", got, result.Angle)
	}
	if got := SegmentAt(c.Rotation(), 6); got != 2 {
		t.Errorf("final rotation maps to segment %d, want 2", got)
	}

	// Return-to-ready is automatic after completion.
	deadline := time.Now().Add(time.Second)
	for c.State() != StateIdle {
		if time.Now().After(deadline) {
			t.Fatal("controller never returned to idle")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestSpinWithoutSessionRejected(t *testing.T) {
	c := NewController(testTiming(), rng.New(1))
	if err := c.StartSpin(); !errors.Is(err, ErrNoSession) {
		t.Errorf("expected ErrNoSession, got %v", err)
	}
}

func TestDoubleStartIsSingleSpin(t *testing.T) {
	c := NewController(testTiming(), rng.New(3))
	if err := c.SetSession(testSession(t, 1)); err != nil {
		t.Fatal(err)
	}

	var completions atomic.Int32
	done := make(chan struct{}, 4)
	c.OnComplete(func(Result) {
		completions.Add(1)
		done <- struct{}{}
	})

	if err := c.StartSpin(); err != nil {
		t.Fatal(err)
	}
	// Immediate re-click while SPINNING: silent no-op, not queued.
	if err := c.StartSpin(); err != nil {
		t.Fatal(err)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("spin never completed")
	}

	// Give a queued second spin time to (incorrectly) run.
	time.Sleep(4 * (testTiming().Lead + testTiming().Settle))
	if n := completions.Load(); n != 1 {
		t.Errorf("%d completions for a double click, want 1", n)
	}
}

func TestResetDuringSpin(t *testing.T) {
	c := NewController(testTiming(), rng.New(5))
	if err := c.SetSession(testSession(t, 4)); err != nil {
		t.Fatal(err)
	}

	var completions atomic.Int32
	c.OnComplete(func(Result) { completions.Add(1) })

	before := c.Rotation()
	if err := c.StartSpin(); err != nil {
		t.Fatal(err)
	}
	c.Reset()

	if got := c.State(); got != StateIdle {
		t.Errorf("state after reset = %q, want idle", got)
	}
	if got := c.Rotation(); got != before {
		t.Errorf("reset rewound rotation from %f to %f", before, got)
	}

	// Neither phase may fire after cancellation.
	time.Sleep(4 * (testTiming().Lead + testTiming().Settle))
	if n := completions.Load(); n != 0 {
		t.Errorf("%d completions fired after reset", n)
	}
}

func TestRotationAccumulatesAcrossSpins(t *testing.T) {
	c := NewController(testTiming(), rng.New(9))
	if err := c.SetSession(testSession(t, 3)); err != nil {
		t.Fatal(err)
	}

	done := make(chan Result, 1)
	c.OnComplete(func(r Result) { done <- r })

	last := c.Rotation()
	for i := 0; i < 3; i++ {
		if err := c.StartSpin(); err != nil {
			t.Fatal(err)
		}
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatalf("spin %d never completed", i)
		}
		got := c.Rotation()
		if got <= last {
			t.Fatalf("spin %d: rotation %f did not advance past %f", i, got, last)
		}
		if SegmentAt(got, 6) != 3 {
			t.Fatalf("spin %d landed on segment %d", i, SegmentAt(got, 6))
		}
		last = got

		for c.State() != StateIdle {
			time.Sleep(time.Millisecond)
		}
	}
	if math.Mod(last, 360) == last {
		t.Error("three spins should have accumulated beyond one revolution")
	}
}

func TestSetSessionCancelsInFlightSpin(t *testing.T) {
	c := NewController(testTiming(), rng.New(13))
	if err := c.SetSession(testSession(t, 0)); err != nil {
		t.Fatal(err)
	}

	var completions atomic.Int32
	c.OnComplete(func(Result) { completions.Add(1) })

	if err := c.StartSpin(); err != nil {
		t.Fatal(err)
	}
	if err := c.SetSession(testSession(t, 5)); err != nil {
		t.Fatal(err)
	}

	time.Sleep(4 * (testTiming().Lead + testTiming().Settle))
	if n := completions.Load(); n != 0 {
		t.Errorf("replaced session still delivered %d completions", n)
	}
	if got := c.State(); got != StateIdle {
		t.Errorf("state = %q, want idle", got)
	}
}

func TestSetSessionRejectsBadWinningIndex(t *testing.T) {
	c := NewController(testTiming(), rng.New(1))

	sess := testSession(t, 0)
	sess.WinningIndex = len(sess.Prizes)

	var verr *prize.ValidationError
	if err := c.SetSession(sess); !errors.As(err, &verr) {
		t.Errorf("expected ValidationError, got %v", err)
	}
	if err := c.SetSession(nil); !errors.Is(err, ErrNoSession) {
		t.Errorf("nil session: expected ErrNoSession, got %v", err)
	}
}
