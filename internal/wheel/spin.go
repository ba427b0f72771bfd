package wheel

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/michael-h-patrianna/prizewheel-go/internal/prize"
	"github.com/michael-h-patrianna/prizewheel-go/internal/rng"
)

// State is the spin state machine's position: IDLE -> SPINNING -> COMPLETE,
// then automatically back to IDLE once the completion callback has fired.
type State string

const (
	StateIdle     State = "idle"
	StateSpinning State = "spinning"
	StateComplete State = "complete"
)

// ErrNoSession is returned when a spin is requested before any prize session
// has been installed, so no winning segment exists to land on.
var ErrNoSession = errors.New("wheel: no active prize session")

const (
	minExtraTurns = 5
	maxExtraTurns = 7
)

// Timing splits the total spin duration into the long primary phase (easing
// toward the overshoot angle) and the short correction phase (settling back
// to the exact target).
type Timing struct {
	Lead   time.Duration `json:"lead"`
	Settle time.Duration `json:"settle"`
}

// DefaultTiming mirrors the animation lengths of the original widget.
func DefaultTiming() Timing {
	return Timing{Lead: 4 * time.Second, Settle: 700 * time.Millisecond}
}

// Plan is one spin's fully computed rotation path. The final resting angle
// is Target exactly; Overshoot only shapes the first animation phase.
type Plan struct {
	Target     float64       `json:"target"`
	Overshoot  float64       `json:"overshoot"`
	ExtraTurns int           `json:"extra_turns"`
	Lead       time.Duration `json:"lead"`
	Settle     time.Duration `json:"settle"`
}

// Result is delivered to the completion callback once per finished spin.
type Result struct {
	SegmentIndex int
	Angle        float64
}

// ComputePlan turns a winning segment into an absolute rotation target.
// The base rotation keeps accumulating across spins (the wheel never jumps
// backward) and gains a random 5-7 extra full turns for visual effect, plus
// a small overshoot corrected during the settle phase. A winning index
// outside [0, segmentCount) is an upstream mapping bug and panics.
func ComputePlan(segmentCount, winningIndex int, current float64, r *rng.Rand, timing Timing) Plan {
	if segmentCount <= 0 {
		panic(fmt.Sprintf("wheel: invalid segment count %d", segmentCount))
	}
	if winningIndex < 0 || winningIndex >= segmentCount {
		panic(fmt.Sprintf("wheel: winning index %d out of range [0, %d)", winningIndex, segmentCount))
	}

	width := 360.0 / float64(segmentCount)

	// Angle within one revolution that parks the winning segment's center
	// under the fixed pointer.
	within := 360.0 - (float64(winningIndex)*width + width/2)

	turns := r.IntBetween(minExtraTurns, maxExtraTurns)
	base := current - math.Mod(current, 360)
	target := base + float64(turns)*360 + within

	overshoot := 3 + r.Float64()*0.35*width

	return Plan{
		Target:     target,
		Overshoot:  overshoot,
		ExtraTurns: turns,
		Lead:       timing.Lead,
		Settle:     timing.Settle,
	}
}

// SegmentAt maps an absolute rotation angle back to the segment resting
// under the pointer. It is the inverse of ComputePlan's target formula and
// is how a final angle is verified against the winning index.
func SegmentAt(angle float64, segmentCount int) int {
	if segmentCount <= 0 {
		panic(fmt.Sprintf("wheel: invalid segment count %d", segmentCount))
	}

	width := 360.0 / float64(segmentCount)
	within := math.Mod(angle, 360)
	if within < 0 {
		within += 360
	}
	pos := math.Mod(360-within, 360)

	index := int(pos / width)
	if index >= segmentCount {
		index = segmentCount - 1
	}
	return index
}

// Controller is the spin state machine. Each wheel instance owns one; it
// guarantees at most one in-flight animation, commits rotation only at spin
// completion, and cancels both timer phases as a unit on Reset.
type Controller struct {
	mu           sync.Mutex
	state        State
	rotation     float64
	segments     []Segment
	winningIndex int
	hasSession   bool
	timing       Timing
	rand         *rng.Rand
	onComplete   func(Result)

	// gen identifies the current spin; stale timer goroutines from a
	// cancelled spin see a newer gen and commit nothing.
	gen    uint64
	cancel chan struct{}
}

// NewController creates an idle controller. A nil generator gets a fresh
// wall-clock seed; tests pass a seeded one for reproducible plans.
func NewController(timing Timing, r *rng.Rand) *Controller {
	if r == nil {
		r = rng.New(rng.GenerateSeed())
	}
	return &Controller{
		state:  StateIdle,
		timing: timing,
		rand:   r,
	}
}

// SetSession installs a new prize session, cancelling any in-flight spin.
// The accumulated rotation carries over so the next spin continues forward.
func (c *Controller) SetSession(sess *prize.Session) error {
	if sess == nil {
		return ErrNoSession
	}
	if err := prize.ValidateWinningIndex(len(sess.Prizes), sess.WinningIndex); err != nil {
		return err
	}

	segments := MapSegments(sess.Prizes)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelInFlight()
	c.segments = segments
	c.winningIndex = sess.WinningIndex
	c.hasSession = true
	c.state = StateIdle
	return nil
}

// State reports the current spin state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Rotation reports the last committed absolute rotation angle in degrees.
func (c *Controller) Rotation() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rotation
}

// Segments returns the current session's wedge mapping.
func (c *Controller) Segments() []Segment {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.segments
}

// OnComplete registers the callback fired exactly once per finished spin.
func (c *Controller) OnComplete(fn func(Result)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onComplete = fn
}

// StartSpin computes a target and launches the two-phase animation. While a
// spin is in flight further calls are silent no-ops: a double click is a
// normal UI race, not an error. Spinning with no session installed is a
// caller error.
func (c *Controller) StartSpin() error {
	c.mu.Lock()
	if c.state == StateSpinning {
		c.mu.Unlock()
		return nil
	}
	if !c.hasSession {
		c.mu.Unlock()
		return ErrNoSession
	}

	plan := ComputePlan(len(c.segments), c.winningIndex, c.rotation, c.rand, c.timing)
	c.state = StateSpinning
	c.gen++
	gen := c.gen
	cancel := make(chan struct{})
	c.cancel = cancel
	count := len(c.segments)
	c.mu.Unlock()

	go c.runSpin(gen, cancel, plan, count)
	return nil
}

// Reset unconditionally cancels any in-flight phases and returns to IDLE.
// Rotation holds at its last committed value; no completion callback fires
// after cancellation.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelInFlight()
	c.state = StateIdle
}

// cancelInFlight must be called with the mutex held. Closing the one cancel
// channel tears down both phases together; bumping gen invalidates any
// commit a stale timer might still attempt.
func (c *Controller) cancelInFlight() {
	if c.cancel != nil {
		close(c.cancel)
		c.cancel = nil
	}
	c.gen++
}

func (c *Controller) runSpin(gen uint64, cancel chan struct{}, plan Plan, segmentCount int) {
	lead := time.NewTimer(plan.Lead)
	defer lead.Stop()
	select {
	case <-cancel:
		return
	case <-lead.C:
	}

	settle := time.NewTimer(plan.Settle)
	defer settle.Stop()
	select {
	case <-cancel:
		return
	case <-settle.C:
	}

	c.mu.Lock()
	if c.gen != gen || c.state != StateSpinning {
		c.mu.Unlock()
		return
	}
	c.rotation = plan.Target
	c.state = StateComplete
	c.cancel = nil
	fn := c.onComplete
	c.mu.Unlock()

	result := Result{
		SegmentIndex: SegmentAt(plan.Target, segmentCount),
		Angle:        plan.Target,
	}
	if fn != nil {
		fn(result)
	}

	// Return-to-ready is automatic once completion has been delivered.
	c.mu.Lock()
	if c.gen == gen && c.state == StateComplete {
		c.state = StateIdle
	}
	c.mu.Unlock()
}
