// wheel-spin draws a session from the embedded prize catalog and prints
// the resulting spin plan, for eyeballing determinism while debugging.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/michael-h-patrianna/prizewheel-go/internal/prize"
	"github.com/michael-h-patrianna/prizewheel-go/internal/rng"
	"github.com/michael-h-patrianna/prizewheel-go/internal/wheel"
)

func main() {
	count := flag.Int("count", 6, "number of wheel segments")
	seed := flag.Int64("seed", 0, "session seed (0 = fresh seed)")
	rotation := flag.Float64("rotation", 0, "current wheel rotation in degrees")
	flag.Parse()

	pool, err := prize.DefaultPool()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load pool: %v\n", err)
		os.Exit(1)
	}

	opts := prize.Options{Count: *count}
	if *seed != 0 {
		opts.Seed = seed
	}

	provider := prize.NewProvider(pool, "debug")
	session, err := provider.Load(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load session: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("seed: %d\n", session.Seed)
	fmt.Printf("winning index: %d\n", session.WinningIndex)
	fmt.Println()

	segments := wheel.MapSegments(session.Prizes)
	for _, seg := range segments {
		marker := "   "
		if seg.Index == session.WinningIndex {
			marker = ">> "
		}
		fmt.Printf("%s[%d] %-10s p=%.4f  %s\n", marker, seg.Index, seg.Kind, seg.Prize.Probability, seg.Prize.Title)
	}
	fmt.Println()

	plan := wheel.ComputePlan(len(segments), session.WinningIndex, *rotation, rng.New(session.Seed), wheel.DefaultTiming())
	fmt.Printf("target rotation: %.4f deg\n", plan.Target)
	fmt.Printf("extra turns: %d\n", plan.ExtraTurns)
	fmt.Printf("overshoot: %.4f deg\n", plan.Overshoot)
	fmt.Printf("lead/settle: %s / %s\n", plan.Lead, plan.Settle)

	landing := wheel.SegmentAt(plan.Target, len(segments))
	fmt.Printf("pointer lands on: %d", landing)
	if landing == session.WinningIndex {
		fmt.Println(" (matches winning index)")
	} else {
		fmt.Println(" (MISMATCH)")
	}
}
