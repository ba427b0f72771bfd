package wheel

import "github.com/michael-h-patrianna/prizewheel-go/internal/prize"

// Kind is the visual classification of one wedge, consumed by the rendering
// layer to pick colors and content.
type Kind string

const (
	KindJackpot Kind = "jackpot"
	KindNoWin   Kind = "nowin"
	KindFillA   Kind = "fill-a"
	KindFillB   Kind = "fill-b"
)

// Segment is the derived mapping of one wheel wedge to its session prize.
// Recomputed whenever the session changes; never persisted.
type Segment struct {
	Index int         `json:"index"`
	Kind  Kind        `json:"kind"`
	Prize prize.Prize `json:"prize"`
}

// MapSegments assigns each prize to a wheel position in array order and
// classifies its kind. The rule is fixed so two calls over the same prize
// sequence always agree: jackpot-flagged prizes and the wedge at position 0
// read as jackpot, no-win prizes read as blank regardless of position, and
// the rest alternate two fill kinds by index parity.
func MapSegments(prizes []prize.Prize) []Segment {
	segments := make([]Segment, len(prizes))
	for i, p := range prizes {
		segments[i] = Segment{
			Index: i,
			Kind:  classify(i, p),
			Prize: p,
		}
	}
	return segments
}

func classify(index int, p prize.Prize) Kind {
	switch {
	case p.Jackpot:
		return KindJackpot
	case p.Category == prize.CategoryNoWin:
		return KindNoWin
	case index == 0:
		return KindJackpot
	case index%2 == 0:
		return KindFillA
	default:
		return KindFillB
	}
}
