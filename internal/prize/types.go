package prize

import "github.com/shopspring/decimal"

// Category classifies what a prize pays out.
type Category string

const (
	CategoryFreeReward    Category = "free-reward"
	CategoryPurchaseOffer Category = "purchase-offer"
	CategoryNoWin         Category = "no-win"
)

// Reward is the optional structured payload attached to a prize.
type Reward struct {
	Currency     string          `json:"currency,omitempty" yaml:"currency,omitempty"`
	Amount       decimal.Decimal `json:"amount,omitempty" yaml:"amount,omitempty"`
	FreeSpins    int             `json:"free_spins,omitempty" yaml:"free_spins,omitempty"`
	XP           int             `json:"xp,omitempty" yaml:"xp,omitempty"`
	RandomReward string          `json:"random_reward,omitempty" yaml:"random_reward,omitempty"`
}

// Prize is one wedge's payout template. Values are treated as immutable once
// a prize has been placed into a session.
type Prize struct {
	ID           string   `json:"id" yaml:"id"`
	Category     Category `json:"category" yaml:"category"`
	Probability  float64  `json:"probability" yaml:"probability"`
	DisplayColor string   `json:"display_color" yaml:"display_color"`
	Title        string   `json:"title" yaml:"title"`
	Jackpot      bool     `json:"jackpot,omitempty" yaml:"jackpot,omitempty"`
	Reward       *Reward  `json:"reward,omitempty" yaml:"reward,omitempty"`
}

// Session is the immutable result of one prize-generation event. It is
// replaced wholesale when the user requests a new round, never patched.
type Session struct {
	ID           string  `json:"id,omitempty"`
	Prizes       []Prize `json:"prizes"`
	WinningIndex int     `json:"winning_index"`
	Seed         int64   `json:"seed"`
	Source       string  `json:"source"`
}

// WinningPrize returns the prize the wheel must land on.
func (s *Session) WinningPrize() Prize {
	return s.Prizes[s.WinningIndex]
}
