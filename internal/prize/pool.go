package prize

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// UnmarshalYAML decodes a reward entry, parsing the currency amount through
// decimal so catalog authors can write exact values like "0.10".
func (r *Reward) UnmarshalYAML(value *yaml.Node) error {
	type rawReward struct {
		Currency     string `yaml:"currency"`
		Amount       string `yaml:"amount"`
		FreeSpins    int    `yaml:"free_spins"`
		XP           int    `yaml:"xp"`
		RandomReward string `yaml:"random_reward"`
	}
	var raw rawReward
	if err := value.Decode(&raw); err != nil {
		return err
	}

	r.Currency = raw.Currency
	r.FreeSpins = raw.FreeSpins
	r.XP = raw.XP
	r.RandomReward = raw.RandomReward
	if raw.Amount != "" {
		amount, err := decimal.NewFromString(raw.Amount)
		if err != nil {
			return fmt.Errorf("invalid reward amount %q: %w", raw.Amount, err)
		}
		r.Amount = amount
	}
	return nil
}

//go:embed default_pool.yaml
var defaultPoolYAML []byte

// poolFile is the on-disk catalog shape.
type poolFile struct {
	Prizes []Prize `yaml:"prizes"`
}

// DefaultPool returns the embedded prize catalog.
func DefaultPool() ([]Prize, error) {
	return parsePool(defaultPoolYAML)
}

// LoadPool reads a prize catalog from a YAML file. The catalog holds weight
// templates: probabilities must be positive but need not sum to 1, since
// each session normalizes its own draw.
func LoadPool(path string) ([]Prize, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pool catalog: %w", err)
	}
	return parsePool(data)
}

func parsePool(data []byte) ([]Prize, error) {
	var f poolFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse pool catalog: %w", err)
	}

	if len(f.Prizes) < MinCount {
		return nil, domainErrorf("pool catalog holds %d prizes, need at least %d", len(f.Prizes), MinCount)
	}

	seen := make(map[string]bool, len(f.Prizes))
	for _, p := range f.Prizes {
		if p.ID == "" {
			return nil, domainErrorf("pool catalog entry with empty id")
		}
		if seen[p.ID] {
			return nil, domainErrorf("pool catalog has duplicate id %q", p.ID)
		}
		seen[p.ID] = true
		if p.Probability <= 0 {
			return nil, domainErrorf("pool prize %q has non-positive weight %g", p.ID, p.Probability)
		}
		switch p.Category {
		case CategoryFreeReward, CategoryPurchaseOffer, CategoryNoWin:
		default:
			return nil, domainErrorf("pool prize %q has unknown category %q", p.ID, p.Category)
		}
	}
	return f.Prizes, nil
}
