package prize

import "github.com/michael-h-patrianna/prizewheel-go/internal/rng"

// Options parameterizes one session build. A nil Seed means "fresh round":
// an effective seed is derived from the wall clock. A set Seed makes the
// whole round reproducible.
type Options struct {
	Count int
	Seed  *int64
}

// Provider is the only entry point for obtaining a new session. It owns the
// static prize pool; each Load draws from it without mutating it.
type Provider struct {
	pool   []Prize
	source string
}

// NewProvider creates a provider over the given pool. The source tag is
// recorded on every session it builds.
func NewProvider(pool []Prize, source string) *Provider {
	return &Provider{pool: pool, source: source}
}

// PoolSize reports how many templates the provider can draw from.
func (p *Provider) PoolSize() int {
	return len(p.pool)
}

// Load builds one immutable session: resolve the effective seed, shuffle the
// pool with a seeded Fisher-Yates pass, take the first Count entries,
// normalize, validate, then run the weighted selector against the same seed.
// One integer reproduces both which prizes appear and which one wins.
// Validation failure aborts the build; a partial session is never returned.
func (p *Provider) Load(opts Options) (*Session, error) {
	seed := rng.GenerateSeed()
	if opts.Seed != nil {
		seed = *opts.Seed
	}

	if opts.Count < MinCount || opts.Count > MaxCount {
		return nil, validationErrorf("requested count %d outside [%d, %d]", opts.Count, MinCount, MaxCount)
	}
	if opts.Count > len(p.pool) {
		return nil, validationErrorf("requested count %d exceeds pool size %d", opts.Count, len(p.pool))
	}

	shuffled := shuffle(p.pool, seed)
	drawn := shuffled[:opts.Count]

	normalized, err := NormalizeProbabilities(drawn)
	if err != nil {
		return nil, err
	}
	if err := ValidateSet(normalized); err != nil {
		return nil, err
	}

	sel, err := Select(normalized, seed)
	if err != nil {
		return nil, err
	}

	return &Session{
		Prizes:       normalized,
		WinningIndex: sel.Index,
		Seed:         seed,
		Source:       p.source,
	}, nil
}

// shuffle returns a seeded Fisher-Yates permutation of the pool. The pool
// itself is left untouched.
func shuffle(pool []Prize, seed int64) []Prize {
	r := rng.New(seed)
	out := make([]Prize, len(pool))
	copy(out, pool)
	for i := len(out) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
