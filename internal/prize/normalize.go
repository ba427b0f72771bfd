package prize

// NormalizeProbabilities rescales every probability by 1/sum so the result
// sums to 1.0 within floating-point tolerance. Order and count are preserved;
// the input slice is not mutated. A zero or negative weight is never valid:
// it would make that prize unreachable or ill-defined under sampling.
func NormalizeProbabilities(prizes []Prize) ([]Prize, error) {
	if len(prizes) == 0 {
		return nil, domainErrorf("cannot normalize an empty prize list")
	}

	var total float64
	for _, p := range prizes {
		if p.Probability <= 0 {
			return nil, domainErrorf("prize %q has non-positive probability %g", p.ID, p.Probability)
		}
		total += p.Probability
	}

	out := make([]Prize, len(prizes))
	for i, p := range prizes {
		out[i] = p
		out[i].Probability = p.Probability / total
	}
	return out, nil
}
