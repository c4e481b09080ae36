package Ledger

// UsageDelta is the amount a closing reading advances a cumulative counter.
// A closing reading below the opening one is an operator entry mistake; the
// clamp keeps lifetime counters from ever decreasing.
func UsageDelta(opening, closing float64) float64 {
	if closing <= opening {
		return 0
	}
	return closing - opening
}

// clampIncrement guards directly supplied item increments the same way.
func clampIncrement(increment float64) float64 {
	if increment < 0 {
		return 0
	}
	return increment
}
