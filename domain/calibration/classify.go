package calibration

// ClassifySize evaluates an empirical false-positive rate against the loose
// and strict bands. Boundaries are inclusive on both ends.
func ClassifySize(size float64) (calibrated, excellent bool) {
	calibrated = size >= SizeLowerBound && size <= SizeUpperBound
	excellent = size >= SizeExcellentLower && size <= SizeExcellentUpper
	return calibrated, excellent
}

// ClassifyPower evaluates a detection rate against the power floor, inclusive
func ClassifyPower(power float64) bool {
	return power >= PowerFloor
}

// SelectBest returns the passing result with the largest power-minus-size
// margin, or false when no result passes both criteria.
func SelectBest(results []Result) (Result, bool) {
	var best Result
	found := false
	for _, r := range results {
		if !r.Passed() {
			continue
		}
		if !found || r.Margin() > best.Margin() {
			best = r
			found = true
		}
	}
	return best, found
}

// Oversized returns the results whose empirical size fell outside the
// calibration band. Used as the diagnostic group when nothing passes.
func Oversized(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if !r.SizeCalibrated {
			out = append(out, r)
		}
	}
	return out
}
