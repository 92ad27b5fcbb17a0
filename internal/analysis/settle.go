package analysis

// SettleTime returns how many samples after from it takes for series to
// reach threshold and stay there. ok is false if it never does.
func SettleTime(series []float64, from int, threshold float64) (int, bool) {
	if from < 0 || from >= len(series) {
		return 0, false
	}
	settled := -1
	for i := from; i < len(series); i++ {
		if series[i] >= threshold {
			if settled < 0 {
				settled = i
			}
		} else {
			settled = -1
		}
	}
	if settled < 0 {
		return 0, false
	}
	return settled - from, true
}
