// Package risk maps a continuous disease probability to a discrete tier.
//
// Classify is the single source of truth for risk labeling: every display
// and sort path derives the tier from the probability at the point of use,
// so a threshold change can never leave stale classifications behind.
package risk

// Classification thresholds. Comparisons are strictly greater-than, so the
// boundary values classify downward (0.7 -> Medium, 0.4 -> Low).
const (
	highThreshold   = 0.7
	mediumThreshold = 0.4
)

// Tier is an ordered risk classification. The ordering (Low < Medium < High)
// is meaningful and usable for severity sorting.
type Tier int

const (
	Low Tier = iota
	Medium
	High
)

// String returns the display label for the tier.
func (t Tier) String() string {
	switch t {
	case High:
		return "High"
	case Medium:
		return "Medium"
	default:
		return "Low"
	}
}

// Classify derives the tier for a probability. It is pure and total: values
// outside [0,1] are accepted and mapped through the same thresholds.
func Classify(prob float64) Tier {
	switch {
	case prob > highThreshold:
		return High
	case prob > mediumThreshold:
		return Medium
	default:
		return Low
	}
}
