package impact

// Priority tiers an assignment by its share of the course grade.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Impact score thresholds. A score above HighThreshold is high priority, a
// score above MediumThreshold is medium, anything else is low.
const (
	HighThreshold   = 0.05
	MediumThreshold = 0.02
)

// PriorityFor returns the tier for an impact score.
func PriorityFor(score float64) Priority {
	switch {
	case score > HighThreshold:
		return PriorityHigh
	case score > MediumThreshold:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// DisplayName returns a capitalised label for the priority.
func (p Priority) DisplayName() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	default:
		return string(p)
	}
}
