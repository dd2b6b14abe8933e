package impact

import "time"

// Context is an immutable snapshot of a course's grade state.
type Context struct {
	// CurrentGrade is the course percentage so far. Not clamped; extra
	// credit can push it past 100.
	CurrentGrade float64 `json:"current_grade"`
	// TotalPoints is the grade denominator. It already counts the points of
	// the assignment being evaluated.
	TotalPoints float64 `json:"total_points"`
	// EarnedPoints is not checked against TotalPoints.
	EarnedPoints float64 `json:"earned_points"`
	// CompletedWeight is the fraction of the course already graded, in [0, 1].
	// Display only.
	CompletedWeight float64 `json:"completed_weight"`
}

// Assignment is a candidate assignment for impact ranking.
type Assignment struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	PointsPossible float64    `json:"points_possible"`
	DueDate        *time.Time `json:"due_date,omitempty"`
}

// GradeRange is the span of course grades reachable by scoring between zero
// and full points on an assignment.
type GradeRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Letter is a letter grade such as "A".
type Letter string

// Target is the minimum course percentage for a letter grade.
type Target struct {
	Letter  Letter  `json:"letter"`
	Percent float64 `json:"percent"`
}

// DefaultTargets returns the conventional A/B/C cutoffs, highest first.
func DefaultTargets() []Target {
	return []Target{
		{Letter: "A", Percent: 93},
		{Letter: "B", Percent: 83},
		{Letter: "C", Percent: 73},
	}
}

// Result is the derived impact of one assignment on a course grade.
type Result struct {
	AssignmentID   string     `json:"assignment_id,omitempty"`
	Name           string     `json:"name,omitempty"`
	PointsPossible float64    `json:"points_possible"`
	ImpactScore    float64    `json:"impact_score"`
	Priority       Priority   `json:"priority"`
	GradeChange    GradeRange `json:"grade_change"`
	// TargetScores maps each letter to the percentage needed on this
	// assignment to reach it. nil means already achieved or out of reach.
	TargetScores map[Letter]*float64 `json:"target_scores"`
	Explanation  string              `json:"explanation"`
	DueDate      *time.Time          `json:"due_date,omitempty"`
}

// GradeRecord is one graded or ungraded assignment as stored by the caller.
type GradeRecord struct {
	PointsPossible float64
	PointsEarned   *float64 // nil when not yet graded
}
