package impact

// BuildContext aggregates a course's grade records into a Context.
// TotalPoints counts every record, graded or not, so ungraded assignments
// are already part of the denominator when their impact is computed.
func BuildContext(records []GradeRecord) Context {
	var total, graded, earned float64
	for _, r := range records {
		total += r.PointsPossible
		if r.PointsEarned != nil {
			graded += r.PointsPossible
			earned += *r.PointsEarned
		}
	}

	ctx := Context{TotalPoints: total, EarnedPoints: earned}
	if graded > 0 {
		ctx.CurrentGrade = earned / graded * 100
	}
	if total > 0 {
		ctx.CompletedWeight = graded / total
	}
	return ctx
}
