package impact

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"
)

// CalculateAll computes the impact of every assignment against gc using the
// default letter targets. See Calculator.CalculateAll.
func CalculateAll(ctx context.Context, assignments []Assignment, gc Context) ([]Result, error) {
	return defaultCalculator.CalculateAll(ctx, assignments, gc)
}

// CalculateAll computes the impact of every assignment against gc and returns
// the results ranked by SortResults. The first failure aborts the batch.
func (c *Calculator) CalculateAll(ctx context.Context, assignments []Assignment, gc Context) ([]Result, error) {
	results := make([]Result, len(assignments))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for i, a := range assignments {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := c.Calculate(a.PointsPossible, gc)
			if err != nil {
				return fmt.Errorf("assignment %q: %w", a.ID, err)
			}
			r.AssignmentID = a.ID
			r.Name = a.Name
			r.DueDate = a.DueDate
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	SortResults(results)
	return results, nil
}

// SortResults orders results by impact score, highest first. Equal scores
// put the earliest due date first; undated assignments sort after dated ones.
func SortResults(results []Result) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.ImpactScore != b.ImpactScore {
			return a.ImpactScore > b.ImpactScore
		}
		switch {
		case a.DueDate != nil && b.DueDate != nil:
			if !a.DueDate.Equal(*b.DueDate) {
				return a.DueDate.Before(*b.DueDate)
			}
		case a.DueDate != nil:
			return true
		case b.DueDate != nil:
			return false
		}
		return a.AssignmentID < b.AssignmentID
	})
}
