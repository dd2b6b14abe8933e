package impact

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(day int) *time.Time {
	d := time.Date(2025, 3, day, 23, 59, 0, 0, time.UTC)
	return &d
}

func ids(results []Result) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.AssignmentID
	}
	return out
}

func TestCalculateAll_SortsByImpactThenDueDate(t *testing.T) {
	assignments := []Assignment{
		{ID: "quiz", PointsPossible: 10, DueDate: date(5)},
		{ID: "final", PointsPossible: 300, DueDate: date(30)},
		{ID: "essay-late", PointsPossible: 100, DueDate: date(20)},
		{ID: "essay-early", PointsPossible: 100, DueDate: date(10)},
		{ID: "essay-undated", PointsPossible: 100},
	}

	results, err := CalculateAll(context.Background(), assignments, sampleContext())
	require.NoError(t, err)

	assert.Equal(t,
		[]string{"final", "essay-early", "essay-late", "essay-undated", "quiz"},
		ids(results))
	assert.Equal(t, date(10), results[1].DueDate)
}

func TestCalculateAll_AllUndated(t *testing.T) {
	assignments := []Assignment{
		{ID: "b", PointsPossible: 20},
		{ID: "a", PointsPossible: 20},
		{ID: "c", PointsPossible: 40},
	}
	results, err := CalculateAll(context.Background(), assignments, sampleContext())
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "b"}, ids(results))
}

func TestCalculateAll_Empty(t *testing.T) {
	results, err := CalculateAll(context.Background(), nil, sampleContext())
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestCalculateAll_InvalidAssignmentAbortsBatch(t *testing.T) {
	assignments := []Assignment{
		{ID: "ok", PointsPossible: 10},
		{ID: "bad", PointsPossible: -10},
	}
	_, err := CalculateAll(context.Background(), assignments, sampleContext())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidAssignment)
	assert.Contains(t, err.Error(), `"bad"`)
}

func TestCalculateAll_LargeBatchMatchesSequential(t *testing.T) {
	c, err := NewCalculator(Config{Workers: 4})
	require.NoError(t, err)

	gc := Context{CurrentGrade: 78, TotalPoints: 5000, EarnedPoints: 3000}
	var assignments []Assignment
	for i := 0; i < 200; i++ {
		assignments = append(assignments, Assignment{
			ID:             fmt.Sprintf("a%03d", i),
			PointsPossible: float64(i%37 + 1),
		})
	}

	results, err := c.CalculateAll(context.Background(), assignments, gc)
	require.NoError(t, err)
	require.Len(t, results, len(assignments))

	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].ImpactScore, results[i].ImpactScore)
	}
	for _, r := range results {
		want, err := c.Calculate(r.PointsPossible, gc)
		require.NoError(t, err)
		assert.Equal(t, want.ImpactScore, r.ImpactScore)
		assert.Equal(t, want.GradeChange, r.GradeChange)
	}
}

func TestCalculateAll_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := CalculateAll(ctx, []Assignment{{ID: "a", PointsPossible: 1}}, sampleContext())
	assert.ErrorIs(t, err, context.Canceled)
}
