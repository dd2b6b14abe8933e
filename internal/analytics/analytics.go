// Package analytics relates student grades to sentiment scores for the admin
// analytics view.
package analytics

import (
	"fmt"

	"github.com/abhisek/gradewise/internal/correlation"
	"github.com/abhisek/gradewise/internal/stats"
)

// Observation pairs a student's grade with a sentiment score.
type Observation struct {
	StudentID string
	Grade     float64 // percentage
	Sentiment float64 // typically in [-1, 1]
}

// Report describes the grade/sentiment relationship of a cohort.
type Report struct {
	Grades      stats.Summary      `json:"grades"`
	Sentiment   stats.Summary      `json:"sentiment"`
	Correlation correlation.Result `json:"correlation"`
}

// Analyze summarises both series and correlates them. Errors from the
// statistics engines are returned unchanged.
func Analyze(observations []Observation) (Report, error) {
	grades, sentiment := Split(observations)

	var (
		rep Report
		err error
	)
	if rep.Grades, err = stats.Describe(grades); err != nil {
		return Report{}, fmt.Errorf("describe grades: %w", err)
	}
	if rep.Sentiment, err = stats.Describe(sentiment); err != nil {
		return Report{}, fmt.Errorf("describe sentiment: %w", err)
	}
	if rep.Correlation, err = correlation.Analyze(grades, sentiment); err != nil {
		return Report{}, fmt.Errorf("correlate grades and sentiment: %w", err)
	}
	return rep, nil
}
