package analytics

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/abhisek/gradewise/internal/calcerr"
)

var header = []string{"student_id", "grade", "sentiment"}

// ReadObservations parses CSV with a student_id,grade,sentiment header.
func ReadObservations(r io.Reader) ([]Observation, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(header)
	cr.TrimLeadingSpace = true

	head, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, calcerr.New("analytics.ReadObservations", calcerr.ErrInsufficientData, "empty input")
	}
	if err != nil {
		return nil, parseError(err)
	}
	for i, col := range header {
		if !strings.EqualFold(strings.TrimSpace(head[i]), col) {
			return nil, calcerr.New("analytics.ReadObservations", calcerr.ErrInvalidInput,
				"header column %d is %q, want %q", i+1, head[i], col)
		}
	}

	var out []Observation
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, parseError(err)
		}
		line, _ := cr.FieldPos(0)

		grade, err := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
		if err != nil {
			return nil, calcerr.New("analytics.ReadObservations", calcerr.ErrInvalidInput,
				"line %d: grade %q is not a number", line, rec[1])
		}
		sentiment, err := strconv.ParseFloat(strings.TrimSpace(rec[2]), 64)
		if err != nil {
			return nil, calcerr.New("analytics.ReadObservations", calcerr.ErrInvalidInput,
				"line %d: sentiment %q is not a number", line, rec[2])
		}
		out = append(out, Observation{StudentID: rec[0], Grade: grade, Sentiment: sentiment})
	}
	return out, nil
}

func parseError(err error) error {
	return &calcerr.Error{Op: "analytics.ReadObservations", Kind: calcerr.ErrInvalidInput, Detail: err.Error()}
}

// Split returns the grade and sentiment series of observations.
func Split(observations []Observation) (grades, sentiment []float64) {
	grades = make([]float64, len(observations))
	sentiment = make([]float64, len(observations))
	for i, o := range observations {
		grades[i] = o.Grade
		sentiment[i] = o.Sentiment
	}
	return grades, sentiment
}
