// Package correlation measures linear association between two index-aligned
// numeric series and tests it for significance.
package correlation

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/abhisek/gradewise/internal/calcerr"
)

// ErrLengthMismatch is returned when the two series differ in length.
var ErrLengthMismatch = fmt.Errorf("%w: series length mismatch", calcerr.ErrInvalidInput)

// MinSampleSize is the smallest series length Pearson accepts.
const MinSampleSize = 2

// Pearson returns the Pearson correlation coefficient of a and b, in [-1, 1].
// It uses population moments, so it agrees with stats.StandardDeviation.
// A series with zero variance yields calcerr.ErrDegenerateInput.
//
// Both variances and the covariance come from the same deviation sums, so a
// series correlated with itself is exactly 1.
func Pearson(a, b []float64) (float64, error) {
	if err := checkPair("correlation.Pearson", a, b); err != nil {
		return 0, err
	}

	ma, mb := stat.Mean(a, nil), stat.Mean(b, nil)
	var sxx, syy, sxy float64
	for i := range a {
		dx, dy := a[i]-ma, b[i]-mb
		sxx += dx * dx
		syy += dy * dy
		sxy += dx * dy
	}
	if sxx == 0 || syy == 0 {
		return 0, calcerr.New("correlation.Pearson", calcerr.ErrDegenerateInput,
			"zero variance series")
	}
	return clampUnit(sxy / math.Sqrt(sxx*syy)), nil
}

// Spearman returns the Spearman rank correlation of a and b. Tied values
// share the average of their ranks.
func Spearman(a, b []float64) (float64, error) {
	if err := checkPair("correlation.Spearman", a, b); err != nil {
		return 0, err
	}
	r, err := Pearson(ranks(a), ranks(b))
	if err != nil {
		return 0, calcerr.New("correlation.Spearman", calcerr.ErrDegenerateInput,
			"all values tied")
	}
	return r, nil
}

func checkPair(op string, a, b []float64) error {
	if len(a) != len(b) {
		return calcerr.New(op, ErrLengthMismatch, "%d vs %d", len(a), len(b))
	}
	if len(a) < MinSampleSize {
		return calcerr.New(op, calcerr.ErrInsufficientData,
			"need at least %d points, got %d", MinSampleSize, len(a))
	}
	return nil
}

func clampUnit(r float64) float64 {
	return math.Max(-1, math.Min(1, r))
}
