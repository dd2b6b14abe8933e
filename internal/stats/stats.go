// Package stats implements descriptive statistics over numeric samples.
//
// All functions use the population form (divide by n). An empty sample is an
// error (calcerr.ErrInsufficientData); a single-element sample has a standard
// deviation of exactly 0.
package stats

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"

	"github.com/abhisek/gradewise/internal/calcerr"
)

// Summary bundles the descriptive statistics of a sample.
type Summary struct {
	Count    int     `json:"count"`
	Mean     float64 `json:"mean"`
	Median   float64 `json:"median"`
	StdDev   float64 `json:"std_dev"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Range    float64 `json:"range"`
	Q1       float64 `json:"q1"`
	Q3       float64 `json:"q3"`
	IQR      float64 `json:"iqr"`
	Skewness float64 `json:"skewness"`
	Kurtosis float64 `json:"kurtosis"` // excess kurtosis; 0 for a normal distribution
}

// Mean returns the arithmetic mean of sample.
func Mean(sample []float64) (float64, error) {
	if len(sample) == 0 {
		return 0, emptySample("stats.Mean")
	}
	return stat.Mean(sample, nil), nil
}

// Median returns the middle value of sample, or the average of the two
// middle values when the count is even. sample is not reordered.
func Median(sample []float64) (float64, error) {
	if len(sample) == 0 {
		return 0, emptySample("stats.Median")
	}
	return median(sorted(sample)), nil
}

// Variance returns the population variance of sample.
func Variance(sample []float64) (float64, error) {
	switch len(sample) {
	case 0:
		return 0, emptySample("stats.Variance")
	case 1:
		return 0, nil
	}
	_, v := stat.PopMeanVariance(sample, nil)
	return v, nil
}

// StandardDeviation returns the population standard deviation of sample.
func StandardDeviation(sample []float64) (float64, error) {
	switch len(sample) {
	case 0:
		return 0, emptySample("stats.StandardDeviation")
	case 1:
		return 0, nil
	}
	_, sd := stat.PopMeanStdDev(sample, nil)
	return sd, nil
}

// Describe computes the full Summary of sample.
func Describe(sample []float64) (Summary, error) {
	if len(sample) == 0 {
		return Summary{}, emptySample("stats.Describe")
	}

	s := sorted(sample)
	mean, sd := stat.PopMeanStdDev(s, nil)
	if len(s) == 1 {
		sd = 0
	}

	sum := Summary{
		Count:  len(s),
		Mean:   mean,
		Median: median(s),
		StdDev: sd,
		Min:    s[0],
		Max:    s[len(s)-1],
		Q1:     stat.Quantile(0.25, stat.Empirical, s, nil),
		Q3:     stat.Quantile(0.75, stat.Empirical, s, nil),
	}
	sum.Range = sum.Max - sum.Min
	sum.IQR = sum.Q3 - sum.Q1

	if sd > 0 {
		sum.Skewness = stat.MomentAbout(3, s, mean, nil) / math.Pow(sd, 3)
		sum.Kurtosis = stat.MomentAbout(4, s, mean, nil)/math.Pow(sd, 4) - 3
	}
	return sum, nil
}

func sorted(sample []float64) []float64 {
	s := slices.Clone(sample)
	slices.Sort(s)
	return s
}

// median expects s sorted ascending and non-empty.
func median(s []float64) float64 {
	mid := len(s) / 2
	if len(s)%2 == 0 {
		return (s[mid-1] + s[mid]) / 2
	}
	return s[mid]
}

func emptySample(op string) error {
	return calcerr.New(op, calcerr.ErrInsufficientData, "empty sample")
}
