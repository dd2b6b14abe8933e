package correlation

// Result bundles a correlation and its significance test.
type Result struct {
	N          int     `json:"n"`
	R          float64 `json:"r"`
	T          float64 `json:"t"`
	PValue     float64 `json:"p_value"`
	Level      Level   `json:"level"`
	Spearman   float64 `json:"spearman"`
	HasTesting bool    `json:"has_testing"` // false when n is too small for a t-test
}

// Analyze correlates a and b and, when there are enough pairs, tests the
// result for significance.
func Analyze(a, b []float64) (Result, error) {
	r, err := Pearson(a, b)
	if err != nil {
		return Result{}, err
	}
	rho, err := Spearman(a, b)
	if err != nil {
		return Result{}, err
	}

	res := Result{N: len(a), R: r, Spearman: rho}
	if res.N < MinSampleSize+1 {
		return res, nil
	}

	if res.T, err = TStatistic(r, res.N); err != nil {
		return Result{}, err
	}
	if res.PValue, err = PValue(r, res.N); err != nil {
		return Result{}, err
	}
	if res.Level, err = SignificanceLevel(r, res.N); err != nil {
		return Result{}, err
	}
	res.HasTesting = true
	return res, nil
}
