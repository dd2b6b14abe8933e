package correlation

import (
	"encoding"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/abhisek/gradewise/internal/calcerr"
)

// Level categorises how strongly a correlation departs from zero.
type Level int

const (
	NotSignificant    Level = iota // p >= 0.05
	Significant                    // p < 0.05
	HighlySignificant              // p < 0.01
)

var levelNames = [...]string{
	NotSignificant:    "not significant",
	Significant:       "significant",
	HighlySignificant: "highly significant",
}

var _ encoding.TextMarshaler = Level(0)

// String returns the label of the level, e.g. "highly significant".
func (l Level) String() string {
	if l >= NotSignificant && l <= HighlySignificant {
		return levelNames[l]
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// MarshalText implements encoding.TextMarshaler.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// criticalT is a two-tailed Student's t table: critical values at
// alpha = 0.05 and alpha = 0.01 for the given degrees of freedom.
// The last row stands for infinite degrees of freedom.
var criticalT = []struct {
	df       int
	p05, p01 float64
}{
	{1, 12.706, 63.657},
	{2, 4.303, 9.925},
	{3, 3.182, 5.841},
	{4, 2.776, 4.604},
	{5, 2.571, 4.032},
	{6, 2.447, 3.707},
	{7, 2.365, 3.499},
	{8, 2.306, 3.355},
	{9, 2.262, 3.250},
	{10, 2.228, 3.169},
	{11, 2.201, 3.106},
	{12, 2.179, 3.055},
	{13, 2.160, 3.012},
	{14, 2.145, 2.977},
	{15, 2.131, 2.947},
	{16, 2.120, 2.921},
	{17, 2.110, 2.898},
	{18, 2.101, 2.878},
	{19, 2.093, 2.861},
	{20, 2.086, 2.845},
	{21, 2.080, 2.831},
	{22, 2.074, 2.819},
	{23, 2.069, 2.807},
	{24, 2.064, 2.797},
	{25, 2.060, 2.787},
	{26, 2.056, 2.779},
	{27, 2.052, 2.771},
	{28, 2.048, 2.763},
	{29, 2.045, 2.756},
	{30, 2.042, 2.750},
	{40, 2.021, 2.704},
	{60, 2.000, 2.660},
	{120, 1.980, 2.617},
	{math.MaxInt, 1.960, 2.576},
}

// criticalRow returns the table row for df. Degrees of freedom between rows
// use the nearest smaller row, whose thresholds are stricter.
func criticalRow(df int) (p05, p01 float64) {
	i := sort.Search(len(criticalT), func(i int) bool { return criticalT[i].df > df })
	row := criticalT[i-1]
	return row.p05, row.p01
}

// TStatistic returns r*sqrt((n-2)/(1-r^2)), the test statistic for the null
// hypothesis of zero correlation. |r| == 1 yields an infinite statistic.
func TStatistic(r float64, n int) (float64, error) {
	if err := checkRN("correlation.TStatistic", r, n); err != nil {
		return 0, err
	}
	if math.Abs(r) == 1 {
		return math.Inf(int(r)), nil
	}
	return r * math.Sqrt(float64(n-2)/(1-r*r)), nil
}

// SignificanceLevel classifies r for a sample of n pairs using the fixed
// critical value table.
func SignificanceLevel(r float64, n int) (Level, error) {
	t, err := TStatistic(r, n)
	if err != nil {
		return NotSignificant, err
	}
	p05, p01 := criticalRow(n - 2)
	switch at := math.Abs(t); {
	case at >= p01:
		return HighlySignificant, nil
	case at >= p05:
		return Significant, nil
	default:
		return NotSignificant, nil
	}
}

// PValue returns the two-tailed p-value of r for n pairs from the Student's t
// distribution with n-2 degrees of freedom.
func PValue(r float64, n int) (float64, error) {
	t, err := TStatistic(r, n)
	if err != nil {
		return 0, err
	}
	if math.IsInf(t, 0) {
		return 0, nil
	}
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 2)}
	return math.Min(1, 2*dist.Survival(math.Abs(t))), nil
}

func checkRN(op string, r float64, n int) error {
	if n < MinSampleSize+1 {
		return calcerr.New(op, calcerr.ErrInsufficientData,
			"need at least %d pairs, got %d", MinSampleSize+1, n)
	}
	if math.IsNaN(r) || r < -1 || r > 1 {
		return calcerr.New(op, calcerr.ErrInvalidInput, "r = %v outside [-1, 1]", r)
	}
	return nil
}
