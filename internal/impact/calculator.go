// Package impact estimates how much a single assignment can move a course
// grade and ranks assignments by that weight.
//
// The calculator does not check that EarnedPoints <= TotalPoints; callers
// aggregating grade records are responsible for consistent contexts.
package impact

import (
	"fmt"
	"math"
	"runtime"
	"sort"

	"github.com/abhisek/gradewise/internal/calcerr"
)

// ErrInvalidAssignment is returned for negative or non-finite point values.
var ErrInvalidAssignment = fmt.Errorf("%w: invalid assignment", calcerr.ErrInvalidInput)

// Config controls a Calculator.
type Config struct {
	// Targets are the letter-grade cutoffs reported in Result.TargetScores.
	Targets []Target

	// Workers bounds the concurrency of CalculateAll. Zero means GOMAXPROCS.
	Workers int
}

// DefaultConfig returns a Config with the A/B/C cutoffs.
func DefaultConfig() Config {
	return Config{Targets: DefaultTargets()}
}

// Calculator computes assignment impacts against a fixed set of letter targets.
// It is safe for concurrent use.
type Calculator struct {
	targets []Target
	workers int
}

// NewCalculator validates cfg and returns a Calculator.
func NewCalculator(cfg Config) (*Calculator, error) {
	targets := append([]Target(nil), cfg.Targets...)
	if len(targets) == 0 {
		targets = DefaultTargets()
	}
	seen := make(map[Letter]bool, len(targets))
	for _, t := range targets {
		if t.Letter == "" {
			return nil, fmt.Errorf("impact: target with empty letter")
		}
		if seen[t.Letter] {
			return nil, fmt.Errorf("impact: duplicate target %q", t.Letter)
		}
		if math.IsNaN(t.Percent) || t.Percent <= 0 {
			return nil, fmt.Errorf("impact: target %q has invalid percent %v", t.Letter, t.Percent)
		}
		seen[t.Letter] = true
	}
	sort.SliceStable(targets, func(i, j int) bool { return targets[i].Percent > targets[j].Percent })

	workers := cfg.Workers
	if workers < 0 {
		return nil, fmt.Errorf("impact: workers %d must not be negative", workers)
	}
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Calculator{targets: targets, workers: workers}, nil
}

var defaultCalculator = &Calculator{targets: DefaultTargets(), workers: runtime.GOMAXPROCS(0)}

// Calculate computes the impact of an assignment worth pointsPossible using
// the default letter targets.
func Calculate(pointsPossible float64, ctx Context) (Result, error) {
	return defaultCalculator.Calculate(pointsPossible, ctx)
}

// Targets returns the calculator's letter cutoffs, highest first.
func (c *Calculator) Targets() []Target {
	return append([]Target(nil), c.targets...)
}

// Calculate computes the impact of an assignment worth pointsPossible.
func (c *Calculator) Calculate(pointsPossible float64, ctx Context) (Result, error) {
	if math.IsNaN(pointsPossible) || math.IsInf(pointsPossible, 0) || pointsPossible < 0 {
		return Result{}, calcerr.New("impact.Calculate", ErrInvalidAssignment,
			"points possible = %v", pointsPossible)
	}
	if math.IsNaN(ctx.TotalPoints) || ctx.TotalPoints < 0 {
		return Result{}, calcerr.New("impact.Calculate", calcerr.ErrInvalidInput,
			"total points = %v", ctx.TotalPoints)
	}

	res := Result{
		PointsPossible: pointsPossible,
		TargetScores:   make(map[Letter]*float64, len(c.targets)),
	}

	if ctx.TotalPoints == 0 || pointsPossible == 0 {
		res.GradeChange = GradeRange{Min: ctx.CurrentGrade, Max: ctx.CurrentGrade}
	} else {
		res.GradeChange = GradeRange{
			Min: ctx.EarnedPoints / ctx.TotalPoints * 100,
			Max: (ctx.EarnedPoints + pointsPossible) / ctx.TotalPoints * 100,
		}
		res.ImpactScore = clamp(pointsPossible/ctx.TotalPoints, 0, 1)
	}
	res.Priority = PriorityFor(res.ImpactScore)

	for _, t := range c.targets {
		res.TargetScores[t.Letter] = requiredScore(t.Percent, pointsPossible, ctx)
	}

	res.Explanation = fmt.Sprintf(
		"%s priority: worth %.1f%% of the course grade. Scoring between 0 and full marks puts the course between %.1f%% and %.1f%%.",
		res.Priority.DisplayName(), res.ImpactScore*100, res.GradeChange.Min, res.GradeChange.Max)

	return res, nil
}

// requiredScore returns the percentage of pointsPossible needed to lift the
// course to target, or nil when the target is already met or out of reach.
func requiredScore(target, pointsPossible float64, ctx Context) *float64 {
	if ctx.CurrentGrade >= target {
		return nil
	}
	if pointsPossible == 0 || ctx.TotalPoints == 0 {
		return nil
	}
	required := (target/100*ctx.TotalPoints - ctx.EarnedPoints) / pointsPossible * 100
	if required > 100 {
		return nil
	}
	required = clamp(required, 0, 100)
	return &required
}

// Letter returns the highest letter whose cutoff grade meets, or "F".
func (c *Calculator) Letter(grade float64) Letter {
	for _, t := range c.targets {
		if grade >= t.Percent {
			return t.Letter
		}
	}
	return "F"
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
