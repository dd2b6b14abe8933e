package spacedrep

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/abhisek/gradewise/internal/calcerr"
)

// Quality is a self-assessed recall grade from 0 (blackout) to 5 (perfect).
type Quality int

const (
	QualityBlackout  Quality = iota // No recall at all.
	QualityWrong                    // Wrong, but the answer felt familiar.
	QualityWrongEasy                // Wrong, but the answer seemed easy once shown.
	QualityHard                     // Correct with serious difficulty.
	QualityGood                     // Correct after some hesitation.
	QualityPerfect                  // Correct and effortless.
)

const (
	MinQuality = QualityBlackout
	MaxQuality = QualityPerfect
)

var qualityNames = [...]string{
	QualityBlackout:  "blackout",
	QualityWrong:     "wrong",
	QualityWrongEasy: "wrong-easy",
	QualityHard:      "hard",
	QualityGood:      "good",
	QualityPerfect:   "perfect",
}

// IsValid reports whether q is within 0..5.
func (q Quality) IsValid() bool {
	return q >= MinQuality && q <= MaxQuality
}

func (q Quality) String() string {
	if q.IsValid() {
		return qualityNames[q]
	}
	return fmt.Sprintf("Quality(%d)", int(q))
}

// confidenceQuality maps the confidence (1-5) of a correct answer to a quality.
var confidenceQuality = map[int]Quality{
	1: QualityHard,
	2: QualityHard,
	3: QualityGood,
	4: QualityPerfect,
	5: QualityPerfect,
}

// QualityFromAnswer converts a quiz answer into a review quality. An incorrect
// answer is always a blackout, whatever confidence was stated.
func QualityFromAnswer(correct bool, confidence int) (Quality, error) {
	if !correct {
		return QualityBlackout, nil
	}
	q, ok := confidenceQuality[confidence]
	if !ok {
		return 0, calcerr.New("spacedrep.QualityFromAnswer", calcerr.ErrInvalidInput,
			"confidence %d outside 1..5", confidence)
	}
	return q, nil
}

// ParseQuality accepts either the numeric grade ("0".."5") or its name
// ("blackout" .. "perfect").
func ParseQuality(s string) (Quality, error) {
	if n, err := strconv.Atoi(s); err == nil {
		if q := Quality(n); q.IsValid() {
			return q, nil
		}
		return 0, calcerr.New("spacedrep.ParseQuality", ErrInvalidQuality, "quality %d outside 0..5", n)
	}
	for q, name := range qualityNames {
		if strings.EqualFold(s, name) {
			return Quality(q), nil
		}
	}
	return 0, calcerr.New("spacedrep.ParseQuality", ErrInvalidQuality, "unknown quality %q", s)
}
