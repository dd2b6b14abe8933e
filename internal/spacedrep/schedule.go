package spacedrep

import (
	"fmt"
	"math"
	"time"

	"github.com/abhisek/gradewise/internal/calcerr"
)

// SM-2 constants.
const (
	// DefaultEaseFactor is the ease factor of a card that has never been reviewed.
	DefaultEaseFactor = 2.5

	// MinEaseFactor is the floor the ease factor can never drop below.
	MinEaseFactor = 1.3

	// PassingQuality is the lowest quality that counts as a successful recall.
	PassingQuality Quality = 3

	// FirstInterval and SecondInterval are the fixed intervals, in days, after
	// the first and second successful reviews.
	FirstInterval  = 1
	SecondInterval = 6

	// MaxInterval caps the interval, in days (about 2,700 years). Growth
	// saturates here instead of overflowing int or the review date.
	MaxInterval = 1_000_000
)

// ErrInvalidQuality is returned for a quality outside 0..5.
var ErrInvalidQuality = fmt.Errorf("%w: invalid quality", calcerr.ErrInvalidInput)

// ReviewLog records a single review for persistence.
type ReviewLog struct {
	CardID     string    `json:"card_id"`
	Quality    Quality   `json:"quality"`
	ReviewedAt time.Time `json:"reviewed_at"`
	Interval   int       `json:"interval"`
	EaseFactor float64   `json:"ease_factor"`
}

// Review applies an SM-2 review of the given quality at now and returns the
// new state. state itself is not modified.
//
// A failed recall (quality < 3) resets the interval to one day but still
// adjusts the ease factor. The new ease factor is used to grow the interval,
// which saturates at MaxInterval.
func Review(state ReviewState, q Quality, now time.Time) (ReviewState, ReviewLog, error) {
	if !q.IsValid() {
		return state, ReviewLog{}, calcerr.New("spacedrep.Review", ErrInvalidQuality,
			"quality %d outside %d..%d", int(q), int(MinQuality), int(MaxQuality))
	}

	next := state.clone()
	next.EaseFactor = nextEaseFactor(state.EaseFactor, q)

	switch {
	case q < PassingQuality:
		next.Interval = FirstInterval
	case state.ReviewCount == 0:
		next.Interval = FirstInterval
	case state.ReviewCount == 1:
		next.Interval = SecondInterval
	default:
		next.Interval = growInterval(state.Interval, next.EaseFactor)
	}

	due := startOfDay(now).AddDate(0, 0, next.Interval)
	reviewed := now
	next.NextReview = &due
	next.LastReviewed = &reviewed
	next.ReviewCount = state.ReviewCount + 1

	log := ReviewLog{
		CardID:     state.CardID,
		Quality:    q,
		ReviewedAt: now,
		Interval:   next.Interval,
		EaseFactor: next.EaseFactor,
	}
	return next, log, nil
}

// nextEaseFactor applies EF' = EF + (0.1 - (5-q)(0.08 + (5-q)0.02)), floored
// at MinEaseFactor.
func growInterval(interval int, ef float64) int {
	grown := math.Round(float64(interval) * ef)
	switch {
	case grown >= MaxInterval:
		return MaxInterval
	case grown < FirstInterval:
		return FirstInterval
	}
	return int(grown)
}

func nextEaseFactor(ef float64, q Quality) float64 {
	if ef == 0 {
		ef = DefaultEaseFactor
	}
	d := float64(MaxQuality - q)
	return math.Max(MinEaseFactor, ef+(0.1-d*(0.08+d*0.02)))
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
