// Package spacedrep schedules flashcard reviews with the SM-2 algorithm.
package spacedrep

import "time"

// ReviewState holds the SM-2 state of a single flashcard.
type ReviewState struct {
	CardID       string     `json:"card_id"`
	Interval     int        `json:"interval"` // days
	EaseFactor   float64    `json:"ease_factor"`
	ReviewCount  int        `json:"review_count"`
	NextReview   *time.Time `json:"next_review,omitempty"`   // nil until first review
	LastReviewed *time.Time `json:"last_reviewed,omitempty"` // nil until first review
}

// NewReviewState returns the state of a freshly created card.
func NewReviewState(cardID string) ReviewState {
	return ReviewState{
		CardID:     cardID,
		Interval:   0,
		EaseFactor: DefaultEaseFactor,
	}
}

// clone returns a copy whose time pointers are not shared with rs.
func (rs ReviewState) clone() ReviewState {
	out := rs
	if rs.NextReview != nil {
		v := *rs.NextReview
		out.NextReview = &v
	}
	if rs.LastReviewed != nil {
		v := *rs.LastReviewed
		out.LastReviewed = &v
	}
	return out
}

// IsDue returns true if the card has never been reviewed or its review date
// has arrived.
func (rs *ReviewState) IsDue(now time.Time) bool {
	return rs.NextReview == nil || !now.Before(*rs.NextReview)
}

// OverdueDays returns how many days past due the card is. Returns 0 if not
// yet due or never scheduled.
func (rs *ReviewState) OverdueDays(now time.Time) float64 {
	if rs.NextReview == nil || now.Before(*rs.NextReview) {
		return 0
	}
	return now.Sub(*rs.NextReview).Hours() / 24.0
}

// IsOverdue returns true once the card is past due by more than half of its
// current interval.
func (rs *ReviewState) IsOverdue(now time.Time) bool {
	if rs.NextReview == nil || !rs.IsDue(now) {
		return false
	}
	grace := float64(max(rs.Interval, 1)) * 0.5
	return rs.OverdueDays(now) > grace
}

// DaysUntilReview returns the number of days until the next review.
// Returns 0 if already due.
func (rs *ReviewState) DaysUntilReview(now time.Time) int {
	if rs.IsDue(now) {
		return 0
	}
	return int(rs.NextReview.Sub(now).Hours()/24.0) + 1
}

// ReviewStatus describes a card's review status for display.
type ReviewStatus string

const (
	StatusNew       ReviewStatus = "new"
	StatusDue       ReviewStatus = "due"
	StatusOverdue   ReviewStatus = "overdue"
	StatusScheduled ReviewStatus = "scheduled"
)

// Status returns the review status for display.
func (rs *ReviewState) Status(now time.Time) ReviewStatus {
	switch {
	case rs.NextReview == nil:
		return StatusNew
	case rs.IsOverdue(now):
		return StatusOverdue
	case rs.IsDue(now):
		return StatusDue
	default:
		return StatusScheduled
	}
}
