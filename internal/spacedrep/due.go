package spacedrep

import (
	"sort"
	"time"

	"github.com/abhisek/gradewise/internal/stats"
)

// DueCards returns the cards due at now, oldest due first. Cards that were
// never reviewed are always due and sort before every scheduled card.
func DueCards(states []ReviewState, now time.Time) []ReviewState {
	var due []ReviewState
	for _, rs := range states {
		if rs.IsDue(now) {
			due = append(due, rs)
		}
	}

	sort.SliceStable(due, func(i, j int) bool {
		a, b := dueKey(due[i]), dueKey(due[j])
		if !a.Equal(b) {
			return a.Before(b)
		}
		return due[i].CardID < due[j].CardID
	})
	return due
}

// dueKey treats an unset review date as the Unix epoch.
func dueKey(rs ReviewState) time.Time {
	if rs.NextReview == nil {
		return time.Unix(0, 0)
	}
	return *rs.NextReview
}

// DeckStats summarises a set of cards.
type DeckStats struct {
	Total        int     `json:"total"`
	New          int     `json:"new"`
	Due          int     `json:"due"`
	Overdue      int     `json:"overdue"`
	MeanEase     float64 `json:"mean_ease"`
	MeanInterval float64 `json:"mean_interval"`
}

// Summarize computes deck statistics at now. Due counts every due card,
// including new and overdue ones.
func Summarize(states []ReviewState, now time.Time) DeckStats {
	ds := DeckStats{Total: len(states)}
	if len(states) == 0 {
		return ds
	}

	eases := make([]float64, 0, len(states))
	intervals := make([]float64, 0, len(states))
	for i := range states {
		rs := &states[i]
		switch rs.Status(now) {
		case StatusNew:
			ds.New++
		case StatusOverdue:
			ds.Overdue++
		}
		if rs.IsDue(now) {
			ds.Due++
		}
		eases = append(eases, rs.EaseFactor)
		intervals = append(intervals, float64(rs.Interval))
	}

	// Both samples are non-empty here.
	ds.MeanEase, _ = stats.Mean(eases)
	ds.MeanInterval, _ = stats.Mean(intervals)
	return ds
}
