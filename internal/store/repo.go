package store

import (
	"context"
	"errors"
	"time"

	"github.com/abhisek/gradewise/internal/impact"
	"github.com/abhisek/gradewise/internal/spacedrep"
)

var (
	// ErrNotFound is returned when no row matches an ID or prefix.
	ErrNotFound = errors.New("not found")
	// ErrAmbiguousID is returned when an ID prefix matches several rows.
	ErrAmbiguousID = errors.New("ambiguous id prefix")
)

// Flashcard is a stored card together with its scheduling state.
type Flashcard struct {
	ID        string
	Front     string
	Back      string
	CreatedAt time.Time
	State     spacedrep.ReviewState
}

// FlashcardRepo persists flashcards and their review history.
type FlashcardRepo interface {
	// Create assigns an ID (if empty) and stores a new card.
	Create(ctx context.Context, card *Flashcard) error

	// Get returns the card with the exact ID.
	Get(ctx context.Context, id string) (*Flashcard, error)

	// Lookup returns the single card whose ID starts with prefix.
	Lookup(ctx context.Context, prefix string) (*Flashcard, error)

	// List returns every card ordered by creation time.
	List(ctx context.Context) ([]Flashcard, error)

	// UpdateState overwrites the scheduling state of state.CardID.
	UpdateState(ctx context.Context, state spacedrep.ReviewState) error

	// AppendReview records one review event.
	AppendReview(ctx context.Context, log spacedrep.ReviewLog) error

	// SaveReview updates the state and appends the log in one transaction.
	SaveReview(ctx context.Context, state spacedrep.ReviewState, log spacedrep.ReviewLog) error

	// Reviews returns a card's review history, oldest first.
	Reviews(ctx context.Context, cardID string) ([]spacedrep.ReviewLog, error)
}

// Assignment is a stored course assignment. PointsEarned is nil until graded.
type Assignment struct {
	ID             string
	Course         string
	Name           string
	PointsPossible float64
	PointsEarned   *float64
	DueDate        *time.Time
	CreatedAt      time.Time
}

// Graded reports whether a score has been recorded.
func (a Assignment) Graded() bool { return a.PointsEarned != nil }

// GradeRecord converts a to the calculator's record type.
func (a Assignment) GradeRecord() impact.GradeRecord {
	return impact.GradeRecord{PointsPossible: a.PointsPossible, PointsEarned: a.PointsEarned}
}

// ImpactAssignment converts a to the calculator's candidate type.
func (a Assignment) ImpactAssignment() impact.Assignment {
	return impact.Assignment{
		ID:             a.ID,
		Name:           a.Name,
		PointsPossible: a.PointsPossible,
		DueDate:        a.DueDate,
	}
}

// AssignmentRepo persists course assignments.
type AssignmentRepo interface {
	// Create assigns an ID (if empty) and stores a new assignment.
	Create(ctx context.Context, a *Assignment) error

	// Grade records the points earned on an assignment.
	Grade(ctx context.Context, id string, earned float64) error

	// Lookup returns the single assignment whose ID starts with prefix.
	Lookup(ctx context.Context, prefix string) (*Assignment, error)

	// ListByCourse returns a course's assignments ordered by due date,
	// undated ones last.
	ListByCourse(ctx context.Context, course string) ([]Assignment, error)

	// Courses returns the distinct course names in alphabetical order.
	Courses(ctx context.Context) ([]string, error)
}
