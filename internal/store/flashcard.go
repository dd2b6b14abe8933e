package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/abhisek/gradewise/internal/calcerr"
	"github.com/abhisek/gradewise/internal/spacedrep"
)

var flashcardColumns = []string{
	"id", "front", "back", "interval_days", "ease_factor",
	"review_count", "next_review", "last_reviewed", "created_at",
}

// flashcardRepo implements FlashcardRepo with the ent SQL builder.
type flashcardRepo struct {
	db *sql.DB
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func (r *flashcardRepo) Create(ctx context.Context, card *Flashcard) error {
	if card.Front == "" {
		return calcerr.New("store.CreateFlashcard", calcerr.ErrInvalidInput, "front is empty")
	}
	if card.ID == "" {
		card.ID = uuid.NewString()
	}
	if card.CreatedAt.IsZero() {
		card.CreatedAt = time.Now()
	}
	if card.State.EaseFactor == 0 {
		card.State.EaseFactor = spacedrep.DefaultEaseFactor
	}
	card.State.CardID = card.ID

	st := card.State
	query, args := builder().Insert("flashcards").
		Columns(flashcardColumns...).
		Values(card.ID, card.Front, card.Back, st.Interval, st.EaseFactor,
			st.ReviewCount, formatTimePtr(st.NextReview), formatTimePtr(st.LastReviewed),
			formatTime(card.CreatedAt)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert flashcard: %w", err)
	}
	return nil
}

func (r *flashcardRepo) Get(ctx context.Context, id string) (*Flashcard, error) {
	return r.one(ctx, entsql.EQ("id", id), id)
}

func (r *flashcardRepo) Lookup(ctx context.Context, prefix string) (*Flashcard, error) {
	if prefix == "" {
		return nil, fmt.Errorf("flashcard %q: %w", prefix, ErrNotFound)
	}
	return r.one(ctx, entsql.HasPrefix("id", prefix), prefix)
}

func (r *flashcardRepo) one(ctx context.Context, p *entsql.Predicate, key string) (*Flashcard, error) {
	query, args := builder().Select(flashcardColumns...).
		From(entsql.Table("flashcards")).
		Where(p).
		Limit(2).
		Query()
	cards, err := r.query(ctx, query, args)
	if err != nil {
		return nil, err
	}
	switch len(cards) {
	case 0:
		return nil, fmt.Errorf("flashcard %q: %w", key, ErrNotFound)
	case 1:
		return &cards[0], nil
	default:
		return nil, fmt.Errorf("flashcard %q: %w", key, ErrAmbiguousID)
	}
}

func (r *flashcardRepo) List(ctx context.Context) ([]Flashcard, error) {
	query, args := builder().Select(flashcardColumns...).
		From(entsql.Table("flashcards")).
		OrderBy("created_at", "id").
		Query()
	return r.query(ctx, query, args)
}

func (r *flashcardRepo) query(ctx context.Context, query string, args []any) ([]Flashcard, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query flashcards: %w", err)
	}
	defer rows.Close()

	var cards []Flashcard
	for rows.Next() {
		c, err := scanFlashcard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate flashcards: %w", err)
	}
	return cards, nil
}

func scanFlashcard(row rowScanner) (Flashcard, error) {
	var (
		c                      Flashcard
		created                int64
		nextReview, lastReview sql.NullInt64
	)
	err := row.Scan(&c.ID, &c.Front, &c.Back, &c.State.Interval, &c.State.EaseFactor,
		&c.State.ReviewCount, &nextReview, &lastReview, &created)
	if err != nil {
		return Flashcard{}, fmt.Errorf("scan flashcard: %w", err)
	}
	c.State.CardID = c.ID
	c.CreatedAt = parseTime(created)
	c.State.NextReview = parseNullTime(nextReview)
	c.State.LastReviewed = parseNullTime(lastReview)
	return c, nil
}

func (r *flashcardRepo) UpdateState(ctx context.Context, state spacedrep.ReviewState) error {
	return updateState(ctx, r.db, state)
}

func (r *flashcardRepo) AppendReview(ctx context.Context, log spacedrep.ReviewLog) error {
	return appendReview(ctx, r.db, log)
}

func (r *flashcardRepo) SaveReview(ctx context.Context, state spacedrep.ReviewState, log spacedrep.ReviewLog) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin review: %w", err)
	}
	defer tx.Rollback()

	if err := updateState(ctx, tx, state); err != nil {
		return err
	}
	if err := appendReview(ctx, tx, log); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit review: %w", err)
	}
	return nil
}

func updateState(ctx context.Context, db execer, state spacedrep.ReviewState) error {
	ub := builder().Update("flashcards").
		Set("interval_days", state.Interval).
		Set("ease_factor", state.EaseFactor).
		Set("review_count", state.ReviewCount)
	setTime(ub, "next_review", state.NextReview)
	setTime(ub, "last_reviewed", state.LastReviewed)
	query, args := ub.Where(entsql.EQ("id", state.CardID)).Query()
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update flashcard state: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update flashcard state: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("flashcard %q: %w", state.CardID, ErrNotFound)
	}
	return nil
}

func setTime(ub *entsql.UpdateBuilder, column string, t *time.Time) {
	if t == nil {
		ub.SetNull(column)
		return
	}
	ub.Set(column, formatTime(*t))
}

func appendReview(ctx context.Context, db execer, log spacedrep.ReviewLog) error {
	query, args := builder().Insert("review_logs").
		Columns("card_id", "quality", "interval_days", "ease_factor", "reviewed_at").
		Values(log.CardID, int(log.Quality), log.Interval, log.EaseFactor, formatTime(log.ReviewedAt)).
		Query()
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("append review: %w", err)
	}
	return nil
}

func (r *flashcardRepo) Reviews(ctx context.Context, cardID string) ([]spacedrep.ReviewLog, error) {
	query, args := builder().Select("card_id", "quality", "interval_days", "ease_factor", "reviewed_at").
		From(entsql.Table("review_logs")).
		Where(entsql.EQ("card_id", cardID)).
		OrderBy("reviewed_at", "id").
		Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query reviews: %w", err)
	}
	defer rows.Close()

	var logs []spacedrep.ReviewLog
	for rows.Next() {
		var (
			l       spacedrep.ReviewLog
			quality int
			at      int64
		)
		if err := rows.Scan(&l.CardID, &quality, &l.Interval, &l.EaseFactor, &at); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		l.Quality = spacedrep.Quality(quality)
		l.ReviewedAt = parseTime(at)
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reviews: %w", err)
	}
	return logs, nil
}
