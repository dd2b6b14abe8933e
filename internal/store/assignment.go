package store

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"slices"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/abhisek/gradewise/internal/calcerr"
)

var assignmentColumns = []string{
	"id", "course", "name", "points_possible", "points_earned", "due_date", "created_at",
}

// assignmentRepo implements AssignmentRepo with the ent SQL builder.
type assignmentRepo struct {
	db *sql.DB
}

func (r *assignmentRepo) Create(ctx context.Context, a *Assignment) error {
	const op = "store.CreateAssignment"
	switch {
	case a.Course == "":
		return calcerr.New(op, calcerr.ErrInvalidInput, "course is empty")
	case a.Name == "":
		return calcerr.New(op, calcerr.ErrInvalidInput, "name is empty")
	case math.IsNaN(a.PointsPossible) || math.IsInf(a.PointsPossible, 0) || a.PointsPossible < 0:
		return calcerr.New(op, calcerr.ErrInvalidInput, "points possible %v", a.PointsPossible)
	}
	if a.PointsEarned != nil {
		if err := checkEarned(op, *a.PointsEarned); err != nil {
			return err
		}
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}

	query, args := builder().Insert("assignments").
		Columns(assignmentColumns...).
		Values(a.ID, a.Course, a.Name, a.PointsPossible, floatPtrArg(a.PointsEarned),
			formatTimePtr(a.DueDate), formatTime(a.CreatedAt)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert assignment: %w", err)
	}
	return nil
}

// Earned points may exceed points possible (extra credit).
func checkEarned(op string, earned float64) error {
	if math.IsNaN(earned) || math.IsInf(earned, 0) || earned < 0 {
		return calcerr.New(op, calcerr.ErrInvalidInput, "points earned %v", earned)
	}
	return nil
}

func (r *assignmentRepo) Grade(ctx context.Context, id string, earned float64) error {
	if err := checkEarned("store.Grade", earned); err != nil {
		return err
	}
	query, args := builder().Update("assignments").
		Set("points_earned", earned).
		Where(entsql.EQ("id", id)).
		Query()
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("grade assignment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("grade assignment: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("assignment %q: %w", id, ErrNotFound)
	}
	return nil
}

func (r *assignmentRepo) Lookup(ctx context.Context, prefix string) (*Assignment, error) {
	if prefix == "" {
		return nil, fmt.Errorf("assignment %q: %w", prefix, ErrNotFound)
	}
	query, args := builder().Select(assignmentColumns...).
		From(entsql.Table("assignments")).
		Where(entsql.HasPrefix("id", prefix)).
		Limit(2).
		Query()
	list, err := r.query(ctx, query, args)
	if err != nil {
		return nil, err
	}
	switch len(list) {
	case 0:
		return nil, fmt.Errorf("assignment %q: %w", prefix, ErrNotFound)
	case 1:
		return &list[0], nil
	default:
		return nil, fmt.Errorf("assignment %q: %w", prefix, ErrAmbiguousID)
	}
}

func (r *assignmentRepo) ListByCourse(ctx context.Context, course string) ([]Assignment, error) {
	query, args := builder().Select(assignmentColumns...).
		From(entsql.Table("assignments")).
		Where(entsql.EQ("course", course)).
		OrderBy("created_at", "id").
		Query()
	list, err := r.query(ctx, query, args)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(list, func(a, b Assignment) int {
		switch {
		case a.DueDate == nil && b.DueDate == nil:
			return 0
		case a.DueDate == nil:
			return 1
		case b.DueDate == nil:
			return -1
		}
		return a.DueDate.Compare(*b.DueDate)
	})
	return list, nil
}

func (r *assignmentRepo) Courses(ctx context.Context) ([]string, error) {
	query, args := builder().Select("course").
		From(entsql.Table("assignments")).
		Distinct().
		OrderBy("course").
		Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query courses: %w", err)
	}
	defer rows.Close()

	var courses []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan course: %w", err)
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate courses: %w", err)
	}
	return courses, nil
}

func (r *assignmentRepo) query(ctx context.Context, query string, args []any) ([]Assignment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query assignments: %w", err)
	}
	defer rows.Close()

	var list []Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate assignments: %w", err)
	}
	return list, nil
}

func scanAssignment(row rowScanner) (Assignment, error) {
	var (
		a       Assignment
		earned  sql.NullFloat64
		due     sql.NullInt64
		created int64
	)
	if err := row.Scan(&a.ID, &a.Course, &a.Name, &a.PointsPossible, &earned, &due, &created); err != nil {
		return Assignment{}, fmt.Errorf("scan assignment: %w", err)
	}
	a.PointsEarned = floatPtr(earned)
	a.DueDate = parseNullTime(due)
	a.CreatedAt = parseTime(created)
	return a, nil
}
