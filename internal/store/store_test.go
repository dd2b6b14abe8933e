package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/abhisek/gradewise/internal/calcerr"
	"github.com/abhisek/gradewise/internal/impact"
	"github.com/abhisek/gradewise/internal/spacedrep"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	card := &Flashcard{Front: "7 x 8"}
	if err := s.FlashcardRepo().Create(context.Background(), card); err != nil {
		t.Fatalf("create: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	if _, err := s.FlashcardRepo().Get(context.Background(), card.ID); err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()

	t.Setenv("GRADEWISE_DB", filepath.Join(dir, "env", "custom.db"))
	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("env path: %v", err)
	}
	if got != filepath.Join(dir, "env", "custom.db") {
		t.Errorf("env path = %q", got)
	}

	t.Setenv("GRADEWISE_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)
	got, err = DefaultDBPath()
	if err != nil {
		t.Fatalf("xdg path: %v", err)
	}
	if want := filepath.Join(dir, "gradewise", "gradewise.db"); got != want {
		t.Errorf("xdg path = %q, want %q", got, want)
	}
}

func TestFlashcard_CreateGetList(t *testing.T) {
	s := openTestStore(t)
	repo := s.FlashcardRepo()
	ctx := context.Background()

	created := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	first := &Flashcard{Front: "capital of France", Back: "Paris", CreatedAt: created}
	second := &Flashcard{Front: "capital of Peru", Back: "Lima", CreatedAt: created.Add(time.Minute)}
	for _, c := range []*Flashcard{second, first} {
		if err := repo.Create(ctx, c); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	if first.ID == "" || first.State.CardID != first.ID {
		t.Fatalf("id not assigned: %+v", first)
	}
	if first.State.EaseFactor != spacedrep.DefaultEaseFactor {
		t.Errorf("ease = %v, want default", first.State.EaseFactor)
	}

	got, err := repo.Get(ctx, first.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Front != "capital of France" || got.Back != "Paris" {
		t.Errorf("got %+v", got)
	}
	if !got.CreatedAt.Equal(created) {
		t.Errorf("created = %v, want %v", got.CreatedAt, created)
	}
	if got.State.NextReview != nil || got.State.LastReviewed != nil {
		t.Errorf("new card has review times: %+v", got.State)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].ID != first.ID || list[1].ID != second.ID {
		t.Errorf("list order wrong: %+v", list)
	}
}

func TestFlashcard_CreateRejectsEmptyFront(t *testing.T) {
	s := openTestStore(t)
	err := s.FlashcardRepo().Create(context.Background(), &Flashcard{})
	if !errors.Is(err, calcerr.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestFlashcard_Lookup(t *testing.T) {
	s := openTestStore(t)
	repo := s.FlashcardRepo()
	ctx := context.Background()

	for _, id := range []string{"abc-1", "abd-2"} {
		if err := repo.Create(ctx, &Flashcard{ID: id, Front: id}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	got, err := repo.Lookup(ctx, "abc")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if got.ID != "abc-1" {
		t.Errorf("lookup = %q", got.ID)
	}

	if _, err := repo.Lookup(ctx, "ab"); !errors.Is(err, ErrAmbiguousID) {
		t.Errorf("ambiguous lookup err = %v", err)
	}
	if _, err := repo.Lookup(ctx, "zz"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing lookup err = %v", err)
	}
	if _, err := repo.Get(ctx, "abc"); !errors.Is(err, ErrNotFound) {
		t.Errorf("get by prefix should miss, err = %v", err)
	}
}

func TestFlashcard_SaveReview(t *testing.T) {
	s := openTestStore(t)
	repo := s.FlashcardRepo()
	ctx := context.Background()

	card := &Flashcard{Front: "sqrt(144)", Back: "12"}
	if err := repo.Create(ctx, card); err != nil {
		t.Fatalf("create: %v", err)
	}

	now := time.Date(2025, 3, 2, 15, 30, 0, 0, time.UTC)
	state := card.State
	for i, q := range []spacedrep.Quality{spacedrep.QualityPerfect, spacedrep.QualityGood} {
		next, log, err := spacedrep.Review(state, q, now.AddDate(0, 0, i))
		if err != nil {
			t.Fatalf("review: %v", err)
		}
		if err := repo.SaveReview(ctx, next, log); err != nil {
			t.Fatalf("save review: %v", err)
		}
		state = next
	}

	got, err := repo.Get(ctx, card.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.State.ReviewCount != 2 || got.State.Interval != spacedrep.SecondInterval {
		t.Errorf("state = %+v", got.State)
	}
	if got.State.NextReview == nil || !got.State.NextReview.Equal(*state.NextReview) {
		t.Errorf("next review = %v, want %v", got.State.NextReview, state.NextReview)
	}

	logs, err := repo.Reviews(ctx, card.ID)
	if err != nil {
		t.Fatalf("reviews: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("got %d logs, want 2", len(logs))
	}
	if logs[0].Quality != spacedrep.QualityPerfect || logs[1].Quality != spacedrep.QualityGood {
		t.Errorf("log order wrong: %+v", logs)
	}
	if !logs[0].ReviewedAt.Equal(now) {
		t.Errorf("reviewed at = %v, want %v", logs[0].ReviewedAt, now)
	}
}

func TestFlashcard_UpdateStateMissing(t *testing.T) {
	s := openTestStore(t)
	err := s.FlashcardRepo().UpdateState(context.Background(), spacedrep.NewReviewState("ghost"))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestFlashcard_AppendReviewUnknownCard(t *testing.T) {
	s := openTestStore(t)
	err := s.FlashcardRepo().AppendReview(context.Background(), spacedrep.ReviewLog{
		CardID:     "ghost",
		Quality:    spacedrep.QualityPerfect,
		ReviewedAt: time.Now(),
	})
	if err == nil {
		t.Fatal("expected foreign key violation")
	}
}

func TestAssignment_GradeAndList(t *testing.T) {
	s := openTestStore(t)
	repo := s.AssignmentRepo()
	ctx := context.Background()

	due := func(day int) *time.Time {
		d := time.Date(2025, 4, day, 23, 59, 0, 0, time.UTC)
		return &d
	}
	assignments := []*Assignment{
		{Course: "CS101", Name: "Final project", PointsPossible: 200},
		{Course: "CS101", Name: "Homework 2", PointsPossible: 50, DueDate: due(20)},
		{Course: "CS101", Name: "Homework 1", PointsPossible: 50, DueDate: due(10)},
		{Course: "MATH200", Name: "Quiz", PointsPossible: 20},
	}
	for _, a := range assignments {
		if err := repo.Create(ctx, a); err != nil {
			t.Fatalf("create %s: %v", a.Name, err)
		}
	}

	if err := repo.Grade(ctx, assignments[2].ID, 45); err != nil {
		t.Fatalf("grade: %v", err)
	}

	list, err := repo.ListByCourse(ctx, "CS101")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var names []string
	for _, a := range list {
		names = append(names, a.Name)
	}
	want := []string{"Homework 1", "Homework 2", "Final project"}
	if len(names) != len(want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("names = %v, want %v", names, want)
		}
	}
	if !list[0].Graded() || *list[0].PointsEarned != 45 {
		t.Errorf("homework 1 not graded: %+v", list[0])
	}
	if list[1].Graded() {
		t.Errorf("homework 2 should be ungraded")
	}

	var records []impact.GradeRecord
	for _, a := range list {
		records = append(records, a.GradeRecord())
	}
	gc := impact.BuildContext(records)
	if gc.TotalPoints != 300 || gc.EarnedPoints != 45 || gc.CurrentGrade != 90 {
		t.Errorf("context = %+v", gc)
	}

	courses, err := repo.Courses(ctx)
	if err != nil {
		t.Fatalf("courses: %v", err)
	}
	if len(courses) != 2 || courses[0] != "CS101" || courses[1] != "MATH200" {
		t.Errorf("courses = %v", courses)
	}
}

func TestAssignment_Validation(t *testing.T) {
	s := openTestStore(t)
	repo := s.AssignmentRepo()
	ctx := context.Background()

	bad := []Assignment{
		{Name: "no course", PointsPossible: 10},
		{Course: "CS101", PointsPossible: 10},
		{Course: "CS101", Name: "negative", PointsPossible: -1},
	}
	for _, a := range bad {
		if err := repo.Create(ctx, &a); !errors.Is(err, calcerr.ErrInvalidInput) {
			t.Errorf("create %+v: err = %v, want ErrInvalidInput", a, err)
		}
	}

	ok := &Assignment{Course: "CS101", Name: "Lab", PointsPossible: 10}
	if err := repo.Create(ctx, ok); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Grade(ctx, ok.ID, -3); !errors.Is(err, calcerr.ErrInvalidInput) {
		t.Errorf("negative grade err = %v", err)
	}
	if err := repo.Grade(ctx, "ghost", 3); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing grade err = %v", err)
	}
}

func TestReset(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	card := &Flashcard{Front: "q"}
	if err := s.FlashcardRepo().Create(ctx, card); err != nil {
		t.Fatalf("create card: %v", err)
	}
	next, log, err := spacedrep.Review(card.State, spacedrep.QualityPerfect, time.Now())
	if err != nil {
		t.Fatalf("review: %v", err)
	}
	if err := s.FlashcardRepo().SaveReview(ctx, next, log); err != nil {
		t.Fatalf("save review: %v", err)
	}
	if err := s.AssignmentRepo().Create(ctx, &Assignment{Course: "c", Name: "a", PointsPossible: 1}); err != nil {
		t.Fatalf("create assignment: %v", err)
	}

	if err := s.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}

	cards, _ := s.FlashcardRepo().List(ctx)
	courses, _ := s.AssignmentRepo().Courses(ctx)
	if len(cards) != 0 || len(courses) != 0 {
		t.Errorf("reset left rows: %d cards, %d courses", len(cards), len(courses))
	}
}

func TestFlashcard_FarFutureReviewRoundTrips(t *testing.T) {
	s := openTestStore(t)
	repo := s.FlashcardRepo()
	ctx := context.Background()

	card := &Flashcard{Front: "long-lived"}
	if err := repo.Create(ctx, card); err != nil {
		t.Fatalf("create: %v", err)
	}

	far := time.Date(12841, 9, 17, 0, 0, 0, 0, time.UTC)
	reviewed := time.Date(2025, 3, 2, 15, 30, 0, 0, time.UTC)
	state := card.State
	state.Interval = 2900240
	state.ReviewCount = 13
	state.NextReview = &far
	state.LastReviewed = &reviewed
	if err := repo.UpdateState(ctx, state); err != nil {
		t.Fatalf("update: %v", err)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("got %d cards, want 1", len(list))
	}
	got := list[0].State
	if got.NextReview == nil || !got.NextReview.Equal(far) {
		t.Errorf("next review = %v, want %v", got.NextReview, far)
	}
	if got.Interval != 2900240 {
		t.Errorf("interval = %d", got.Interval)
	}
}

func TestFlashcard_ManyPerfectReviewsStayListable(t *testing.T) {
	s := openTestStore(t)
	repo := s.FlashcardRepo()
	ctx := context.Background()

	card := &Flashcard{Front: "easy"}
	if err := repo.Create(ctx, card); err != nil {
		t.Fatalf("create: %v", err)
	}
	now := time.Date(2025, 3, 2, 15, 30, 0, 0, time.UTC)
	state := card.State
	for i := 0; i < 20; i++ {
		next, log, err := spacedrep.Review(state, spacedrep.QualityPerfect, now)
		if err != nil {
			t.Fatalf("review %d: %v", i+1, err)
		}
		if err := repo.SaveReview(ctx, next, log); err != nil {
			t.Fatalf("save review %d: %v", i+1, err)
		}
		if _, err := repo.List(ctx); err != nil {
			t.Fatalf("list after review %d: %v", i+1, err)
		}
		state = next
	}
	if state.Interval != spacedrep.MaxInterval {
		t.Errorf("interval = %d, want %d", state.Interval, spacedrep.MaxInterval)
	}
}
