package cmd

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the root command with args against a fresh flag state and
// returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func testEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("GRADEWISE_DB", "")

	fixed := time.Date(2025, 4, 1, 10, 0, 0, 0, time.Local)
	prev := now
	now = func() time.Time { return fixed }
	t.Cleanup(func() { now = prev })

	return filepath.Join(dir, "test.db")
}

func TestParseNumbers(t *testing.T) {
	got, err := parseNumbers([]string{"1", "2.5,3", " 4 ,", "-1e2"})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2.5, 3, 4, -100}, got)

	_, err = parseNumbers([]string{"1", "two"})
	assert.Error(t, err)
}

func TestStatsDescribe(t *testing.T) {
	testEnv(t)

	out, err := run(t, "stats", "describe", "2", "4", "4", "4", "5", "5", "7", "9")
	require.NoError(t, err)
	assert.Contains(t, out, "Summary")
	assert.Contains(t, out, "5.0000") // mean
	assert.Contains(t, out, "2.0000") // population std dev
}

func TestStatsDescribe_Empty(t *testing.T) {
	testEnv(t)
	rootCmd.SetIn(bytes.NewBufferString(""))
	t.Cleanup(func() { rootCmd.SetIn(nil) })

	_, err := run(t, "stats", "describe")
	assert.Error(t, err)
}

func TestStatsCorrelate(t *testing.T) {
	testEnv(t)

	out, err := run(t, "stats", "correlate", "--a", "1,2,3,4,5", "--b", "2,4,5,4,5")
	require.NoError(t, err)
	assert.Contains(t, out, "Pearson r")
	assert.Contains(t, out, "0.7746")
	assert.Contains(t, out, "not significant")
}

func TestCourseImpact(t *testing.T) {
	db := testEnv(t)

	_, err := run(t, "--db", db, "course", "add", "CS101", "Homework 1", "--points", "50", "--earned", "45")
	require.NoError(t, err)
	_, err = run(t, "--db", db, "course", "add", "CS101", "Final exam", "--points", "200", "--due", "2025-05-01")
	require.NoError(t, err)
	_, err = run(t, "--db", db, "course", "add", "CS101", "Quiz", "--points", "5")
	require.NoError(t, err)

	out, err := run(t, "--db", db, "course", "impact", "CS101")
	require.NoError(t, err)
	assert.Contains(t, out, "Current grade 90.0%")
	assert.Contains(t, out, "Final exam")
	assert.Contains(t, out, "High")
	assert.Less(t, bytes.Index([]byte(out), []byte("Final exam")), bytes.Index([]byte(out), []byte("Quiz")))

	out, err = run(t, "--db", db, "course", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "CS101")
	assert.Contains(t, out, "90.0%")
}

func TestCourseImpact_UnknownCourse(t *testing.T) {
	db := testEnv(t)
	_, err := run(t, "--db", db, "course", "impact", "nope")
	assert.Error(t, err)
}

func TestCardReviewFlow(t *testing.T) {
	db := testEnv(t)

	_, err := run(t, "--db", db, "card", "add", "capital of Kenya", "Nairobi")
	require.NoError(t, err)

	out, err := run(t, "--db", db, "card", "due")
	require.NoError(t, err)
	assert.Contains(t, out, "capital of Kenya")
	assert.Contains(t, out, "new")

	s, err := openStore(rootCmd)
	require.NoError(t, err)
	cards, err := s.FlashcardRepo().List(rootCmd.Context())
	s.Close()
	require.NoError(t, err)
	require.Len(t, cards, 1)

	out, err = run(t, "--db", db, "card", "review", cards[0].ID[:8], "--correct", "--confidence", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "perfect")
	assert.Contains(t, out, "Next review in 1 day(s) on 2025-04-02")

	out, err = run(t, "--db", db, "card", "due")
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing due")

	out, err = run(t, "--db", db, "card", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "scheduled")
	assert.Contains(t, out, "2025-04-02 (in 1d)")

	out, err = run(t, "--db", db, "card", "history", cards[0].ID)
	require.NoError(t, err)
	assert.Contains(t, out, "perfect")
}

func TestCardReview_RequiresGrade(t *testing.T) {
	db := testEnv(t)
	_, err := run(t, "--db", db, "card", "add", "q")
	require.NoError(t, err)

	_, err = run(t, "--db", db, "card", "review", "x")
	assert.Error(t, err)
}

func TestReset_RequiresConfirmation(t *testing.T) {
	db := testEnv(t)
	_, err := run(t, "--db", db, "reset")
	assert.Error(t, err)

	out, err := run(t, "--db", db, "reset", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "All data deleted.")
}
