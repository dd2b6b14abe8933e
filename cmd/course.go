package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/gradewise/internal/calcerr"
	"github.com/abhisek/gradewise/internal/impact"
	"github.com/abhisek/gradewise/internal/store"
	"github.com/abhisek/gradewise/internal/ui/components"
	"github.com/abhisek/gradewise/internal/ui/theme"
)

const dateLayout = "2006-01-02"

var courseCmd = &cobra.Command{
	Use:   "course",
	Short: "Track course assignments and rank them by grade impact",
}

var courseAddCmd = &cobra.Command{
	Use:   "add <course> <assignment>",
	Short: "Add an assignment to a course",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		points, _ := cmd.Flags().GetFloat64("points")
		dueStr, _ := cmd.Flags().GetString("due")

		a := &store.Assignment{Course: args[0], Name: args[1], PointsPossible: points}
		if dueStr != "" {
			due, err := time.ParseInLocation(dateLayout, dueStr, time.Local)
			if err != nil {
				return calcerr.New("course add", calcerr.ErrInvalidInput, "due date %q is not YYYY-MM-DD", dueStr)
			}
			a.DueDate = &due
		}
		if cmd.Flags().Changed("earned") {
			earned, _ := cmd.Flags().GetFloat64("earned")
			a.PointsEarned = &earned
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.AssignmentRepo().Create(cmd.Context(), a); err != nil {
			return err
		}
		logger.Info("assignment added", zap.String("id", a.ID), zap.String("course", a.Course))
		fmt.Fprintf(cmd.OutOrStdout(), "Added %s to %s (%s)\n", a.Name, a.Course, shortID(a.ID))
		return nil
	},
}

var courseGradeCmd = &cobra.Command{
	Use:   "grade <assignment-id> <points-earned>",
	Short: "Record the points earned on an assignment",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		earned, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return calcerr.New("course grade", calcerr.ErrInvalidInput, "%q is not a number", args[1])
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		repo := s.AssignmentRepo()
		a, err := repo.Lookup(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if err := repo.Grade(cmd.Context(), a.ID, earned); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Graded %s: %g/%g\n", a.Name, earned, a.PointsPossible)
		return nil
	},
}

var courseListCmd = &cobra.Command{
	Use:   "list [course]",
	Short: "List courses, or the assignments of one course",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		repo := s.AssignmentRepo()
		w := output(cmd)

		if len(args) == 1 {
			list, err := repo.ListByCourse(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(list) == 0 {
				return fmt.Errorf("no assignments for course %q", args[0])
			}
			heading(w, args[0], 72)
			fmt.Fprintf(w, "%-8s  %-30s  %8s  %8s  %s\n", "ID", "Assignment", "Possible", "Earned", "Due")
			for _, a := range list {
				earned := "-"
				if a.PointsEarned != nil {
					earned = strconv.FormatFloat(*a.PointsEarned, 'g', -1, 64)
				}
				due := "-"
				if a.DueDate != nil {
					due = a.DueDate.Format(dateLayout)
				}
				fmt.Fprintf(w, "%-8s  %-30s  %8g  %8s  %s\n",
					shortID(a.ID), truncate(a.Name, 30), a.PointsPossible, earned, due)
			}
			return nil
		}

		courses, err := repo.Courses(cmd.Context())
		if err != nil {
			return err
		}
		if len(courses) == 0 {
			fmt.Fprintln(w, theme.Hint.Render("No courses yet. Add one with `gradewise course add`."))
			return nil
		}
		calc, err := impact.NewCalculator(cfg.ImpactCalculatorConfig())
		if err != nil {
			return err
		}

		heading(w, "Courses", 72)
		for _, c := range courses {
			list, err := repo.ListByCourse(cmd.Context(), c)
			if err != nil {
				return err
			}
			gc := courseContext(list)
			bar := components.NewProgressBar("graded", gc.CompletedWeight, true, 30)
			fmt.Fprintf(w, "%-20s  %6.1f%%  %-2s  %s\n",
				truncate(c, 20), gc.CurrentGrade, calc.Letter(gc.CurrentGrade), bar.View())
		}
		return nil
	},
}

var courseImpactCmd = &cobra.Command{
	Use:   "impact <course>",
	Short: "Rank a course's ungraded assignments by grade impact",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		list, err := s.AssignmentRepo().ListByCourse(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if len(list) == 0 {
			return fmt.Errorf("no assignments for course %q", args[0])
		}

		gc := courseContext(list)
		var pending []impact.Assignment
		for _, a := range list {
			if !a.Graded() {
				pending = append(pending, a.ImpactAssignment())
			}
		}

		calc, err := impact.NewCalculator(cfg.ImpactCalculatorConfig())
		if err != nil {
			return err
		}
		results, err := calc.CalculateAll(cmd.Context(), pending, gc)
		if err != nil {
			return err
		}
		logger.Debug("impact computed", zap.String("course", args[0]), zap.Int("pending", len(results)))

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				Context impact.Context  `json:"context"`
				Results []impact.Result `json:"results"`
			}{gc, results})
		}

		w := output(cmd)
		heading(w, args[0], 88)
		fmt.Fprintf(w, "Current grade %.1f%% (%s), %.0f%% of the course graded\n\n",
			gc.CurrentGrade, calc.Letter(gc.CurrentGrade), gc.CompletedWeight*100)
		if len(results) == 0 {
			fmt.Fprintln(w, theme.Hint.Render("Every assignment is graded."))
			return nil
		}

		fmt.Fprintf(w, "%-28s  %7s  %-8s  %-15s  %s\n", "Assignment", "Impact", "Priority", "Range", "Needed for")
		for _, r := range results {
			prio := theme.Priority(r.Priority).Render(fmt.Sprintf("%-8s", r.Priority.DisplayName()))
			rng := fmt.Sprintf("%.1f-%.1f%%", r.GradeChange.Min, r.GradeChange.Max)
			fmt.Fprintf(w, "%-28s  %6.1f%%  %s  %-15s  %s\n",
				truncate(r.Name, 28), r.ImpactScore*100, prio, rng, formatTargets(calc.Targets(), r.TargetScores))
		}
		if verbose, _ := cmd.Flags().GetBool("explain"); verbose {
			fmt.Fprintln(w)
			for _, r := range results {
				fmt.Fprintf(w, "%s: %s\n", theme.Label.Render(r.Name), r.Explanation)
			}
		}
		return nil
	},
}

func init() {
	courseAddCmd.Flags().Float64("points", 100, "Points possible")
	courseAddCmd.Flags().String("due", "", "Due date (YYYY-MM-DD)")
	courseAddCmd.Flags().Float64("earned", 0, "Points earned, if already graded")
	courseImpactCmd.Flags().Bool("json", false, "Print results as JSON")
	courseImpactCmd.Flags().Bool("explain", false, "Print an explanation for each assignment")

	courseCmd.AddCommand(courseAddCmd)
	courseCmd.AddCommand(courseGradeCmd)
	courseCmd.AddCommand(courseListCmd)
	courseCmd.AddCommand(courseImpactCmd)
}

func courseContext(list []store.Assignment) impact.Context {
	records := make([]impact.GradeRecord, 0, len(list))
	for _, a := range list {
		records = append(records, a.GradeRecord())
	}
	return impact.BuildContext(records)
}

func formatTargets(targets []impact.Target, scores map[impact.Letter]*float64) string {
	parts := make([]string, 0, len(targets))
	for _, t := range targets {
		v := scores[t.Letter]
		if v == nil {
			parts = append(parts, fmt.Sprintf("%s -", t.Letter))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %.0f%%", t.Letter, *v))
	}
	return strings.Join(parts, "  ")
}
