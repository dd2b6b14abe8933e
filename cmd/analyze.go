package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/gradewise/internal/analytics"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file.csv>",
	Short: "Relate cohort grades to sentiment scores",
	Long: "Reads a CSV with the header student_id,grade,sentiment and reports\n" +
		"summaries of both columns plus their correlation.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open %s: %w", args[0], err)
		}
		defer f.Close()

		obs, err := analytics.ReadObservations(f)
		if err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}
		logger.Info("observations loaded", zap.String("file", args[0]), zap.Int("rows", len(obs)))

		rep, err := analytics.Analyze(obs)
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			if !rep.Correlation.HasTesting || isFinite(rep.Correlation.T) {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(rep)
			}
			logger.Warn("t statistic is infinite; falling back to text output")
		}

		w := output(cmd)
		heading(w, "Grades", 32)
		printSummary(w, rep.Grades)
		fmt.Fprintln(w)
		heading(w, "Sentiment", 32)
		printSummary(w, rep.Sentiment)
		fmt.Fprintln(w)
		heading(w, "Grade vs sentiment", 32)
		printCorrelation(w, rep.Correlation)
		return nil
	},
}

func init() {
	analyzeCmd.Flags().Bool("json", false, "Print the report as JSON")
}
