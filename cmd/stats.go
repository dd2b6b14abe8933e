package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/gradewise/internal/calcerr"
	"github.com/abhisek/gradewise/internal/correlation"
	"github.com/abhisek/gradewise/internal/stats"
	"github.com/abhisek/gradewise/internal/ui/theme"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Descriptive statistics and correlation",
}

var statsDescribeCmd = &cobra.Command{
	Use:   "describe [value...]",
	Short: "Summarise a sample (reads stdin when no values are given)",
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			sample []float64
			err    error
		)
		if len(args) > 0 {
			sample, err = parseNumbers(args)
		} else {
			sample, err = readNumbers(cmd.InOrStdin())
		}
		if err != nil {
			return err
		}
		logger.Debug("describe", zap.Int("n", len(sample)))

		sum, err := stats.Describe(sample)
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(sum)
		}
		w := output(cmd)
		heading(w, "Summary", 32)
		printSummary(w, sum)
		return nil
	},
}

var statsCorrelateCmd = &cobra.Command{
	Use:     "correlate",
	Short:   "Correlate two paired series",
	Example: "  gradewise stats correlate --a 85,92,78,95 --b 0.4,0.6,0.1,0.8",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, _ := cmd.Flags().GetFloat64Slice("a")
		b, _ := cmd.Flags().GetFloat64Slice("b")

		res, err := correlation.Analyze(a, b)
		if err != nil {
			return err
		}
		w := output(cmd)
		heading(w, "Correlation", 32)
		printCorrelation(w, res)
		return nil
	},
}

func init() {
	statsDescribeCmd.Flags().Bool("json", false, "Print the summary as JSON")
	statsCorrelateCmd.Flags().Float64Slice("a", nil, "First series, comma separated")
	statsCorrelateCmd.Flags().Float64Slice("b", nil, "Second series, comma separated")
	_ = statsCorrelateCmd.MarkFlagRequired("a")
	_ = statsCorrelateCmd.MarkFlagRequired("b")

	statsCmd.AddCommand(statsDescribeCmd)
	statsCmd.AddCommand(statsCorrelateCmd)
}

// parseNumbers parses each field as a float. Fields may also hold
// comma-separated values.
func parseNumbers(fields []string) ([]float64, error) {
	var out []float64
	for _, f := range fields {
		for _, part := range strings.Split(f, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			v, err := strconv.ParseFloat(part, 64)
			if err != nil {
				return nil, calcerr.New("parse", calcerr.ErrInvalidInput, "%q is not a number", part)
			}
			out = append(out, v)
		}
	}
	return out, nil
}

func readNumbers(r io.Reader) ([]float64, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	var fields []string
	for sc.Scan() {
		fields = append(fields, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read values: %w", err)
	}
	return parseNumbers(fields)
}

func printSummary(w io.Writer, s stats.Summary) {
	rows := []struct {
		label string
		value float64
	}{
		{"Mean", s.Mean},
		{"Median", s.Median},
		{"Std dev", s.StdDev},
		{"Min", s.Min},
		{"Max", s.Max},
		{"Range", s.Range},
		{"Q1", s.Q1},
		{"Q3", s.Q3},
		{"IQR", s.IQR},
		{"Skewness", s.Skewness},
		{"Kurtosis", s.Kurtosis},
	}
	fmt.Fprintf(w, "%s %d\n", theme.Label.Render(fmt.Sprintf("%-10s", "Count")), s.Count)
	for _, r := range rows {
		fmt.Fprintf(w, "%s %.4f\n", theme.Label.Render(fmt.Sprintf("%-10s", r.label)), r.value)
	}
}

func printCorrelation(w io.Writer, r correlation.Result) {
	label := func(s string) string { return theme.Label.Render(fmt.Sprintf("%-10s", s)) }
	fmt.Fprintf(w, "%s %d\n", label("n"), r.N)
	fmt.Fprintf(w, "%s %.4f\n", label("Pearson r"), r.R)
	fmt.Fprintf(w, "%s %.4f\n", label("Spearman"), r.Spearman)
	if !r.HasTesting {
		fmt.Fprintln(w, theme.Hint.Render("significance needs at least 3 pairs"))
		return
	}
	fmt.Fprintf(w, "%s %.4f\n", label("t"), r.T)
	fmt.Fprintf(w, "%s %.4f\n", label("p"), r.PValue)
	fmt.Fprintf(w, "%s %s\n", label("Level"), theme.Significance(r.Level).Render(r.Level.String()))
}
