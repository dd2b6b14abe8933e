package cmd

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/charmbracelet/colorprofile"
	"github.com/spf13/cobra"

	"github.com/abhisek/gradewise/internal/ui/theme"
)

// output returns the command's stdout, downsampling or stripping ANSI styles
// to whatever the destination supports.
func output(cmd *cobra.Command) io.Writer {
	return colorprofile.NewWriter(cmd.OutOrStdout(), os.Environ())
}

func heading(w io.Writer, title string, width int) {
	fmt.Fprintln(w, theme.Title.Render(title))
	fmt.Fprintln(w, theme.Rule.Render(strings.Repeat("─", width)))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func isFinite(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}
