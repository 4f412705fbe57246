package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathcheck/internal/grading"
)

var gradeCmd = &cobra.Command{
	Use:   "grade <file.json>",
	Short: "Run a batch regression file of answer pairs",
	Long: "Checks every case of a batch file and reports cases whose verdict " +
		"differs from their \"expect\" field. Exits with status 1 on any mismatch.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		onlyMismatches, _ := cmd.Flags().GetBool("mismatches")

		checker, err := newChecker(cmd)
		if err != nil {
			return err
		}

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open batch file: %w", err)
		}
		defer f.Close()

		batch, err := grading.LoadBatch(f)
		if err != nil {
			return err
		}

		report, err := grading.NewGrader(checker).RunBatch(cmd.Context(), batch.Cases)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(report); err != nil {
				return err
			}
		} else {
			fmt.Fprintf(out, "%-5s  %-24s  %-24s  %-10s  %s\n", "#", "Answer", "Correct", "Strategy", "OK")
			fmt.Fprintln(out, strings.Repeat("─", 78))
			for _, r := range report.Results {
				if onlyMismatches && !r.Mismatch {
					continue
				}
				mark := "✓"
				if !r.Equivalent {
					mark = "✗"
				}
				if r.Mismatch {
					mark += "  MISMATCH"
				}
				fmt.Fprintf(out, "%-5d  %-24s  %-24s  %-10s  %s\n",
					r.Index+1, truncate(r.Case.User, 24), truncate(r.Case.Correct, 24), r.Strategy, mark)
			}
			fmt.Fprintln(out, strings.Repeat("─", 78))
			fmt.Fprintf(out, "%d cases, %d accepted, %d mismatches\n",
				report.Total, report.Accepted, report.Mismatches)
		}

		if report.Mismatches > 0 {
			return &exitError{code: 1}
		}
		return nil
	},
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func init() {
	gradeCmd.Flags().Bool("json", false, "Print the report as JSON")
	gradeCmd.Flags().Bool("mismatches", false, "List only mismatching cases")
}
