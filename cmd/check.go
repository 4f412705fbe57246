package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/mathcheck/internal/mathcheck"
	"github.com/abhisek/mathcheck/internal/sandbox"
)

var checkCmd = &cobra.Command{
	Use:   "check <answer> <correct>",
	Short: "Check whether an answer is equivalent to the correct one",
	Long:  "Exits with status 1 when the answer is not equivalent.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		quiet, _ := cmd.Flags().GetBool("quiet")

		checker, err := newChecker(cmd)
		if err != nil {
			return err
		}

		strategy := checker.Match(args[0], args[1])
		if !quiet {
			out := cmd.OutOrStdout()
			if strategy != mathcheck.StrategyNone {
				fmt.Fprintf(out, "✓ equivalent (%s)\n", strategy)
			} else {
				fmt.Fprintln(out, "✗ not equivalent")
			}
		}
		if strategy == mathcheck.StrategyNone {
			return &exitError{code: 1}
		}
		return nil
	},
}

var explainCmd = &cobra.Command{
	Use:   "explain <answer> <correct>",
	Short: "Show how an answer pair is normalized, parsed and compared",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		checker, err := newChecker(cmd)
		if err != nil {
			return err
		}

		ex := checker.Explain(args[0], args[1])
		if asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(ex)
		}
		_, err = lipgloss.Fprintln(cmd.OutOrStdout(), sandbox.RenderExplanation(ex))
		return err
	},
}

var normalizeCmd = &cobra.Command{
	Use:   "normalize <answer>...",
	Short: "Print the normalized form of each answer",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var b strings.Builder
		for _, a := range args {
			b.WriteString(mathcheck.Normalize(a))
			b.WriteByte('\n')
		}
		_, err := fmt.Fprint(cmd.OutOrStdout(), b.String())
		return err
	},
}

func init() {
	checkCmd.Flags().BoolP("quiet", "q", false, "Print nothing; report through the exit status only")
	explainCmd.Flags().Bool("json", false, "Print the explanation as JSON")
}
