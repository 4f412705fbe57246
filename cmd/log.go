package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathcheck/internal/verdictlog"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Inspect the verdict log of served comparisons",
}

var logListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent verdicts",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		rejected, _ := cmd.Flags().GetBool("rejected")
		since, _ := cmd.Flags().GetDuration("since")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		opts := verdictlog.QueryOpts{Limit: limit, RejectedOnly: rejected}
		if since > 0 {
			opts.Since = time.Now().Add(-since)
		}
		entries, err := s.Recent(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("query verdicts: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(entries) == 0 {
			fmt.Fprintln(out, "No verdicts found.")
			return nil
		}

		fmt.Fprintf(out, "%-6s  %-19s  %-22s  %-22s  %-10s  %s\n",
			"ID", "Timestamp", "Answer", "Correct", "Strategy", "OK")
		fmt.Fprintln(out, strings.Repeat("─", 92))
		for _, e := range entries {
			ok := "✓"
			if !e.Equivalent {
				ok = "✗"
			}
			fmt.Fprintf(out, "%-6d  %-19s  %-22s  %-22s  %-10s  %s\n",
				e.ID,
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				truncate(e.User, 22),
				truncate(e.Correct, 22),
				e.Strategy,
				ok,
			)
		}
		return nil
	},
}

var logViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "View one recorded verdict",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := s.Get(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get verdict: %w", err)
		}
		if e == nil {
			return fmt.Errorf("verdict %d not found", id)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "ID:          %d\n", e.ID)
		fmt.Fprintf(out, "Time:        %s\n", e.Timestamp.Local().Format("2006-01-02 15:04:05"))
		if e.RequestID != "" {
			fmt.Fprintf(out, "Request:     %s\n", e.RequestID)
		}
		fmt.Fprintf(out, "Answer:      %q\n", e.User)
		fmt.Fprintf(out, "Normalized:  %q\n", e.UserNormalized)
		fmt.Fprintf(out, "Correct:     %q\n", e.Correct)
		fmt.Fprintf(out, "Normalized:  %q\n", e.CorrectNormalized)
		fmt.Fprintf(out, "Strategy:    %s\n", e.Strategy)
		fmt.Fprintf(out, "Equivalent:  %v\n", e.Equivalent)
		return nil
	},
}

var logPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete all but the most recent verdicts",
	RunE: func(cmd *cobra.Command, args []string) error {
		keep, _ := cmd.Flags().GetInt("keep")
		if keep < 0 {
			return errors.New("--keep must be >= 0")
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		n, err := s.Prune(cmd.Context(), keep)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d verdicts, kept at most %d.\n", n, keep)
		return nil
	},
}

func init() {
	logListCmd.Flags().Int("limit", 20, "Maximum number of verdicts to show")
	logListCmd.Flags().Bool("rejected", false, "Show only answers that were not accepted")
	logListCmd.Flags().Duration("since", 0, "Only show verdicts newer than this (e.g. 24h)")
	logPruneCmd.Flags().Int("keep", 1000, "Number of most recent verdicts to keep")

	logCmd.AddCommand(logListCmd)
	logCmd.AddCommand(logViewCmd)
	logCmd.AddCommand(logPruneCmd)
}
