package cmd

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathcheck/internal/sandbox"
)

var tryCmd = &cobra.Command{
	Use:   "try",
	Short: "Try answers interactively against a correct answer",
	RunE: func(cmd *cobra.Command, args []string) error {
		correct, _ := cmd.Flags().GetString("correct")
		if strings.TrimSpace(correct) == "" {
			return errors.New("--correct must not be blank")
		}

		checker, err := newChecker(cmd)
		if err != nil {
			return err
		}
		return sandbox.Run(checker, correct)
	},
}

func init() {
	tryCmd.Flags().String("correct", "", "The correct answer to compare against")
	_ = tryCmd.MarkFlagRequired("correct")
}
