package main

import (
	"fmt"

	"github.com/aretw0/easel"
	"github.com/spf13/cobra"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <deck>",
		Short: "Check a deck for authoring mistakes",
		Long: `Reports elements without a registered renderer, positions outside [0,1],
negative scores and out-of-range percents. Exits with status 1 on problems.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := easel.Open(cmd.Context(), args[0], easel.WithLogger(a.logger))
			if err != nil {
				return err
			}
			if err := e.Validate(); err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Deck is valid! ✅")
			return nil
		},
	}
}
