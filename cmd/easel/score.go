package main

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/easel"
	"github.com/spf13/cobra"
)

type scoreReport struct {
	Total   float64 `json:"total"`
	Current float64 `json:"current"`
	Updated int     `json:"updated,omitempty"`
}

func newScoreCmd(a *app) *cobra.Command {
	var (
		set    float64
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "score <deck>",
		Short: "Print the total and current score of a deck",
		Long: `Total is the sum of every element score. Current only counts elements whose
answers match their correct answers. --set assigns one score to every element first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := easel.Open(cmd.Context(), args[0], easel.WithLogger(a.logger))
			if err != nil {
				return err
			}

			var report scoreReport
			if cmd.Flags().Changed("set") {
				report.Updated = e.Store().SetScoreForAll(set)
			}
			report.Total = e.Store().TotalScore()
			report.Current = e.Store().CurrentScore()

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			if cmd.Flags().Changed("set") {
				fmt.Fprintf(out, "Updated: %d elements\n", report.Updated)
			}
			fmt.Fprintf(out, "Total:   %g\nCurrent: %g\n", report.Total, report.Current)
			return nil
		},
	}

	cmd.Flags().Float64Var(&set, "set", 0, "Assign this score to every element before scoring")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the report as JSON")
	return cmd
}
