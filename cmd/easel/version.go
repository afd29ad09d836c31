package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/easel"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of easel",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "easel version %s\n", strings.TrimSpace(easel.Version))
		},
	}
}
