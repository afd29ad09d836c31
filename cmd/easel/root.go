package main

import (
	"log/slog"

	"github.com/aretw0/easel/internal/cli"
	"github.com/aretw0/easel/internal/config"
	"github.com/spf13/cobra"
)

// app carries what PersistentPreRunE resolved for the running command.
type app struct {
	cfg    config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "easel",
		Short: "Easel edits, scores and renders slide decks",
		Long: `Easel treats a slide deck as one JSON-like tree.
It renders slides as markdown, scores quiz elements and serves editing
sessions over HTTP, websockets and MCP.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Config file (default: ./easel.yaml or ~/.config/easel/config.yaml)")
	flags.Bool("debug", false, "Enable debug logging on stderr")
	flags.String("store", "", "Snapshot store driver: memory, file, redis or sqlite")
	flags.String("store-path", "", "Directory or database file for the file and sqlite stores")

	rootCmd.AddCommand(
		newRenderCmd(a),
		newScoreCmd(a),
		newValidateCmd(a),
		newServeCmd(a),
		newMCPCmd(a),
		newSessionCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

func (a *app) load(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("config")
	v, err := config.New(path)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	for key, flag := range map[string]string{
		"store.driver": "store",
		"store.path":   "store-path",
		"server.port":  "port",
	} {
		if f := flags.Lookup(flag); f != nil && f.Changed {
			if err := v.BindPFlag(key, f); err != nil {
				return err
			}
		}
	}

	cfg, err := config.Decode(v)
	if err != nil {
		return err
	}
	debug, _ := flags.GetBool("debug")

	a.cfg = cfg
	a.logger = cli.NewLogger(cmd.ErrOrStderr(), cfg.Log, debug)
	return nil
}
