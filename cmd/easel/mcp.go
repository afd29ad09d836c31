package main

import (
	"errors"

	"github.com/aretw0/easel/internal/cli"
	"github.com/aretw0/easel/pkg/adapters/mcp"
	"github.com/aretw0/easel/pkg/adapters/memory"
	"github.com/aretw0/easel/pkg/session"
	"github.com/spf13/cobra"
)

func newMCPCmd(a *app) *cobra.Command {
	var sessionID string

	cmd := &cobra.Command{
		Use:   "mcp [deck]",
		Short: "Run the Model Context Protocol (MCP) server over stdio",
		Long: `Exposes one editing session as MCP tools, so AI agents can read, patch,
score and render the deck.

With a deck argument the session lives in memory and starts from that deck.
With --session it attaches to a persisted session in the configured store.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var mgr *session.Manager
			switch {
			case sessionID != "":
				backend, err := cli.OpenBackend(a.cfg, a.logger)
				if err != nil {
					return err
				}
				defer backend.Close()
				mgr = backend.Manager(session.WithLogger(a.logger))
				if _, err := mgr.Snapshot(ctx, sessionID); err != nil {
					return err
				}
			case len(args) == 1:
				sessionID = "deck"
				mgr = session.NewManager(memory.NewStore(), session.WithLogger(a.logger))
				if err := seedSession(ctx, a, mgr, args[0], sessionID); err != nil {
					return err
				}
			default:
				return errors.New("mcp needs a deck or --session")
			}

			a.logger.Info("MCP server starting on stdio", "session_id", sessionID)
			srv := mcp.NewServer(mgr, sessionID, mcp.WithLogger(a.logger))
			return srv.ServeStdio()
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "Attach to this persisted session instead of a deck")
	return cmd
}
