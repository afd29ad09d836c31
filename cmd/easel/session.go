package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aretw0/easel/internal/cli"
	"github.com/spf13/cobra"
)

func newSessionCmd(a *app) *cobra.Command {
	sessionCmd := &cobra.Command{
		Use:   "session",
		Short: "Manage persisted editing sessions",
		Long:  `List, inspect, and remove session snapshots in the configured store.`,
	}

	lsCmd := &cobra.Command{
		Use:   "ls",
		Short: "List all sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := cli.OpenBackend(a.cfg, a.logger)
			if err != nil {
				return err
			}
			defer backend.Close()

			ids, err := backend.Store.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("error listing sessions: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(ids) == 0 {
				fmt.Fprintln(out, "No sessions found.")
				return nil
			}
			fmt.Fprintln(out, "Sessions:")
			for _, id := range ids {
				fmt.Fprintln(out, "- "+id)
			}
			return nil
		},
	}

	inspectCmd := &cobra.Command{
		Use:   "inspect <session-id>",
		Short: "Print a session snapshot as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := cli.OpenBackend(a.cfg, a.logger)
			if err != nil {
				return err
			}
			defer backend.Close()

			snap, err := backend.Store.Load(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("error loading session '%s': %w", args[0], err)
			}
			data, err := json.MarshalIndent(snap, "", "  ")
			if err != nil {
				return fmt.Errorf("error marshaling snapshot: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}

	rmCmd := &cobra.Command{
		Use:   "rm <session-id>...",
		Short: "Remove one or more sessions",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := cli.OpenBackend(a.cfg, a.logger)
			if err != nil {
				return err
			}
			defer backend.Close()

			out := cmd.OutOrStdout()
			var errs []error
			for _, id := range args {
				if err := backend.Store.Delete(cmd.Context(), id); err != nil {
					errs = append(errs, fmt.Errorf("error removing '%s': %w", id, err))
					continue
				}
				fmt.Fprintf(out, "Removed session '%s'\n", id)
			}
			return errors.Join(errs...)
		},
	}

	sessionCmd.AddCommand(lsCmd, inspectCmd, rmCmd)
	return sessionCmd
}
