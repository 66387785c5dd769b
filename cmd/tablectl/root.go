// cmd/tablectl/root.go
package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"tableside/internal/adapters/out/rest"
	"tableside/internal/platform/config"
	"tableside/internal/selforder"
)

// Version of the tablectl CLI.
const Version = "0.3.0"

// Global flag values.
var (
	flagServer    string
	flagSession   string
	flagConfigDir string
)

// effective settings resolved by PersistentPreRunE (flags win over config).
var (
	serverURL string
	sessionID string
)

var rootCmd = &cobra.Command{
	Use:     "tablectl",
	Short:   "tablectl drives a table-session cart against an orderd service",
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfigDir)
		if err != nil {
			return err
		}

		serverURL = cfg.ServerURL
		if flagServer != "" {
			serverURL = flagServer
		}
		sessionID = cfg.SessionID
		if flagSession != "" {
			sessionID = flagSession
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagServer, "server", "", "orderd base URL (default: config server_url)")
	rootCmd.PersistentFlags().StringVar(&flagSession, "session", "", "table-session identifier (default: config session_id)")
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: current directory)")

	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(receiptCmd)
}

// newExecutor fetches the initial snapshot and wires an optimistic executor
// over it. Every mutation subcommand goes through this path, so the CLI
// exercises the same speculative/rollback layer the customer app uses.
func newExecutor(ctx context.Context) (*selforder.Store, *selforder.Executor, error) {
	if sessionID == "" {
		return nil, nil, errors.New("session is required (--session or config session_id)")
	}

	svc := rest.NewCartClient(serverURL, nil)
	sess := selforder.StaticSession(sessionID)

	snap, err := svc.GetCart(ctx, sess.SessionID())
	if err != nil {
		return nil, nil, fmt.Errorf("fetch cart: %w", err)
	}

	store := selforder.NewStore()
	store.SetCart(snap)
	return store, selforder.NewExecutor(store, svc, sess), nil
}
