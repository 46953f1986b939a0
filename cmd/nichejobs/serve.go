package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/nichejobs/internal/niche"
	"github.com/jonathan/nichejobs/internal/server"
	"github.com/jonathan/nichejobs/internal/store"
)

var serveCommand = &cobra.Command{
	Use:   "serve",
	Short: "Serve the read-only jobs API",
	RunE:  runServe,
}

var (
	servePort        int
	serveNichesDir   string
	serveDatabaseURL string
)

func init() {
	serveCommand.Flags().IntVarP(&servePort, "port", "p", 8080, "Port to listen on")
	serveCommand.Flags().StringVar(&serveNichesDir, "niches-dir", defaultNichesDir, "Directory of niche YAML configs")
	serveCommand.Flags().StringVar(&serveDatabaseURL, "db-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(serveCommand)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	reg, err := niche.LoadDir(serveNichesDir)
	if err != nil {
		return fmt.Errorf("failed to load niche configs: %w", err)
	}

	databaseURL := envOr(serveDatabaseURL, "DATABASE_URL")
	if databaseURL == "" {
		return fmt.Errorf("database URL is required (--db-url or DATABASE_URL)")
	}
	st, err := store.Connect(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer st.Close()
	if err := st.Migrate(ctx); err != nil {
		return err
	}

	return server.New(server.Config{Port: servePort}, st, reg).Start()
}
