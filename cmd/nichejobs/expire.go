package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/nichejobs/internal/store"
)

var expireCommand = &cobra.Command{
	Use:   "expire",
	Short: "Mark jobs past their application deadline as expired",
	RunE:  runExpire,
}

var expireDatabaseURL string

func init() {
	expireCommand.Flags().StringVar(&expireDatabaseURL, "db-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(expireCommand)
}

func runExpire(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	databaseURL := envOr(expireDatabaseURL, "DATABASE_URL")
	if databaseURL == "" {
		return fmt.Errorf("database URL is required (--db-url or DATABASE_URL)")
	}
	st, err := store.Connect(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer st.Close()

	n, err := st.ExpireOldJobs(ctx, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return err
	}
	fmt.Printf("expired %d jobs\n", n)
	return nil
}
