// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pubharvest/internal/archive"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List archived crawl runs",
	Long: `Runs lists the crawl runs recorded in the SQLite archive, newest
first, with record counts. The archive is populated by crawl when
--archive-db (or PUBHARVEST_ARCHIVE_DB) is set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		viper.BindPFlag("archive_db", cmd.Flags().Lookup("archive-db"))
		dbPath := viper.GetString("archive_db")
		if dbPath == "" {
			return fmt.Errorf("no archive database configured: set --archive-db")
		}

		store, err := archive.Open(dbPath)
		if err != nil {
			return err
		}
		defer store.Close()

		runs, err := store.Runs(context.Background())
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println("No archived runs.")
			return nil
		}

		fmt.Fprintf(os.Stdout, "%-6s  %-22s  %-8s  %s\n", "ID", "Started", "Records", "Relevant")
		for _, r := range runs {
			fmt.Fprintf(os.Stdout, "%-6d  %-22s  %-8d  %d\n", r.ID, r.StartedAt, r.Total, r.Relevant)
		}
		return nil
	},
}

func init() {
	runsCmd.Flags().String("archive-db", "", "SQLite run archive path")
	rootCmd.AddCommand(runsCmd)
}
