// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/autoblog/internal/history"
	"github.com/pdiddy/autoblog/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List or export previously generated articles",
	Long: `History reads the generation ledger. By default it lists the most recent
articles. Use --run to list one run, or --export to write every entry to a
YAML file.`,
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	runID, _ := cmd.Flags().GetString("run")
	exportPath, _ := cmd.Flags().GetString("export")

	if appConfig.History.DBPath == "" {
		return fmt.Errorf("history is disabled: no database path configured")
	}
	store, err := history.Open(appConfig.History.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	if exportPath != "" {
		n, err := store.Export(ctx, exportPath)
		if err != nil {
			return err
		}
		fmt.Printf("Exported %d entries to %s\n", n, exportPath)
		return nil
	}

	var entries []types.HistoryEntry
	if runID != "" {
		entries, err = store.ByRun(ctx, runID)
	} else {
		entries, err = store.Recent(ctx, limit)
	}
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Println("No articles recorded.")
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(os.Stdout, "%s  %-8s  %s\n", e.CreatedAt.Local().Format("2006-01-02 15:04"), e.Type, e.Title)
		fmt.Fprintf(os.Stdout, "    %s  run=%s", e.Path, e.RunID)
		if len(e.Tags) > 0 {
			fmt.Fprintf(os.Stdout, "  tags=%s", strings.Join(e.Tags, ","))
		}
		fmt.Fprintln(os.Stdout)
	}
	return nil
}

func init() {
	historyCmd.Flags().Int("limit", 20, "number of recent entries to list")
	historyCmd.Flags().String("run", "", "list the entries of one run ID")
	historyCmd.Flags().String("export", "", "write every entry to this YAML file")

	rootCmd.AddCommand(historyCmd)
}
