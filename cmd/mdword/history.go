// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/mdword/internal/ledger"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List conversions recorded in the history database",
	RunE:  runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("history")
	if path == "" {
		path = viper.GetString("convert.ledger")
	}
	if path == "" {
		return fmt.Errorf("history database required: pass --history or set convert.ledger")
	}

	l, err := ledger.Open(path)
	if err != nil {
		return err
	}
	defer l.Close()

	entries, err := l.History(context.Background())
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No conversions recorded.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-20s  %-6s  %-12s  %s\n", "Converted", "Blocks", "Hash", "Destination")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 80))
	for _, e := range entries {
		hash := e.SourceHash
		if len(hash) > 12 {
			hash = hash[:12]
		}
		fmt.Fprintf(os.Stdout, "%-20s  %-6d  %-12s  %s\n",
			e.ConvertedAt.Local().Format(time.DateTime), e.Blocks, hash, e.Dest)
	}
	return nil
}

func init() {
	historyCmd.Flags().String("history", "", "SQLite conversion history (default: convert.ledger config)")

	rootCmd.AddCommand(historyCmd)
}
