// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/mdword/internal/transduce"
)

var blocksCmd = &cobra.Command{
	Use:   "blocks FILE",
	Short: "Print the content blocks parsed from a Markdown file",
	Long: `Blocks shows how a Markdown file is classified before rendering: one
line per heading, paragraph, list item, code block, or rule, in order.`,
	Args: cobra.ExactArgs(1),
	RunE: runBlocks,
}

func runBlocks(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	scanner := transduce.FromText(string(data))

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		for b := range scanner.Blocks() {
			if err := enc.Encode(b); err != nil {
				return err
			}
		}
		return nil
	}

	n := 0
	for b := range scanner.Blocks() {
		n++
		fmt.Fprintf(os.Stdout, "%4d  %s\n", n, b)
	}
	fmt.Fprintf(os.Stdout, "\n%d blocks\n", n)
	return nil
}

func init() {
	blocksCmd.Flags().Bool("json", false, "output one JSON object per block")

	rootCmd.AddCommand(blocksCmd)
}
