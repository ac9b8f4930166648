// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/mdword/internal/convert"
	"github.com/pdiddy/mdword/internal/jobs"
	"github.com/pdiddy/mdword/internal/ledger"
	"github.com/pdiddy/mdword/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert [files, globs, or src=dst pairs...]",
	Short: "Convert Markdown files to Word documents",
	Long: `Convert renders each Markdown source to a .docx file. Destinations
default to the source name with a .docx extension, placed in --out-dir or
beside the source. Use src=dst to name a destination explicitly, or
--manifest to read the job list from YAML.

With --history, sources whose content is unchanged since their last
conversion are skipped unless --force is given.`,
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	outDir, _ := cmd.Flags().GetString("out-dir")
	manifest, _ := cmd.Flags().GetString("manifest")

	list, err := collectJobs(args, manifest, outDir)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		return fmt.Errorf("no input files: provide paths, globs, or --manifest")
	}

	cfg := convertConfig()

	var l *ledger.Ledger
	if cfg.Ledger != "" {
		l, err = ledger.Open(cfg.Ledger)
		if err != nil {
			return err
		}
		defer l.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result := convert.New(cfg, l).ConvertBatch(ctx, list, os.Stdout)
	if result.HasFailures() {
		return fmt.Errorf("%d file(s) failed conversion", result.Failed)
	}
	return nil
}

func collectJobs(args []string, manifest, outDir string) ([]types.Job, error) {
	var list []types.Job
	if manifest != "" {
		m, err := jobs.LoadManifest(manifest, outDir)
		if err != nil {
			return nil, err
		}
		list = append(list, m...)
	}
	fromArgs, err := jobs.FromArgs(args, outDir)
	if err != nil {
		return nil, err
	}
	list = append(list, fromArgs...)
	return list, jobs.Validate(list)
}

func init() {
	d := types.DefaultConvertConfig()
	convertCmd.Flags().String("out-dir", "", "directory for derived .docx files (default: beside each source)")
	convertCmd.Flags().String("manifest", "", "YAML manifest listing source/dest jobs")
	convertCmd.Flags().String("font", d.Font, "document body font")
	convertCmd.Flags().Float64("font-size", d.FontSize, "body font size in points")
	convertCmd.Flags().String("code-font", d.CodeFont, "fixed-width font for code blocks")
	convertCmd.Flags().Float64("code-font-size", d.CodeFontSize, "code block font size in points")
	convertCmd.Flags().Int("rule-width", d.RuleWidth, "underscores rendered for a horizontal rule")
	convertCmd.Flags().Int("jobs", d.Jobs, "number of files converted concurrently")
	convertCmd.Flags().String("history", "", "SQLite conversion history; enables skipping unchanged sources")
	convertCmd.Flags().Bool("force", false, "reconvert sources even when history reports them unchanged")

	for key, flag := range map[string]string{
		"convert.font":           "font",
		"convert.font_size":      "font-size",
		"convert.code_font":      "code-font",
		"convert.code_font_size": "code-font-size",
		"convert.rule_width":     "rule-width",
		"convert.jobs":           "jobs",
		"convert.ledger":         "history",
		"convert.force":          "force",
	} {
		cobra.CheckErr(viper.BindPFlag(key, convertCmd.Flags().Lookup(flag)))
	}

	rootCmd.AddCommand(convertCmd)
}
