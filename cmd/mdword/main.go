// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the mdword CLI, which converts a
// constrained subset of Markdown into Word documents.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/mdword/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the mdword CLI.
var rootCmd = &cobra.Command{
	Use:   "mdword",
	Short: "Convert Markdown documents to Word (.docx)",
	Long: `mdword converts Markdown files to Word documents. It recognizes
headings (levels 1-4), fenced code blocks, horizontal rules, bullet and
numbered list items, and paragraphs. Bold, italic, inline code, and link
markup are stripped from body text.

Files are given as arguments, glob patterns, src=dst pairs, or a YAML
manifest. Each file converts independently; a missing or failing file does
not stop the rest of the batch.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./mdword.yaml or ~/.config/mdword/config.yaml)")
}

func initConfig() {
	d := types.DefaultConvertConfig()
	viper.SetDefault("convert.font", d.Font)
	viper.SetDefault("convert.font_size", d.FontSize)
	viper.SetDefault("convert.code_font", d.CodeFont)
	viper.SetDefault("convert.code_font_size", d.CodeFontSize)
	viper.SetDefault("convert.rule_width", d.RuleWidth)
	viper.SetDefault("convert.jobs", d.Jobs)

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("mdword")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "mdword"))
		}
	}

	// Dotted keys map to underscores: convert.font reads MDWORD_CONVERT_FONT.
	viper.SetEnvPrefix("MDWORD")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// convertConfig assembles the conversion settings from flags, environment,
// config file, and defaults, in that order of precedence.
func convertConfig() types.ConvertConfig {
	return types.ConvertConfig{
		Font:         viper.GetString("convert.font"),
		FontSize:     viper.GetFloat64("convert.font_size"),
		CodeFont:     viper.GetString("convert.code_font"),
		CodeFontSize: viper.GetFloat64("convert.code_font_size"),
		RuleWidth:    viper.GetInt("convert.rule_width"),
		Jobs:         viper.GetInt("convert.jobs"),
		Ledger:       viper.GetString("convert.ledger"),
		Force:        viper.GetBool("convert.force"),
	}.WithDefaults()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
