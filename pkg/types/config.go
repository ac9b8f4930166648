package types

import "fmt"

// ConvertConfig holds settings for Markdown-to-Word conversion.
type ConvertConfig struct {
	// Font is the document-wide body font (default "Times New Roman").
	Font string `json:"font" yaml:"font"`

	// FontSize is the body font size in points (default 12).
	FontSize float64 `json:"font_size" yaml:"font_size"`

	// CodeFont is the fixed-width font used for code blocks (default "Courier New").
	CodeFont string `json:"code_font" yaml:"code_font"`

	// CodeFontSize is the code block font size in points (default 10).
	CodeFontSize float64 `json:"code_font_size" yaml:"code_font_size"`

	// RuleWidth is the number of underscores rendered for a horizontal rule (default 50).
	RuleWidth int `json:"rule_width" yaml:"rule_width"`

	// Jobs is the number of files converted concurrently (default 1).
	Jobs int `json:"jobs" yaml:"jobs"`

	// Ledger is the path of the SQLite conversion history. Empty disables it.
	Ledger string `json:"ledger,omitempty" yaml:"ledger,omitempty"`

	// Force reconverts sources the ledger reports as unchanged.
	Force bool `json:"force" yaml:"force"`
}

// DefaultConvertConfig returns the settings used when neither flags nor a
// config file override them.
func DefaultConvertConfig() ConvertConfig {
	return ConvertConfig{
		Font:         "Times New Roman",
		FontSize:     12,
		CodeFont:     "Courier New",
		CodeFontSize: 10,
		RuleWidth:    50,
		Jobs:         1,
	}
}

// WithDefaults fills zero-valued fields from DefaultConvertConfig.
func (c ConvertConfig) WithDefaults() ConvertConfig {
	d := DefaultConvertConfig()
	if c.Font == "" {
		c.Font = d.Font
	}
	if c.FontSize <= 0 {
		c.FontSize = d.FontSize
	}
	if c.CodeFont == "" {
		c.CodeFont = d.CodeFont
	}
	if c.CodeFontSize <= 0 {
		c.CodeFontSize = d.CodeFontSize
	}
	if c.RuleWidth <= 0 {
		c.RuleWidth = d.RuleWidth
	}
	if c.Jobs <= 0 {
		c.Jobs = d.Jobs
	}
	return c
}

// RenderKey identifies the settings that affect a rendered document. Jobs,
// Ledger, and Force do not change output and are left out.
func (c ConvertConfig) RenderKey() string {
	c = c.WithDefaults()
	return fmt.Sprintf("font=%s;size=%g;code_font=%s;code_size=%g;rule=%d",
		c.Font, c.FontSize, c.CodeFont, c.CodeFontSize, c.RuleWidth)
}
