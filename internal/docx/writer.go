// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package docx renders content blocks into a Word document using native
// paragraph styles: Heading1-Heading4 for headings, ListBullet for list
// items, and NoSpacing with a fixed-width run for code.
package docx

import (
	"fmt"
	"io"
	"strings"

	"baliance.com/gooxml/document"
	"baliance.com/gooxml/measurement"
	"baliance.com/gooxml/schema/soo/wml"

	"github.com/pdiddy/mdword/pkg/types"
)

// Paragraph style IDs written into the document.
const (
	StyleNormal     = "Normal"
	StyleListBullet = "ListBullet"
	StyleNoSpacing  = "NoSpacing"

	maxHeadingLevel = 4
)

// HeadingStyle returns the style ID for a heading level, clamped to 1-4.
func HeadingStyle(level int) string {
	level = min(max(level, 1), maxHeadingLevel)
	return fmt.Sprintf("Heading%d", level)
}

// Writer appends blocks to a single in-memory document. A Writer is created
// per conversion and discarded after Save.
type Writer struct {
	doc     *document.Document
	cfg     types.ConvertConfig
	bullets document.NumberingDefinition
	count   int
}

// New creates an empty document whose Normal style uses the configured body
// font. Zero-valued config fields take their defaults.
func New(cfg types.ConvertConfig) *Writer {
	w := &Writer{
		doc: document.New(),
		cfg: cfg.WithDefaults(),
	}
	w.initStyles()
	return w
}

func (w *Writer) initStyles() {
	normal := w.style(StyleNormal, "Normal")
	normal.RunProperties().SetFontFamily(w.cfg.Font)
	normal.RunProperties().SetSize(points(w.cfg.FontSize))

	for level := 1; level <= maxHeadingLevel; level++ {
		id := HeadingStyle(level)
		w.style(id, fmt.Sprintf("heading %d", level))
	}

	w.style(StyleListBullet, "List Bullet").SetBasedOn(StyleNormal)

	code := w.style(StyleNoSpacing, "No Spacing")
	code.SetBasedOn(StyleNormal)
	code.ParagraphProperties().SetSpacing(0, 0)

	defs := w.doc.Numbering.Definitions()
	if len(defs) == 0 {
		w.doc.Numbering.InitializeDefault()
		defs = w.doc.Numbering.Definitions()
	}
	w.bullets = defs[0]
}

// style returns the paragraph style with the given ID, adding it when the
// default style set lacks it.
func (w *Writer) style(id, name string) document.Style {
	for _, s := range w.doc.Styles.Styles() {
		if s.StyleID() == id {
			return s
		}
	}
	s := w.doc.Styles.AddStyle(id, wml.ST_StyleTypeParagraph, false)
	s.SetName(name)
	return s
}

// Append renders one block as a paragraph at the end of the document.
// Blank blocks are ignored.
func (w *Writer) Append(b types.Block) {
	switch b.Kind {
	case types.KindHeading:
		p := w.doc.AddParagraph()
		p.SetStyle(HeadingStyle(b.Level))
		p.AddRun().AddText(b.Text)
	case types.KindCode:
		p := w.doc.AddParagraph()
		p.SetStyle(StyleNoSpacing)
		run := p.AddRun()
		run.Properties().SetFontFamily(w.cfg.CodeFont)
		run.Properties().SetSize(points(w.cfg.CodeFontSize))
		for i, line := range strings.Split(b.Text, "\n") {
			if i > 0 {
				run.AddBreak()
			}
			addTextWithTabs(run, line)
		}
	case types.KindRule:
		w.doc.AddParagraph().AddRun().AddText(strings.Repeat("_", w.cfg.RuleWidth))
	case types.KindListItem:
		p := w.doc.AddParagraph()
		p.SetStyle(StyleListBullet)
		p.SetNumberingDefinition(w.bullets)
		p.SetNumberingLevel(0)
		p.AddRun().AddText(b.Text)
	case types.KindParagraph:
		w.doc.AddParagraph().AddRun().AddText(b.Text)
	default:
		return
	}
	w.count++
}

// Len returns the number of paragraphs appended so far.
func (w *Writer) Len() int {
	return w.count
}

// Save writes the document to path.
func (w *Writer) Save(path string) error {
	if err := w.doc.SaveToFile(path); err != nil {
		return fmt.Errorf("saving document %s: %w", path, err)
	}
	return nil
}

// Write serializes the document to out.
func (w *Writer) Write(out io.Writer) error {
	if err := w.doc.Save(out); err != nil {
		return fmt.Errorf("serializing document: %w", err)
	}
	return nil
}

// addTextWithTabs writes line to run with each tab character emitted as a
// Word tab element instead of a literal tab inside the text.
func addTextWithTabs(run document.Run, line string) {
	for i, part := range strings.Split(line, "\t") {
		if i > 0 {
			run.AddTab()
		}
		if part != "" {
			run.AddText(part)
		}
	}
}

func points(size float64) measurement.Distance {
	return measurement.Distance(size) * measurement.Point
}
