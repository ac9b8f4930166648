// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package transduce turns Markdown source lines into a stream of content
// blocks. It recognizes a fixed subset: four heading levels, fenced code,
// "---" rules, bullet and numbered list items, and paragraphs. Malformed
// input is never an error; every input yields best-effort blocks.
package transduce

import (
	"iter"
	"strings"

	"github.com/pdiddy/mdword/pkg/types"
)

const fence = "```"

// lineClass is the result of prefix dispatch on a trimmed, non-blank line.
type lineClass int

const (
	classHeading1 lineClass = iota + 1
	classHeading2
	classHeading3
	classHeading4
	classFence
	classRule
	classText
)

// headingPrefix maps heading classes to the prefix stripped from the line.
var headingPrefix = map[lineClass]string{
	classHeading1: "# ",
	classHeading2: "## ",
	classHeading3: "### ",
	classHeading4: "#### ",
}

// classify checks prefixes in priority order. The deeper heading prefix is
// excluded at each level, so "#### " is only reached last.
func classify(line string) lineClass {
	switch {
	case strings.HasPrefix(line, "# ") && !strings.HasPrefix(line, "## "):
		return classHeading1
	case strings.HasPrefix(line, "## ") && !strings.HasPrefix(line, "### "):
		return classHeading2
	case strings.HasPrefix(line, "### ") && !strings.HasPrefix(line, "#### "):
		return classHeading3
	case strings.HasPrefix(line, "#### "):
		return classHeading4
	case strings.HasPrefix(line, fence):
		return classFence
	case strings.HasPrefix(line, "---"):
		return classRule
	default:
		return classText
	}
}

// SplitLines splits source text into lines. CRLF and lone CR line endings
// are normalized to LF first.
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}

// Scanner walks source lines with a single forward cursor and yields one
// block per call to Next. It is not restartable.
type Scanner struct {
	lines  []string
	cursor int
}

// NewScanner returns a Scanner positioned at the first line. The slice is
// read but never modified.
func NewScanner(lines []string) *Scanner {
	return &Scanner{lines: lines}
}

// FromText splits text with SplitLines and returns a Scanner over it.
func FromText(text string) *Scanner {
	return NewScanner(SplitLines(text))
}

// Cursor returns the index of the next unread line. It never decreases and
// never exceeds the number of lines.
func (s *Scanner) Cursor() int {
	return s.cursor
}

// Next returns the next block, or false once input is exhausted. Blank
// lines are consumed silently.
func (s *Scanner) Next() (types.Block, bool) {
	for s.cursor < len(s.lines) {
		line := strings.TrimSpace(s.lines[s.cursor])
		s.cursor++
		if line == "" {
			continue
		}

		switch class := classify(line); class {
		case classHeading1, classHeading2, classHeading3, classHeading4:
			text := strings.TrimSpace(strings.TrimPrefix(line, headingPrefix[class]))
			return types.Heading(int(class-classHeading1)+1, text), true
		case classFence:
			if b, ok := s.code(); ok {
				return b, true
			}
		case classRule:
			return types.Rule(), true
		default:
			cleaned := Clean(line)
			if text, ok := listText(cleaned); ok {
				return types.ListItem(text), true
			}
			return types.Paragraph(cleaned), true
		}
	}
	return types.Block{}, false
}

// code consumes raw lines after an opening fence up to and including the
// closing fence. An unterminated fence runs to end of input. A fence with
// no content yields no block.
func (s *Scanner) code() (types.Block, bool) {
	start := s.cursor
	for s.cursor < len(s.lines) && !strings.HasPrefix(strings.TrimSpace(s.lines[s.cursor]), fence) {
		s.cursor++
	}
	body := s.lines[start:s.cursor]
	if s.cursor < len(s.lines) {
		s.cursor++
	}
	if len(body) == 0 {
		return types.Block{}, false
	}
	return types.Code(strings.Join(body, "\n")), true
}

// Blocks returns the remaining blocks as a single-use sequence. Ranging over
// it advances the Scanner.
func (s *Scanner) Blocks() iter.Seq[types.Block] {
	return func(yield func(types.Block) bool) {
		for {
			b, ok := s.Next()
			if !ok || !yield(b) {
				return
			}
		}
	}
}

// Transduce converts Markdown text to its full block sequence.
func Transduce(text string) []types.Block {
	var blocks []types.Block
	for b := range FromText(text).Blocks() {
		blocks = append(blocks, b)
	}
	return blocks
}
