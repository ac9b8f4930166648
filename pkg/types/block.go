// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the data shared between the transducer, the document
// writer, and the conversion pipeline.
package types

import "fmt"

// BlockKind tags the variant carried by a Block.
type BlockKind string

const (
	KindBlank     BlockKind = "blank"
	KindHeading   BlockKind = "heading"
	KindCode      BlockKind = "code"
	KindRule      BlockKind = "rule"
	KindListItem  BlockKind = "list_item"
	KindParagraph BlockKind = "paragraph"
)

// Block is one renderable unit derived from one or more consecutive source
// lines. Level is set only for headings (1-4). Text is empty for rules.
type Block struct {
	Kind  BlockKind `json:"kind" yaml:"kind"`
	Level int       `json:"level,omitempty" yaml:"level,omitempty"`
	Text  string    `json:"text,omitempty" yaml:"text,omitempty"`
}

// Heading returns a heading block at the given level.
func Heading(level int, text string) Block {
	return Block{Kind: KindHeading, Level: level, Text: text}
}

// Code returns a code block holding raw, unmodified text.
func Code(text string) Block {
	return Block{Kind: KindCode, Text: text}
}

// Rule returns a horizontal rule block.
func Rule() Block {
	return Block{Kind: KindRule}
}

// ListItem returns a bulleted list item.
func ListItem(text string) Block {
	return Block{Kind: KindListItem, Text: text}
}

// Paragraph returns a body paragraph.
func Paragraph(text string) Block {
	return Block{Kind: KindParagraph, Text: text}
}

func (b Block) String() string {
	switch b.Kind {
	case KindHeading:
		return fmt.Sprintf("heading(%d) %q", b.Level, b.Text)
	case KindRule:
		return "rule"
	default:
		return fmt.Sprintf("%s %q", b.Kind, b.Text)
	}
}
