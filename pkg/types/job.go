// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// JobStatus is the outcome of converting one source file.
type JobStatus string

const (
	StatusConverted JobStatus = "converted"
	StatusSkipped   JobStatus = "skipped"
	StatusFailed    JobStatus = "failed"
)

// Job pairs a Markdown source with the .docx destination it renders to.
type Job struct {
	// Source is the path to the UTF-8 Markdown input.
	Source string `json:"source" yaml:"source"`

	// Dest is the path of the Word document to write.
	Dest string `json:"dest" yaml:"dest"`
}
