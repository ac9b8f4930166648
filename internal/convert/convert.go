// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert runs Markdown-to-Word conversions for single files and
// batches. Each job is independent: a missing source is skipped with a
// warning and a failing job is reported without stopping the batch.
package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sourcegraph/conc/pool"

	"github.com/pdiddy/mdword/internal/docx"
	"github.com/pdiddy/mdword/internal/ledger"
	"github.com/pdiddy/mdword/internal/transduce"
	"github.com/pdiddy/mdword/pkg/types"
)

// ErrMissingInput indicates that a job's source file does not exist.
var ErrMissingInput = errors.New("source file not found")

// ConversionError reports a failed step of one file's conversion.
type ConversionError struct {
	Source string
	Dest   string
	Op     string // "read", "write", "ledger"
	Err    error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Source, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }

// Stats counts the blocks rendered for one document.
type Stats struct {
	Headings   int
	Paragraphs int
	ListItems  int
	CodeBlocks int
	Rules      int
}

// Blocks returns the total number of rendered blocks.
func (s Stats) Blocks() int {
	return s.Headings + s.Paragraphs + s.ListItems + s.CodeBlocks + s.Rules
}

func (s *Stats) add(kind types.BlockKind) {
	switch kind {
	case types.KindHeading:
		s.Headings++
	case types.KindParagraph:
		s.Paragraphs++
	case types.KindListItem:
		s.ListItems++
	case types.KindCode:
		s.CodeBlocks++
	case types.KindRule:
		s.Rules++
	}
}

// Result is the outcome of one job.
type Result struct {
	Job    types.Job
	Status types.JobStatus
	Stats  Stats
	// Reason explains a skip; Err is set for failures and missing inputs.
	Reason string
	Err    error
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
}

// Total returns the total number of jobs processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any job failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Converter renders Markdown files to .docx with a fixed configuration.
type Converter struct {
	cfg    types.ConvertConfig
	ledger *ledger.Ledger
}

// New returns a Converter. l may be nil, in which case every job is
// converted and nothing is recorded.
func New(cfg types.ConvertConfig, l *ledger.Ledger) *Converter {
	return &Converter{cfg: cfg.WithDefaults(), ledger: l}
}

// ConvertFile reads the Markdown at src and writes the rendered document to
// dst, creating dst's directory if needed.
func (c *Converter) ConvertFile(ctx context.Context, src, dst string) (Stats, error) {
	var stats Stats
	if err := ctx.Err(); err != nil {
		return stats, err
	}

	data, err := os.ReadFile(src)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return stats, fmt.Errorf("%w: %s", ErrMissingInput, src)
		}
		return stats, &ConversionError{Source: src, Dest: dst, Op: "read", Err: err}
	}

	w := docx.New(c.cfg)
	for b := range transduce.FromText(string(data)).Blocks() {
		w.Append(b)
		stats.add(b.Kind)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return stats, &ConversionError{Source: src, Dest: dst, Op: "write", Err: err}
	}
	if err := w.Save(dst); err != nil {
		return stats, &ConversionError{Source: src, Dest: dst, Op: "write", Err: err}
	}
	return stats, nil
}

// ConvertJob converts one job and classifies the outcome. When a ledger is
// configured and Force is off, a destination already built from identical
// source content with the same rendering settings is skipped.
func (c *Converter) ConvertJob(ctx context.Context, job types.Job) Result {
	res := Result{Job: job}

	if err := ctx.Err(); err != nil {
		res.Status, res.Err = types.StatusFailed, err
		return res
	}

	if _, err := os.Stat(job.Source); errors.Is(err, fs.ErrNotExist) {
		res.Status, res.Reason = types.StatusSkipped, "not found"
		res.Err = fmt.Errorf("%w: %s", ErrMissingInput, job.Source)
		return res
	}

	var hash string
	if c.ledger != nil {
		h, err := ledger.HashSource(job.Source, c.cfg.RenderKey())
		if err != nil {
			res.Status = types.StatusFailed
			res.Err = &ConversionError{Source: job.Source, Dest: job.Dest, Op: "read", Err: err}
			return res
		}
		hash = h
		if !c.cfg.Force && fileExists(job.Dest) {
			same, err := c.ledger.Unchanged(ctx, job.Dest, hash)
			if err != nil {
				res.Status = types.StatusFailed
				res.Err = &ConversionError{Source: job.Source, Dest: job.Dest, Op: "ledger", Err: err}
				return res
			}
			if same {
				res.Status, res.Reason = types.StatusSkipped, "unchanged"
				return res
			}
		}
	}

	stats, err := c.ConvertFile(ctx, job.Source, job.Dest)
	res.Stats = stats
	if err != nil {
		res.Err = err
		res.Status = types.StatusFailed
		if errors.Is(err, ErrMissingInput) {
			res.Status, res.Reason = types.StatusSkipped, "not found"
		}
		return res
	}

	if c.ledger != nil {
		entry := ledger.Entry{Dest: job.Dest, Source: job.Source, SourceHash: hash, Blocks: stats.Blocks()}
		if err := c.ledger.Record(ctx, entry); err != nil {
			res.Status = types.StatusFailed
			res.Err = &ConversionError{Source: job.Source, Dest: job.Dest, Op: "ledger", Err: err}
			return res
		}
	}

	res.Status = types.StatusConverted
	return res
}

// ConvertBatch runs jobs on up to cfg.Jobs goroutines, then prints one
// status line per job to w in job order, followed by a summary.
func (c *Converter) ConvertBatch(ctx context.Context, jobs []types.Job, w io.Writer) BatchResult {
	results := make([]Result, len(jobs))

	p := pool.New().WithMaxGoroutines(c.cfg.Jobs)
	for i, job := range jobs {
		p.Go(func() {
			results[i] = c.ConvertJob(ctx, job)
		})
	}
	p.Wait()

	var summary BatchResult
	for _, r := range results {
		Report(w, r)
		switch r.Status {
		case types.StatusConverted:
			summary.Converted++
		case types.StatusSkipped:
			summary.Skipped++
		case types.StatusFailed:
			summary.Failed++
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		summary.Converted, summary.Skipped, summary.Failed, summary.Total())
	return summary
}

// Report prints the status line for one result.
func Report(w io.Writer, r Result) {
	switch r.Status {
	case types.StatusConverted:
		fmt.Fprintf(w, "converted: %s (%d blocks)\n", r.Job.Dest, r.Stats.Blocks())
	case types.StatusSkipped:
		if errors.Is(r.Err, ErrMissingInput) {
			fmt.Fprintf(w, "warning: file not found: %s\n", r.Job.Source)
		}
		fmt.Fprintf(w, "skipped:   %s (%s)\n", r.Job.Source, r.Reason)
	default:
		fmt.Fprintf(w, "failed:    %s (%v)\n", r.Job.Source, r.Err)
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
