// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"baliance.com/gooxml/document"

	"github.com/pdiddy/mdword/internal/ledger"
	"github.com/pdiddy/mdword/pkg/types"
)

const sampleMarkdown = "# Project Report\n\nIntro with **bold** and a [link](http://x).\n\n" +
	"## Setup\n\n- install\n1. run\n\n```\nmake build\n```\n\n---\n"

// setupSource writes a Markdown file into a temp dir and returns its path
// and the dir.
func setupSource(t *testing.T, name, content string) (srcPath, tmpDir string) {
	t.Helper()
	tmpDir = t.TempDir()
	srcPath = filepath.Join(tmpDir, name)
	if err := os.WriteFile(srcPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return srcPath, tmpDir
}

func TestConvertFile(t *testing.T) {
	src, tmpDir := setupSource(t, "report.md", sampleMarkdown)
	dst := filepath.Join(tmpDir, "out", "nested", "report.docx")

	stats, err := New(types.ConvertConfig{}, nil).ConvertFile(context.Background(), src, dst)
	if err != nil {
		t.Fatalf("ConvertFile: %v", err)
	}

	want := Stats{Headings: 2, Paragraphs: 1, ListItems: 2, CodeBlocks: 1, Rules: 1}
	if stats != want {
		t.Errorf("stats = %+v, want %+v", stats, want)
	}
	if stats.Blocks() != 7 {
		t.Errorf("Blocks() = %d, want 7", stats.Blocks())
	}

	doc, err := document.Open(dst)
	if err != nil {
		t.Fatalf("opening output: %v", err)
	}
	paras := doc.Paragraphs()
	if len(paras) != 7 {
		t.Fatalf("paragraphs = %d, want 7", len(paras))
	}
	if got := paras[0].Style(); got != "Heading1" {
		t.Errorf("first paragraph style = %q, want Heading1", got)
	}
	var text strings.Builder
	for _, r := range paras[1].Runs() {
		text.WriteString(r.Text())
	}
	if got := text.String(); got != "Intro with bold and a link." {
		t.Errorf("paragraph text = %q", got)
	}
}

func TestConvertFileErrors(t *testing.T) {
	conv := New(types.ConvertConfig{}, nil)
	tmpDir := t.TempDir()

	_, err := conv.ConvertFile(context.Background(), filepath.Join(tmpDir, "absent.md"), filepath.Join(tmpDir, "a.docx"))
	if !errors.Is(err, ErrMissingInput) {
		t.Errorf("missing source: err = %v, want ErrMissingInput", err)
	}

	src, _ := setupSource(t, "ok.md", "text")
	blocker := filepath.Join(tmpDir, "blocker")
	if err := os.WriteFile(blocker, []byte("file"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = conv.ConvertFile(context.Background(), src, filepath.Join(blocker, "out.docx"))
	var convErr *ConversionError
	if !errors.As(err, &convErr) {
		t.Fatalf("unwritable dest: err = %v, want *ConversionError", err)
	}
	if convErr.Op != "write" {
		t.Errorf("op = %q, want write", convErr.Op)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := conv.ConvertFile(ctx, src, filepath.Join(tmpDir, "c.docx")); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled: err = %v, want context.Canceled", err)
	}
}

func TestConvertJob(t *testing.T) {
	tests := []struct {
		name       string
		writeSrc   bool
		blockDest  bool
		wantStatus types.JobStatus
		wantLog    string
	}{
		{
			name:       "successful conversion",
			writeSrc:   true,
			wantStatus: types.StatusConverted,
			wantLog:    "converted:",
		},
		{
			name:       "missing source",
			wantStatus: types.StatusSkipped,
			wantLog:    "warning: file not found:",
		},
		{
			name:       "unwritable destination",
			writeSrc:   true,
			blockDest:  true,
			wantStatus: types.StatusFailed,
			wantLog:    "failed:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			job := types.Job{
				Source: filepath.Join(tmpDir, "PROJECT_REPORT_FOR_WORD.md"),
				Dest:   filepath.Join(tmpDir, "PROJECT_REPORT.docx"),
			}
			if tt.writeSrc {
				if err := os.WriteFile(job.Source, []byte(sampleMarkdown), 0o644); err != nil {
					t.Fatal(err)
				}
			}
			if tt.blockDest {
				blocker := filepath.Join(tmpDir, "blocker")
				if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
					t.Fatal(err)
				}
				job.Dest = filepath.Join(blocker, "out.docx")
			}

			res := New(types.ConvertConfig{}, nil).ConvertJob(context.Background(), job)
			if res.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q (err %v)", res.Status, tt.wantStatus, res.Err)
			}

			var log bytes.Buffer
			Report(&log, res)
			if !strings.Contains(log.String(), tt.wantLog) {
				t.Errorf("log output %q does not contain %q", log.String(), tt.wantLog)
			}
		})
	}
}

func TestConvertJobLedger(t *testing.T) {
	ctx := context.Background()
	src, tmpDir := setupSource(t, "doc.md", "# One")
	job := types.Job{Source: src, Dest: filepath.Join(tmpDir, "doc.docx")}

	l, err := ledger.Open(filepath.Join(tmpDir, "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer l.Close()
	conv := New(types.ConvertConfig{}, l)

	if res := conv.ConvertJob(ctx, job); res.Status != types.StatusConverted {
		t.Fatalf("first run: status = %q (err %v)", res.Status, res.Err)
	}

	res := conv.ConvertJob(ctx, job)
	if res.Status != types.StatusSkipped || res.Reason != "unchanged" {
		t.Errorf("second run: status = %q reason = %q, want skipped/unchanged", res.Status, res.Reason)
	}

	forced := New(types.ConvertConfig{Force: true}, l)
	if res := forced.ConvertJob(ctx, job); res.Status != types.StatusConverted {
		t.Errorf("forced run: status = %q, want converted", res.Status)
	}

	restyled := New(types.ConvertConfig{Font: "Arial"}, l)
	if res := restyled.ConvertJob(ctx, job); res.Status != types.StatusConverted {
		t.Errorf("font change: status = %q, want converted", res.Status)
	}
	if res := restyled.ConvertJob(ctx, job); res.Status != types.StatusSkipped {
		t.Errorf("same font again: status = %q, want skipped", res.Status)
	}
	if res := conv.ConvertJob(ctx, job); res.Status != types.StatusConverted {
		t.Errorf("font restored: status = %q, want converted", res.Status)
	}

	if err := os.WriteFile(src, []byte("# Two"), 0o644); err != nil {
		t.Fatal(err)
	}
	if res := conv.ConvertJob(ctx, job); res.Status != types.StatusConverted {
		t.Errorf("changed source: status = %q, want converted", res.Status)
	}

	if err := os.Remove(job.Dest); err != nil {
		t.Fatal(err)
	}
	if res := conv.ConvertJob(ctx, job); res.Status != types.StatusConverted {
		t.Errorf("deleted dest: status = %q, want converted", res.Status)
	}

	entries, err := l.History(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Blocks != 1 {
		t.Errorf("history = %+v, want one entry with 1 block", entries)
	}
}

func TestConvertBatch(t *testing.T) {
	tmpDir := t.TempDir()

	// a and c succeed, b is missing, d cannot be written.
	for _, name := range []string{"a.md", "c.md", "d.md"} {
		if err := os.WriteFile(filepath.Join(tmpDir, name), []byte("# "+name), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	blocker := filepath.Join(tmpDir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	jobs := []types.Job{
		{Source: filepath.Join(tmpDir, "a.md"), Dest: filepath.Join(tmpDir, "out", "a.docx")},
		{Source: filepath.Join(tmpDir, "b.md"), Dest: filepath.Join(tmpDir, "out", "b.docx")},
		{Source: filepath.Join(tmpDir, "c.md"), Dest: filepath.Join(tmpDir, "out", "c.docx")},
		{Source: filepath.Join(tmpDir, "d.md"), Dest: filepath.Join(blocker, "d.docx")},
	}

	for _, workers := range []int{1, 3} {
		var log bytes.Buffer
		result := New(types.ConvertConfig{Jobs: workers}, nil).ConvertBatch(context.Background(), jobs, &log)

		if result.Converted != 2 {
			t.Errorf("jobs=%d: converted = %d, want 2", workers, result.Converted)
		}
		if result.Skipped != 1 {
			t.Errorf("jobs=%d: skipped = %d, want 1", workers, result.Skipped)
		}
		if result.Failed != 1 {
			t.Errorf("jobs=%d: failed = %d, want 1", workers, result.Failed)
		}
		if !result.HasFailures() {
			t.Error("HasFailures should be true")
		}
		if result.Total() != 4 {
			t.Errorf("total = %d, want 4", result.Total())
		}

		output := log.String()
		if !strings.Contains(output, "Batch summary:") {
			t.Error("batch output should contain summary line")
		}
		ia := strings.Index(output, "a.docx")
		ib := strings.Index(output, "b.md")
		ic := strings.Index(output, "c.docx")
		id := strings.Index(output, "d.md")
		if !(ia >= 0 && ia < ib && ib < ic && ic < id) {
			t.Errorf("jobs=%d: report not in job order:\n%s", workers, output)
		}
	}
}

func TestConversionErrorUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := error(&ConversionError{Source: "a.md", Dest: "a.docx", Op: "write", Err: cause})
	if !errors.Is(err, cause) {
		t.Error("ConversionError should unwrap to its cause")
	}
	if got := err.Error(); got != "write a.md: disk full" {
		t.Errorf("Error() = %q", got)
	}
}
