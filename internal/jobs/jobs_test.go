// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package jobs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/mdword/pkg/types"
)

func TestDestFor(t *testing.T) {
	tests := []struct {
		src, outDir, want string
	}{
		{"REPORT.md", "", "REPORT.docx"},
		{filepath.Join("docs", "api.md"), "", filepath.Join("docs", "api.docx")},
		{filepath.Join("docs", "api.md"), "build", filepath.Join("build", "api.docx")},
		{"notes", "", "notes.docx"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DestFor(tt.src, tt.outDir))
	}
}

func TestExpand(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.md", "b")
	writeFile(t, dir, "a.md", "a")
	writeFile(t, dir, "skip.txt", "x")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	writeFile(t, filepath.Join(dir, "sub"), "c.md", "c")

	got, err := Expand(filepath.Join(dir, "**", "*.md"))
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.md"),
		filepath.Join(dir, "b.md"),
		filepath.Join(dir, "sub", "c.md"),
	}, got)

	literal := filepath.Join(dir, "missing.md")
	got, err = Expand(literal)
	require.NoError(t, err)
	assert.Equal(t, []string{literal}, got, "literal path passes through")
}

func TestFromArgs(t *testing.T) {
	jobs, err := FromArgs([]string{"PROJECT_REPORT_FOR_WORD.md=PROJECT_REPORT.docx", "api.md"}, "out")
	require.NoError(t, err)
	assert.Equal(t, []types.Job{
		{Source: "PROJECT_REPORT_FOR_WORD.md", Dest: "PROJECT_REPORT.docx"},
		{Source: "api.md", Dest: filepath.Join("out", "api.docx")},
	}, jobs)
}

func TestFromArgsDuplicateDest(t *testing.T) {
	_, err := FromArgs([]string{filepath.Join("a", "x.md"), filepath.Join("b", "x.md")}, "out")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate destination")
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "batch.yaml")
	writeFile(t, dir, "batch.yaml", `out_dir: build
jobs:
  - source: PROJECT_REPORT_FOR_WORD.md
    dest: PROJECT_REPORT.docx
  - source: docs/API_DOCUMENTATION_FOR_WORD.md
`)

	jobs, err := LoadManifest(manifest, "")
	require.NoError(t, err)
	assert.Equal(t, []types.Job{
		{Source: filepath.Join(dir, "PROJECT_REPORT_FOR_WORD.md"), Dest: filepath.Join(dir, "PROJECT_REPORT.docx")},
		{Source: filepath.Join(dir, "docs", "API_DOCUMENTATION_FOR_WORD.md"), Dest: filepath.Join(dir, "build", "API_DOCUMENTATION_FOR_WORD.docx")},
	}, jobs)

	override := filepath.Join(dir, "elsewhere")
	jobs, err = LoadManifest(manifest, override)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(override, "API_DOCUMENTATION_FOR_WORD.docx"), jobs[1].Dest)
}

func TestLoadManifestErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{
			name:    "malformed yaml",
			content: "jobs: [unclosed",
			errMsg:  "parsing manifest",
		},
		{
			name:    "missing source",
			content: "jobs:\n  - dest: out.docx\n",
			errMsg:  "has no source",
		},
		{
			name:    "duplicate destination",
			content: "jobs:\n  - source: a.md\n    dest: x.docx\n  - source: b.md\n    dest: x.docx\n",
			errMsg:  "duplicate destination",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, "m.yaml", tt.content)
			_, err := LoadManifest(filepath.Join(dir, "m.yaml"), "")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}

	_, err := LoadManifest(filepath.Join(t.TempDir(), "absent.yaml"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading manifest")
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}
