// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package jobs builds the list of (source, destination) pairs a batch
// conversion runs over, from command-line arguments, glob patterns, or a
// YAML manifest.
package jobs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/mdword/pkg/types"
)

const docxExt = ".docx"

// Manifest is the on-disk form of a batch. Relative paths are resolved
// against the manifest's directory.
type Manifest struct {
	// OutDir is where derived destinations are placed. Empty places each
	// .docx next to its source.
	OutDir string `yaml:"out_dir,omitempty"`

	// Jobs lists the conversions. Dest may be omitted.
	Jobs []types.Job `yaml:"jobs"`
}

// DestFor derives the .docx path for src: the same base name with a .docx
// extension, inside outDir when set or beside src otherwise.
func DestFor(src, outDir string) string {
	base := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src)) + docxExt
	if outDir == "" {
		return filepath.Join(filepath.Dir(src), base)
	}
	return filepath.Join(outDir, base)
}

// Expand returns the files matching a doublestar pattern such as
// "docs/**/*.md", sorted. A pattern without glob metacharacters is returned
// unchanged so a missing file is still reported later.
func Expand(pattern string) ([]string, error) {
	if !strings.ContainsAny(pattern, "*?[{") {
		return []string{pattern}, nil
	}
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("expanding %q: %w", pattern, err)
	}
	sort.Strings(matches)
	return matches, nil
}

// FromArgs turns CLI arguments into jobs. An argument of the form
// "src=dst" names both paths; anything else is a source path or glob whose
// destinations are derived with DestFor.
func FromArgs(args []string, outDir string) ([]types.Job, error) {
	var jobs []types.Job
	for _, arg := range args {
		if src, dst, ok := strings.Cut(arg, "="); ok {
			jobs = append(jobs, types.Job{Source: src, Dest: dst})
			continue
		}
		sources, err := Expand(arg)
		if err != nil {
			return nil, err
		}
		for _, src := range sources {
			jobs = append(jobs, types.Job{Source: src, Dest: DestFor(src, outDir)})
		}
	}
	return jobs, Validate(jobs)
}

// LoadManifest reads a YAML manifest and returns its jobs with paths
// resolved and missing destinations derived. outDir, when set, overrides
// the manifest's own out_dir.
func LoadManifest(path, outDir string) ([]types.Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}

	base := filepath.Dir(path)
	if outDir == "" && m.OutDir != "" {
		outDir = resolve(base, m.OutDir)
	}

	jobs := make([]types.Job, 0, len(m.Jobs))
	for i, j := range m.Jobs {
		if j.Source == "" {
			return nil, fmt.Errorf("manifest %s: job %d has no source", path, i+1)
		}
		src := resolve(base, j.Source)
		dst := DestFor(src, outDir)
		if j.Dest != "" {
			dst = resolve(base, j.Dest)
		}
		jobs = append(jobs, types.Job{Source: src, Dest: dst})
	}
	return jobs, Validate(jobs)
}

// Validate rejects jobs with an empty path and jobs sharing a destination,
// since concurrent writers to one file would race.
func Validate(jobs []types.Job) error {
	seen := make(map[string]string, len(jobs))
	for _, j := range jobs {
		if j.Source == "" || j.Dest == "" {
			return fmt.Errorf("invalid job %q -> %q: source and destination are required", j.Source, j.Dest)
		}
		key := filepath.Clean(j.Dest)
		if prev, ok := seen[key]; ok {
			return fmt.Errorf("duplicate destination %s for %s and %s", j.Dest, prev, j.Source)
		}
		seen[key] = j.Source
	}
	return nil
}

func resolve(base, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
