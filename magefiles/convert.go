//go:build mage

package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// manifestFile is the job list Convert reads when present.
const manifestFile = "mdword-manifest.yaml"

// Convert builds the CLI and converts the documents listed in
// mdword-manifest.yaml, or every top-level *_FOR_WORD.md file when no
// manifest exists.
func Convert() error {
	mg.Deps(Build)
	bin := filepath.Join(binDir, binName)

	if _, err := os.Stat(manifestFile); err == nil {
		return sh.RunV(bin, "convert", "--manifest", manifestFile)
	}
	return sh.RunV(bin, "convert", "*_FOR_WORD.md")
}
