package snapshot

import (
	"context"
	"fmt"
	"os"

	"github.com/google/go-cmp/cmp"

	"github.com/arangokit/modelgen/pkg/action/generate"
	pubcompiler "github.com/arangokit/modelgen/pkg/compiler"
	"github.com/arangokit/modelgen/pkg/manifest"
)

// Generate runs a full generation and records the result in the manifest
// under the given name and version.
func Generate(ctx context.Context, opts *pubcompiler.Options, manifestPath, snapshotName, snapshotVersion string) (string, error) {
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return "", err
	}

	outFile, err := generate.Run(ctx, opts)
	if err != nil {
		return "", err
	}

	sum, err := manifest.Checksum(outFile)
	if err != nil {
		return "", err
	}
	m.AddSnapshot(manifest.Snapshot{
		Name:     snapshotName,
		Version:  snapshotVersion,
		File:     outFile,
		Checksum: sum,
	})

	if err := m.Save(manifestPath); err != nil {
		return "", err
	}

	return outFile, nil
}

// List returns all snapshots recorded in the manifest.
func List(manifestPath string) (*manifest.Manifest, error) {
	return manifest.Load(manifestPath)
}

// DiffCurrentWithPrevious locates the current and previous snapshot files in
// the manifest and returns a textual diff of their contents.
func DiffCurrentWithPrevious(manifestPath string) (string, error) {
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return "", err
	}

	if m.CurrentVersion == "" || m.PreviousVersion == "" {
		return "", fmt.Errorf("no current/previous snapshots recorded")
	}

	currentPath := m.SnapshotFile(m.CurrentVersion)
	previousPath := m.SnapshotFile(m.PreviousVersion)

	if currentPath == "" || previousPath == "" {
		return "", fmt.Errorf("snapshot files not found in manifest")
	}

	current, err := os.ReadFile(currentPath)
	if err != nil {
		return "", fmt.Errorf("read current snapshot: %w", err)
	}

	previous, err := os.ReadFile(previousPath)
	if err != nil {
		return "", fmt.Errorf("read previous snapshot: %w", err)
	}

	return cmp.Diff(string(previous), string(current)), nil
}
