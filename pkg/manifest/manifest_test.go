package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileYieldsEmptyManifest(t *testing.T) {
	m, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.Empty(t, m.Snapshots)
	require.Empty(t, m.CurrentVersion)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "manifest.yaml")

	m := &Manifest{}
	m.AddSnapshot(Snapshot{Name: "models", Version: "v1", File: "models_gen.go", Checksum: "abc"})
	require.NoError(t, m.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, m, loaded)
}

func TestAddSnapshotVersionPointers(t *testing.T) {
	m := &Manifest{}

	m.AddSnapshot(Snapshot{Name: "models", Version: "v1", File: "a.go"})
	require.Equal(t, "v1", m.CurrentVersion)
	require.Empty(t, m.PreviousVersion)

	m.AddSnapshot(Snapshot{Name: "models", Version: "v2", File: "b.go"})
	require.Equal(t, "v2", m.CurrentVersion)
	require.Equal(t, "v1", m.PreviousVersion)

	// Re-recording the current version replaces the entry in place.
	m.AddSnapshot(Snapshot{Name: "models", Version: "v2", File: "c.go"})
	require.Equal(t, "v2", m.CurrentVersion)
	require.Equal(t, "v1", m.PreviousVersion)
	require.Len(t, m.Snapshots, 2)
	require.Equal(t, "c.go", m.SnapshotFile("v2"))
}

func TestSnapshotFile(t *testing.T) {
	m := &Manifest{Snapshots: []Snapshot{{Name: "models", Version: "v1", File: "a.go"}}}
	require.Equal(t, "a.go", m.SnapshotFile("v1"))
	require.Empty(t, m.SnapshotFile("v9"))
}

func TestChecksum(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.go")
	require.NoError(t, os.WriteFile(path, []byte("package models\n"), 0o644))

	sum, err := Checksum(path)
	require.NoError(t, err)
	require.Len(t, sum, 64)

	again, err := Checksum(path)
	require.NoError(t, err)
	require.Equal(t, sum, again)
}
