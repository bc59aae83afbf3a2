package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arangokit/modelgen/pkg/action/generate"
	"github.com/arangokit/modelgen/pkg/action/snapshot"
	"github.com/arangokit/modelgen/pkg/compiler"
	"github.com/arangokit/modelgen/pkg/manifest"
)

var fixtureModels = filepath.Join("test", "testdata", "fixtures", "canonical", "models")

func TestGenerate(t *testing.T) {
	outDir := t.TempDir()

	outFile, err := generate.Run(context.Background(), &compiler.Options{
		InDir:       fixtureModels,
		OutDir:      outDir,
		OutFile:     "models_gen.go",
		PackageName: "models",
	})
	require.NoError(t, err)
	require.Equal(t, filepath.Join(outDir, "models_gen.go"), outFile)

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)
	src := string(data)

	require.Contains(t, src, "Code generated by modelgen. DO NOT EDIT.")
	require.Contains(t, src, "type UserDocument struct")
	require.Contains(t, src, "type UserJSON struct")
	require.Contains(t, src, `json:"nm"`)
	require.Contains(t, src, "type UserDocumentField string")
	require.Contains(t, src, "func (UserDocument) CollectionName() string")
	require.Contains(t, src, `return "Users"`)
	require.Contains(t, src, "type RoleDocument string")
	require.Contains(t, src, `RoleDocumentAdmin  RoleDocument = "admin"`)
	require.Contains(t, src, `RoleDocumentMember RoleDocument = "member"`)
	require.NotContains(t, src, "RoleDocumentRoleAdmin")
	require.NotContains(t, src, `"role_admin"`)
	require.Contains(t, src, "type ProfileDocument struct")
	require.Contains(t, src, "type AuditEntryDocument struct")
}

func TestGenerateWithFunctionalOptions(t *testing.T) {
	outDir := t.TempDir()

	opts := compiler.NewOptions()
	for _, apply := range []compiler.Option{
		compiler.WithInDir(fixtureModels),
		compiler.WithOutDir(outDir),
		compiler.WithOutFile("gen.go"),
		compiler.WithPackageName("models"),
	} {
		apply(opts)
	}

	outFile, err := generate.Run(context.Background(), opts)
	require.NoError(t, err)
	require.FileExists(t, outFile)
}

func TestSnapshotLifecycle(t *testing.T) {
	outDir := t.TempDir()
	manifestPath := filepath.Join(outDir, "modelgen.manifest.yaml")

	opts := &compiler.Options{
		InDir:       fixtureModels,
		OutDir:      outDir,
		OutFile:     "models_gen.go",
		PackageName: "models",
	}

	outFile, err := snapshot.Generate(context.Background(), opts, manifestPath, "models", "v1")
	require.NoError(t, err)
	require.FileExists(t, outFile)

	m, err := manifest.Load(manifestPath)
	require.NoError(t, err)
	require.Equal(t, "v1", m.CurrentVersion)
	require.Len(t, m.Snapshots, 1)
	require.NotEmpty(t, m.Snapshots[0].Checksum)

	_, err = snapshot.Generate(context.Background(), opts, manifestPath, "models", "v2")
	require.NoError(t, err)

	m, err = manifest.Load(manifestPath)
	require.NoError(t, err)
	require.Equal(t, "v2", m.CurrentVersion)
	require.Equal(t, "v1", m.PreviousVersion)

	diff, err := snapshot.DiffCurrentWithPrevious(manifestPath)
	require.NoError(t, err)
	require.Empty(t, diff)
}
