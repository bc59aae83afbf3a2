package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
)

// modulePackagePath derives the import path of the package in dir from the
// enclosing go.mod. It is the fallback when type information carries no
// package path, which happens when the models package does not compile on
// its own yet.
func modulePackagePath(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	modDir, err := findGoModDir(abs)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(filepath.Join(modDir, "go.mod"))
	if err != nil {
		return "", err
	}
	mf, err := modfile.Parse("go.mod", data, nil)
	if err != nil {
		return "", err
	}
	if mf.Module == nil {
		return "", fmt.Errorf("go.mod in %s has no module directive", modDir)
	}
	rel, err := filepath.Rel(modDir, abs)
	if err != nil {
		return "", err
	}
	if rel == "." {
		return mf.Module.Mod.Path, nil
	}
	return mf.Module.Mod.Path + "/" + strings.ReplaceAll(rel, string(filepath.Separator), "/"), nil
}

// findGoModDir walks up from dir until it finds go.mod.
func findGoModDir(dir string) (string, error) {
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errNoModulePath
		}
		dir = parent
	}
}
