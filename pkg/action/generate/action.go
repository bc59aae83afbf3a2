package generate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/arangokit/modelgen/internal/compiler"
	"github.com/arangokit/modelgen/internal/emitter"
	"github.com/arangokit/modelgen/internal/loader"
	"github.com/arangokit/modelgen/internal/model"
	pubcompiler "github.com/arangokit/modelgen/pkg/compiler"
)

// Run loads the models package in opts.InDir, compiles every definition and
// renders the generated file to opts.OutDir/opts.OutFile. It returns the
// written path. Compile failures for separate definitions are joined so one
// run reports them all.
func Run(ctx context.Context, opts *pubcompiler.Options) (string, error) {
	opts.Normalize()

	unit, err := loader.New(opts.InDir).Load()
	if err != nil {
		return "", fmt.Errorf("load %s: %w", opts.InDir, err)
	}
	if len(unit.Definitions) == 0 {
		return "", fmt.Errorf("no model definitions in %s", opts.InDir)
	}

	results := compiler.New(unit.Definitions).Compile(ctx)

	var (
		errs     []error
		compiled []*model.CompiledType
	)
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, r.Err)
			continue
		}
		compiled = append(compiled, r.Compiled)
	}
	if len(errs) > 0 {
		return "", errors.Join(errs...)
	}

	importPath := opts.ModelsImportPath
	if importPath == "" {
		importPath = unit.PkgPath
	}
	f := emitter.New(emitter.Options{
		PackageName:      opts.PackageName,
		ModelsImportPath: importPath,
	}).File(compiled)

	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", opts.OutDir, err)
	}
	outFile := filepath.Clean(filepath.Join(opts.OutDir, opts.OutFile))
	ff, err := os.OpenFile(outFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", outFile, err)
	}
	if err := f.Render(ff); err != nil {
		_ = ff.Close()
		return "", fmt.Errorf("render %s: %w", outFile, err)
	}
	if err := ff.Close(); err != nil {
		return "", err
	}
	return outFile, nil
}
