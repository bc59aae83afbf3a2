package compiler

import (
	"path/filepath"
	"strings"
)

// Options control loading and generation.
//
// InDir            – directory holding the annotated models package
// OutDir           – output directory for generated files
// OutFile          – output filename
// PackageName      – package clause for generated files (default: models dir base)
// ModelsImportPath – import path used to qualify cross references when a
//                    model keeps absolute imports; resolved from go.mod when
//                    empty
// ManifestFile     – optional snapshot manifest written next to OutFile
type Options struct {
	InDir            string `json:"in_dir,omitempty" yaml:"in_dir,omitempty" toml:"in_dir,omitempty" mapstructure:"in_dir,omitempty"`
	OutDir           string `json:"out_dir,omitempty" yaml:"out_dir,omitempty" toml:"out_dir,omitempty" mapstructure:"out_dir,omitempty"`
	OutFile          string `json:"out_file,omitempty" yaml:"out_file,omitempty" toml:"out_file,omitempty" mapstructure:"out_file,omitempty"`
	PackageName      string `json:"package_name,omitempty" yaml:"package_name,omitempty" toml:"package_name,omitempty" mapstructure:"package_name,omitempty"`
	ModelsImportPath string `json:"models_import_path,omitempty" yaml:"models_import_path,omitempty" toml:"models_import_path,omitempty" mapstructure:"models_import_path,omitempty"`
	ManifestFile     string `json:"manifest_file,omitempty" yaml:"manifest_file,omitempty" toml:"manifest_file,omitempty" mapstructure:"manifest_file,omitempty"`
}

func NewOptions() *Options {
	return &Options{
		InDir:   ".",
		OutDir:  "models",
		OutFile: "models_gen.go",
	}
}

func (o *Options) Normalize() {
	if o.InDir == "" {
		o.InDir = "."
	}
	if strings.Contains(o.InDir, ".") {
		o.InDir, _ = filepath.Abs(o.InDir)
	}
	if o.OutDir == "" {
		o.OutDir = "models"
	}
	if strings.Contains(o.OutDir, ".") {
		o.OutDir, _ = filepath.Abs(o.OutDir)
	}
	if o.OutFile == "" {
		o.OutFile = "models_gen.go"
	}
	if o.PackageName == "" {
		o.PackageName = identFromDir(o.OutDir)
	}
}

func identFromDir(dir string) string {
	base := filepath.Base(dir)
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return -1
		}
	}, base)
	if base == "" {
		return "models"
	}
	return base
}

// functional option pattern ---------------------------------------------------

type Option func(*Options)

func WithInDir(d string) Option            { return func(o *Options) { o.InDir = d } }
func WithOutDir(d string) Option           { return func(o *Options) { o.OutDir = d } }
func WithOutFile(f string) Option          { return func(o *Options) { o.OutFile = f } }
func WithPackageName(p string) Option      { return func(o *Options) { o.PackageName = p } }
func WithModelsImportPath(p string) Option { return func(o *Options) { o.ModelsImportPath = p } }
func WithManifestFile(f string) Option     { return func(o *Options) { o.ManifestFile = f } }
