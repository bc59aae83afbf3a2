package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/arangokit/modelgen/pkg/action/generate"
	"github.com/arangokit/modelgen/pkg/compiler"
)

func init() {
	rootCmd.AddCommand(NewGenerateCommand())
}

func NewGenerateCommand() *cobra.Command {
	options := compiler.NewOptions()

	genCmd := &cobra.Command{
		Use:   "generate",
		Short: "generate model variants",
		Long:  "Compile annotated model structs into document variants, field enums and collection bindings",
		Run: func(c *cobra.Command, args []string) {
			applyConfig(options)
			outFile, err := generate.Run(c.Context(), options)
			if err != nil {
				slog.With("error", err).Error("generation failed")
				os.Exit(1)
			}
			slog.With("file", outFile).Info("models generated")
		},
	}
	genCmd.PersistentFlags().StringVarP(&options.InDir, "input-directory", "i", ".", "directory holding the annotated models package")
	genCmd.PersistentFlags().StringVarP(&options.OutDir, "output-directory", "o", "models", "directory to write generated types")
	genCmd.PersistentFlags().StringVarP(&options.OutFile, "output-file", "f", "models_gen.go", "output file where types will be written")
	genCmd.PersistentFlags().StringVarP(&options.PackageName, "package", "p", "", "package name for generated files (default: output directory base)")
	genCmd.PersistentFlags().StringVar(&options.ModelsImportPath, "models-import-path", "", "import path used to qualify cross references (default: resolved from go.mod)")

	return genCmd
}

// applyConfig fills unset flag values from the merged viper config.
func applyConfig(options *compiler.Options) {
	if v := viper.GetString("generate.in_dir"); v != "" && options.InDir == "." {
		options.InDir = v
	}
	if v := viper.GetString("generate.out_dir"); v != "" && options.OutDir == "models" {
		options.OutDir = v
	}
	if v := viper.GetString("generate.out_file"); v != "" && options.OutFile == "models_gen.go" {
		options.OutFile = v
	}
	if v := viper.GetString("generate.package_name"); v != "" && options.PackageName == "" {
		options.PackageName = v
	}
	if v := viper.GetString("generate.models_import_path"); v != "" && options.ModelsImportPath == "" {
		options.ModelsImportPath = v
	}
}
