package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/arangokit/modelgen/pkg/action/snapshot"
	"github.com/arangokit/modelgen/pkg/compiler"
)

func init() {
	rootCmd.AddCommand(NewSnapshotCommand())
}

func NewSnapshotCommand() *cobra.Command {
	var (
		options      = compiler.NewOptions()
		manifestPath string
		name, ver    string
	)

	snapCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "manage generated model snapshots",
	}
	snapCmd.PersistentFlags().StringVarP(&manifestPath, "manifest", "m", "modelgen.manifest.yaml", "manifest file tracking snapshots")

	takeCmd := &cobra.Command{
		Use:   "take",
		Short: "generate models and record a snapshot",
		Run: func(c *cobra.Command, args []string) {
			applyConfig(options)
			outFile, err := snapshot.Generate(c.Context(), options, manifestPath, name, ver)
			if err != nil {
				slog.With("error", err).Error("snapshot failed")
				os.Exit(1)
			}
			slog.With("file", outFile, "version", ver).Info("snapshot recorded")
		},
	}
	takeCmd.Flags().StringVarP(&options.InDir, "input-directory", "i", ".", "directory holding the annotated models package")
	takeCmd.Flags().StringVarP(&options.OutDir, "output-directory", "o", "models", "directory to write generated types")
	takeCmd.Flags().StringVarP(&options.OutFile, "output-file", "f", "models_gen.go", "output file where types will be written")
	takeCmd.Flags().StringVarP(&name, "name", "n", "models", "snapshot name")
	takeCmd.Flags().StringVarP(&ver, "snapshot-version", "V", "", "snapshot version label")
	_ = takeCmd.MarkFlagRequired("snapshot-version")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded snapshots",
		Run: func(c *cobra.Command, args []string) {
			m, err := snapshot.List(manifestPath)
			if err != nil {
				slog.With("error", err).Error("list failed")
				os.Exit(1)
			}
			for _, s := range m.Snapshots {
				marker := " "
				if s.Version == m.CurrentVersion {
					marker = "*"
				}
				fmt.Printf("%s %s\t%s\t%s\n", marker, s.Version, s.Name, s.File)
			}
		},
	}

	diffCmd := &cobra.Command{
		Use:   "diff",
		Short: "diff the current snapshot against the previous one",
		Run: func(c *cobra.Command, args []string) {
			d, err := snapshot.DiffCurrentWithPrevious(manifestPath)
			if err != nil {
				slog.With("error", err).Error("diff failed")
				os.Exit(1)
			}
			if d == "" {
				fmt.Println("no changes")
				return
			}
			fmt.Print(d)
		},
	}

	snapCmd.AddCommand(takeCmd, listCmd, diffCmd)
	return snapCmd
}
