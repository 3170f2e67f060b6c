package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/viraasat/explorer"
	"github.com/viraasat/explorer/stl"
)

var exportCmd = &cobra.Command{
	Use:   "export [out.stl]",
	Short: "Write a scene's procedural props as a binary STL",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

// propsModel bakes every prop into a single STL model in world space.
func propsModel(scene explorer.Scene) *stl.Model {
	model := stl.NewModel(scene.Name)
	for _, m := range scene.Props() {
		for _, t := range m.WorldTriangles() {
			model.AddFacet(stl.Facet{Normal: t.Normal(), V1: t.A, V2: t.B, V3: t.C})
		}
	}
	return model
}

func runExport(cmd *cobra.Command, args []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	model := propsModel(s.Scene)

	f, err := os.Create(args[0])
	if err != nil {
		return err
	}
	if err := stl.WriteBinary(f, model); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", args[0], err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d triangles for %s to %s\n", model.TriangleCount(), s.Scene.Name, args[0])
	return nil
}
