package main

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spf13/cobra"

	"github.com/viraasat/explorer"
)

var inspectScale float32

var inspectCmd = &cobra.Command{
	Use:   "inspect [file]",
	Short: "Report collision statistics for an STL monument model",
	Long:  "Registers the model as a collider and reports its bounds and the ground height the player would snap to at the origin.",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().Float32Var(&inspectScale, "scale", 1, "uniform model scale")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	filename := args[0]
	mesh, err := explorer.LoadSTLMesh(filename, explorer.KindMonument, explorer.NewTransform().Scaled(inspectScale))
	if err != nil {
		return err
	}

	world := explorer.NewCollisionWorld(explorer.NewNopLogger())
	if _, err := world.Register(mesh); err != nil {
		return err
	}
	info := world.Colliders()[0]
	b := info.Bounds
	size := b.Max.Sub(b.Min)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Collider Information")
	fmt.Fprintln(out, "====================")
	fmt.Fprintf(out, "File:      %s\n", filename)
	fmt.Fprintf(out, "Name:      %s\n", info.Name)
	fmt.Fprintf(out, "Triangles: %d\n", info.Triangles)
	fmt.Fprintf(out, "Scale:     %.3f\n\n", inspectScale)
	fmt.Fprintf(out, "Bounds min: %v\n", b.Min)
	fmt.Fprintf(out, "Bounds max: %v\n", b.Max)
	fmt.Fprintf(out, "Size:       %.3f x %.3f x %.3f\n\n", size.X(), size.Y(), size.Z())

	probe := mgl32.Vec3{0, b.Max.Y() + 1, 0}
	hit := world.Raycast(probe, mgl32.Vec3{0, -1, 0}, size.Y()+2)
	if hit.Hit {
		fmt.Fprintf(out, "Top surface at origin: y=%.3f (normal %v)\n", hit.Point.Y(), hit.Normal)
	} else {
		fmt.Fprintln(out, "Top surface at origin: none")
	}
	return nil
}
