package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/viraasat/explorer"
)

var monumentsCmd = &cobra.Command{
	Use:   "monuments",
	Short: "List the monument presets",
	Args:  cobra.NoArgs,
	Run:   runMonuments,
}

func init() {
	rootCmd.AddCommand(monumentsCmd)
}

func runMonuments(cmd *cobra.Command, args []string) {
	out := cmd.OutOrStdout()
	for _, s := range explorer.Monuments() {
		c := s.Config
		fmt.Fprintf(out, "%s\n", s.Name)
		fmt.Fprintf(out, "  Title:      %s\n", s.Title)
		fmt.Fprintf(out, "  Model:      %s (scale %.1f)\n", s.ModelPath, s.ModelScale)
		fmt.Fprintf(out, "  Locomotion: %s at %.1f u/s\n", c.Motion.Locomotion, c.Motion.Speed)
		fmt.Fprintf(out, "  Start:      %v\n", c.Start)
		fmt.Fprintf(out, "  Boundary:   %v .. %v\n", c.Boundary.Min, c.Boundary.Max)
		fmt.Fprintf(out, "  Jump:       %v  Crouch: %v\n", c.Jump.Enabled, c.Crouch.Enabled)
		fmt.Fprintf(out, "  Props:      %d\n", len(s.Props()))
	}
}
