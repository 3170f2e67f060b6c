package main

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spf13/cobra"

	"github.com/viraasat/explorer"
)

var (
	walkScript string
	walkFPS    int
	walkTrace  bool
)

var walkCmd = &cobra.Command{
	Use:   "walk",
	Short: "Replay a scripted walk through a scene without a window",
	Long: `Replays a walk script at a fixed frame rate and reports where the player ends up.
Script items are comma separated: forward=2s, back=1s, left=500ms, right=1s,
forward+left=1s, crouch=1s, wait=1s, look=<pixels>, jump.`,
	Args: cobra.NoArgs,
	RunE: runWalk,
}

func init() {
	walkCmd.Flags().StringVarP(&walkScript, "script", "s", "forward=1s", "walk script")
	walkCmd.Flags().IntVar(&walkFPS, "fps", 60, "simulated frames per second")
	walkCmd.Flags().BoolVar(&walkTrace, "trace", false, "print the pose after every frame")
	rootCmd.AddCommand(walkCmd)
}

func runWalk(cmd *cobra.Command, args []string) error {
	if _, err := frameDuration(walkFPS); err != nil {
		return fmt.Errorf("--fps: %w", err)
	}
	steps, err := parseScript(walkScript)
	if err != nil {
		return err
	}
	s, err := loadSettings()
	if err != nil {
		return err
	}
	logger, err := newLogger(s)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	footsteps := 0
	zones := s.Scene.Zones()
	zones.OnChange = func(from, to explorer.Zone) {
		fmt.Fprintf(out, "zone: %s -> %s  %s\n", from.Name, to.Name, to.Info)
	}

	e, err := explorer.NewScene(s.Scene,
		explorer.WithLogger(logger),
		explorer.WithZones(zones),
		explorer.WithOnFootstep(func(mgl32.Vec3) { footsteps++ }),
	)
	if err != nil {
		return err
	}
	defer e.Close()

	if err := registerModel(e, s, logger); err != nil {
		return err
	}

	start := e.Pose()
	err = runScript(e, steps, walkFPS, func() {
		if walkTrace {
			p := e.Pose()
			fmt.Fprintf(out, "frame %4d  pos %v  yaw %.3f  pitch %.3f\n", e.Frame(), p.Position, p.Yaw, p.Pitch)
		}
	})
	if err != nil {
		return err
	}

	end := e.Pose()
	fmt.Fprintf(out, "scene:     %s\n", s.Scene.Name)
	fmt.Fprintf(out, "frames:    %d\n", e.Frame())
	fmt.Fprintf(out, "start:     %v\n", start.Position)
	fmt.Fprintf(out, "end:       %v (yaw %.3f)\n", end.Position, end.Yaw)
	fmt.Fprintf(out, "distance:  %.3f\n", end.Position.Sub(start.Position).Len())
	fmt.Fprintf(out, "footsteps: %d\n", footsteps)
	fmt.Fprintf(out, "zone:      %s\n", e.Zone().Name)
	return nil
}
