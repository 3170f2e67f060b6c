package main

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spf13/cobra"

	"github.com/viraasat/explorer"
	"github.com/viraasat/explorer/platform"
)

var (
	windowWidth  int
	windowHeight int
)

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Walk a scene live in a GLFW window",
	Long:  "Opens a window that feeds keyboard and mouse into the explorer. Click to capture the mouse, Escape to release it. The title bar shows the camera position.",
	Args:  cobra.NoArgs,
	RunE:  runWindow,
}

func init() {
	windowCmd.Flags().IntVar(&windowWidth, "width", 1280, "window width")
	windowCmd.Flags().IntVar(&windowHeight, "height", 720, "window height")
	rootCmd.AddCommand(windowCmd)
}

func runWindow(cmd *cobra.Command, args []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	logger, err := newLogger(s)
	if err != nil {
		return err
	}

	win, err := platform.Open(windowWidth, windowHeight, s.Scene.Title)
	if err != nil {
		return err
	}
	defer win.Close()

	zones := s.Scene.Zones()
	zones.OnChange = func(_, to explorer.Zone) {
		if to.Info != "" {
			logger.Infof("%s", to.Info)
		}
	}

	e, err := explorer.NewScene(s.Scene,
		explorer.WithLogger(logger),
		explorer.WithEventSource(win),
		explorer.WithPointerLocker(win),
		explorer.WithCameraSink(win),
		explorer.WithZones(zones),
		explorer.WithOnFootstep(func(pos mgl32.Vec3) {
			logger.Debugf("footstep at %v", pos)
		}),
	)
	if err != nil {
		return err
	}
	defer e.Close()

	if err := registerModel(e, s, logger); err != nil {
		return err
	}

	last := time.Now()
	for !win.ShouldClose() {
		win.PollEvents()
		now := time.Now()
		e.Tick(now.Sub(last))
		last = now
		time.Sleep(time.Millisecond)
	}
	return nil
}
