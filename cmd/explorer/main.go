package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/viraasat/explorer"
	"github.com/viraasat/explorer/config"
)

var (
	configPath string
	monument   string
	debug      bool
	logFormat  string
)

var rootCmd = &cobra.Command{
	Use:   "explorer",
	Short: "First-person monument explorer core",
	Long: `explorer drives the first-person walking core used by the monument scenes:
collision-checked movement, mouse look and boundary clamping against
STL monument geometry and procedural props.`,
	Version:      "0.1.0",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "scene file (yaml, json or toml)")
	rootCmd.PersistentFlags().StringVarP(&monument, "monument", "m", "", "monument preset, overrides the scene file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log output: text, console or json")
}

// loadSettings resolves the scene file, environment and flags.
func loadSettings() (*config.Settings, error) {
	overrides := map[string]any{}
	if monument != "" {
		overrides["monument"] = monument
	}
	if debug {
		overrides["debug"] = true
	}
	return config.Load(configPath, overrides)
}

func newLogger(s *config.Settings) (explorer.Logger, error) {
	return buildLogger(logFormat, s.Scene.Name, s.Debug, os.Stdout)
}

// registerModel loads the monument STL when it exists. A missing model is not
// an error: the scene still walks with its props only.
func registerModel(e *explorer.Explorer, s *config.Settings, logger explorer.Logger) error {
	if s.ModelPath == "" {
		return nil
	}
	if _, err := os.Stat(s.ModelPath); err != nil {
		logger.Warnf("monument model %s not available, walking props only", s.ModelPath)
		return nil
	}
	mesh, err := explorer.LoadSTLMesh(s.ModelPath, explorer.KindMonument, s.Scene.ModelTransform())
	if err != nil {
		return err
	}
	_, err = e.RegisterMesh(mesh)
	return err
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
