// Package config loads the viewer configuration from YAML.
package config

import (
	"fmt"
	"os"

	"gocv.io/x/gocv"
	"gopkg.in/yaml.v3"

	"github.com/swdee/go-kinectviz/display"
	"github.com/swdee/go-kinectviz/face"
	"github.com/swdee/go-kinectviz/render"
	"github.com/swdee/go-kinectviz/source"
)

// Config represents the complete viewer configuration
type Config struct {
	Mode     string         `yaml:"mode"` // initial display mode
	Sensor   SensorConfig   `yaml:"sensor"`
	Display  DisplayConfig  `yaml:"display"`
	Render   RenderConfig   `yaml:"render"`
	Window   WindowConfig   `yaml:"window"`
	Snapshot SnapshotConfig `yaml:"snapshot"`
	Stream   StreamConfig   `yaml:"stream"`

	mode             display.Mode
	colormap         gocv.ColormapTypes
	colorFeatures    face.Features
	infraredFeatures face.Features
}

// SensorConfig contains the synthetic sensor settings
type SensorConfig struct {
	FPS                int `yaml:"fps"`
	Bodies             int `yaml:"bodies"`              // tracked bodies, 1..6
	BackgroundDistance int `yaml:"background_distance"` // wall depth in mm
	ExpireEvery        int `yaml:"expire_every"`        // drop every Nth frame, 0 disables
}

// DisplayConfig contains the frame processing settings
type DisplayConfig struct {
	BackgroundThreshold  int      `yaml:"background_threshold"` // mm
	FaceColorFeatures    []string `yaml:"face_color_features"`
	FaceInfraredFeatures []string `yaml:"face_infrared_features"`
	CatMask              *bool    `yaml:"cat_mask"`
}

// RenderConfig contains the image output settings
type RenderConfig struct {
	Colormap   string `yaml:"colormap"` // depth colormap, grayscale leaves it grey
	AssetsDir  string `yaml:"assets_dir"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	ShowStatus *bool  `yaml:"show_status"`
}

// WindowConfig contains the GUI window settings
type WindowConfig struct {
	Enabled *bool  `yaml:"enabled"`
	Title   string `yaml:"title"`
}

// SnapshotConfig contains the image file output settings
type SnapshotConfig struct {
	Pattern string `yaml:"pattern"` // printf pattern with one %d, empty disables
	Every   int    `yaml:"every"`
}

// StreamConfig contains the MJPEG server settings
type StreamConfig struct {
	Listen string `yaml:"listen"` // e.g. ":8080", empty disables
	Path   string `yaml:"path"`
}

// Load reads and parses a YAML configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse parses and validates a YAML configuration
func Parse(data []byte) (*Config, error) {

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Default returns the configuration used when no file is given
func Default() *Config {

	var cfg Config

	// the zero config is valid once defaults are filled
	if err := Validate(&cfg); err != nil {
		panic(err)
	}

	return &cfg
}

// InitialMode returns the display mode the viewer starts in
func (c *Config) InitialMode() display.Mode {
	return c.mode
}

// WindowEnabled reports whether a GUI window is opened
func (c *Config) WindowEnabled() bool {
	return *c.Window.Enabled
}

// SensorParams returns the synthetic sensor parameters
func (c *Config) SensorParams() source.Params {

	p := source.DefaultParams()
	p.FPS = c.Sensor.FPS
	p.TrackedBodies = c.Sensor.Bodies
	p.BackgroundDistance = uint16(c.Sensor.BackgroundDistance)
	p.ExpireEvery = c.Sensor.ExpireEvery

	return p
}

// DisplayParams returns the controller parameters
func (c *Config) DisplayParams() display.Params {

	p := display.DefaultParams()
	p.BackgroundThreshold = uint16(c.Display.BackgroundThreshold)
	p.FaceColorFeatures = c.colorFeatures
	p.FaceInfraredFeatures = c.infraredFeatures
	p.CatMask = *c.Display.CatMask

	return p
}

// RenderParams returns the renderer parameters
func (c *Config) RenderParams() render.Params {

	p := render.DefaultParams()
	p.Colormap = c.colormap
	p.AssetDir = c.Render.AssetsDir
	p.Width = c.Render.Width
	p.Height = c.Render.Height
	p.ShowStatus = *c.Render.ShowStatus

	return p
}
