package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/swdee/go-kinectviz/display"
	"github.com/swdee/go-kinectviz/face"
	"github.com/swdee/go-kinectviz/render"
	"github.com/swdee/go-kinectviz/source"
)

// Validate checks the configuration is valid and fills in defaults
func Validate(cfg *Config) error {

	var err error

	// Display mode
	if cfg.Mode == "" {
		cfg.Mode = display.Infrared.String()
	}
	if cfg.mode, err = display.ParseMode(cfg.Mode); err != nil {
		return fmt.Errorf("mode: %w", err)
	}

	if err := validateSensor(&cfg.Sensor); err != nil {
		return err
	}

	if err := validateDisplay(cfg); err != nil {
		return err
	}

	// Render
	if cfg.Render.Colormap == "" {
		cfg.Render.Colormap = "grayscale"
	}
	if cfg.colormap, err = render.ParseColormap(cfg.Render.Colormap); err != nil {
		return fmt.Errorf("render.colormap: %w", err)
	}
	if cfg.Render.AssetsDir == "" {
		cfg.Render.AssetsDir = "assets"
	}
	if cfg.Render.Width < 0 || cfg.Render.Height < 0 {
		return fmt.Errorf("render size must be >= 0")
	}
	if (cfg.Render.Width == 0) != (cfg.Render.Height == 0) {
		return fmt.Errorf("render.width and render.height must be set together")
	}
	cfg.Render.ShowStatus = orTrue(cfg.Render.ShowStatus)

	// Window
	cfg.Window.Enabled = orTrue(cfg.Window.Enabled)
	if cfg.Window.Title == "" {
		cfg.Window.Title = "Kinect Viewer"
	}

	// Snapshot
	if cfg.Snapshot.Every <= 0 {
		cfg.Snapshot.Every = 30
	}
	if cfg.Snapshot.Pattern != "" && strings.Count(cfg.Snapshot.Pattern, "%d") != 1 {
		return fmt.Errorf("snapshot.pattern must contain exactly one %%d")
	}

	// Stream
	if cfg.Stream.Path == "" {
		cfg.Stream.Path = "/stream"
	}
	if !strings.HasPrefix(cfg.Stream.Path, "/") {
		return fmt.Errorf("stream.path must start with '/'")
	}

	return nil
}

func validateSensor(s *SensorConfig) error {

	def := source.DefaultParams()

	if s.FPS < 0 {
		return fmt.Errorf("sensor.fps must be > 0")
	}
	if s.FPS == 0 {
		s.FPS = def.FPS
	}

	if s.Bodies == 0 {
		s.Bodies = def.TrackedBodies
	}
	if s.Bodies < 0 || s.Bodies > def.BodyCount {
		return fmt.Errorf("sensor.bodies must be within 1..%d", def.BodyCount)
	}

	if s.BackgroundDistance == 0 {
		s.BackgroundDistance = int(def.BackgroundDistance)
	}
	if s.BackgroundDistance < 0 || s.BackgroundDistance > math.MaxUint16 {
		return fmt.Errorf("sensor.background_distance must be within 1..%d",
			math.MaxUint16)
	}

	if s.ExpireEvery < 0 {
		return fmt.Errorf("sensor.expire_every must be >= 0")
	}

	return nil
}

func validateDisplay(cfg *Config) error {

	d := &cfg.Display
	def := display.DefaultParams()

	if d.BackgroundThreshold == 0 {
		d.BackgroundThreshold = int(def.BackgroundThreshold)
	}
	if d.BackgroundThreshold < 0 || d.BackgroundThreshold > math.MaxUint16 {
		return fmt.Errorf("display.background_threshold must be within 1..%d",
			math.MaxUint16)
	}

	var err error

	if len(d.FaceColorFeatures) == 0 {
		cfg.colorFeatures = face.ColorFeatures
	} else if cfg.colorFeatures, err = face.ParseFeatures(d.FaceColorFeatures); err != nil {
		return fmt.Errorf("display.face_color_features: %w", err)
	}

	if cfg.infraredFeatures, err = face.ParseFeatures(d.FaceInfraredFeatures); err != nil {
		return fmt.Errorf("display.face_infrared_features: %w", err)
	}

	d.CatMask = orTrue(d.CatMask)

	return nil
}

func orTrue(b *bool) *bool {

	if b != nil {
		return b
	}

	t := true
	return &t
}
