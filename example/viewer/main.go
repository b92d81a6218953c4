// Viewer shows the synthetic sensor streams in a window, as snapshots or as
// an MJPEG stream.  Press 1 to 8 in the window to switch display mode and q
// or Esc to quit.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/swdee/go-kinectviz/config"
	"github.com/swdee/go-kinectviz/display"
	"github.com/swdee/go-kinectviz/render"
	"github.com/swdee/go-kinectviz/source"
)

// Options holds the command line flags
type Options struct {
	ConfigPath string
	Mode       string
	Listen     string
	Snapshots  string
	Headless   bool
	Debug      bool
}

var opts Options

var rootCmd = &cobra.Command{
	Use:   "viewer",
	Short: "Depth sensor stream viewer",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context(), opts)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "YAML configuration file")
	rootCmd.Flags().StringVarP(&opts.Mode, "mode", "m", "", "Initial display mode, overrides the configuration")
	rootCmd.Flags().StringVarP(&opts.Listen, "listen", "a", "", "HTTP address to serve the MJPEG stream on, format address:port")
	rootCmd.Flags().StringVar(&opts.Snapshots, "snapshots", "", "File pattern to save snapshots to, eg: /tmp/frame-%04d.jpg")
	rootCmd.Flags().BoolVar(&opts.Headless, "headless", false, "Do not open a window")
	rootCmd.Flags().BoolVar(&opts.Debug, "debug", false, "Enable debug logging")
}

func main() {
	// Create a context that listens for Ctrl+C (SIGINT) or Kill (SIGTERM)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger(debug bool) (*zap.SugaredLogger, error) {

	var (
		logger *zap.Logger
		err    error
	)

	if debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}

	if err != nil {
		return nil, err
	}

	return logger.Sugar(), nil
}

func loadConfig(o Options) (*config.Config, error) {

	cfg := config.Default()

	if o.ConfigPath != "" {
		var err error
		if cfg, err = config.Load(o.ConfigPath); err != nil {
			return nil, err
		}
	}

	if o.Mode != "" {
		cfg.Mode = o.Mode
	}
	if o.Listen != "" {
		cfg.Stream.Listen = o.Listen
	}
	if o.Snapshots != "" {
		cfg.Snapshot.Pattern = o.Snapshots
	}
	if o.Headless {
		disabled := false
		cfg.Window.Enabled = &disabled
	}

	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func run(ctx context.Context, o Options) error {

	log, err := newLogger(o.Debug)

	if err != nil {
		return fmt.Errorf("error creating logger: %w", err)
	}

	defer log.Sync()

	cfg, err := loadConfig(o)

	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sensor, err := source.NewSynthetic(cfg.SensorParams(), log.Named("sensor"))

	if err != nil {
		return fmt.Errorf("error creating sensor: %w", err)
	}

	defer sensor.Close()

	renderer, err := render.New(cfg.RenderParams(), log.Named("render"))

	if err != nil {
		return fmt.Errorf("error creating renderer: %w", err)
	}

	defer renderer.Close()

	keys := newModeKeys(cancel)
	var surfaces render.Fanout

	if cfg.WindowEnabled() {
		win := render.NewWindow(cfg.Window.Title, renderer)
		win.OnKey = keys.Press
		defer win.Close()

		surfaces = append(surfaces, win)
	}

	if cfg.Snapshot.Pattern != "" {
		snap := render.NewSnapshot(cfg.Snapshot.Pattern, cfg.Snapshot.Every, renderer)
		defer snap.Close()

		surfaces = append(surfaces, snap)
	}

	if cfg.Stream.Listen != "" {
		stream := render.NewStream(renderer, log.Named("stream"))
		defer stream.Close()

		srv := serveStream(cfg.Stream.Listen, cfg.Stream.Path, stream, log, cancel)
		defer shutdown(srv, log)

		surfaces = append(surfaces, stream)
	}

	if len(surfaces) == 0 {
		return fmt.Errorf("no output enabled, set a window, snapshot pattern or stream address")
	}

	// mode changes are applied after every surface has presented the frame
	surfaces = append(surfaces, keys)

	ctrl, err := display.New(sensor, surfaces, sensor.Faces(), cfg.DisplayParams(),
		log.Named("display"))

	if err != nil {
		return fmt.Errorf("error creating display controller: %w", err)
	}

	keys.ctrl = ctrl

	if err := ctrl.SetMode(cfg.InitialMode()); err != nil {
		return err
	}

	err = ctrl.Run(ctx)

	if errors.Is(err, render.ErrWindowClosed) {
		log.Infow("window closed")
		return nil
	}

	return err
}

func serveStream(addr, path string, stream *render.Stream, log *zap.SugaredLogger,
	cancel context.CancelFunc) *http.Server {

	mux := http.NewServeMux()
	mux.Handle(path, stream)

	srv := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		log.Infow("serving MJPEG stream", "address", addr, "path", path)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorw("stream server failed", "error", err)
			cancel()
		}
	}()

	return srv
}

func shutdown(srv *http.Server, log *zap.SugaredLogger) {

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Warnw("stream server shutdown", "error", err)
	}
}
