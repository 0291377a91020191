// orrery - Terminal Solar System
// A software-rasterized solar system rendered with half-block characters.
//
// Controls:
//
//	M/V/E/R/J/N/U - Focus Mercury, Venus, Earth, Mars, Jupiter, Saturn, Uranus
//	                (press again to return to the overview)
//	B             - Toggle bird's-eye view
//	O             - Overview
//	Arrows        - Orbit the camera
//	W/S           - Zoom in/out
//	X             - Toggle wireframe
//	?             - Toggle status line
//	Q/Esc         - Quit
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"go.uber.org/zap"

	"github.com/taigrr/orrery/internal/config"
	"github.com/taigrr/orrery/internal/logger"
	"github.com/taigrr/orrery/pkg/models"
	"github.com/taigrr/orrery/pkg/noise"
	"github.com/taigrr/orrery/pkg/render"
	"github.com/taigrr/orrery/pkg/scene"
	"github.com/taigrr/orrery/pkg/shade"
)

const (
	orbitStep = 0.05 // Radians per arrow press
	zoomStep  = 5.0
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	// The terminal viewer owns the screen, so it only logs to the file.
	if cfg.Output.Snapshot != "" || cfg.WriteConfig != "" {
		logger.Init(cfg.Logging.Level, cfg.Logging.LogFile, os.Stderr)
	} else {
		logger.Init(cfg.Logging.Level, cfg.Logging.LogFile, nil)
	}
	defer logger.Sync()

	if cfg.WriteConfig != "" {
		if err := cfg.SaveTo(cfg.WriteConfig); err != nil {
			fmt.Fprintf(os.Stderr, "Error: save config: %v\n", err)
			os.Exit(1)
		}
		logger.Sugar.Infof("config written to %s", cfg.WriteConfig)
		return
	}

	if err := run(cfg); err != nil {
		logger.Log.Error("orrery failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	s, err := buildScene(cfg)
	if err != nil {
		return err
	}
	if cfg.Output.Snapshot != "" {
		return snapshot(cfg, s)
	}
	return interactive(cfg, s)
}

// buildScene assembles the noise field, meshes and bodies from cfg.
func buildScene(cfg *config.Config) (*scene.Scene, error) {
	bg, err := cfg.BackgroundColor()
	if err != nil {
		return nil, err
	}

	opts := scene.DefaultOptions()
	opts.SphereStacks = cfg.Scene.SphereStacks
	opts.SphereSlices = cfg.Scene.SphereSlices
	opts.RingScales = cfg.Scene.RingScales
	opts.Background = bg
	opts.FPS = cfg.Render.FPS

	if cfg.Scene.Mesh != "" {
		mesh, err := models.LoadGLB(cfg.Scene.Mesh)
		if err != nil {
			return nil, fmt.Errorf("load mesh: %w", err)
		}
		logger.Log.Info("loaded body mesh",
			zap.String("path", cfg.Scene.Mesh),
			zap.Int("triangles", mesh.TriangleCount()))
		opts.BodyMesh = mesh
	}

	sampler := noise.New(noise.Options{
		Seed:      cfg.Noise.Seed,
		Frequency: cfg.Noise.Frequency,
		Octaves:   cfg.Noise.Octaves,
	})

	registry := shade.Default()
	for _, i := range registry.Indices() {
		logger.Sugar.Debugf("material %d: %s", i, registry.Material(i).Name)
	}

	s, err := scene.New(scene.SolarSystem, opts, sampler, registry)
	if err != nil {
		return nil, fmt.Errorf("build scene: %w", err)
	}
	if cfg.Scene.Focus != "" {
		if err := s.FocusName(cfg.Scene.Focus); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func newRenderer(cfg *config.Config, width, height int) (*render.Renderer, error) {
	rule, err := cfg.EdgeRule()
	if err != nil {
		return nil, err
	}
	return render.NewRenderer(
		render.NewFramebuffer(width, height),
		render.WithWorkers(cfg.Render.Workers),
		render.WithEdgeRule(rule),
	), nil
}

// snapshot simulates the configured number of frames and writes the last
// one to disk.
func snapshot(cfg *config.Config, s *scene.Scene) error {
	r, err := newRenderer(cfg, cfg.Render.Width, cfg.Render.Height)
	if err != nil {
		return err
	}

	for range max(cfg.Output.Frames, 1) - 1 {
		s.Step()
	}
	s.Camera.Settle()

	start := time.Now()
	stats := s.Frame(r)
	logFrame(s, stats, time.Since(start))

	img := render.Upscale(r.Framebuffer().ToImage(), cfg.Output.Scale, cfg.Output.Smooth)
	if err := render.SaveImage(cfg.Output.Snapshot, img); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	logger.Log.Info("snapshot written",
		zap.String("path", cfg.Output.Snapshot),
		zap.Int("width", img.Bounds().Dx()),
		zap.Int("height", img.Bounds().Dy()))
	return nil
}

func logFrame(s *scene.Scene, stats scene.FrameStats, elapsed time.Duration) {
	logger.Log.Debug("frame",
		zap.Int("time", s.Time()),
		zap.String("view", s.ViewName()),
		zap.Int("drawn", stats.Drawn),
		zap.Int("culled", stats.Culled),
		zap.Int("triangles", stats.Render.Triangles),
		zap.Int("dropped", stats.Render.Dropped),
		zap.Int("fragments", stats.Render.Fragments),
		zap.Int("writes", stats.Render.Writes),
		zap.Duration("elapsed", elapsed))
}

// interactive runs the terminal viewer until the user quits.
func interactive(cfg *config.Config, s *scene.Scene) error {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	cleanup := func() {
		term.ExitAltScreen()
		term.ShowCursor()
		_ = term.Shutdown(context.Background())
	}

	fbSize := func(cols, rows int) (int, int) {
		if cfg.Render.Width > 0 && cfg.Render.Height > 0 {
			return cfg.Render.Width, cfg.Render.Height
		}
		return render.TerminalSize(cols, rows)
	}
	fbw, fbh := fbSize(width, height)
	r, err := newRenderer(cfg, fbw, fbh)
	if err != nil {
		cleanup()
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	// mu guards the scene, renderer and size against the event goroutine.
	var mu sync.Mutex
	showStatus := true

	go func() {
		for ev := range term.Events() {
			mu.Lock()
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				width, height = ev.Width, ev.Height
				term.Erase()
				term.Resize(width, height)
				r.Resize(fbSize(width, height))

			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("q", "escape", "ctrl+c"):
					cancel()
				case ev.MatchString("b"):
					s.BirdsEye()
				case ev.MatchString("o"):
					s.Overview()
				case ev.MatchString("left"):
					s.Camera.Orbit(-orbitStep, 0)
				case ev.MatchString("right"):
					s.Camera.Orbit(orbitStep, 0)
				case ev.MatchString("up"):
					s.Camera.Orbit(0, orbitStep)
				case ev.MatchString("down"):
					s.Camera.Orbit(0, -orbitStep)
				case ev.MatchString("w"):
					s.Camera.Zoom(zoomStep)
				case ev.MatchString("s"):
					s.Camera.Zoom(-zoomStep)
				case ev.MatchString("x"):
					s.ToggleWireframe()
				case ev.MatchString("?"), ev.MatchString("shift+/"):
					showStatus = !showStatus
				default:
					for _, b := range s.Bodies {
						if b.Key != "" && ev.MatchString(b.Key) {
							s.FocusKey(b.Key)
							break
						}
					}
				}
			}
			mu.Unlock()
		}
	}()

	targetDuration := time.Second / time.Duration(cfg.Render.FPS)
	lastLog := time.Now()
	frames := 0

	for {
		select {
		case <-ctx.Done():
			cleanup()
			return nil
		default:
		}

		now := time.Now()

		mu.Lock()
		stats := s.Frame(r)
		area := uv.Rect(0, 0, width, height)
		r.Framebuffer().Draw(term, area)
		if showStatus {
			drawStatus(term, area, statusLine(s, stats))
		}
		s.Step()
		mu.Unlock()

		if err := term.Display(); err != nil {
			cleanup()
			return fmt.Errorf("display: %w", err)
		}

		frames++
		if since := time.Since(lastLog); since >= time.Second {
			logFrame(s, stats, time.Since(now))
			logger.Log.Debug("fps", zap.Float64("fps", float64(frames)/since.Seconds()))
			frames, lastLog = 0, time.Now()
		}

		if elapsed := time.Since(now); elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}

func statusLine(s *scene.Scene, stats scene.FrameStats) string {
	return fmt.Sprintf(" %s  t=%d  bodies %d/%d  tris %d ", s.ViewName(), s.Time(),
		stats.Drawn, stats.Drawn+stats.Culled, stats.Render.Triangles)
}

// drawStatus writes text over the bottom row of area.
func drawStatus(scr uv.Screen, area uv.Rectangle, text string) {
	row := area.Max.Y - 1
	if row < area.Min.Y {
		return
	}
	col := area.Min.X
	for _, ch := range text {
		if col >= area.Max.X {
			break
		}
		scr.SetCell(col, row, &uv.Cell{
			Content: string(ch),
			Width:   1,
			Style:   uv.Style{Fg: render.HexToRGBA(0xFFFFFF), Bg: render.HexToRGBA(0x000000)},
		})
		col++
	}
}
