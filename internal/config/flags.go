package config

import (
	"flag"
	"fmt"
)

type flags struct {
	config   string
	debug    bool
	width    int
	height   int
	workers  int
	edgeRule string
	fps      int
	seed     int64
	mesh     string
	focus    string
	snapshot string
	frames   int
	scale    int
	smooth   bool
	logFile  string
	write    string

	set map[string]bool
}

func parseFlags(args []string) (*flags, error) {
	f := &flags{}
	fs := flag.NewFlagSet("orrery", flag.ContinueOnError)
	fs.StringVar(&f.config, "config", "", "Path to config file")
	fs.BoolVar(&f.debug, "debug", false, "Enable debug logging")
	fs.IntVar(&f.width, "width", 0, "Framebuffer width (0 = terminal)")
	fs.IntVar(&f.height, "height", 0, "Framebuffer height (0 = terminal)")
	fs.IntVar(&f.workers, "workers", 0, "Raster worker bands")
	fs.StringVar(&f.edgeRule, "edge-rule", "", "Edge rule: top-left or inclusive")
	fs.IntVar(&f.fps, "fps", 0, "Target frames per second")
	fs.Int64Var(&f.seed, "seed", 0, "Noise seed")
	fs.StringVar(&f.mesh, "mesh", "", "GLB mesh used for every body")
	fs.StringVar(&f.focus, "focus", "", "Body to focus at startup")
	fs.StringVar(&f.snapshot, "snapshot", "", "Write a PNG or WebP snapshot and exit")
	fs.IntVar(&f.frames, "frames", 0, "Frames to simulate before the snapshot")
	fs.IntVar(&f.scale, "scale", 0, "Snapshot upscale factor")
	fs.BoolVar(&f.smooth, "smooth", false, "Use Catmull-Rom when upscaling")
	fs.StringVar(&f.logFile, "log", "", "Log file path")
	fs.StringVar(&f.write, "write-config", "", "Save the effective config as YAML and exit")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	f.set = map[string]bool{}
	fs.Visit(func(fl *flag.Flag) { f.set[fl.Name] = true })
	return f, nil
}

// apply overrides cfg with every flag given on the command line.
func (f *flags) apply(cfg *Config) {
	if f.debug {
		cfg.Logging.Level = "debug"
	}
	if f.set["width"] {
		cfg.Render.Width = f.width
	}
	if f.set["height"] {
		cfg.Render.Height = f.height
	}
	if f.set["workers"] {
		cfg.Render.Workers = f.workers
	}
	if f.set["edge-rule"] {
		cfg.Render.EdgeRule = f.edgeRule
	}
	if f.set["fps"] {
		cfg.Render.FPS = f.fps
	}
	if f.set["seed"] {
		cfg.Noise.Seed = f.seed
	}
	if f.set["mesh"] {
		cfg.Scene.Mesh = f.mesh
	}
	if f.set["focus"] {
		cfg.Scene.Focus = f.focus
	}
	if f.set["snapshot"] {
		cfg.Output.Snapshot = f.snapshot
	}
	if f.set["frames"] {
		cfg.Output.Frames = f.frames
	}
	if f.set["scale"] {
		cfg.Output.Scale = f.scale
	}
	if f.smooth {
		cfg.Output.Smooth = true
	}
	if f.set["log"] {
		cfg.Logging.LogFile = f.logFile
	}
	cfg.WriteConfig = f.write
}
