package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/output"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// Config holds the parsed command line
type Config struct {
	Scene   string
	Width   int // 0 keeps the scene default
	SPP     int // 0 keeps the scene default
	Depth   int // 0 keeps the scene default
	Seed    int64
	Workers int // 0 uses the logical core count
	Format  output.Format
	Out     string // "-" writes the color image to stdout
	Albedo  bool
	Normal  bool
	Help    bool
}

// newFlagSet binds the command line flags to cfg and format
func newFlagSet(cfg *Config, format *string, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("pathtracer", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.StringVar(&cfg.Scene, "scene", "cornell", "Scene to render: "+strings.Join(scene.Names(), ", "))
	fs.IntVar(&cfg.Width, "width", 0, "Image width in pixels (0 = scene default)")
	fs.IntVar(&cfg.SPP, "spp", 0, "Samples per pixel (0 = scene default)")
	fs.IntVar(&cfg.Depth, "depth", 0, "Maximum ray bounces (0 = scene default)")
	fs.Int64Var(&cfg.Seed, "seed", renderer.DefaultOptions().Seed, "Random seed for scene construction and sampling")
	fs.IntVar(&cfg.Workers, "workers", 0, "Rows rendered in parallel (0 = logical CPU count)")
	fs.StringVar(format, "format", "", "Output format: ppm, pfm or png (default from -out extension, else ppm)")
	fs.StringVar(&cfg.Out, "out", "", "Output file; .zst, .gz or .sz adds compression, '-' writes to stdout")
	fs.BoolVar(&cfg.Albedo, "albedo", false, "Also write the first-hit albedo pass")
	fs.BoolVar(&cfg.Normal, "normal", false, "Also write the first-hit normal pass")
	fs.BoolVar(&cfg.Help, "help", false, "Show help information")
	return fs
}

// parseFlags parses command line arguments into a Config
func parseFlags(args []string, stderr io.Writer) (Config, error) {
	var cfg Config
	var format string

	fs := newFlagSet(&cfg, &format, stderr)
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if cfg.Help {
		return cfg, nil
	}
	if fs.NArg() > 0 {
		return cfg, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	if cfg.Width < 0 || cfg.SPP < 0 || cfg.Depth < 0 || cfg.Workers < 0 {
		return cfg, errors.New("-width, -spp, -depth and -workers must not be negative")
	}
	if _, err := scene.Lookup(cfg.Scene); err != nil {
		return cfg, err
	}

	f, err := resolveFormat(format, cfg.Out)
	if err != nil {
		return cfg, err
	}
	cfg.Format = f

	if cfg.Out == "-" && (cfg.Albedo || cfg.Normal) {
		return cfg, errors.New("-albedo and -normal need a file output, not stdout")
	}
	return cfg, nil
}

// resolveFormat prefers an explicit -format, then the -out extension, then PPM
func resolveFormat(format, out string) (output.Format, error) {
	if format != "" {
		return output.ParseFormat(format)
	}
	if out != "" && out != "-" {
		if f, err := output.FormatFromPath(out); err == nil {
			return f, nil
		}
	}
	return output.FormatPPM, nil
}

// defaultOutputPath returns output/<scene>/render_<timestamp>.<format>
func defaultOutputPath(sceneName string, format output.Format, now time.Time) string {
	timestamp := now.Format("20060102_150405")
	return filepath.Join("output", sceneName, fmt.Sprintf("render_%s.%s", timestamp, format))
}

// auxiliaryPath inserts a pass suffix before the image extension, keeping any
// compression suffix: out.pfm.zst -> out_albedo.pfm.zst
func auxiliaryPath(path, pass string) string {
	compression := ""
	for _, suffix := range []string{".zst", ".gz", ".sz"} {
		if strings.HasSuffix(strings.ToLower(path), suffix) {
			compression = path[len(path)-len(suffix):]
			path = path[:len(path)-len(suffix)]
			break
		}
	}
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_" + pass + ext + compression
}

// hostInfo describes the CPU and returns its logical core count
func hostInfo() (string, int) {
	model := "unknown CPU"
	if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
		model = strings.TrimSpace(infos[0].ModelName)
	}
	cores, err := cpu.Counts(true)
	if err != nil || cores <= 0 {
		return model, 0
	}
	return model, cores
}

// applyOverrides layers command line settings over the scene camera defaults
func applyOverrides(config renderer.CameraConfig, cfg Config) renderer.CameraConfig {
	if cfg.Width > 0 {
		config.Width = cfg.Width
	}
	if cfg.SPP > 0 {
		config.SamplesPerPixel = cfg.SPP
	}
	if cfg.Depth > 0 {
		config.MaxDepth = cfg.Depth
	}
	return config
}

// writeBuffer encodes one pass to path, or stdout for "-"
func writeBuffer(path string, buf *output.Buffer, format output.Format, stdout io.Writer) error {
	if path == "-" {
		return output.Encode(stdout, buf, format)
	}
	w, err := output.Create(path)
	if err != nil {
		return err
	}
	if err := output.Encode(w, buf, format); err != nil {
		w.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// run renders the configured scene and writes the requested passes
func run(ctx context.Context, cfg Config, stdout io.Writer, logger core.Logger) error {
	model, cores := hostInfo()
	workers := cfg.Workers
	if workers == 0 {
		workers = cores
	}
	logger.Printf("Host: %s, %d logical cores\n", model, cores)

	buildStart := time.Now()
	sc, err := scene.Build(cfg.Scene, cfg.Seed, logger)
	if err != nil {
		return err
	}
	logger.Printf("Built scene %q with %d objects in %v\n", sc.Name, sc.Objects, time.Since(buildStart).Round(time.Millisecond))
	if stats, ok := sc.BVHStats(); ok {
		logger.Printf("BVH: %d nodes, %d leaves, max depth %d, avg leaf depth %.1f\n",
			stats.TotalNodes, stats.LeafNodes, stats.MaxDepth, stats.AvgDepth)
	}

	options := renderer.Options{
		Workers:   workers,
		Seed:      cfg.Seed,
		Auxiliary: cfg.Albedo || cfg.Normal,
	}
	rt := renderer.NewRaytracer(sc.World, sc.Lights, applyOverrides(sc.Camera, cfg), options, logger)

	fb, stats, err := rt.Render(ctx, nil)
	if err != nil {
		return fmt.Errorf("render %s: %w", sc.Name, err)
	}
	logger.Printf("Render completed: %s\n", stats)

	out := cfg.Out
	if out == "" {
		out = defaultOutputPath(sc.Name, cfg.Format, time.Now())
	}

	if err := writeBuffer(out, fb.ColorBuffer(), cfg.Format, stdout); err != nil {
		return err
	}
	if out != "-" {
		logger.Printf("Render saved as %s\n", out)
	}

	if cfg.Albedo {
		path := auxiliaryPath(out, "albedo")
		if err := writeBuffer(path, fb.AlbedoBuffer(), cfg.Format, stdout); err != nil {
			return err
		}
		logger.Printf("Albedo saved as %s\n", path)
	}
	if cfg.Normal {
		path := auxiliaryPath(out, "normal")
		if err := writeBuffer(path, fb.NormalBuffer(), cfg.Format, stdout); err != nil {
			return err
		}
		logger.Printf("Normal saved as %s\n", path)
	}
	return nil
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, "Path Tracer")
	fmt.Fprintln(w, "Usage: pathtracer [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	newFlagSet(&Config{}, new(string), w).PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Available scenes:")
	for _, info := range scene.ListScenes() {
		fmt.Fprintf(w, "  %-18s %s\n", info.ID, info.Description)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output defaults to output/<scene>/render_<timestamp>.<format>")
	fmt.Fprintf(w, "Textures are searched in $%s, ./images and parent images directories\n", loaders.ImagesEnv)
}

func main() {
	cfg, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) || (err == nil && cfg.Help) {
		printHelp(os.Stdout)
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	if err := run(ctx, cfg, os.Stdout, renderer.NewDefaultLogger(os.Stderr)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "Total time %v\n", time.Since(start).Round(time.Millisecond))
}
