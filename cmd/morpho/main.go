// Command morpho applies erosion, dilation, opening or closing to grey images.
//
//	morpho [flags] in out
//	morpho [flags] -outdir DIR in...
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/morpho"
	"github.com/gogpu/morpho/internal/gridio"
)

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, "morpho:", err)
		os.Exit(1)
	}
}

type config struct {
	op      morpho.Operation
	mode    string
	size    int
	height  int
	axis    morpho.Axis
	seFile  string
	shape   string
	ox, oy  int
	workers int
	jobs    int
	outdir  string
	verbose bool
}

// filter runs the configured operation on one grid.
type filter func(src *morpho.Gray8) (*morpho.Gray8, error)

func parseFlags(args []string, stderr io.Writer) (config, []string, error) {
	fs := flag.NewFlagSet("morpho", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		cfg  config
		op   = fs.String("op", "erosion", "operation: erosion, dilation, opening or closing")
		axis = fs.String("axis", "horizontal", "1d mode direction: horizontal or vertical")
	)
	fs.StringVar(&cfg.mode, "mode", "1d", "algorithm: 1d, 2d, flat or grey")
	fs.IntVar(&cfg.size, "size", 3, "segment length, rectangle width or shape size")
	fs.IntVar(&cfg.height, "height", 0, "rectangle height (default -size)")
	fs.StringVar(&cfg.seFile, "se", "", "structuring element image for flat and grey modes")
	fs.StringVar(&cfg.shape, "shape", "rect", "built-in element when -se is empty: rect, cross or disk")
	fs.IntVar(&cfg.ox, "ox", -1, "element origin column (default centre)")
	fs.IntVar(&cfg.oy, "oy", -1, "element origin row (default centre)")
	fs.IntVar(&cfg.workers, "workers", 1, "goroutines per filter; 0 uses every CPU")
	fs.IntVar(&cfg.jobs, "jobs", runtime.GOMAXPROCS(0), "files processed at once with -outdir")
	fs.StringVar(&cfg.outdir, "outdir", "", "write each input under this directory")
	fs.BoolVar(&cfg.verbose, "v", false, "debug logging")

	if err := fs.Parse(args); err != nil {
		return config{}, nil, err
	}

	var err error
	if cfg.op, err = morpho.ParseOperation(*op); err != nil {
		return config{}, nil, err
	}
	if cfg.axis, err = morpho.ParseAxis(*axis); err != nil {
		return config{}, nil, err
	}
	if cfg.height == 0 {
		cfg.height = cfg.size
	}
	cfg.jobs = max(cfg.jobs, 1)

	files := fs.Args()
	switch {
	case cfg.outdir == "" && len(files) != 2:
		return config{}, nil, fmt.Errorf("want an input and an output file, got %d arguments", len(files))
	case cfg.outdir != "" && len(files) == 0:
		return config{}, nil, errors.New("no input files")
	}
	return cfg, files, nil
}

func run(args []string, stderr io.Writer) error {
	cfg, files, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	eng := morpho.New(morpho.WithLogger(log), morpho.WithWorkers(cfg.workers))
	defer eng.Close()

	apply, err := newFilter(eng, cfg)
	if err != nil {
		return err
	}

	if cfg.outdir == "" {
		return process(log, apply, files[0], files[1])
	}

	if err := os.MkdirAll(cfg.outdir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	var (
		g    errgroup.Group
		errs = make([]error, len(files))
	)
	g.SetLimit(cfg.jobs)
	for i, in := range files {
		g.Go(func() error {
			errs[i] = process(log, apply, in, filepath.Join(cfg.outdir, filepath.Base(in)))
			return nil
		})
	}
	_ = g.Wait()
	return multierr.Combine(errs...)
}

func process(log *slog.Logger, apply filter, in, out string) error {
	start := time.Now()
	src, err := gridio.Load(in)
	if err != nil {
		return fmt.Errorf("%s: %w", in, err)
	}
	dst, err := apply(src)
	if err != nil {
		return fmt.Errorf("%s: %w", in, err)
	}
	if err := gridio.Save(out, dst); err != nil {
		return fmt.Errorf("%s: %w", out, err)
	}
	log.Info("filtered", "in", in, "out", out,
		"width", src.Width, "height", src.Height, "elapsed", time.Since(start))
	return nil
}

func newFilter(eng *morpho.Engine, cfg config) (filter, error) {
	switch cfg.mode {
	case "1d":
		return func(src *morpho.Gray8) (*morpho.Gray8, error) {
			dst := morpho.NewGray8(src.Width, src.Height)
			return dst, eng.Apply1D(cfg.op, src, dst, cfg.size, cfg.axis)
		}, nil

	case "2d":
		return func(src *morpho.Gray8) (*morpho.Gray8, error) {
			dst := morpho.NewGray8(src.Width, src.Height)
			return dst, eng.Apply2D(cfg.op, src, dst, cfg.size, cfg.height)
		}, nil

	case "flat":
		se, err := element(cfg)
		if err != nil {
			return nil, err
		}
		return func(src *morpho.Gray8) (*morpho.Gray8, error) {
			dst := morpho.NewGray8(src.Width, src.Height)
			return dst, eng.ApplyFlat(cfg.op, src, dst, se)
		}, nil

	case "grey", "gray":
		var sf morpho.StructuringFunction
		if cfg.seFile != "" {
			var err error
			if sf, err = gridio.LoadFunction(cfg.seFile, cfg.ox, cfg.oy); err != nil {
				return nil, err
			}
		} else {
			se, err := element(cfg)
			if err != nil {
				return nil, err
			}
			sf = morpho.FlatFunction(se)
		}
		return func(src *morpho.Gray8) (*morpho.Gray8, error) {
			dst := morpho.NewGray16(src.Width, src.Height)
			if err := eng.ApplyGrey(cfg.op, src.ToGray16(), dst, sf); err != nil {
				return nil, err
			}
			return dst.ToGray8(), nil
		}, nil
	}
	return nil, fmt.Errorf("unknown mode %q", cfg.mode)
}

// element returns the flat element from -se, or the built-in -shape.
func element(cfg config) (morpho.StructuringElement, error) {
	if cfg.seFile != "" {
		return gridio.LoadElement(cfg.seFile, cfg.ox, cfg.oy)
	}

	var se morpho.StructuringElement
	switch cfg.shape {
	case "rect":
		se = morpho.NewRectangle(cfg.size, cfg.height)
	case "cross":
		se = morpho.NewCross(cfg.size)
	case "disk":
		se = morpho.NewDisk(cfg.size / 2)
	default:
		return se, fmt.Errorf("unknown shape %q", cfg.shape)
	}
	if cfg.ox >= 0 {
		se.OriginX = cfg.ox
	}
	if cfg.oy >= 0 {
		se.OriginY = cfg.oy
	}
	return se, se.Validate()
}
