// Command img2ascii prints an image as colored text.
//
// Usage:
//
//	img2ascii [flags] <image> [stride] [aspect]
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/lmittmann/tint"

	"github.com/wbrown/img2ascii"
	"github.com/wbrown/img2ascii/imageutil"
)

var errUsage = errors.New("usage")

// options is the parsed command line.
type options struct {
	path     string
	scale    int
	aspect   float64
	contrast float64
	color    string
	workers  int
	verbose  bool
	version  bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseArgs(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(stderr, "img2ascii: %v\n", err)
		}
		return 1
	}
	if opts.version {
		fmt.Fprintf(stdout, "img2ascii version %s\n", img2ascii.Version)
		return 0
	}

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	log := slog.New(tint.NewHandler(stderr, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05.000",
		NoColor:    !isTerminal(stderr),
	}))

	useColor, err := colorMode(opts.color, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "img2ascii: %v\n", err)
		return 1
	}

	c := img2ascii.NewConverter(
		img2ascii.WithScale(opts.scale),
		img2ascii.WithAspect(opts.aspect),
		img2ascii.WithContrast(opts.contrast),
		img2ascii.WithColor(useColor),
		img2ascii.WithWorkers(opts.workers),
		img2ascii.WithLogger(log),
	)
	log.Debug("starting", "version", img2ascii.Version, "image", opts.path,
		"workers", img2ascii.WorkerCount(opts.workers))

	start := time.Now()
	img, err := imageutil.LoadImage(opts.path)
	if err != nil {
		log.Error("could not read image", "path", opts.path, "err", err)
		return 1
	}
	warnIfTooWide(log, stdout, img.Width, opts.scale)

	if err := c.Convert(img, stdout); err != nil {
		log.Error("conversion failed", "path", opts.path, "err", err)
		return 1
	}
	log.Debug("done", "elapsed", time.Since(start))
	return 0
}

// parseArgs reads flags followed by <image> [stride] [aspect].
func parseArgs(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("img2ascii", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: img2ascii [flags] <image> [stride] [aspect]\n\n")
		fmt.Fprintf(stderr, "  stride\thorizontal sample stride in pixels (default %d)\n",
			img2ascii.DefaultScale)
		fmt.Fprintf(stderr, "  aspect\taspect correction, vertical stride = stride/aspect (default %v)\n\n",
			img2ascii.DefaultAspect)
		fs.PrintDefaults()
	}
	fs.Float64Var(&opts.contrast, "contrast", img2ascii.DefaultContrast,
		"Contrast factor applied around mid-gray")
	fs.StringVar(&opts.color, "color", "always",
		"Color output: always, never, or auto")
	fs.IntVar(&opts.workers, "workers", 0,
		"Number of rendering workers, 0 for one per CPU")
	fs.BoolVar(&opts.verbose, "v", false, "Enable debug logging")
	fs.BoolVar(&opts.version, "version", false, "Print the version and exit")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.version {
		return opts, nil
	}
	if opts.workers < 0 {
		return opts, fmt.Errorf("invalid workers %d: must not be negative", opts.workers)
	}
	if opts.contrast < 0 || math.IsNaN(opts.contrast) || math.IsInf(opts.contrast, 0) {
		return opts, fmt.Errorf("invalid contrast %v: must be a non-negative number", opts.contrast)
	}

	rest := fs.Args()
	if len(rest) < 1 || len(rest) > 3 {
		fmt.Fprintln(stderr, "You need to enter the name of <image file>")
		fs.Usage()
		return opts, errUsage
	}
	opts.path = rest[0]
	opts.scale = img2ascii.DefaultScale
	opts.aspect = img2ascii.DefaultAspect

	if len(rest) > 1 {
		scale, err := strconv.Atoi(rest[1])
		if err != nil || scale < 1 {
			return opts, fmt.Errorf("invalid stride %q: must be a positive integer", rest[1])
		}
		opts.scale = scale
	}
	if len(rest) > 2 {
		aspect, err := strconv.ParseFloat(rest[2], 64)
		if err != nil || aspect <= 0 || math.IsNaN(aspect) || math.IsInf(aspect, 0) {
			return opts, fmt.Errorf("invalid aspect %q: must be a positive number", rest[2])
		}
		opts.aspect = aspect
	}
	return opts, nil
}
