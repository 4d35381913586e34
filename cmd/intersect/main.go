// Command intersect counts the distinct intersection points of the lines and
// circles described in an input file.
//
//	intersect -i input.txt -o output.txt [-config engine.toml] [-svg plot.svg]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/irfansharif/intersect/internal/config"
	"github.com/irfansharif/intersect/internal/palette"
	"github.com/irfansharif/intersect/internal/pointset"
	"github.com/irfansharif/intersect/internal/scene"
	"github.com/irfansharif/intersect/internal/solver"
	"github.com/irfansharif/intersect/internal/svg"
)

const logFlags = log.Ltime | log.Lshortfile

func init() {
	log.SetFlags(logFlags)
}

// options are the parsed command line.
type options struct {
	input, output string
	configPath    string
	svgPath       string
	workers       int
	equality      string
}

// parseFlags parses args. The usage line goes to stdout and the flag defaults
// and parse errors to stderr.
func parseFlags(args []string, stdout, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("intersect", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.input, "i", "", "input `file` with the line and circle records")
	fs.StringVar(&opts.output, "o", "", "output `file` receiving the distinct-point count")
	fs.StringVar(&opts.configPath, "config", "", "engine configuration `file` (.toml, .yaml or .yml)")
	fs.StringVar(&opts.svgPath, "svg", "", "also plot the scene and its intersections to this `file`")
	fs.IntVar(&opts.workers, "workers", 0, "number of rows scanned concurrently (overrides the config file)")
	fs.StringVar(&opts.equality, "equality", "", "point merge strategy, exact or epsilon (overrides the config file)")
	fs.Usage = func() {
		fmt.Fprintln(stdout, "Usage: intersect -i input.txt -o output.txt")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if opts.input == "" || opts.output == "" {
		fs.Usage()
		return options{}, flag.ErrHelp
	}
	return opts, nil
}

func loadConfig(opts options) (config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		var err error
		if cfg, err = config.Load(opts.configPath); err != nil {
			return config.Config{}, err
		}
	}
	if opts.workers != 0 {
		cfg.Workers = opts.workers
	}
	if opts.equality != "" {
		cfg.Equality = opts.equality
	}
	return cfg, cfg.Validate()
}

func run(ctx context.Context, opts options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	in, err := os.Open(opts.input)
	if err != nil {
		return err
	}
	defer in.Close()

	sc, err := scene.Parse(in)
	if err != nil {
		return fmt.Errorf("%s: %w", opts.input, err)
	}

	set := pointset.New(pointset.WithEquality(cfg.PointEquality()))
	s := solver.New(cfg)
	count, err := s.Solve(ctx, sc, set)
	if err != nil {
		return err
	}

	out, err := os.Create(opts.output)
	if err != nil {
		return err
	}
	if err := scene.WriteCount(out, count); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	if opts.svgPath != "" {
		if err := writePlot(opts.svgPath, sc, set); err != nil {
			return fmt.Errorf("plotting: %w", err)
		}
	}
	return nil
}

func writePlot(path string, sc scene.Scene, set *pointset.Set) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := svg.WritePlot(f, sc, set.Points(), scheme()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// scheme picks the plot colours. INTERSECT_SEED selects a random scheme;
// without it plots are reproducible.
func scheme() palette.Scheme {
	s, err := palette.FromSeed(os.Getenv("INTERSECT_SEED"))
	if err != nil {
		log.Fatalf("Invalid INTERSECT_SEED value: %v", err)
	}
	return s
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stdout, os.Stderr)
	if err != nil {
		os.Exit(1)
	}
	if err := run(context.Background(), opts); err != nil {
		log.Fatalf("%v", err)
	}
}
