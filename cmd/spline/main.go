// Command spline evaluates a one-dimensional interpolation table.
//
// Usage:
//
//	spline -x 0,1,2,3 -y 0,1,4,9 -degree catmull -from 0 -to 3 -steps 7
//	spline -config table.gcfg -compare
//
// A config file holds the table and the query grid:
//
//	[table]
//	degree = hermite
//	x = 0
//	x = 1
//	y = 0
//	y = 1
//
//	[query]
//	from = 0
//	to = 1
//	steps = 5
//
// Flags given on the command line override the file. The [query] section is
// only used when it sets steps.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
	"gopkg.in/gcfg.v1"

	spline "github.com/tphakala/go-spline"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

// fileConfig is the layout of a -config file.
type fileConfig struct {
	Table struct {
		X      []float64
		Y      []float64
		M      []float64
		Degree string
	}
	Query struct {
		From  float64
		To    float64
		Steps int
	}
}

// options is the merged result of the config file and flags.
type options struct {
	xs, ys, ms []float64
	degree     spline.Degree
	from, to   float64
	steps      int
	compare    bool
}

func run(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("spline", flag.ContinueOnError)
	var (
		configPath = fs.String("config", "", "Read table and query grid from a gcfg file")
		xList      = fs.String("x", defaultX, "Comma-separated sample x values, sorted ascending")
		yList      = fs.String("y", defaultY, "Comma-separated sample y values")
		mList      = fs.String("m", "", "Comma-separated tangents (hermite only; derived when empty)")
		degree     = fs.String("degree", defaultDegree, "Degree: constant, linear, hermite, catmull")
		from       = fs.Float64("from", defaultFrom, "First query x")
		to         = fs.Float64("to", defaultTo, "Last query x")
		steps      = fs.Int("steps", defaultSteps, "Number of evenly spaced queries")
		compare    = fs.Bool("compare", false, "Compare every degree against linear on the same grid")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	opts := options{from: *from, to: *to, steps: *steps, compare: *compare}
	degreeName := *degree

	if *configPath != "" {
		cfg, err := loadConfig(*configPath)
		if err != nil {
			return err
		}
		opts.xs, opts.ys, opts.ms = cfg.Table.X, cfg.Table.Y, cfg.Table.M
		if cfg.Table.Degree != "" && !set["degree"] {
			degreeName = cfg.Table.Degree
		}
		// A [query] section is recognized by its steps value.
		if cfg.Query.Steps > 0 {
			if !set["from"] {
				opts.from = cfg.Query.From
			}
			if !set["to"] {
				opts.to = cfg.Query.To
			}
			if !set["steps"] {
				opts.steps = cfg.Query.Steps
			}
		}
	}

	var err error
	if opts.xs == nil || set["x"] {
		if opts.xs, err = parseList(*xList); err != nil {
			return fmt.Errorf("invalid -x: %w", err)
		}
	}
	if opts.ys == nil || set["y"] {
		if opts.ys, err = parseList(*yList); err != nil {
			return fmt.Errorf("invalid -y: %w", err)
		}
	}
	if set["m"] {
		if opts.ms, err = parseList(*mList); err != nil {
			return fmt.Errorf("invalid -m: %w", err)
		}
	}
	if opts.degree, err = spline.ParseDegree(degreeName); err != nil {
		return err
	}
	if opts.steps < minSteps {
		return fmt.Errorf("steps must be at least %d, got %d", minSteps, opts.steps)
	}

	if opts.compare {
		return runCompare(w, &opts)
	}
	return runEval(w, &opts)
}

// loadConfig reads a gcfg table file.
func loadConfig(path string) (*fileConfig, error) {
	var cfg fileConfig
	if err := gcfg.ReadFileInto(&cfg, path); err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return &cfg, nil
}

// parseList parses a comma-separated list of floats. Blank input yields nil.
func parseList(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	fields := strings.Split(s, ",")
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

// buildSpline creates an evaluator for the options' table and degree.
// Hermite tables without tangents get derived ones.
func buildSpline(opts *options, degree spline.Degree) (*spline.Spline[float64], error) {
	if degree != spline.Hermite {
		return spline.NewFromPoints(opts.xs, opts.ys, degree)
	}
	if len(opts.ms) > 0 {
		return spline.NewHermite(opts.xs, opts.ys, opts.ms)
	}
	sp, _, err := spline.NewHermiteFromSamples(opts.xs, opts.ys)
	return sp, err
}

func queryGrid(opts *options) []float64 {
	return floats.Span(make([]float64, opts.steps), opts.from, opts.to)
}

func runEval(w io.Writer, opts *options) error {
	sp, err := buildSpline(opts, opts.degree)
	if err != nil {
		return fmt.Errorf("failed to build %s spline: %w", opts.degree, err)
	}

	grid := queryGrid(opts)
	values := sp.ValueAll(grid)

	fmt.Fprintf(w, "# %s spline, %d samples\n", opts.degree, sp.Len())
	for i, x := range grid {
		fmt.Fprintf(w, "%g\t%g\n", x, values[i])
	}
	return nil
}

// deviationStats summarizes |values - reference|.
type deviationStats struct {
	mean, max, stddev float64
}

func deviation(values, reference []float64) (deviationStats, error) {
	diffs := make(stats.Float64Data, len(values))
	for i := range values {
		d := values[i] - reference[i]
		if d < 0 {
			d = -d
		}
		diffs[i] = d
	}

	var ds deviationStats
	var err error
	if ds.mean, err = stats.Mean(diffs); err != nil {
		return ds, err
	}
	if ds.max, err = stats.Max(diffs); err != nil {
		return ds, err
	}
	if ds.stddev, err = stats.StandardDeviation(diffs); err != nil {
		return ds, err
	}
	return ds, nil
}

func runCompare(w io.Writer, opts *options) error {
	grid := queryGrid(opts)

	linear, err := buildSpline(opts, spline.Linear)
	if err != nil {
		return fmt.Errorf("failed to build linear spline: %w", err)
	}
	reference := linear.ValueAll(grid)

	fmt.Fprintf(w, "# deviation from linear over %d queries in [%g, %g]\n",
		len(grid), opts.from, opts.to)
	fmt.Fprintf(w, "%-10s %12s %12s %12s\n", "degree", "mean", "max", "stddev")

	for _, degree := range []spline.Degree{spline.Constant, spline.Hermite, spline.CatmullRom} {
		sp, err := buildSpline(opts, degree)
		if err != nil {
			return fmt.Errorf("failed to build %s spline: %w", degree, err)
		}
		ds, err := deviation(sp.ValueAll(grid), reference)
		if err != nil {
			return fmt.Errorf("failed to summarize %s: %w", degree, err)
		}
		fmt.Fprintf(w, "%-10s %12.6g %12.6g %12.6g\n", degree, ds.mean, ds.max, ds.stddev)
	}
	return nil
}
