package main

import (
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/contfrac/internal/logger"
	"github.com/samcharles93/contfrac/internal/series"
)

type evalOptions struct {
	file    string
	name    string
	family  string
	args    string
	a, b    string
	eps     float64
	tiny    float64
	maxiter int
	log     bool
	dtype   string
	format  string
}

func evalCmd() *cli.Command {
	var o evalOptions

	return &cli.Command{
		Name:  "eval",
		Usage: "Evaluate continued fractions from a problem file or flags",
		Flags: evalFlags(&o),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)

			f, err := buildProblems(cmd, o, cfg)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			if err := f.Validate(); err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			log.Debug("evaluating", "problems", len(f.All()), "log", f.LogMode(), "dtype", f.DType)

			reports, err := series.RunFile(ctx, f)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			switch o.format {
			case "json":
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(reports)
			case "text", "":
				printReports(reports)
				return nil
			default:
				return cli.Exit(fmt.Sprintf("error: unknown format %q (want text or json)", o.format), 1)
			}
		},
	}
}

func evalFlags(o *evalOptions) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "file",
			Aliases:     []string{"f"},
			Usage:       "problem file (.yaml or .json)",
			Destination: &o.file,
		},
		&cli.StringFlag{
			Name:        "name",
			Usage:       "name of the problem given by flags",
			Destination: &o.name,
		},
		&cli.StringFlag{
			Name:        "family",
			Usage:       "coefficient family (see `contfrac families`)",
			Destination: &o.family,
		},
		&cli.StringFlag{
			Name:        "args",
			Usage:       `family arguments, ';' between arguments and ',' between elements ("16,4;5,239")`,
			Destination: &o.args,
		},
		&cli.StringFlag{
			Name:        "a",
			Usage:       "table numerators a_1,a_2,... (one value is constant)",
			Destination: &o.a,
		},
		&cli.StringFlag{
			Name:        "b",
			Usage:       "table denominators b_0,b_1,... (one value is constant)",
			Destination: &o.b,
		},
		&cli.Float64Flag{
			Name:        "eps",
			Usage:       "convergence threshold (a logarithm with --log)",
			Destination: &o.eps,
		},
		&cli.Float64Flag{
			Name:        "tiny",
			Usage:       "replacement for a vanished denominator (a logarithm with --log)",
			Destination: &o.tiny,
		},
		&cli.IntFlag{
			Name:        "maxiter",
			Usage:       "maximum number of terms after b_0",
			Value:       100,
			Destination: &o.maxiter,
		},
		&cli.BoolFlag{
			Name:        "log",
			Usage:       "evaluate in the log domain",
			Destination: &o.log,
		},
		&cli.StringFlag{
			Name:        "dtype",
			Usage:       "element type (float32, float64, complex64, complex128)",
			Destination: &o.dtype,
		},
		&cli.StringFlag{
			Name:        "format",
			Usage:       "output format (text, json)",
			Value:       "text",
			Destination: &o.format,
		},
	}
}

// buildProblems assembles the problem document. Explicit flags win over
// the problem file, which wins over the config file.
func buildProblems(cmd *cli.Command, o evalOptions, cfg Config) (series.File, error) {
	var f series.File
	switch {
	case o.file != "":
		if o.family != "" || o.a != "" || o.b != "" || o.args != "" {
			return f, fmt.Errorf("--file cannot be combined with --family, --args, --a or --b")
		}
		var err error
		if f, err = series.ReadFile(o.file); err != nil {
			return f, err
		}
	case o.family != "" || o.a != "" || o.b != "":
		p := series.Problem{Name: o.name, Family: o.family}
		var err error
		if p.Args, err = parseArgs(o.args); err != nil {
			return f, fmt.Errorf("--args: %w", err)
		}
		if p.A, err = parseList(o.a); err != nil {
			return f, fmt.Errorf("--a: %w", err)
		}
		if p.B, err = parseList(o.b); err != nil {
			return f, fmt.Errorf("--b: %w", err)
		}
		f.Problems = []series.Problem{p}
	default:
		return f, fmt.Errorf("either --file or --family/--a/--b is required")
	}

	var logFlag *bool
	if cmd.IsSet("log") {
		logFlag = &o.log
	}
	applyEvalConfig(cfg, &f.Settings, logFlag)
	if cmd.IsSet("eps") {
		f.Tolerances.Eps = &o.eps
	}
	if cmd.IsSet("tiny") {
		f.Tolerances.Tiny = &o.tiny
	}
	if cmd.IsSet("maxiter") {
		f.MaxIter = &o.maxiter
	}
	if cmd.IsSet("dtype") {
		f.DType = o.dtype
	}
	return f, nil
}

func printReports(reports []series.Report) {
	for _, r := range reports {
		mode := r.DType
		if r.Log {
			mode += ", log"
		}
		fmt.Printf("%s (%s, %s) shape=%v\n", r.Name, r.Family, mode, r.Shape)
		for i, el := range r.Elements {
			fmt.Printf("  [%d] %-14s value=%-26s nit=%-4d nfev=%d\n", i, el.Message, el.Value.String(), el.Nit, el.Nfev)
		}
	}
}
