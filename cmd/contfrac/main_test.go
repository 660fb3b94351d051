package main

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/contfrac/internal/contfrac"
	"github.com/samcharles93/contfrac/internal/series"
)

func TestParseArgs(t *testing.T) {
	t.Parallel()

	args, err := parseArgs(" 16, 4 ; 5,239")
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if len(args) != 2 || len(args[0]) != 2 || args[0][0] != 16 || args[1][1] != 239 {
		t.Fatalf("got %v", args)
	}
	if args, err := parseArgs(""); err != nil || args != nil {
		t.Fatalf("empty: %v, %v", args, err)
	}
	if _, err := parseArgs("1;;2"); err == nil {
		t.Fatal("expected error for empty argument")
	}
	if _, err := parseArgs("1,x"); err == nil {
		t.Fatal("expected error for non-number")
	}
}

func TestParseList(t *testing.T) {
	t.Parallel()

	vals, err := parseList("3, 7,15,1e2")
	if err != nil {
		t.Fatalf("parseList: %v", err)
	}
	want := []float64{3, 7, 15, 100}
	if len(vals) != len(want) {
		t.Fatalf("got %v", vals)
	}
	for i := range want {
		if vals[i] != want[i] {
			t.Fatalf("got %v want %v", vals, want)
		}
	}
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "eps: 1e-12\nmaxiter: 40\nlog: true\ndtype: complex128\nlog_level: debug\nserver_address: 0.0.0.0:9000\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	c := LoadConfig(path)
	if c.Eps == nil || *c.Eps != 1e-12 || c.MaxIter == nil || *c.MaxIter != 40 {
		t.Fatalf("config: %+v", c)
	}
	if c.Tiny != nil || c.LogFormat != nil {
		t.Fatal("unset fields must stay nil")
	}
	if c.ServerAddress == nil || *c.ServerAddress != "0.0.0.0:9000" {
		t.Fatalf("server address: %v", c.ServerAddress)
	}

	if got := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); got.Eps != nil {
		t.Fatalf("missing file should give an empty config: %+v", got)
	}
	if got := LoadConfig(""); got.MaxIter != nil {
		t.Fatalf("empty path should give an empty config: %+v", got)
	}
}

func TestApplyEvalConfigKeepsFileValues(t *testing.T) {
	t.Parallel()

	eps, maxiter, dtype := 1e-9, 7, "float32"
	c := Config{Eps: &eps, MaxIter: &maxiter, DType: &dtype}

	fileEps := 1e-14
	var s series.Settings
	s.Tolerances.Eps = &fileEps
	applyEvalConfig(c, &s, nil)
	if *s.Tolerances.Eps != 1e-14 {
		t.Fatalf("config overrode the file: eps=%g", *s.Tolerances.Eps)
	}
	if s.MaxIter == nil || *s.MaxIter != 7 || s.DType != "float32" {
		t.Fatalf("config defaults not applied: %+v", s)
	}
	if s.Log == nil || *s.Log {
		t.Fatalf("log mode should settle to linear, got %v", s.Log)
	}
}

func TestApplyEvalConfigLogMode(t *testing.T) {
	t.Parallel()

	eps, tiny, on := 1e-12, 1e-200, true
	c := Config{Eps: &eps, Tiny: &tiny, Log: &on}

	// Config tolerances are linear and become logarithms in log mode.
	var s series.Settings
	applyEvalConfig(c, &s, nil)
	if !s.LogMode() || *s.Tolerances.Eps != math.Log(1e-12) || *s.Tolerances.Tiny != math.Log(1e-200) {
		t.Fatalf("log-mode config: log=%v eps=%v tiny=%v", s.LogMode(), *s.Tolerances.Eps, *s.Tolerances.Tiny)
	}

	// An explicit log: false in the file wins over the config.
	s = series.Settings{Log: series.Bool(false)}
	applyEvalConfig(c, &s, nil)
	if s.LogMode() || *s.Tolerances.Eps != 1e-12 {
		t.Fatalf("file log=false: log=%v eps=%v", s.LogMode(), *s.Tolerances.Eps)
	}

	// The flag wins over both, and file tolerances follow the mode.
	s = series.Settings{Log: series.Bool(false)}
	s.Tolerances.Eps = contfrac.Float(1e-10)
	applyEvalConfig(Config{}, &s, series.Bool(true))
	if !s.LogMode() || math.Abs(*s.Tolerances.Eps-math.Log(1e-10)) > 1e-15 {
		t.Fatalf("flag log: log=%v eps=%v", s.LogMode(), *s.Tolerances.Eps)
	}
	s.Tolerances.Eps = contfrac.Float(math.Log(1e-10))
	applyEvalConfig(Config{}, &s, series.Bool(false))
	if s.LogMode() || math.Abs(*s.Tolerances.Eps-1e-10) > 1e-22 {
		t.Fatalf("flag linear: log=%v eps=%v", s.LogMode(), *s.Tolerances.Eps)
	}
}

// runBuild parses args with the eval flags and returns what buildProblems
// produces.
func runBuild(t *testing.T, cfg Config, args ...string) (series.File, error) {
	t.Helper()
	var (
		o   evalOptions
		got series.File
	)
	cmd := &cli.Command{
		Name:  "eval",
		Flags: evalFlags(&o),
		Action: func(ctx context.Context, c *cli.Command) error {
			var err error
			got, err = buildProblems(c, o, cfg)
			return err
		},
	}
	err := cmd.Run(context.Background(), append([]string{"eval"}, args...))
	return got, err
}

func TestBuildProblemsFromFlags(t *testing.T) {
	t.Parallel()

	f, err := runBuild(t, Config{}, "--family", "arctan", "--args", "16,4;5,239", "--eps=-23", "--log")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if err := f.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	p := f.All()[0]
	if p.Family != "arctan" || len(p.Args) != 2 {
		t.Fatalf("problem: %+v", p)
	}
	if f.Tolerances.Eps == nil || *f.Tolerances.Eps != -23 || !f.LogMode() {
		t.Fatalf("settings: %+v", f.Settings)
	}
	if f.MaxIter != nil {
		t.Fatalf("maxiter should stay unset without the flag, got %d", *f.MaxIter)
	}
}

func TestBuildProblemsFlagsOverrideFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "problems.json")
	doc := `{"maxiter":5,"dtype":"float32","problems":[{"family":"golden"}]}`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	f, err := runBuild(t, Config{}, "--file", path, "--maxiter", "60")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if f.MaxIter == nil || *f.MaxIter != 60 || f.DType != "float32" {
		t.Fatalf("settings: %+v", f.Settings)
	}

	if _, err := runBuild(t, Config{}, "--file", path, "--family", "pi"); err == nil {
		t.Fatal("expected error combining --file and --family")
	}
	if _, err := runBuild(t, Config{}); err == nil {
		t.Fatal("expected error without a problem source")
	}
}

func TestBuildProblemsConfigEpsWithLogFlag(t *testing.T) {
	t.Parallel()

	eps := 1e-12
	f, err := runBuild(t, Config{Eps: &eps}, "--family", "arctan", "--args", "16,4;5,239", "--log")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !f.LogMode() || *f.Tolerances.Eps != math.Log(1e-12) {
		t.Fatalf("settings: log=%v eps=%v", f.LogMode(), *f.Tolerances.Eps)
	}
	reports, err := series.RunFile(context.Background(), f)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	els := reports[0].Elements
	if !els[0].Success || !els[1].Success {
		t.Fatalf("elements: %+v", els)
	}
	if got := els[0].Value.Re - els[1].Value.Re; math.Abs(got-math.Pi) > 1e-10 {
		t.Fatalf("pi %.17g", got)
	}
}

func TestBuildProblemsFileLogFalseBeatsConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "problems.yaml")
	doc := "log: false\nproblems:\n  - family: arctan\n    args: [[16, 4], [5, 239]]\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	eps, on := 1e-12, true
	f, err := runBuild(t, Config{Eps: &eps, Log: &on}, "--file", path)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if f.LogMode() || *f.Tolerances.Eps != 1e-12 {
		t.Fatalf("settings: log=%v eps=%v", f.LogMode(), *f.Tolerances.Eps)
	}
	reports, err := series.RunFile(context.Background(), f)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if rep := reports[0]; rep.Log || rep.DType != "float64" {
		t.Fatalf("report: %+v", rep)
	}
	els := reports[0].Elements
	if got := els[0].Value.Re - els[1].Value.Re; math.Abs(got-math.Pi) > 1e-10 {
		t.Fatalf("pi %.17g", got)
	}
}
