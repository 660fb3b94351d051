package series

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/samcharles93/contfrac/internal/contfrac"
)

// Settings are the evaluation options shared by every problem of a file.
// Tolerances are read in the domain Log selects: logarithms in log mode.
type Settings struct {
	MaxIter    *int                `yaml:"maxiter,omitempty" json:"maxiter,omitempty"`
	Log        *bool               `yaml:"log,omitempty" json:"log,omitempty"`
	DType      string              `yaml:"dtype,omitempty" json:"dtype,omitempty"`
	Tolerances contfrac.Tolerances `yaml:"tolerances,omitempty" json:"tolerances,omitempty"`
}

// LogMode reports whether the problems run in the log domain.
func (s Settings) LogMode() bool { return s.Log != nil && *s.Log }

// Bool returns a pointer to v, for filling Settings.Log.
func Bool(v bool) *bool { return &v }

// Options converts the settings to evaluator options after validating them.
func (s Settings) Options() (contfrac.Options, error) {
	opts := contfrac.Options{Tolerances: s.Tolerances, MaxIter: s.MaxIter, Log: s.LogMode()}
	if err := opts.Validate(); err != nil {
		return opts, err
	}
	// A log-domain eps of zero or more is a tolerance of at least one, which
	// every correction satisfies. It is almost always a linear value given
	// in log mode.
	if opts.Log && opts.Tolerances.Eps != nil && *opts.Tolerances.Eps >= 0 {
		return opts, fmt.Errorf("%w: log-mode eps=%g is not the logarithm of a tolerance below one",
			contfrac.ErrTolerance, *opts.Tolerances.Eps)
	}
	return opts, nil
}

// Problem is one continued fraction to evaluate.
type Problem struct {
	Name   string    `yaml:"name,omitempty" json:"name,omitempty"`
	Family string    `yaml:"family,omitempty" json:"family,omitempty"`
	A      []float64 `yaml:"a,omitempty" json:"a,omitempty"`
	B      []float64 `yaml:"b,omitempty" json:"b,omitempty"`
	Args   []Arg     `yaml:"args,omitempty" json:"args,omitempty"`
	// MaxIter overrides Settings.MaxIter for this problem.
	MaxIter *int `yaml:"maxiter,omitempty" json:"maxiter,omitempty"`
}

// File is a problem document. A single problem may be given inline as
// Problem; Problems then follow it.
type File struct {
	Settings `yaml:",inline"`
	Problem  *Problem  `yaml:"problem,omitempty" json:"problem,omitempty"`
	Problems []Problem `yaml:"problems,omitempty" json:"problems,omitempty"`
}

// All returns every problem in document order.
func (f File) All() []Problem {
	out := make([]Problem, 0, len(f.Problems)+1)
	if f.Problem != nil {
		out = append(out, *f.Problem)
	}
	return append(out, f.Problems...)
}

// Arg is one argument array, written as a list or as a bare number.
type Arg []float64

func (a *Arg) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var v float64
		if err := node.Decode(&v); err != nil {
			return err
		}
		*a = Arg{v}
		return nil
	}
	var vs []float64
	if err := node.Decode(&vs); err != nil {
		return err
	}
	*a = vs
	return nil
}

func (a *Arg) UnmarshalJSON(data []byte) error {
	var v float64
	if err := json.Unmarshal(data, &v); err == nil {
		*a = Arg{v}
		return nil
	}
	var vs []float64
	if err := json.Unmarshal(data, &vs); err != nil {
		return err
	}
	*a = vs
	return nil
}

// Format selects the problem-file decoder.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatOf picks the decoder for a file name: .json files are JSON and
// everything else is YAML.
func FormatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// ReadFile loads and validates a problem file.
func ReadFile(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, err
	}
	f, err := Decode(data, FormatOf(path))
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Decode parses a problem document and validates it.
func Decode(data []byte, format Format) (File, error) {
	var f File
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &f)
	case FormatYAML, "":
		err = yaml.Unmarshal(data, &f)
	default:
		return File{}, fmt.Errorf("unknown problem format %q", format)
	}
	if err != nil {
		return File{}, err
	}
	return f, f.Validate()
}

// Validate checks everything that can be checked without evaluating.
func (f File) Validate() error {
	problems := f.All()
	if len(problems) == 0 {
		return ErrNoProblems
	}
	if _, err := f.Options(); err != nil {
		return err
	}
	for i, p := range problems {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("problem %d (%s): %w", i, p.Label(i), err)
		}
	}
	return nil
}

// Validate checks the family and the argument count.
func (p Problem) Validate() error {
	fam, err := p.family()
	if err != nil {
		return err
	}
	if p.MaxIter != nil && *p.MaxIter < 0 {
		return fmt.Errorf("%w: got %d", contfrac.ErrMaxIter, *p.MaxIter)
	}
	if fam.Table {
		if len(p.A) == 0 || len(p.B) == 0 {
			return fmt.Errorf("%w: table needs non-empty a and b", ErrArgs)
		}
		if len(p.Args) > 0 {
			return fmt.Errorf("%w: table takes no args", ErrArgs)
		}
		return nil
	}
	if len(p.A) > 0 || len(p.B) > 0 {
		return fmt.Errorf("%w: a and b are only accepted by the table family", ErrArgs)
	}
	if len(p.Args) != len(fam.Args) {
		return fmt.Errorf("%w: %s takes %d arguments, got %d", ErrArgs, fam.Name, len(fam.Args), len(p.Args))
	}
	for i, arg := range p.Args {
		if len(arg) == 0 {
			return fmt.Errorf("%w: argument %d is empty", ErrArgs, i)
		}
	}
	return nil
}

// Label names the problem for reports, falling back to its family and
// position.
func (p Problem) Label(i int) string {
	if p.Name != "" {
		return p.Name
	}
	fam := p.Family
	if fam == "" {
		fam = TableFamily
	}
	return fmt.Sprintf("%s#%d", fam, i)
}

// family resolves the problem's family. Problems with explicit
// coefficients and no family are tables.
func (p Problem) family() (Family, error) {
	if p.Family == "" && (len(p.A) > 0 || len(p.B) > 0) {
		return Lookup(TableFamily)
	}
	if p.Family == "" {
		return Family{}, fmt.Errorf("%w: no family given", ErrUnknownFamily)
	}
	return Lookup(p.Family)
}
