package main

import (
	"math"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/samcharles93/contfrac/internal/series"
)

// Config represents the contfrac configuration file (~/.config/contfrac/config.yaml).
// All fields are pointers so we can distinguish "not set" from zero values.
type Config struct {
	// Evaluation defaults. Eps and Tiny are linear in both modes.
	Eps     *float64 `yaml:"eps"`
	Tiny    *float64 `yaml:"tiny"`
	MaxIter *int     `yaml:"maxiter"`
	Log     *bool    `yaml:"log"`
	DType   *string  `yaml:"dtype"`

	// Output
	LogLevel  *string `yaml:"log_level"`
	LogFormat *string `yaml:"log_format"`

	// Server
	ServerAddress *string `yaml:"server_address"`
}

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "contfrac", "config.yaml")
}

// applyLogConfig applies config file defaults to the logging flags when
// they were not set explicitly.
func applyLogConfig(c *cli.Command, cfg Config, level, format *string) {
	if cfg.LogLevel != nil && !c.IsSet("log-level") {
		*level = *cfg.LogLevel
	}
	if cfg.LogFormat != nil && !c.IsSet("log-format") {
		*format = *cfg.LogFormat
	}
}

// applyEvalConfig settles the log mode and fills settings the problem file
// left open from the config file. The mode comes from logFlag when set, then
// the file, then the config. Config tolerances are linear. File tolerances
// are in the file's own domain and are converted when the mode changes.
// Flag tolerances are applied afterwards and win over both.
func applyEvalConfig(cfg Config, s *series.Settings, logFlag *bool) {
	fileLog := s.LogMode()
	log := fileLog
	switch {
	case logFlag != nil:
		log = *logFlag
	case s.Log != nil:
	case cfg.Log != nil:
		log = *cfg.Log
	}
	if log != fileLog {
		convert := math.Exp
		if log {
			convert = math.Log
		}
		s.Tolerances.Eps = mapTolerance(s.Tolerances.Eps, convert)
		s.Tolerances.Tiny = mapTolerance(s.Tolerances.Tiny, convert)
	}
	s.Log = &log

	fromConfig := func(v float64) float64 { return v }
	if log {
		fromConfig = math.Log
	}
	if cfg.Eps != nil && s.Tolerances.Eps == nil {
		s.Tolerances.Eps = mapTolerance(cfg.Eps, fromConfig)
	}
	if cfg.Tiny != nil && s.Tolerances.Tiny == nil {
		s.Tolerances.Tiny = mapTolerance(cfg.Tiny, fromConfig)
	}
	if cfg.MaxIter != nil && s.MaxIter == nil {
		s.MaxIter = cfg.MaxIter
	}
	if cfg.DType != nil && s.DType == "" {
		s.DType = *cfg.DType
	}
}

func mapTolerance(v *float64, fn func(float64) float64) *float64 {
	if v == nil {
		return nil
	}
	x := fn(*v)
	return &x
}

// applyServeConfig applies config file defaults to serve command variables.
func applyServeConfig(c *cli.Command, cfg Config, addr *string) {
	if cfg.ServerAddress != nil && !c.IsSet("addr") {
		*addr = *cfg.ServerAddress
	}
}

// LoadConfig reads the config file. Returns a zero Config if the file doesn't exist.
func LoadConfig(path string) Config {
	if path == "" {
		return Config{}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}
	}
	return cfg
}
