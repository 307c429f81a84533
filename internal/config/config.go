package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath string `yaml:"-"`

	// Output settings
	OutputDir  string `yaml:"output_dir"`
	OutputFile string `yaml:"output_file"`

	// Verification settings
	IgnoreFailures bool `yaml:"ignore_failures"`

	// Reporting settings
	MetricsFile string `yaml:"metrics_file"`
	Stats       bool   `yaml:"stats"`
	Progress    bool   `yaml:"progress"`

	// Command flags
	Flags Flags `yaml:"-"`
}

// Flags holds command-line flags
type Flags struct {
	ConfigFile     string
	OutputFile     string
	IgnoreFailures bool
	TestCases      bool
}

// New creates a new Config with defaults
func New() *Config {
	return &Config{
		ProjectPath: DefaultProjectPath,
		OutputDir:   DefaultOutputDir,
		OutputFile:  DefaultOutputFile,
		Stats:       DefaultStats,
	}
}

// Load builds a config from defaults, the config file, the environment and flags,
// in increasing order of precedence
func Load(flags Flags) (*Config, error) {
	cfg := New()
	cfg.Flags = flags

	if err := LoadEnv(filepath.Join(cfg.ProjectPath, DefaultEnvFile)); err != nil {
		return nil, err
	}

	path, explicit := flags.ConfigFile, true
	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}
	if path == "" {
		path, explicit = filepath.Join(cfg.ProjectPath, DefaultConfigFile), false
	}
	if err := cfg.LoadFile(path, explicit); err != nil {
		return nil, err
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	// Apply flag overrides
	if flags.IgnoreFailures {
		cfg.IgnoreFailures = true
	}

	return cfg, nil
}

// LoadEnv loads a dotenv file into the process environment. Variables already
// set are kept, and a missing file is not an error.
func LoadEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// LoadFile merges a YAML config file into c. A missing file is only an error
// when required is set.
func (c *Config) LoadFile(path string, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides settings from OPTEST_* environment variables
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvOutputDir); v != "" {
		c.OutputDir = v
	}
	if v := os.Getenv(EnvOutputFile); v != "" {
		c.OutputFile = v
	}
	if v := os.Getenv(EnvMetricsFile); v != "" {
		c.MetricsFile = v
	}
	for name, dst := range map[string]*bool{
		EnvIgnoreFailures: &c.IgnoreFailures,
		EnvStats:          &c.Stats,
		EnvProgress:       &c.Progress,
	} {
		v := os.Getenv(name)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s=%q: %w", name, v, err)
		}
		*dst = b
	}
	return nil
}

// GetOutputPath returns the capture file written by run and read by verify and failures.
// An explicit output file flag wins over the configured location.
func (c *Config) GetOutputPath() string {
	if c.Flags.OutputFile != "" {
		return c.Flags.OutputFile
	}
	p := filepath.Join(c.ProjectPath, c.OutputDir, c.OutputFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
