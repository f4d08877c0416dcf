// Package config loads archboard settings from a TOML file, a .env file and
// the process environment.
//
// Precedence, highest first: command-line flags (applied by the CLI),
// environment variables, the config file, built-in defaults. Variables from
// .env never override variables already present in the environment.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/matzehuels/archboard/pkg/errors"
	"github.com/matzehuels/archboard/pkg/pipeline"
	"github.com/matzehuels/archboard/pkg/whiteboard/miro"
)

// DefaultFile is read from the working directory when no --config is given.
const DefaultFile = "archboard.toml"

// Environment variables.
const (
	EnvMiroToken    = "MIRO_API_TOKEN"
	EnvBoardName    = "BOARD_NAME"
	EnvGitHubURL    = "GITHUB_URL"
	EnvGitHubOutput = "GITHUB_OUTPUT"
	EnvRedisAddr    = "ARCHBOARD_REDIS_ADDR"
	EnvSourceDir    = "ARCHBOARD_SOURCE_DIR"
	EnvConcurrency  = "ARCHBOARD_CONCURRENCY"
)

// Config is the merged archboard configuration.
type Config struct {
	Board   BoardConfig   `toml:"board"`
	Source  SourceConfig  `toml:"source"`
	Layout  LayoutConfig  `toml:"layout"`
	Emit    EmitConfig    `toml:"emit"`
	Palette PaletteConfig `toml:"palette"`
	Miro    MiroConfig    `toml:"miro"`
	Redis   RedisConfig   `toml:"redis"`
	Output  OutputConfig  `toml:"output"`

	// GitHubOutput is the CI step output file, if any. Environment only.
	GitHubOutput string `toml:"-"`
}

type BoardConfig struct {
	Title     string `toml:"title"`
	Link      string `toml:"link"`
	LinkLabel string `toml:"link_label"`
}

type SourceConfig struct {
	Dir string `toml:"dir"`
}

type LayoutConfig struct {
	Engine  string  `toml:"engine"`
	Spacing float64 `toml:"spacing"`
}

type EmitConfig struct {
	Concurrency int `toml:"concurrency"`
	Retries     int `toml:"retries"`
}

type PaletteConfig struct {
	Default string            `toml:"default"`
	Colors  map[string]string `toml:"colors"`
}

// MiroConfig holds the Miro adapter settings. The token is never read from
// the config file so it does not end up in version control.
type MiroConfig struct {
	APIURL string `toml:"api_url"`
	Token  string `toml:"-"`
}

type RedisConfig struct {
	Addr   string `toml:"addr"`
	Stream string `toml:"stream"`
	MaxLen int64  `toml:"max_len"`
}

type OutputConfig struct {
	Path string `toml:"path"`
}

// Default returns the built-in defaults.
func Default() *Config {
	return &Config{
		Board:  BoardConfig{Title: pipeline.DefaultTitle},
		Source: SourceConfig{Dir: pipeline.DefaultSourceDir},
		Layout: LayoutConfig{Engine: pipeline.DefaultLayout, Spacing: pipeline.DefaultSpacing},
		Emit:   EmitConfig{Concurrency: 1},
		Miro:   MiroConfig{APIURL: miro.DefaultBaseURL},
	}
}

// Load builds a Config from defaults, the TOML file at path and the
// environment. An empty path reads DefaultFile when it exists; a path that
// was named explicitly must exist. envFiles are loaded with godotenv first;
// missing env files are ignored.
func Load(path string, envFiles ...string) (*Config, error) {
	if err := LoadDotEnv(envFiles...); err != nil {
		return nil, err
	}

	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	if err := cfg.decodeFile(path, explicit); err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDotEnv loads variables from .env style files into the environment
// without overriding existing values. With no arguments ".env" is tried.
// Missing files are skipped; a file that exists but does not parse is an
// INVALID_CONFIG error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", f)
		}
	}
	return nil
}

func (c *Config) decodeFile(path string, required bool) error {
	if _, err := os.Stat(path); err != nil {
		if !required && os.IsNotExist(err) {
			return nil
		}
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "config file %s", path)
	}
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// ApplyEnv overlays environment variables read through lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	if v, ok := get(EnvMiroToken); ok {
		c.Miro.Token = v
	}
	if v, ok := get(EnvBoardName); ok {
		c.Board.Title = v
	}
	if v, ok := get(EnvGitHubURL); ok {
		c.Board.Link = v
	}
	if v, ok := get(EnvGitHubOutput); ok {
		c.GitHubOutput = v
	}
	if v, ok := get(EnvRedisAddr); ok {
		c.Redis.Addr = v
	}
	if v, ok := get(EnvSourceDir); ok {
		c.Source.Dir = v
	}
	if v, ok := get(EnvConcurrency); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", EnvConcurrency)
		}
		c.Emit.Concurrency = n
	}
	return nil
}

// Validate checks settings that pipeline options do not cover.
func (c *Config) Validate() error {
	if c.Emit.Retries < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "emit.retries must not be negative, got %d", c.Emit.Retries)
	}
	if c.Redis.MaxLen < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "redis.max_len must not be negative, got %d", c.Redis.MaxLen)
	}
	opts := c.PipelineOptions()
	return opts.ValidateAndSetDefaults()
}

// PipelineOptions converts the config into pipeline options.
func (c *Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		SourceDir:    c.Source.Dir,
		Layout:       c.Layout.Engine,
		Spacing:      c.Layout.Spacing,
		Title:        c.Board.Title,
		Link:         c.Board.Link,
		LinkLabel:    c.Board.LinkLabel,
		Palette:      c.Palette.Colors,
		DefaultColor: c.Palette.Default,
		Concurrency:  c.Emit.Concurrency,
	}
}
