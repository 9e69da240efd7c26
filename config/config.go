package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/xeptore/albumfetch/catalog"
	"github.com/xeptore/albumfetch/redact"
)

const (
	DefaultFilename = "config.yaml"
	TokenEnvVar     = "CATALOG_TOKEN"
	BaseURLEnvVar   = "CATALOG_BASE_URL"
)

type Config struct {
	Log     Log     `yaml:"log"`
	Catalog Catalog `yaml:"catalog"`
}

func (c *Config) ToDict() *zerolog.Event {
	return zerolog.Dict().
		Dict("log", c.Log.ToDict()).
		Dict("catalog", c.Catalog.ToDict())
}

func (c *Config) setDefaults() {
	c.Log.setDefaults()
	c.Catalog.setDefaults()
}

func (c *Config) validate() error {
	if err := c.Log.validate(); nil != err {
		return fmt.Errorf("log config validation failed: %v", err)
	}

	if err := c.Catalog.validate(); nil != err {
		return fmt.Errorf("catalog config validation failed: %v", err)
	}

	return nil
}

type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func (c *Log) ToDict() *zerolog.Event {
	return zerolog.Dict().
		Str("level", c.Level).
		Str("format", c.Format)
}

func (c *Log) setDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}

	if c.Format == "" {
		c.Format = "pretty"
	}
}

func (c *Log) validate() error {
	if !slices.Contains([]string{"debug", "info", "warn", "error", "fatal", "panic"}, c.Level) {
		return fmt.Errorf(
			"level must be one of: debug, info, warn, error, fatal, panic, got: %s",
			c.Level,
		)
	}

	if !slices.Contains([]string{"json", "pretty"}, c.Format) {
		return fmt.Errorf("format must be 'json' or 'pretty', got: %s", c.Format)
	}

	return nil
}

type Catalog struct {
	BaseURL     string   `yaml:"base_url"`
	Token       string   `yaml:"-"`
	Timeout     Duration `yaml:"timeout"`
	Concurrency int      `yaml:"concurrency"`
}

func (c *Catalog) ToDict() *zerolog.Event {
	return zerolog.
		Dict().
		Str("base_url", c.BaseURL).
		Str("token", redact.String(c.Token)).
		Str("timeout", c.Timeout.String()).
		Int("concurrency", c.Concurrency)
}

func (c *Catalog) setDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = catalog.DefaultBaseURL
	}

	if c.Concurrency == 0 {
		c.Concurrency = 4
	}
}

func (c *Catalog) validate() error {
	if err := catalog.ValidateBaseURL(c.BaseURL); nil != err {
		return fmt.Errorf("base_url is invalid: %v", err)
	}

	if c.Timeout.Duration < 0 {
		return errors.New("timeout must not be negative")
	}

	if c.Concurrency < 0 {
		return errors.New("concurrency must be greater than 0")
	}

	return nil
}

type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("failed to parse duration: %v", err)
	}

	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("failed to parse duration: %v", err)
	}

	d.Duration = parsed

	return nil
}

// Load reads filename, or config.yaml when filename is empty. A missing
// config.yaml is not an error; an explicitly named missing file is.
func Load(filename string) (*Config, error) {
	path := lo.Ternary(len(filename) > 0, filename, DefaultFilename)

	var conf Config

	data, err := os.ReadFile(path)
	if nil != err {
		if len(filename) > 0 || !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file %s: %v", path, err)
		}
	} else if err := yaml.Unmarshal(data, &conf); nil != err {
		return nil, fmt.Errorf("failed to parse config file %s: %v", path, err)
	}

	conf.Catalog.Token = os.Getenv(TokenEnvVar)
	if v := os.Getenv(BaseURLEnvVar); v != "" {
		conf.Catalog.BaseURL = v
	}
	conf.setDefaults()

	if err := conf.validate(); nil != err {
		return nil, fmt.Errorf("configuration validation failed: %v", err)
	}

	return &conf, nil
}
