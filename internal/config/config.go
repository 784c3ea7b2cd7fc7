// Package config loads the optional hbsyntax configuration file. The
// format is picked by extension: .yaml/.yml or .toml.
package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/heathj/hbsyntax/parser"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// DefaultNames are looked up, in order, when no file is given.
var DefaultNames = []string{"hbsyntax.yaml", "hbsyntax.yml", "hbsyntax.toml"}

// Config holds the settings shared by the CLI commands.
type Config struct {
	SrcName                    string `yaml:"src_name" toml:"src_name"`
	DisableComponentGeneration bool   `yaml:"disable_component_generation" toml:"disable_component_generation"`
	IgnoreStandalone           bool   `yaml:"ignore_standalone" toml:"ignore_standalone"`
	LogLevel                   string `yaml:"log_level" toml:"log_level"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{LogLevel: logrus.WarnLevel.String()}
}

// Load reads the file at path over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config %s", path)
	}

	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, errors.Wrapf(err, "parsing config %s", path)
		}
	case ".toml":
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing config %s", path)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.Errorf("parsing config %s: unknown key %s", path, undecoded[0])
		}
	default:
		return nil, errors.Errorf("unsupported config format %q", ext)
	}

	if _, err := cfg.Level(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Find loads the first of DefaultNames present in dir, or the defaults
// when there is none.
func Find(dir string) (*Config, error) {
	for _, name := range DefaultNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return Default(), nil
}

// Level parses LogLevel.
func (c *Config) Level() (logrus.Level, error) {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return 0, errors.Wrap(err, "log_level")
	}
	return level, nil
}

// ParserOptions converts the configuration into parser options.
func (c *Config) ParserOptions(log logrus.FieldLogger) parser.Options {
	return parser.Options{
		SrcName:                    c.SrcName,
		DisableComponentGeneration: c.DisableComponentGeneration,
		IgnoreStandalone:           c.IgnoreStandalone,
		Logger:                     log,
	}
}
