package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		content  string
		expected *Config
	}{
		{
			name: "yaml",
			file: "hbsyntax.yaml",
			content: "src_name: app.hbs\ndisable_component_generation: true\n" +
				"ignore_standalone: true\nlog_level: debug\n",
			expected: &Config{SrcName: "app.hbs", DisableComponentGeneration: true, IgnoreStandalone: true, LogLevel: "debug"},
		},
		{
			name:     "yml keeps defaults",
			file:     "hbsyntax.yml",
			content:  "src_name: x.hbs\n",
			expected: &Config{SrcName: "x.hbs", LogLevel: "warning"},
		},
		{
			name:     "empty yaml",
			file:     "empty.yaml",
			content:  "",
			expected: Default(),
		},
		{
			name:     "toml",
			file:     "hbsyntax.toml",
			content:  "src_name = \"app.hbs\"\nignore_standalone = true\nlog_level = \"trace\"\n",
			expected: &Config{SrcName: "app.hbs", IgnoreStandalone: true, LogLevel: "trace"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			path := writeFile(t, t.TempDir(), tt.file, tt.content)
			cfg, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, cfg)
		})
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		errPart string
	}{
		{name: "unknown yaml key", file: "c.yaml", content: "srcname: x\n", errPart: "parsing config"},
		{name: "unknown toml key", file: "c.toml", content: "srcname = \"x\"\n", errPart: "unknown key srcname"},
		{name: "bad toml", file: "c.toml", content: "src_name = \n", errPart: "parsing config"},
		{name: "bad level", file: "c.yaml", content: "log_level: loud\n", errPart: "log_level"},
		{name: "format", file: "c.json", content: "{}", errPart: "unsupported config format \".json\""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			path := writeFile(t, t.TempDir(), tt.file, tt.content)
			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errPart)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config")
}

func TestFind(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg, err := Find(dir)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	writeFile(t, dir, "hbsyntax.toml", "src_name = \"from-toml\"\n")
	cfg, err = Find(dir)
	require.NoError(t, err)
	assert.Equal(t, "from-toml", cfg.SrcName)

	writeFile(t, dir, "hbsyntax.yaml", "src_name: from-yaml\n")
	cfg, err = Find(dir)
	require.NoError(t, err)
	assert.Equal(t, "from-yaml", cfg.SrcName)
}

func TestParserOptions(t *testing.T) {
	t.Parallel()

	cfg := &Config{SrcName: "a.hbs", DisableComponentGeneration: true, LogLevel: "info"}
	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, level)

	log := logrus.New()
	opts := cfg.ParserOptions(log)
	assert.Equal(t, "a.hbs", opts.SrcName)
	assert.True(t, opts.DisableComponentGeneration)
	assert.False(t, opts.IgnoreStandalone)
	assert.Same(t, log, opts.Logger)
}
