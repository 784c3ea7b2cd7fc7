package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the root command with fresh flag values. The commands are
// package globals, so these tests do not run in parallel.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	reset := func(fs *pflag.FlagSet) {
		fs.VisitAll(func(f *pflag.Flag) {
			require.NoError(t, f.Value.Set(f.DefValue))
			f.Changed = false
		})
	}
	reset(rootCmd.PersistentFlags())
	for _, c := range []*cobra.Command{parseCmd, tokenizeCmd} {
		reset(c.Flags())
	}

	var out, errOut bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name     string
		stdin    string
		args     []string
		expected string
	}{
		{
			name:     "unified",
			stdin:    "<x-foo>{{bar}}</x-foo>",
			args:     []string{"parse"},
			expected: "#program\n| <x-foo> (component)\n|   {{bar}}\n",
		},
		{
			name:     "disable components",
			stdin:    "<x-foo>{{bar}}</x-foo>",
			args:     []string{"parse", "--disable-components"},
			expected: "#program\n| <x-foo>\n|   {{bar}}\n",
		},
		{
			name:     "raw",
			stdin:    "<p>{{bar}}</p>",
			args:     []string{"parse", "--raw"},
			expected: "#program\n| content \"<p>\"\n| {{bar}}\n| content \"</p>\"\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.stdin, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestParseCommandFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.hbs")
	require.NoError(t, os.WriteFile(path, []byte("<b>{{x}}</b>"), 0o644))

	out, err := run(t, "", "parse", path)
	require.NoError(t, err)
	assert.Equal(t, "#program\n| <b>\n|   {{x}}\n", out)
}

func TestParseCommandConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hbsyntax.toml")
	require.NoError(t, os.WriteFile(path, []byte("disable_component_generation = true\n"), 0o644))

	out, err := run(t, "<x-a></x-a>", "parse", "--config", path)
	require.NoError(t, err)
	assert.Equal(t, "#program\n| <x-a>\n", out)
}

func TestParseCommandError(t *testing.T) {
	_, err := run(t, "<div><p></div>", "parse")
	require.Error(t, err)
	assert.Equal(t, "parsing <stdin>: Closing tag `div` (on line 1) did not match last open tag `p` (on line 1).", err.Error())
}

func TestBadLogLevel(t *testing.T) {
	_, err := run(t, "", "parse", "--log-level", "loud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log_level")
}

func TestTokenizeCommand(t *testing.T) {
	out, err := run(t, `<a href="x">hi</a>`, "tokenize")
	require.NoError(t, err)
	assert.Equal(t, "StartTag 1:0 a href=\"x\"\nChars 1:12 \"hi\"\nEndTag 1:14 a\n", out)
}
