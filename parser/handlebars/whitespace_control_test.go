package handlebars

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/heathj/hbsyntax/parser/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWhitespaceControl(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		opts     Options
		expected string
	}{
		{
			name:     "strip both sides",
			in:       " foo {{~bar~}} baz ",
			expected: "#program\n| content \" foo\"\n| {{bar}}\n| content \"baz \"\n",
		},
		{
			name:     "strip newlines",
			in:       "foo \n\n{{~bar}}\n\n baz",
			expected: "#program\n| content \"foo\"\n| {{bar}}\n| content \"\\n\\n baz\"\n",
		},
		{
			name:     "strip inside block",
			in:       "{{#foo~}}\n  bar  \n{{~/foo}}",
			expected: "#program\n| {{#foo}}\n|   program\n|     content \"bar\"\n",
		},
		{
			name:     "strip around else",
			in:       "{{#foo}} bar {{~else~}} baz {{/foo}}",
			expected: "#program\n| {{#foo}}\n|   program\n|     content \" bar\"\n|   inverse\n|     content \"baz \"\n",
		},
		{
			name:     "standalone block",
			in:       "{{#foo}}\n  bar\n{{/foo}}\n",
			expected: "#program\n| {{#foo}}\n|   program\n|     content \"  bar\\n\"\n| content \"\"\n",
		},
		{
			name:     "standalone else",
			in:       "{{#foo}}\n  bar\n{{^}}\n  baz\n{{/foo}}\n",
			expected: "#program\n| {{#foo}}\n|   program\n|     content \"  bar\\n\"\n|   inverse\n|     content \"  baz\\n\"\n| content \"\"\n",
		},
		{
			name:     "standalone partial keeps indent",
			in:       "  {{> foo}}\n",
			expected: "#program\n| content \"\"\n| {{>foo}} indent=\"  \"\n| content \"\"\n",
		},
		{
			name:     "standalone comment",
			in:       "a\n  {{! note }}\nb",
			expected: "#program\n| content \"a\\n\"\n| <!-- note -->\n| content \"b\"\n",
		},
		{
			name:     "inline mustache is not standalone",
			in:       "  {{foo}}\n",
			expected: "#program\n| content \"  \"\n| {{foo}}\n| content \"\\n\"\n",
		},
		{
			name:     "ignore standalone",
			in:       "{{#foo}}\n  bar\n{{/foo}}\n",
			opts:     Options{IgnoreStandalone: true},
			expected: "#program\n| {{#foo}}\n|   program\n|     content \"\\n  bar\\n\"\n| content \"\\n\"\n",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			program, err := Parse(tt.in, tt.opts)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.expected, ast.Print(program)); diff != "" {
				t.Errorf("tree mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWhitespaceControlKeepsOriginal(t *testing.T) {
	t.Parallel()

	program, err := Parse("{{#foo}}\n  bar\n{{/foo}}\n", Options{})
	require.NoError(t, err)

	inner := program.Body[0].(*ast.BlockStatement).Program.Body[0].(*ast.ContentStatement)
	assert.Equal(t, "\n  bar\n", inner.Original)
	assert.Equal(t, "  bar\n", inner.Value)
	assert.True(t, inner.RightStripped)
	assert.False(t, inner.LeftStripped)
}

func TestWhitespaceControlIdempotent(t *testing.T) {
	inputs := []string{
		"{{#foo}}\n  bar\n{{/foo}}\n",
		"{{#foo}}\n  bar\n{{^}}\n  baz\n{{/foo}}\n",
		"  {{> foo}}\n",
		"a\n  {{! note }}\nb",
		"{{#if a}}\n x\n{{else if b}}\n y\n{{else}}\n z\n{{/if}}\n",
	}

	for _, in := range inputs {
		in := in
		t.Run(in, func(t *testing.T) {
			t.Parallel()
			program, err := Parse(in, Options{})
			require.NoError(t, err)
			once := ast.Print(program)

			NewWhitespaceControl(Options{}).Accept(program)
			if diff := cmp.Diff(once, ast.Print(program)); diff != "" {
				t.Errorf("second pass changed the tree (-first +second):\n%s", diff)
			}
		})
	}
}

func TestWhitespaceControlElseChain(t *testing.T) {
	t.Parallel()

	program, err := Parse("{{#if a}}\n x\n{{else if b}}\n y\n{{else}}\n z\n{{/if}}\n", Options{})
	require.NoError(t, err)

	expected := "#program\n| {{#if a}}\n|   program\n|     content \" x\\n\"\n|   inverse\n" +
		"|     {{#if b}}\n|       program\n|         content \" y\\n\"\n|       inverse\n|         content \" z\\n\"\n" +
		"| content \"\"\n"
	if diff := cmp.Diff(expected, ast.Print(program)); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestWhitespaceControlHandBuiltChain(t *testing.T) {
	tests := []struct {
		name string
		body []ast.Statement
	}{
		{name: "empty", body: []ast.Statement{}},
		{name: "content", body: []ast.Statement{&ast.ContentStatement{Value: " z\n", Original: " z\n"}}},
		{name: "block without program", body: []ast.Statement{&ast.BlockStatement{Path: &ast.PathExpression{Original: "if"}}}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			program := &ast.Program{Body: []ast.Statement{&ast.BlockStatement{
				Path:    &ast.PathExpression{Original: "if"},
				Program: &ast.Program{Body: []ast.Statement{&ast.ContentStatement{Value: "\n x\n", Original: "\n x\n"}}},
				Inverse: &ast.Program{Chained: true, Body: tt.body},
			}}}
			assert.NotPanics(t, func() { NewWhitespaceControl(Options{}).Accept(program) })
		})
	}
}
