package parser

import (
	"testing"

	"github.com/heathj/hbsyntax/parser/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func attrs(names ...string) []*ast.AttrNode {
	out := make([]*ast.AttrNode, 0, len(names))
	for _, name := range names {
		out = append(out, b.Attr(name, b.Text("", nil)))
	}
	return out
}

func TestParseComponentBlockParams(t *testing.T) {
	tests := []struct {
		name      string
		attrs     []string
		remaining int
		params    []string
		err       string
	}{
		{name: "none", attrs: []string{"id", "class"}, remaining: 2},
		{name: "as without pipes", attrs: []string{"as", "foo"}, remaining: 2},
		{name: "trailing as", attrs: []string{"id", "as"}, remaining: 2},
		{name: "one param", attrs: []string{"id", "as", "|item|"}, remaining: 1, params: []string{"item"}},
		{name: "two params", attrs: []string{"as", "|a", "b|"}, remaining: 0, params: []string{"a", "b"}},
		{name: "spaced pipes", attrs: []string{"as", "|", "a", "|"}, remaining: 0, params: []string{"a"}},
		{name: "unterminated", attrs: []string{"as", "|a", "b"}, err: "Invalid block parameters syntax: 'as |a b'"},
		{name: "extra pipe", attrs: []string{"as", "|a|", "b|"}, err: "Invalid block parameters syntax: 'as |a| b|'"},
		{name: "zero", attrs: []string{"as", "||"}, err: "Cannot use zero block parameters: 'as ||'"},
		{name: "path", attrs: []string{"as", "|x", "foo.bar|"}, err: "Invalid identifier for block parameters: 'foo.bar' in 'as |x foo.bar|'"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			program := b.Program(nil, nil, nil)
			remaining, err := parseComponentBlockParams(attrs(tt.attrs...), program)
			if tt.err != "" {
				require.Error(t, err)
				assert.Equal(t, tt.err, err.Error())
				return
			}
			require.NoError(t, err)
			assert.Len(t, remaining, tt.remaining)
			if tt.params == nil {
				assert.Empty(t, program.BlockParams)
			} else {
				assert.Equal(t, tt.params, program.BlockParams)
			}
		})
	}
}

func TestRightStrippedOffsets(t *testing.T) {
	tests := []struct {
		original, value string
		lines, columns  int
	}{
		{" bar", "bar", 0, 1},
		{"\n  bar", "  bar", 1, 0},
		{"\n\n  x\n", "x\n", 2, 2},
		{"\n \n", "", 2, 0},
		{"same", "same", 0, 0},
	}

	for _, tt := range tests {
		lines, columns := rightStrippedOffsets(tt.original, tt.value)
		assert.Equal(t, tt.lines, lines, "lines of %q", tt.original)
		assert.Equal(t, tt.columns, columns, "columns of %q", tt.original)
	}
}

func TestIsVoid(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"area", "br", "hr", "img", "input", "link", "meta", "wbr"} {
		assert.True(t, isVoid(name), name)
	}
	for _, name := range []string{"div", "p", "x-foo", "brr", ""} {
		assert.False(t, isVoid(name), name)
	}
}

func TestSourceForMustacheInComment(t *testing.T) {
	t.Parallel()

	program := preprocess(t, "<!--\n{{foo\n  bar}}\n-->", Options{})
	require.Len(t, program.Body, 1)
	comment := program.Body[0].(*ast.CommentStatement)
	assert.Equal(t, "\n{{foo\n  bar}}\n", comment.Value)
	assert.Equal(t, ast.Position{Line: 1, Column: 0}, comment.Loc.Start)
	assert.Equal(t, ast.Position{Line: 4, Column: 3}, comment.Loc.End)
}
