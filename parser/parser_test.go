package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/heathj/hbsyntax/parser/ast"
	"github.com/heathj/hbsyntax/parser/handlebars"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func preprocess(t *testing.T, source string, opts Options) *ast.Program {
	t.Helper()
	out, err := Preprocess(source, opts)
	require.NoError(t, err)
	program, ok := out.(*ast.Program)
	require.True(t, ok, "expected a program, got %T", out)
	return program
}

func TestElementLocations(t *testing.T) {
	t.Parallel()

	program := preprocess(t, "<div>{{foo}} bar {{baz}}</div>", Options{SrcName: "loc.hbs"})
	require.Len(t, program.Body, 1)

	div := program.Body[0].(*ast.ElementNode)
	assert.Equal(t, "div", div.Tag)
	assert.Equal(t, &ast.SourceLocation{Source: "loc.hbs", Start: ast.Position{Line: 1, Column: 0}, End: ast.Position{Line: 1, Column: 30}}, div.Loc)
	require.Len(t, div.Children, 3)

	foo := div.Children[0].(*ast.MustacheStatement)
	assert.Equal(t, "foo", foo.Path.(*ast.PathExpression).Original)
	assert.Equal(t, ast.Position{Line: 1, Column: 5}, foo.Loc.Start)
	assert.Equal(t, ast.Position{Line: 1, Column: 12}, foo.Loc.End)

	text := div.Children[1].(*ast.TextNode)
	assert.Equal(t, " bar ", text.Chars)
	assert.Equal(t, &ast.SourceLocation{Source: "loc.hbs", Start: ast.Position{Line: 1, Column: 12}, End: ast.Position{Line: 1, Column: 17}}, text.Loc)

	baz := div.Children[2].(*ast.MustacheStatement)
	assert.Equal(t, ast.Position{Line: 1, Column: 17}, baz.Loc.Start)
	assert.Equal(t, ast.Position{Line: 1, Column: 24}, baz.Loc.End)
}

func TestStrippedContentLocations(t *testing.T) {
	t.Parallel()

	program := preprocess(t, "foo {{content~}} bar", Options{})
	text := program.Body[2].(*ast.TextNode)
	assert.Equal(t, "bar", text.Chars)
	assert.Equal(t, ast.Position{Line: 1, Column: 17}, text.Loc.Start)
	assert.Equal(t, ast.Position{Line: 1, Column: 20}, text.Loc.End)

	program = preprocess(t, "<div>\n  {{#if a}}\n    <p>yes</p>\n  {{/if}}\n</div>", Options{})
	div := program.Body[0].(*ast.ElementNode)
	assert.Equal(t, ast.Position{Line: 1, Column: 0}, div.Loc.Start)
	assert.Equal(t, ast.Position{Line: 5, Column: 6}, div.Loc.End)

	block := div.Children[1].(*ast.BlockStatement)
	indent := block.Program.Body[0].(*ast.TextNode)
	assert.Equal(t, ast.Position{Line: 3, Column: 0}, indent.Loc.Start)
	p := block.Program.Body[1].(*ast.ElementNode)
	assert.Equal(t, ast.Position{Line: 3, Column: 4}, p.Loc.Start)
	assert.Equal(t, ast.Position{Line: 3, Column: 14}, p.Loc.End)
}

func TestComponentGeneration(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		expected string
	}{
		{
			name:     "default",
			expected: "#program\n| <x-foo> (component)\n|   a=\"b\"\n|   {{a}}\n",
		},
		{
			name:     "disabled",
			opts:     Options{DisableComponentGeneration: true},
			expected: "#program\n| <x-foo>\n|   a=\"b\"\n|   {{a}}\n",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			program := preprocess(t, "<x-foo a=b>{{a}}</x-foo>", tt.opts)
			if diff := cmp.Diff(tt.expected, ast.Print(program)); diff != "" {
				t.Errorf("tree mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestComponentNode(t *testing.T) {
	t.Parallel()

	program := preprocess(t, "<x-foo a=b>{{a}}</x-foo>", Options{})
	component := program.Body[0].(*ast.ComponentNode)
	assert.Equal(t, "x-foo", component.Tag)
	require.Len(t, component.Attributes, 1)
	assert.Equal(t, "a", component.Attributes[0].Name)
	assert.Equal(t, "b", component.Attributes[0].Value.(*ast.TextNode).Chars)
	require.Len(t, component.Program.Body, 1)
	assert.Equal(t, "a", component.Program.Body[0].(*ast.MustacheStatement).Path.(*ast.PathExpression).Original)
	assert.Empty(t, component.Program.BlockParams)
}

func TestConcatParts(t *testing.T) {
	t.Parallel()

	program := preprocess(t, "<div class='before {{foo}} after'></div>", Options{})
	div := program.Body[0].(*ast.ElementNode)
	require.Len(t, div.Attributes, 1)

	concat, ok := div.Attributes[0].Value.(*ast.ConcatStatement)
	require.True(t, ok)
	require.Len(t, concat.Parts, 3)
	assert.Equal(t, "before ", concat.Parts[0].(*ast.StringLiteral).Value)
	assert.Equal(t, "foo", concat.Parts[1].(*ast.PathExpression).Original)
	assert.Equal(t, " after", concat.Parts[2].(*ast.StringLiteral).Value)
}

func TestMustacheDefaults(t *testing.T) {
	t.Parallel()

	program := preprocess(t, "{{foo}}{{{bar}}}", Options{})
	foo := program.Body[0].(*ast.MustacheStatement)
	assert.True(t, foo.Escaped)
	assert.NotNil(t, foo.Params)
	assert.NotNil(t, foo.Hash)
	assert.Empty(t, foo.Hash.Pairs)
	assert.False(t, program.Body[1].(*ast.MustacheStatement).Escaped)
}

func TestSubExpressionDefaults(t *testing.T) {
	t.Parallel()

	assertDefaults := func(t *testing.T, sub *ast.SubExpression) {
		t.Helper()
		assert.NotNil(t, sub.Params)
		require.NotNil(t, sub.Hash)
		assert.NotNil(t, sub.Hash.Pairs)
		assert.NotNil(t, sub.Loc)
	}

	program := preprocess(t, "{{foo (bar) key=(baz (qux))}}", Options{})
	foo := program.Body[0].(*ast.MustacheStatement)
	require.Len(t, foo.Params, 1)
	bar := foo.Params[0].(*ast.SubExpression)
	assertDefaults(t, bar)
	assert.Empty(t, bar.Hash.Pairs)

	require.Len(t, foo.Hash.Pairs, 1)
	baz := foo.Hash.Pairs[0].Value.(*ast.SubExpression)
	assertDefaults(t, baz)
	require.Len(t, baz.Params, 1)
	assertDefaults(t, baz.Params[0].(*ast.SubExpression))

	program = preprocess(t, "{{#if (eq a)}}x{{/if}}<div class={{c (d)}}></div>", Options{})
	block := program.Body[0].(*ast.BlockStatement)
	assertDefaults(t, block.Params[0].(*ast.SubExpression))
	div := program.Body[1].(*ast.ElementNode)
	attr := div.Attributes[0].Value.(*ast.MustacheStatement)
	assertDefaults(t, attr.Params[0].(*ast.SubExpression))
}

func TestPartialLocation(t *testing.T) {
	t.Parallel()

	program := preprocess(t, "{{> card (title)}}", Options{SrcName: "p.hbs"})
	partial := program.Body[0].(*ast.PartialStatement)
	assert.Equal(t, &ast.SourceLocation{Source: "p.hbs", Start: ast.Position{Line: 1, Column: 0}, End: ast.Position{Line: 1, Column: 18}}, partial.Loc)
	assert.NotNil(t, partial.Params[0].(*ast.SubExpression).Hash)
}

func TestIgnoreStandalone(t *testing.T) {
	t.Parallel()

	program := preprocess(t, "{{#if a}}\n<p></p>\n{{/if}}", Options{IgnoreStandalone: true})
	block := program.Body[0].(*ast.BlockStatement)
	assert.Equal(t, "\n", block.Program.Body[0].(*ast.TextNode).Chars)
}

func TestPreprocessErrors(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"<div><p></div>", "Closing tag `div` (on line 1) did not match last open tag `p` (on line 1)."},
		{"<x-bar as ||>foo</x-bar>", "Cannot use zero block parameters: 'as ||'"},
		{"<x-bar as | |>foo</x-bar>", "Cannot use zero block parameters: 'as | |'"},
		{"<x-bar as |x foo.bar|></x-bar>", "Invalid identifier for block parameters: 'foo.bar' in 'as |x foo.bar|'"},
		{"{{#foo}}{{/bar}}", "foo doesn't match bar - 1:3"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			_, err := Preprocess(tt.in, Options{})
			require.Error(t, err)
			assert.Equal(t, tt.expected, err.Error())
		})
	}
}

func TestPreprocessProgram(t *testing.T) {
	t.Parallel()

	raw, err := handlebars.Parse("<!-- {{foo bar}} --><b>{{baz}}</b>", handlebars.Options{})
	require.NoError(t, err)

	out, err := PreprocessProgram(raw, Options{})
	require.NoError(t, err)
	expected := "#program\n| <!-- {{foo bar}} -->\n| <b>\n|   {{baz}}\n"
	if diff := cmp.Diff(expected, ast.Print(out)); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestPreprocessProgramRejectsUnifiedNodes(t *testing.T) {
	t.Parallel()

	raw := b.Program([]ast.Statement{b.Element("div", nil, nil, nil, nil)}, nil, nil)
	_, err := PreprocessProgram(raw, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ElementNode")
}

type countingPlugin struct {
	syntax Syntax
	count  *int
}

func (c *countingPlugin) Transform(node ast.Node) (ast.Node, error) {
	c.syntax.NewWalker(ast.PreOrder).Visit(node, func(n ast.Node, _ *ast.Walker) {
		if _, ok := n.(*ast.ElementNode); ok {
			*c.count++
		}
	})
	return c.syntax.Builders.Text("replaced", nil), nil
}

type recordPlugin struct {
	seen *ast.Node
}

func (r *recordPlugin) Transform(node ast.Node) (ast.Node, error) {
	*r.seen = node
	return node, nil
}

type failingPlugin struct{}

func (failingPlugin) Transform(ast.Node) (ast.Node, error) {
	return nil, errors.New("plugin failed")
}

func TestPlugins(t *testing.T) {
	t.Parallel()

	var count int
	var seen ast.Node
	opts := Options{Plugins: Plugins{AST: []PluginFactory{
		func(_ Options, syntax Syntax) Plugin { return &countingPlugin{syntax: syntax, count: &count} },
		func(Options, Syntax) Plugin { return &recordPlugin{seen: &seen} },
	}}}

	out, err := Preprocess("<div><span></span></div><p></p>", opts)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.Equal(t, "replaced", out.(*ast.TextNode).Chars)
	assert.Same(t, out, seen)
}

func TestPluginSyntaxParse(t *testing.T) {
	t.Parallel()

	var parsed ast.Node
	opts := Options{Plugins: Plugins{AST: []PluginFactory{
		func(_ Options, syntax Syntax) Plugin {
			node, err := syntax.Parse("<i>{{x}}</i>", Options{})
			require.NoError(t, err)
			parsed = node
			return &recordPlugin{seen: new(ast.Node)}
		},
	}}}

	_, err := Preprocess("", opts)
	require.NoError(t, err)
	assert.Equal(t, "#program\n| <i>\n|   {{x}}\n", ast.Print(parsed))
}

func TestPluginErrorPropagates(t *testing.T) {
	t.Parallel()

	opts := Options{Plugins: Plugins{AST: []PluginFactory{
		func(Options, Syntax) Plugin { return failingPlugin{} },
	}}}
	_, err := Preprocess("<div></div>", opts)
	require.Error(t, err)
	assert.Equal(t, "plugin failed", err.Error())
}

func TestParserLogger(t *testing.T) {
	t.Parallel()

	logger, _ := test.NewNullLogger()
	p := NewParser(Options{Logger: logger})
	assert.Same(t, logger, p.Tokenizer.Logger())

	p = NewParser(Options{})
	assert.NotNil(t, p.Tokenizer.Logger())
}

func TestComponentLogging(t *testing.T) {
	t.Parallel()

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	preprocess(t, "<x-list as |item|>{{item}}</x-list>", Options{Logger: logger})

	var found bool
	for _, entry := range hook.AllEntries() {
		if entry.Message == "[COMPONENT]" {
			found = true
			assert.Equal(t, "x-list", entry.Data["tag"])
			assert.Equal(t, []string{"item"}, entry.Data["blockParams"])
		}
	}
	assert.True(t, found, "no component entry logged")
}
