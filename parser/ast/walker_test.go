package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleTree() *Program {
	inner := &Program{Body: []Statement{&TextNode{Chars: "x"}}}
	return &Program{Body: []Statement{
		&ElementNode{Tag: "div", Children: []Statement{
			&MustacheStatement{Path: &PathExpression{Original: "a"}, Escaped: true},
			&BlockStatement{Path: &PathExpression{Original: "if"}, Program: inner},
		}},
		&ComponentNode{Tag: "x-foo", Program: &Program{Body: []Statement{&TextNode{Chars: "y"}}}},
	}}
}

func label(n Node) string {
	switch n := n.(type) {
	case *ElementNode:
		return "<" + n.Tag + ">"
	case *ComponentNode:
		return "<" + n.Tag + ">"
	case *TextNode:
		return n.Chars
	case *MustacheStatement:
		return ExpressionString(n.Path)
	}
	return string(n.Type())
}

func TestWalkerOrder(t *testing.T) {
	tests := []struct {
		order    Order
		expected []string
	}{
		{PreOrder, []string{"Program", "<div>", "a", "BlockStatement", "Program", "x", "<x-foo>", "Program", "y"}},
		{PostOrder, []string{"a", "x", "Program", "BlockStatement", "<div>", "y", "Program", "<x-foo>", "Program"}},
	}

	for _, tt := range tests {
		var got []string
		NewWalker(tt.order).Visit(sampleTree(), func(n Node, _ *Walker) {
			got = append(got, label(n))
		})
		assert.Equal(t, tt.expected, got)
	}
}

func TestWalkerStack(t *testing.T) {
	t.Parallel()

	parents := map[string]string{}
	depths := map[string]int{}
	NewWalker(PreOrder).Visit(sampleTree(), func(n Node, w *Walker) {
		if parent := w.Parent(); parent != nil {
			parents[label(n)] = label(parent)
		}
		depths[label(n)] = len(w.Stack())
	})

	assert.Equal(t, "<div>", parents["a"])
	assert.Equal(t, "Program", parents["x"])
	assert.Equal(t, 2, depths["<div>"])
	assert.Equal(t, 5, depths["x"])
}

func TestWalkerSkipsNilPrograms(t *testing.T) {
	t.Parallel()

	var visited int
	block := &BlockStatement{Path: &PathExpression{Original: "if"}}
	NewWalker(PreOrder).Visit(block, func(Node, *Walker) { visited++ })
	assert.Equal(t, 1, visited)

	NewWalker(PreOrder).Visit((*Program)(nil), func(Node, *Walker) { visited++ })
	assert.Equal(t, 1, visited)
}

func TestPrint(t *testing.T) {
	t.Parallel()

	expected := "#program\n" +
		"| <div>\n" +
		"|   {{a}}\n" +
		"|   {{#if}}\n" +
		"|     program\n" +
		"|       \"x\"\n" +
		"| <x-foo> (component)\n" +
		"|   \"y\"\n"
	assert.Equal(t, expected, Print(sampleTree()))

	raw := &Program{Body: []Statement{&MustacheStatement{Path: &PathExpression{Original: "a"}}}}
	assert.Equal(t, "#program\n| {{{a}}}\n", Print(raw))
}

func TestExpressionString(t *testing.T) {
	tests := []struct {
		in       Expression
		expected string
	}{
		{&PathExpression{Original: "foo.bar"}, "foo.bar"},
		{&StringLiteral{Value: `a"b`}, `"a\"b"`},
		{&NumberLiteral{Value: 1.5}, "1.5"},
		{&NumberLiteral{Value: 3}, "3"},
		{&BooleanLiteral{Value: true}, "true"},
		{&NullLiteral{}, "null"},
		{&UndefinedLiteral{}, "undefined"},
		{&SubExpression{
			Path:   &PathExpression{Original: "f"},
			Params: []Expression{&PathExpression{Original: "x"}},
			Hash:   &Hash{Pairs: []*HashPair{{Key: "k", Value: &NumberLiteral{Value: 2}}}},
		}, "(f x k=2)"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ExpressionString(tt.in))
	}
}
