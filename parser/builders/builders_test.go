package builders

import (
	"testing"

	"github.com/heathj/hbsyntax/parser/ast"
	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	t.Parallel()
	var b Builders

	m := b.Mustache(b.Path("foo"), nil, nil, false, nil)
	assert.True(t, m.Escaped)
	assert.NotNil(t, m.Params)
	assert.Empty(t, m.Params)
	assert.NotNil(t, m.Hash)
	assert.NotNil(t, m.Hash.Pairs)
	assert.Nil(t, m.Loc)
	assert.False(t, b.Mustache(b.Path("foo"), nil, nil, true, nil).Escaped)

	block := b.Block(b.Path("if"), nil, nil, nil, nil, nil)
	assert.Nil(t, block.Program)
	assert.Nil(t, block.Inverse)
	assert.NotNil(t, block.Hash)

	el := b.Element("div", nil, nil, nil, nil)
	assert.NotNil(t, el.Attributes)
	assert.NotNil(t, el.Modifiers)
	assert.NotNil(t, el.Children)

	program := b.Program(nil, nil, nil)
	assert.NotNil(t, program.Body)
	assert.NotNil(t, program.BlockParams)

	assert.NotNil(t, b.Concat(nil).Parts)
	assert.NotNil(t, b.Component("x-a", nil, program, nil).Attributes)
	assert.NotNil(t, b.Sexpr(b.Path("f"), nil, nil, nil).Params)
	assert.NotNil(t, b.Sexpr(b.Path("f"), nil, nil, nil).Hash)

	loc := b.Loc(1, 2, 1, 9, "p.hbs")
	partial := b.Partial(b.Path("p"), nil, nil, "  ", loc)
	assert.NotNil(t, partial.Hash)
	assert.Equal(t, loc, partial.Loc)
	assert.NotSame(t, loc, partial.Loc)
}

func TestPath(t *testing.T) {
	t.Parallel()
	var b Builders

	assert.Equal(t, []string{"foo", "bar"}, b.Path("foo.bar").Parts)
	assert.Equal(t, "foo.bar", b.Path("foo.bar").Original)
}

func TestLiterals(t *testing.T) {
	t.Parallel()
	var b Builders

	assert.Equal(t, &ast.StringLiteral{Value: "s", Original: "s"}, b.String("s"))
	assert.Equal(t, &ast.NumberLiteral{Value: 2, Original: 2}, b.Number(2))
	assert.Equal(t, &ast.BooleanLiteral{Value: true, Original: true}, b.Boolean(true))
	assert.Equal(t, &ast.HashPair{Key: "k", Value: b.Null()}, b.Pair("k", b.Null(), nil))
}

func TestLoc(t *testing.T) {
	t.Parallel()
	var b Builders

	loc := b.Loc(1, 2, 3, 4, "a.hbs")
	assert.Equal(t, &ast.SourceLocation{Source: "a.hbs", Start: ast.Position{Line: 1, Column: 2}, End: ast.Position{Line: 3, Column: 4}}, loc)

	copied := b.LocFrom(loc)
	assert.Equal(t, loc, copied)
	assert.NotSame(t, loc, copied)
	assert.Nil(t, b.LocFrom(nil))

	text := b.Text("x", loc)
	assert.Equal(t, loc, text.Loc)
	assert.NotSame(t, loc, text.Loc)
}
