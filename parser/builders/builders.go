// Package builders holds the canonical constructors for every node of the
// unified tree. Every builder fills each field with the supplied value or
// a documented default, so consumers never see nil params or hashes.
//
// The constructors hang off the zero-size Builders type so they read like
// the node they build:
//
//	var b builders.Builders
//	m := b.Mustache(b.Path("foo"), nil, nil, false, nil)
package builders

import (
	"strings"

	"github.com/heathj/hbsyntax/parser/ast"
)

// Builders is the node factory. Its zero value is ready to use.
type Builders struct{}

// Mustache builds a MustacheStatement. Params default to empty, hash to
// an empty Hash. The mustache is escaped unless raw is set.
func (b Builders) Mustache(path ast.Expression, params []ast.Expression, hash *ast.Hash, raw bool, loc *ast.SourceLocation) *ast.MustacheStatement {
	return &ast.MustacheStatement{
		Path:    path,
		Params:  b.params(params),
		Hash:    b.hash(hash),
		Escaped: !raw,
		Loc:     b.LocFrom(loc),
	}
}

// Block builds a BlockStatement; program and inverse may be nil.
func (b Builders) Block(path ast.Expression, params []ast.Expression, hash *ast.Hash, program, inverse *ast.Program, loc *ast.SourceLocation) *ast.BlockStatement {
	return &ast.BlockStatement{
		Path:    path,
		Params:  b.params(params),
		Hash:    b.hash(hash),
		Program: program,
		Inverse: inverse,
		Loc:     b.LocFrom(loc),
	}
}

func (b Builders) ElementModifier(path ast.Expression, params []ast.Expression, hash *ast.Hash, loc *ast.SourceLocation) *ast.ElementModifierStatement {
	return &ast.ElementModifierStatement{
		Path:   path,
		Params: b.params(params),
		Hash:   b.hash(hash),
		Loc:    b.LocFrom(loc),
	}
}

func (b Builders) Partial(name ast.Expression, params []ast.Expression, hash *ast.Hash, indent string, loc *ast.SourceLocation) *ast.PartialStatement {
	return &ast.PartialStatement{
		Name:   name,
		Params: b.params(params),
		Hash:   b.hash(hash),
		Indent: indent,
		Loc:    b.LocFrom(loc),
	}
}

func (b Builders) Comment(value string) *ast.CommentStatement {
	return &ast.CommentStatement{Value: value}
}

func (b Builders) Concat(parts []ast.ConcatPart) *ast.ConcatStatement {
	if parts == nil {
		parts = []ast.ConcatPart{}
	}
	return &ast.ConcatStatement{Parts: parts}
}

// Element builds an ElementNode with empty attribute, modifier and child
// lists when none are given.
func (b Builders) Element(tag string, attributes []*ast.AttrNode, modifiers []*ast.ElementModifierStatement, children []ast.Statement, loc *ast.SourceLocation) *ast.ElementNode {
	if attributes == nil {
		attributes = []*ast.AttrNode{}
	}
	if modifiers == nil {
		modifiers = []*ast.ElementModifierStatement{}
	}
	if children == nil {
		children = []ast.Statement{}
	}
	return &ast.ElementNode{
		Tag:        tag,
		Attributes: attributes,
		Modifiers:  modifiers,
		Children:   children,
		Loc:        b.LocFrom(loc),
	}
}

func (b Builders) Component(tag string, attributes []*ast.AttrNode, program *ast.Program, loc *ast.SourceLocation) *ast.ComponentNode {
	if attributes == nil {
		attributes = []*ast.AttrNode{}
	}
	return &ast.ComponentNode{
		Tag:        tag,
		Attributes: attributes,
		Program:    program,
		Loc:        b.LocFrom(loc),
	}
}

func (b Builders) Attr(name string, value ast.AttrValue) *ast.AttrNode {
	return &ast.AttrNode{Name: name, Value: value}
}

func (b Builders) Text(chars string, loc *ast.SourceLocation) *ast.TextNode {
	return &ast.TextNode{Chars: chars, Loc: b.LocFrom(loc)}
}

func (b Builders) Sexpr(path ast.Expression, params []ast.Expression, hash *ast.Hash, loc *ast.SourceLocation) *ast.SubExpression {
	return &ast.SubExpression{
		Path:   path,
		Params: b.params(params),
		Hash:   b.hash(hash),
		Loc:    b.LocFrom(loc),
	}
}

// Path builds a PathExpression whose parts are original split on '.'.
func (b Builders) Path(original string) *ast.PathExpression {
	return &ast.PathExpression{
		Original: original,
		Parts:    strings.Split(original, "."),
	}
}

func (b Builders) String(value string) *ast.StringLiteral {
	return &ast.StringLiteral{Value: value, Original: value}
}

func (b Builders) Boolean(value bool) *ast.BooleanLiteral {
	return &ast.BooleanLiteral{Value: value, Original: value}
}

func (b Builders) Number(value float64) *ast.NumberLiteral {
	return &ast.NumberLiteral{Value: value, Original: value}
}

func (b Builders) Null() *ast.NullLiteral {
	return &ast.NullLiteral{}
}

func (b Builders) Undefined() *ast.UndefinedLiteral {
	return &ast.UndefinedLiteral{}
}

func (b Builders) Hash(pairs []*ast.HashPair, loc *ast.SourceLocation) *ast.Hash {
	if pairs == nil {
		pairs = []*ast.HashPair{}
	}
	return &ast.Hash{Pairs: pairs, Loc: b.LocFrom(loc)}
}

func (b Builders) Pair(key string, value ast.Expression, loc *ast.SourceLocation) *ast.HashPair {
	return &ast.HashPair{Key: key, Value: value, Loc: b.LocFrom(loc)}
}

func (b Builders) Program(body []ast.Statement, blockParams []string, loc *ast.SourceLocation) *ast.Program {
	if body == nil {
		body = []ast.Statement{}
	}
	if blockParams == nil {
		blockParams = []string{}
	}
	return &ast.Program{
		Body:        body,
		BlockParams: blockParams,
		Loc:         b.LocFrom(loc),
	}
}

// Pos builds a source position.
func (b Builders) Pos(line, column int) ast.Position {
	return ast.Position{Line: line, Column: column}
}

// Loc builds a location from explicit coordinates.
func (b Builders) Loc(startLine, startColumn, endLine, endColumn int, source string) *ast.SourceLocation {
	return &ast.SourceLocation{
		Source: source,
		Start:  b.Pos(startLine, startColumn),
		End:    b.Pos(endLine, endColumn),
	}
}

// LocFrom copies an existing location. It returns nil when there is no
// location to copy.
func (b Builders) LocFrom(loc *ast.SourceLocation) *ast.SourceLocation {
	if loc == nil {
		return nil
	}
	return b.Loc(loc.Start.Line, loc.Start.Column, loc.End.Line, loc.End.Column, loc.Source)
}

func (b Builders) params(params []ast.Expression) []ast.Expression {
	if params == nil {
		return []ast.Expression{}
	}
	return params
}

func (b Builders) hash(hash *ast.Hash) *ast.Hash {
	if hash == nil {
		return b.Hash(nil, nil)
	}
	return hash
}
