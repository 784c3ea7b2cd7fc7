package parser

import (
	"strings"

	"github.com/heathj/hbsyntax/parser/ast"
	"github.com/pkg/errors"
)

type tagType uint

const (
	startTag tagType = iota
	endTag
)

// tagToken is the tag the tokenizer is currently building. Mustaches met
// inside the tag are collected as modifiers.
type tagToken struct {
	kind        tagType
	name        strings.Builder
	attributes  []*ast.AttrNode
	modifiers   []*ast.ElementModifierStatement
	selfClosing bool
	loc         *ast.SourceLocation
}

func newTagToken(kind tagType) *tagToken {
	return &tagToken{kind: kind}
}

// attributePart is a run of literal text or a mustache inside an
// attribute value.
type attributePart struct {
	text     strings.Builder
	mustache *ast.MustacheStatement
}

// attributeBuilder builds an attribute up during tokenization. The value is
// a sequence of parts so that mustaches keep their place within it.
type attributeBuilder struct {
	name       strings.Builder
	parts      []*attributePart
	isQuoted   bool
	isDynamic  bool
	valueStart ast.Position
}

func newAttributeBuilder() *attributeBuilder {
	return &attributeBuilder{}
}

// appendText extends the trailing text part, starting a new one after a
// mustache.
func (a *attributeBuilder) appendText(s string) {
	if n := len(a.parts); n > 0 && a.parts[n-1].mustache == nil {
		a.parts[n-1].text.WriteString(s)
		return
	}
	part := &attributePart{}
	part.text.WriteString(s)
	a.parts = append(a.parts, part)
}

func (a *attributeBuilder) appendDynamicPart(m *ast.MustacheStatement) {
	a.isDynamic = true
	a.parts = append(a.parts, &attributePart{mustache: m})
}

// assemble turns the parts into the attribute's value: a TextNode when no
// mustache was seen, a ConcatStatement when the value is quoted, or the
// single mustache of an unquoted value. line is reported in errors.
func (a *attributeBuilder) assemble(loc *ast.SourceLocation, line int) (ast.AttrValue, error) {
	if !a.isDynamic {
		chars := ""
		if len(a.parts) > 0 {
			chars = a.parts[0].text.String()
		}
		return b.Text(chars, loc), nil
	}

	if a.isQuoted {
		return a.concat(), nil
	}
	if len(a.parts) == 1 {
		return a.parts[0].mustache, nil
	}
	return nil, errors.Errorf("An unquoted attribute value must be a string or a mustache, "+
		"preceeded by whitespace or a '=' character, and followed by whitespace or a '>' character (on line %d)", line)
}

func (a *attributeBuilder) concat() *ast.ConcatStatement {
	parts := make([]ast.ConcatPart, 0, len(a.parts))
	for _, part := range a.parts {
		if part.mustache == nil {
			parts = append(parts, b.String(part.text.String()))
			continue
		}
		parts = append(parts, unwrapMustache(part.mustache))
	}
	return b.Concat(parts)
}

// unwrapMustache keeps a helper call whole and reduces a bare value to its
// path or literal.
func unwrapMustache(m *ast.MustacheStatement) ast.ConcatPart {
	if m.IsHelper() {
		return m
	}
	if part, ok := m.Path.(ast.ConcatPart); ok {
		return part
	}
	return m
}
