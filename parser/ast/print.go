package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Print renders a tree in an indented, line-per-node form similar to the
// html5lib tree-construction dumps:
//
//	#program
//	| <div>
//	|   class="a"
//	|   {{foo}}
//	|   " bar "
//
// Attributes and modifiers of an element are listed before its children.
func Print(n Node) string {
	var p printer
	if prog, ok := n.(*Program); ok {
		p.buf.WriteString("#program" + blockParams(prog.BlockParams) + "\n")
		p.statements(prog.Body, 0)
	} else {
		p.node(n, 0)
	}
	return p.buf.String()
}

type printer struct {
	buf strings.Builder
}

func (p *printer) line(depth int, s string) {
	p.buf.WriteString("| ")
	p.buf.WriteString(strings.Repeat("  ", depth))
	p.buf.WriteString(s)
	p.buf.WriteByte('\n')
}

func (p *printer) statements(body []Statement, depth int) {
	for _, s := range body {
		p.node(s, depth)
	}
}

func (p *printer) program(label string, prog *Program, depth int) {
	if prog == nil {
		return
	}
	p.line(depth, label+blockParams(prog.BlockParams))
	p.statements(prog.Body, depth+1)
}

func (p *printer) node(n Node, depth int) {
	switch n := n.(type) {
	case *Program:
		p.program("program", n, depth)
	case *ElementNode:
		p.line(depth, "<"+n.Tag+">")
		p.attributes(n.Attributes, depth+1)
		for _, m := range n.Modifiers {
			p.line(depth+1, "modifier {{"+CallString(m.Path, m.Params, m.Hash)+"}}")
		}
		p.statements(n.Children, depth+1)
	case *ComponentNode:
		var params []string
		if n.Program != nil {
			params = n.Program.BlockParams
		}
		p.line(depth, "<"+n.Tag+"> (component)"+blockParams(params))
		p.attributes(n.Attributes, depth+1)
		if n.Program != nil {
			p.statements(n.Program.Body, depth+1)
		}
	case *TextNode:
		p.line(depth, strconv.Quote(n.Chars))
	case *CommentStatement:
		p.line(depth, "<!--"+n.Value+"-->")
	case *ContentStatement:
		p.line(depth, "content "+strconv.Quote(n.Value))
	case *MustacheStatement:
		p.line(depth, mustache(n))
	case *BlockStatement:
		p.line(depth, "{{#"+CallString(n.Path, n.Params, n.Hash)+"}}")
		p.program("program", n.Program, depth+1)
		p.program("inverse", n.Inverse, depth+1)
	case *PartialStatement:
		s := "{{>" + CallString(n.Name, n.Params, n.Hash) + "}}"
		if n.Indent != "" {
			s += " indent=" + strconv.Quote(n.Indent)
		}
		p.line(depth, s)
	case *AttrNode:
		p.attributes([]*AttrNode{n}, depth)
	case *ElementModifierStatement:
		p.line(depth, "modifier {{"+CallString(n.Path, n.Params, n.Hash)+"}}")
	case Expression:
		p.line(depth, ExpressionString(n))
	default:
		p.line(depth, fmt.Sprintf("%T", n))
	}
}

func (p *printer) attributes(attrs []*AttrNode, depth int) {
	for _, a := range attrs {
		p.line(depth, a.Name+"="+attrValue(a.Value))
	}
}

func attrValue(v AttrValue) string {
	switch v := v.(type) {
	case *TextNode:
		return strconv.Quote(v.Chars)
	case *MustacheStatement:
		return mustache(v)
	case *ConcatStatement:
		parts := make([]string, 0, len(v.Parts))
		for _, part := range v.Parts {
			switch part := part.(type) {
			case *MustacheStatement:
				parts = append(parts, mustache(part))
			case Expression:
				parts = append(parts, ExpressionString(part))
			}
		}
		return "concat(" + strings.Join(parts, " ") + ")"
	}
	return "<nil>"
}

func mustache(m *MustacheStatement) string {
	if m.Escaped {
		return "{{" + CallString(m.Path, m.Params, m.Hash) + "}}"
	}
	return "{{{" + CallString(m.Path, m.Params, m.Hash) + "}}}"
}

// CallString renders a path with its params and hash pairs, space separated.
func CallString(path Expression, params []Expression, hash *Hash) string {
	var sb strings.Builder
	sb.WriteString(ExpressionString(path))
	for _, param := range params {
		sb.WriteString(" " + ExpressionString(param))
	}
	if hash != nil {
		for _, pair := range hash.Pairs {
			sb.WriteString(" " + pair.Key + "=" + ExpressionString(pair.Value))
		}
	}
	return sb.String()
}

func blockParams(params []string) string {
	if len(params) == 0 {
		return ""
	}
	return " as |" + strings.Join(params, " ") + "|"
}

// ExpressionString renders an expression the way it would be written
// inside a mustache.
func ExpressionString(e Expression) string {
	switch e := e.(type) {
	case *PathExpression:
		return e.Original
	case *StringLiteral:
		return strconv.Quote(e.Value)
	case *NumberLiteral:
		return strconv.FormatFloat(e.Value, 'f', -1, 64)
	case *BooleanLiteral:
		return strconv.FormatBool(e.Value)
	case *NullLiteral:
		return "null"
	case *UndefinedLiteral:
		return "undefined"
	case *SubExpression:
		return "(" + CallString(e.Path, e.Params, e.Hash) + ")"
	case nil:
		return "<nil>"
	}
	return fmt.Sprintf("%T", e)
}
