package ast

import "fmt"

// Position is a point in the source: Line is 1-based, Column is 0-based.
type Position struct {
	Line   int
	Column int
}

// SourceLocation is the span of source text a node was built from.
type SourceLocation struct {
	Source string
	Start  Position
	End    Position
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

func (l *SourceLocation) String() string {
	if l == nil {
		return "<nil>"
	}
	if l.Source != "" {
		return fmt.Sprintf("%s@%s-%s", l.Source, l.Start, l.End)
	}
	return fmt.Sprintf("%s-%s", l.Start, l.End)
}

// LocOf returns the location of any node, or nil for nodes that carry
// none.
func LocOf(n Node) *SourceLocation {
	switch n := n.(type) {
	case *Program:
		return n.Loc
	case *MustacheStatement:
		return n.Loc
	case *BlockStatement:
		return n.Loc
	case *PartialStatement:
		return n.Loc
	case *CommentStatement:
		return n.Loc
	case *ContentStatement:
		return n.Loc
	case *ElementNode:
		return n.Loc
	case *ComponentNode:
		return n.Loc
	case *TextNode:
		return n.Loc
	case *ElementModifierStatement:
		return n.Loc
	case *SubExpression:
		return n.Loc
	case *PathExpression:
		return n.Loc
	case *StringLiteral:
		return n.Loc
	case *NumberLiteral:
		return n.Loc
	case *BooleanLiteral:
		return n.Loc
	case *NullLiteral:
		return n.Loc
	case *UndefinedLiteral:
		return n.Loc
	case *Hash:
		return n.Loc
	case *HashPair:
		return n.Loc
	}
	return nil
}
