package ast

// NodeType is the discriminant every node reports.
type NodeType string

const (
	ProgramType                  NodeType = "Program"
	MustacheStatementType        NodeType = "MustacheStatement"
	BlockStatementType           NodeType = "BlockStatement"
	PartialStatementType         NodeType = "PartialStatement"
	CommentStatementType         NodeType = "CommentStatement"
	ContentStatementType         NodeType = "ContentStatement"
	ElementNodeType              NodeType = "ElementNode"
	ComponentNodeType            NodeType = "ComponentNode"
	AttrNodeType                 NodeType = "AttrNode"
	TextNodeType                 NodeType = "TextNode"
	ConcatStatementType          NodeType = "ConcatStatement"
	ElementModifierStatementType NodeType = "ElementModifierStatement"
	SubExpressionType            NodeType = "SubExpression"
	PathExpressionType           NodeType = "PathExpression"
	StringLiteralType            NodeType = "StringLiteral"
	NumberLiteralType            NodeType = "NumberLiteral"
	BooleanLiteralType           NodeType = "BooleanLiteral"
	NullLiteralType              NodeType = "NullLiteral"
	UndefinedLiteralType         NodeType = "UndefinedLiteral"
	HashType                     NodeType = "Hash"
	HashPairType                 NodeType = "HashPair"
)

// Node is implemented by every node of the syntax tree. The set of
// implementations is closed: only types of this package satisfy it.
type Node interface {
	Type() NodeType
	node()
}

// Statement is a node that can appear in a Program body or in the
// children of an element.
type Statement interface {
	Node
	statementNode()
}

// Expression is a node that can appear as a path, param or hash value.
type Expression interface {
	Node
	expressionNode()
}

// AttrValue is the value of an AttrNode: a *TextNode, a
// *MustacheStatement or a *ConcatStatement.
type AttrValue interface {
	Node
	attrValueNode()
}

// ConcatPart is one part of a ConcatStatement: a literal or expression,
// or a helper-call *MustacheStatement kept whole.
type ConcatPart interface {
	Node
	concatPartNode()
}

// StripFlags records the `~` whitespace-control markers of a mustache
// delimiter pair.
type StripFlags struct {
	Open  bool
	Close bool
}

type Program struct {
	Body        []Statement
	BlockParams []string
	// Chained marks the synthetic program wrapping an {{else if}} chain.
	Chained bool
	Strip   StripFlags
	Loc     *SourceLocation
}

type MustacheStatement struct {
	Path   Expression
	Params []Expression
	Hash   *Hash
	// Escaped is true for {{x}} and false for {{{x}}} and {{&x}}. The zero
	// value is unescaped; builders.Mustache sets it from its raw argument.
	Escaped bool
	Strip   StripFlags
	Loc     *SourceLocation
}

type BlockStatement struct {
	Path         Expression
	Params       []Expression
	Hash         *Hash
	Program      *Program
	Inverse      *Program
	OpenStrip    StripFlags
	InverseStrip StripFlags
	CloseStrip   StripFlags
	Loc          *SourceLocation
}

type PartialStatement struct {
	Name   Expression
	Params []Expression
	Hash   *Hash
	Indent string
	Strip  StripFlags
	Loc    *SourceLocation
}

type CommentStatement struct {
	Value string
	Strip StripFlags
	Loc   *SourceLocation
}

// ContentStatement is raw template text. It only exists in the mustache
// AST; the unified tree replaces it with HTML nodes.
type ContentStatement struct {
	Value         string
	Original      string
	LeftStripped  bool
	RightStripped bool
	Loc           *SourceLocation
}

type ElementNode struct {
	Tag        string
	Attributes []*AttrNode
	Modifiers  []*ElementModifierStatement
	Children   []Statement
	Loc        *SourceLocation
}

type ComponentNode struct {
	Tag        string
	Attributes []*AttrNode
	Program    *Program
	Loc        *SourceLocation
}

type AttrNode struct {
	Name  string
	Value AttrValue
}

type TextNode struct {
	Chars string
	Loc   *SourceLocation
}

type ConcatStatement struct {
	Parts []ConcatPart
}

type ElementModifierStatement struct {
	Path   Expression
	Params []Expression
	Hash   *Hash
	Loc    *SourceLocation
}

type SubExpression struct {
	Path   Expression
	Params []Expression
	Hash   *Hash
	Loc    *SourceLocation
}

type PathExpression struct {
	Original string
	Parts    []string
	Loc      *SourceLocation
}

type StringLiteral struct {
	Value    string
	Original string
	Loc      *SourceLocation
}

type NumberLiteral struct {
	Value    float64
	Original float64
	Loc      *SourceLocation
}

type BooleanLiteral struct {
	Value    bool
	Original bool
	Loc      *SourceLocation
}

type NullLiteral struct {
	Loc *SourceLocation
}

type UndefinedLiteral struct {
	Loc *SourceLocation
}

type Hash struct {
	Pairs []*HashPair
	Loc   *SourceLocation
}

type HashPair struct {
	Key   string
	Value Expression
	Loc   *SourceLocation
}

func (*Program) Type() NodeType                  { return ProgramType }
func (*MustacheStatement) Type() NodeType        { return MustacheStatementType }
func (*BlockStatement) Type() NodeType           { return BlockStatementType }
func (*PartialStatement) Type() NodeType         { return PartialStatementType }
func (*CommentStatement) Type() NodeType         { return CommentStatementType }
func (*ContentStatement) Type() NodeType         { return ContentStatementType }
func (*ElementNode) Type() NodeType              { return ElementNodeType }
func (*ComponentNode) Type() NodeType            { return ComponentNodeType }
func (*AttrNode) Type() NodeType                 { return AttrNodeType }
func (*TextNode) Type() NodeType                 { return TextNodeType }
func (*ConcatStatement) Type() NodeType          { return ConcatStatementType }
func (*ElementModifierStatement) Type() NodeType { return ElementModifierStatementType }
func (*SubExpression) Type() NodeType            { return SubExpressionType }
func (*PathExpression) Type() NodeType           { return PathExpressionType }
func (*StringLiteral) Type() NodeType            { return StringLiteralType }
func (*NumberLiteral) Type() NodeType            { return NumberLiteralType }
func (*BooleanLiteral) Type() NodeType           { return BooleanLiteralType }
func (*NullLiteral) Type() NodeType              { return NullLiteralType }
func (*UndefinedLiteral) Type() NodeType         { return UndefinedLiteralType }
func (*Hash) Type() NodeType                     { return HashType }
func (*HashPair) Type() NodeType                 { return HashPairType }

func (*Program) node()                  {}
func (*MustacheStatement) node()        {}
func (*BlockStatement) node()           {}
func (*PartialStatement) node()         {}
func (*CommentStatement) node()         {}
func (*ContentStatement) node()         {}
func (*ElementNode) node()              {}
func (*ComponentNode) node()            {}
func (*AttrNode) node()                 {}
func (*TextNode) node()                 {}
func (*ConcatStatement) node()          {}
func (*ElementModifierStatement) node() {}
func (*SubExpression) node()            {}
func (*PathExpression) node()           {}
func (*StringLiteral) node()            {}
func (*NumberLiteral) node()            {}
func (*BooleanLiteral) node()           {}
func (*NullLiteral) node()              {}
func (*UndefinedLiteral) node()         {}
func (*Hash) node()                     {}
func (*HashPair) node()                 {}

func (*MustacheStatement) statementNode() {}
func (*BlockStatement) statementNode()    {}
func (*PartialStatement) statementNode()  {}
func (*CommentStatement) statementNode()  {}
func (*ContentStatement) statementNode()  {}
func (*ElementNode) statementNode()       {}
func (*ComponentNode) statementNode()     {}
func (*TextNode) statementNode()          {}

func (*SubExpression) expressionNode()    {}
func (*PathExpression) expressionNode()   {}
func (*StringLiteral) expressionNode()    {}
func (*NumberLiteral) expressionNode()    {}
func (*BooleanLiteral) expressionNode()   {}
func (*NullLiteral) expressionNode()      {}
func (*UndefinedLiteral) expressionNode() {}

func (*TextNode) attrValueNode()          {}
func (*MustacheStatement) attrValueNode() {}
func (*ConcatStatement) attrValueNode()   {}

func (*MustacheStatement) concatPartNode() {}
func (*SubExpression) concatPartNode()     {}
func (*PathExpression) concatPartNode()    {}
func (*StringLiteral) concatPartNode()     {}
func (*NumberLiteral) concatPartNode()     {}
func (*BooleanLiteral) concatPartNode()    {}
func (*NullLiteral) concatPartNode()       {}
func (*UndefinedLiteral) concatPartNode()  {}

// IsHelper reports whether a mustache calls a helper, i.e. has params or
// hash pairs.
func (m *MustacheStatement) IsHelper() bool {
	return len(m.Params) > 0 || (m.Hash != nil && len(m.Hash.Pairs) > 0)
}
