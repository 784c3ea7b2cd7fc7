package parser

import (
	"github.com/heathj/hbsyntax/parser/ast"
	"github.com/heathj/hbsyntax/parser/html"
	"github.com/pkg/errors"
)

// acceptNode dispatches on the kind of a mustache AST statement. Nodes that
// only exist in the unified tree cannot appear in the input.
func (p *Parser) acceptNode(node ast.Node) error {
	switch n := node.(type) {
	case *ast.Program:
		_, err := p.acceptProgram(n)
		return err
	case *ast.BlockStatement:
		return p.acceptBlock(n)
	case *ast.MustacheStatement:
		return p.acceptMustache(n)
	case *ast.ContentStatement:
		return p.acceptContent(n)
	case *ast.CommentStatement:
		return nil
	case *ast.PartialStatement:
		return p.acceptPartial(n)
	case nil:
		return errors.New("cannot accept a nil node")
	}
	return errors.Errorf("unexpected %s node in a mustache program", node.Type())
}

// acceptExpression returns the unified form of an expression. Subexpressions
// are rebuilt so their params and hash are never nil.
func (p *Parser) acceptExpression(expr ast.Expression) (ast.Expression, error) {
	switch n := expr.(type) {
	case *ast.SubExpression:
		path, params, hash, err := p.acceptCall(n.Path, n.Params, n.Hash)
		if err != nil {
			return nil, err
		}
		return b.Sexpr(path, params, hash, n.Loc), nil
	case *ast.PathExpression, *ast.StringLiteral, *ast.NumberLiteral, *ast.BooleanLiteral,
		*ast.NullLiteral, *ast.UndefinedLiteral:
		return expr, nil
	case nil:
		return nil, errors.New("cannot accept a nil expression")
	}
	return nil, errors.Errorf("unexpected %s node in an expression", expr.Type())
}

func (p *Parser) acceptProgram(program *ast.Program) (*ast.Program, error) {
	node := b.Program(nil, program.BlockParams, program.Loc)
	p.elementStack = append(p.elementStack, node)
	if len(program.Body) == 0 {
		p.popElement()
		return node, nil
	}

	for _, statement := range program.Body {
		if err := p.acceptNode(statement); err != nil {
			return nil, err
		}
	}
	if err := p.Tokenizer.TokenizeEOF(); err != nil {
		return nil, err
	}

	popped := p.popElement()
	if popped != ast.Node(node) {
		if el, ok := popped.(*ast.ElementNode); ok {
			return nil, errors.Errorf("Unclosed element `%s` (on line %d).", el.Tag, startLine(el.Loc))
		}
		return nil, errors.Errorf("Unclosed %s.", popped.Type())
	}
	return node, nil
}

func (p *Parser) acceptBlock(block *ast.BlockStatement) error {
	state := p.Tokenizer.State()
	if state == html.CommentState {
		p.AppendToCommentData("{{" + p.sourceForMustache(block.Loc, block.Path, block.Params, block.Hash) + "}}")
		return nil
	}
	if state != html.DataState && state != html.BeforeDataState {
		return errors.New("A block may only be used inside an HTML element or another block.")
	}

	path, params, hash, err := p.acceptCall(block.Path, block.Params, block.Hash)
	if err != nil {
		return err
	}

	var program, inverse *ast.Program
	if block.Program != nil {
		if program, err = p.acceptProgram(block.Program); err != nil {
			return err
		}
	}
	if block.Inverse != nil {
		if inverse, err = p.acceptProgram(block.Inverse); err != nil {
			return err
		}
	}

	p.appendChild(b.Block(path, params, hash, program, inverse, block.Loc))
	return nil
}

func (p *Parser) acceptMustache(raw *ast.MustacheStatement) error {
	if p.Tokenizer.State() == html.CommentState {
		p.AppendToCommentData("{{" + p.sourceForMustache(raw.Loc, raw.Path, raw.Params, raw.Hash) + "}}")
		return nil
	}

	path, params, hash, err := p.acceptCall(raw.Path, raw.Params, raw.Hash)
	if err != nil {
		return err
	}
	mustache := b.Mustache(path, params, hash, !raw.Escaped, raw.Loc)

	switch p.Tokenizer.State() {
	case html.TagNameState:
		p.addElementModifier(mustache)
		p.Tokenizer.SetState(html.BeforeAttributeNameState)
	case html.BeforeAttributeNameState:
		p.addElementModifier(mustache)
	case html.AttributeNameState, html.AfterAttributeNameState:
		p.BeginAttributeValue(false)
		if err := p.FinishAttributeValue(); err != nil {
			return err
		}
		p.addElementModifier(mustache)
		p.Tokenizer.SetState(html.BeforeAttributeNameState)
	case html.AfterAttributeValueQuotedState:
		p.addElementModifier(mustache)
		p.Tokenizer.SetState(html.BeforeAttributeNameState)
	case html.BeforeAttributeValueState:
		p.currentAttribute.appendDynamicPart(mustache)
		p.Tokenizer.SetState(html.AttributeValueUnquotedState)
	case html.AttributeValueDoubleQuotedState, html.AttributeValueSingleQuotedState, html.AttributeValueUnquotedState:
		p.currentAttribute.appendDynamicPart(mustache)
	default:
		p.appendChild(mustache)
	}
	return nil
}

func (p *Parser) acceptContent(content *ast.ContentStatement) error {
	p.updateTokenizerLocation(content)
	if err := p.Tokenizer.TokenizePart(content.Value); err != nil {
		return err
	}
	p.Tokenizer.FlushData()
	return nil
}

func (p *Parser) acceptPartial(partial *ast.PartialStatement) error {
	name, params, hash, err := p.acceptCall(partial.Name, partial.Params, partial.Hash)
	if err != nil {
		return err
	}
	node := b.Partial(name, params, hash, partial.Indent, partial.Loc)
	node.Strip = partial.Strip
	p.appendChild(node)
	return nil
}

// acceptCall visits the path, params and hash shared by mustaches, blocks,
// partials and subexpressions, and returns their unified forms. A nil hash
// stays nil for the caller's builder to fill.
func (p *Parser) acceptCall(path ast.Expression, params []ast.Expression, hash *ast.Hash) (ast.Expression, []ast.Expression, *ast.Hash, error) {
	path, err := p.acceptExpression(path)
	if err != nil {
		return nil, nil, nil, err
	}

	out := make([]ast.Expression, 0, len(params))
	for _, param := range params {
		expr, err := p.acceptExpression(param)
		if err != nil {
			return nil, nil, nil, err
		}
		out = append(out, expr)
	}

	if hash == nil {
		return path, out, nil, nil
	}
	pairs := make([]*ast.HashPair, 0, len(hash.Pairs))
	for _, pair := range hash.Pairs {
		value, err := p.acceptExpression(pair.Value)
		if err != nil {
			return nil, nil, nil, err
		}
		pairs = append(pairs, b.Pair(pair.Key, value, pair.Loc))
	}
	return path, out, b.Hash(pairs, hash.Loc), nil
}

func (p *Parser) addElementModifier(mustache *ast.MustacheStatement) {
	modifier := b.ElementModifier(mustache.Path, mustache.Params, mustache.Hash, mustache.Loc)
	p.currentTag.modifiers = append(p.currentTag.modifiers, modifier)
}

// updateTokenizerLocation moves the tokenizer to where the content starts
// in the source. Right-stripped content starts after the removed text.
func (p *Parser) updateTokenizerLocation(content *ast.ContentStatement) {
	if content.Loc == nil {
		return
	}
	line, column := content.Loc.Start.Line, content.Loc.Start.Column
	if content.RightStripped {
		lines, columns := rightStrippedOffsets(content.Original, content.Value)
		line += lines
		if lines > 0 {
			column = columns
		} else {
			column += columns
		}
	}
	p.Tokenizer.SetPosition(line, column)
}
