package parser

import (
	"strconv"
	"strings"

	"github.com/heathj/hbsyntax/parser/ast"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// The methods in this file implement html.Delegate. The tokenizer calls
// them while content statements are fed to it.

func (p *Parser) Reset() {
	p.currentTag = nil
	p.currentText = nil
	p.currentComment = nil
	p.currentAttribute = nil
}

func (p *Parser) TagOpen() {
	p.tagOpenLine, p.tagOpenColumn = p.Tokenizer.Position()
}

func (p *Parser) position() ast.Position {
	line, column := p.Tokenizer.Position()
	return b.Pos(line, column)
}

func (p *Parser) BeginComment() {
	p.currentComment = b.Comment("")
	p.currentComment.Loc = &ast.SourceLocation{
		Source: p.options.SrcName,
		Start:  b.Pos(p.tagOpenLine, p.tagOpenColumn),
	}
}

func (p *Parser) AppendToCommentData(s string) {
	p.currentComment.Value += s
}

func (p *Parser) FinishComment() {
	p.currentComment.Loc.End = p.position()
	p.appendChild(p.currentComment)
}

func (p *Parser) BeginData() {
	p.currentText = b.Text("", nil)
	p.currentText.Loc = &ast.SourceLocation{
		Source: p.options.SrcName,
		Start:  p.position(),
	}
}

func (p *Parser) AppendToData(s string) {
	p.currentText.Chars += s
}

func (p *Parser) FinishData() {
	p.currentText.Loc.End = p.position()
	p.appendChild(p.currentText)
}

func (p *Parser) BeginStartTag() {
	p.currentTag = newTagToken(startTag)
}

func (p *Parser) BeginEndTag() {
	p.currentTag = newTagToken(endTag)
}

func (p *Parser) AppendToTagName(s string) {
	p.currentTag.name.WriteString(s)
}

func (p *Parser) MarkTagAsSelfClosing() {
	p.currentTag.selfClosing = true
}

func (p *Parser) FinishTag() error {
	line, column := p.Tokenizer.Position()
	tag := p.currentTag
	tag.loc = b.Loc(p.tagOpenLine, p.tagOpenColumn, line, column, p.options.SrcName)

	if tag.kind == endTag {
		return p.finishEndTag(false)
	}
	p.finishStartTag()
	if isVoid(tag.name.String()) || tag.selfClosing {
		return p.finishEndTag(true)
	}
	return nil
}

func (p *Parser) finishStartTag() {
	tag := p.currentTag
	element := b.Element(tag.name.String(), tag.attributes, tag.modifiers, nil, tag.loc)
	p.elementStack = append(p.elementStack, element)
}

func (p *Parser) finishEndTag(closedByStartTag bool) error {
	tag := p.currentTag
	popped := p.popElement()
	if err := validateEndTag(tag, popped, closedByStartTag); err != nil {
		return err
	}

	element := popped.(*ast.ElementNode)
	element.Loc.End = p.position()

	if p.options.DisableComponentGeneration || !strings.Contains(element.Tag, "-") {
		p.appendChild(element)
		return nil
	}

	program := b.Program(element.Children, nil, nil)
	attributes, err := parseComponentBlockParams(element.Attributes, program)
	if err != nil {
		return err
	}
	p.log.WithFields(logrus.Fields{
		"tag":         element.Tag,
		"line":        startLine(element.Loc),
		"blockParams": program.BlockParams,
	}).Debug("[COMPONENT]")
	p.appendChild(b.Component(element.Tag, attributes, program, element.Loc))
	return nil
}

func (p *Parser) BeginAttribute() {
	p.currentAttribute = newAttributeBuilder()
}

func (p *Parser) AppendToAttributeName(s string) {
	p.currentAttribute.name.WriteString(s)
}

func (p *Parser) BeginAttributeValue(quoted bool) {
	p.currentAttribute.isQuoted = quoted
	p.currentAttribute.valueStart = p.position()
}

func (p *Parser) AppendToAttributeValue(s string) {
	p.currentAttribute.appendText(s)
}

func (p *Parser) FinishAttributeValue() error {
	attr := p.currentAttribute
	line, _ := p.Tokenizer.Position()
	loc := &ast.SourceLocation{Source: p.options.SrcName, Start: attr.valueStart, End: p.position()}
	value, err := attr.assemble(loc, line)
	if err != nil {
		return err
	}
	p.currentTag.attributes = append(p.currentTag.attributes, b.Attr(attr.name.String(), value))
	return nil
}

func (p *Parser) currentElement() ast.Node {
	if len(p.elementStack) == 0 {
		return nil
	}
	return p.elementStack[len(p.elementStack)-1]
}

func (p *Parser) popElement() ast.Node {
	el := p.currentElement()
	if el != nil {
		p.elementStack = p.elementStack[:len(p.elementStack)-1]
	}
	return el
}

func (p *Parser) appendChild(child ast.Statement) {
	switch parent := p.currentElement().(type) {
	case *ast.Program:
		parent.Body = append(parent.Body, child)
	case *ast.ElementNode:
		parent.Children = append(parent.Children, child)
	}
}

// validateEndTag checks an end tag, or a start tag that closes itself,
// against the container it pops.
func validateEndTag(tag *tagToken, popped ast.Node, closedByStartTag bool) error {
	name := tag.name.String()
	element, isElement := popped.(*ast.ElementNode)

	switch {
	case isVoid(name) && !closedByStartTag:
		return errors.Errorf("Invalid end tag %s (void elements cannot have end tags).", formatEndTagInfo(tag))
	case !isElement:
		return errors.Errorf("Closing tag %s without an open tag.", formatEndTagInfo(tag))
	case element.Tag != name:
		return errors.Errorf("Closing tag %s did not match last open tag `%s` (on line %d).",
			formatEndTagInfo(tag), element.Tag, startLine(element.Loc))
	case !closedByStartTag && len(tag.attributes) > 0:
		return errors.Errorf("Invalid end tag: closing tag must not have attributes, in %s.", formatEndTagInfo(tag))
	}
	return nil
}

func formatEndTagInfo(tag *tagToken) string {
	return "`" + tag.name.String() + "` (on line " + strconv.Itoa(tag.loc.End.Line) + ")"
}
