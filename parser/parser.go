// Package parser combines the mustache grammar with the HTML tokenizer
// into one tree. The mustache AST is walked statement by statement; every
// run of content is fed to the tokenizer, whose events build elements,
// text and comments around the mustaches.
package parser

import (
	"regexp"

	"github.com/heathj/hbsyntax/parser/ast"
	"github.com/heathj/hbsyntax/parser/builders"
	"github.com/heathj/hbsyntax/parser/handlebars"
	"github.com/heathj/hbsyntax/parser/html"
	"github.com/sirupsen/logrus"
)

// Options configure a Preprocess call.
type Options struct {
	// SrcName is stored in the Source of every location.
	SrcName string
	// DisableComponentGeneration keeps hyphenated tags as plain elements.
	DisableComponentGeneration bool
	// IgnoreStandalone turns off standalone line trimming in the mustache
	// stage.
	IgnoreStandalone bool
	Plugins          Plugins
	// Logger receives debug output. Nil discards it.
	Logger logrus.FieldLogger
}

// Plugins holds the tree transforms run after a parse.
type Plugins struct {
	AST []PluginFactory
}

// PluginFactory creates a plugin for one Preprocess call.
type PluginFactory func(opts Options, syntax Syntax) Plugin

// Plugin transforms a finished tree. The returned node replaces the tree
// and need not be a Program.
type Plugin interface {
	Transform(node ast.Node) (ast.Node, error)
}

// Syntax is the toolkit handed to plugins.
type Syntax struct {
	Parse     func(source string, opts Options) (ast.Node, error)
	NewWalker func(order ast.Order) *ast.Walker
	Builders  builders.Builders
}

var b builders.Builders

var lineBreak = regexp.MustCompile(`\r\n?|\n`)

// Preprocess parses source into the unified tree and runs the configured
// plugins over it.
func Preprocess(source string, opts Options) (ast.Node, error) {
	program, err := handlebars.Parse(source, handlebars.Options{
		SrcName:          opts.SrcName,
		IgnoreStandalone: opts.IgnoreStandalone,
	})
	if err != nil {
		return nil, err
	}

	p := NewParser(opts)
	p.source = lineBreak.Split(source, -1)
	return p.run(program)
}

// PreprocessProgram unifies an already parsed mustache program. Mustaches
// found inside HTML comments are rendered back from their nodes since
// there is no source text to copy.
func PreprocessProgram(program *ast.Program, opts Options) (ast.Node, error) {
	return NewParser(opts).run(program)
}

// Parser is the html.Delegate of its tokenizer and, at the same time, the
// visitor over the mustache AST that feeds that tokenizer.
type Parser struct {
	Tokenizer *html.Tokenizer

	options Options
	log     logrus.FieldLogger
	source  []string

	elementStack     []ast.Node
	currentTag       *tagToken
	currentText      *ast.TextNode
	currentComment   *ast.CommentStatement
	currentAttribute *attributeBuilder

	tagOpenLine, tagOpenColumn int
}

// NewParser returns a parser for a single parse.
func NewParser(opts Options) *Parser {
	p := &Parser{options: opts}
	p.Tokenizer = html.NewTokenizer(p, nil)
	p.Tokenizer.SetLogger(opts.Logger)
	p.log = p.Tokenizer.Logger()
	return p
}

func (p *Parser) run(program *ast.Program) (ast.Node, error) {
	unified, err := p.acceptProgram(program)
	if err != nil {
		return nil, err
	}
	return p.runPlugins(unified)
}

func (p *Parser) runPlugins(node ast.Node) (ast.Node, error) {
	syntax := Syntax{
		Parse:     Preprocess,
		NewWalker: ast.NewWalker,
		Builders:  b,
	}
	for i, factory := range p.options.Plugins.AST {
		plugin := factory(p.options, syntax)
		p.log.WithFields(logrus.Fields{"index": i, "plugin": pluginName(plugin)}).Debug("[PLUGIN]")

		var err error
		node, err = plugin.Transform(node)
		if err != nil {
			return nil, err
		}
	}
	return node, nil
}
