// Package handlebars parses the mustache language of a template into a raw
// syntax tree. Content between mustaches is kept as ContentStatement nodes;
// HTML structure is not looked at here.
package handlebars

import (
	"strconv"
	"strings"

	"github.com/heathj/hbsyntax/parser/ast"
	"github.com/pkg/errors"
)

// Options configure a parse.
type Options struct {
	// SrcName is stored in the Source of every location.
	SrcName string
	// IgnoreStandalone turns off the implicit trimming of lines that hold
	// nothing but a block, partial or comment tag. `~` markers still apply.
	IgnoreStandalone bool
}

// Parse parses input and applies whitespace control to the result.
func Parse(input string, opts Options) (*ast.Program, error) {
	program, err := ParseWithoutProcessing(input, opts)
	if err != nil {
		return nil, err
	}
	return NewWhitespaceControl(opts).Accept(program), nil
}

// ParseWithoutProcessing parses input into the raw tree, leaving content
// untouched.
func ParseWithoutProcessing(input string, opts Options) (*ast.Program, error) {
	p := &parser{lexer: newLexer(input), srcName: opts.SrcName}
	return p.parse()
}

type parser struct {
	lexer   *lexer
	srcName string
}

func (p *parser) location(loc yyloc) *ast.SourceLocation {
	return &ast.SourceLocation{
		Source: p.srcName,
		Start:  ast.Position{Line: loc.firstLine, Column: loc.firstColumn},
		End:    ast.Position{Line: loc.lastLine, Column: loc.lastColumn},
	}
}

func (p *parser) parse() (*ast.Program, error) {
	t := tables()

	states := []int{0}
	values := []any{nil}
	locs := []yyloc{p.lexer.loc}
	var look *token

	for {
		state := states[len(states)-1]

		var act action
		if prod := t.defaults[state]; prod >= 0 {
			act = action{kind: actionReduce, target: prod}
		} else {
			if look == nil {
				tok, err := p.lexer.next()
				if err != nil {
					return nil, err
				}
				look = &tok
			}
			act = t.actions[state][look.kind]
		}

		switch act.kind {
		case actionShift:
			states = append(states, act.target)
			values = append(values, look.text)
			locs = append(locs, look.loc)
			look = nil

		case actionReduce:
			prod := &productions[act.target]
			n := len(prod.rhs)

			loc := locs[len(locs)-1]
			if n > 0 {
				first := locs[len(locs)-n]
				loc.firstLine, loc.firstColumn = first.firstLine, first.firstColumn
			}

			v, err := prod.action(p, values[len(values)-n:], p.location(loc))
			if err != nil {
				return nil, err
			}

			states = states[:len(states)-n]
			values = values[:len(values)-n]
			locs = locs[:len(locs)-n]

			states = append(states, t.gotos[states[len(states)-1]][prod.lhs-numTerminals])
			values = append(values, v)
			locs = append(locs, loc)

		case actionAccept:
			program, _ := values[len(values)-1].(*ast.Program)
			return program, nil

		default:
			return nil, p.parseError(t.actions[state], look.kind)
		}
	}
}

func (p *parser) parseError(row [numTerminals]action, got symbol) error {
	var expected []string
	for term := tokEOF; term < numTerminals; term++ {
		if row[term].kind != actionError {
			expected = append(expected, "'"+term.String()+"'")
		}
	}
	return errors.New("Parse error on line " + strconv.Itoa(p.lexer.line+1) + ":\n" +
		p.lexer.showPosition() + "\nExpecting " + strings.Join(expected, ", ") +
		", got '" + got.String() + "'")
}
