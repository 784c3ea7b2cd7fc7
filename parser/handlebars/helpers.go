package handlebars

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/heathj/hbsyntax/parser/ast"
)

var (
	commentOpen  = regexp.MustCompile(`^\{\{~?!-?-?`)
	commentClose = regexp.MustCompile(`-?-?~?\}\}$`)
)

// id strips the brackets of a literal segment such as [foo bar].
func id(token string) string {
	if strings.HasPrefix(token, "[") && strings.HasSuffix(token, "]") && len(token) >= 2 {
		return token[1 : len(token)-1]
	}
	return token
}

// stripFlags reads the `~` markers of an opening and a closing delimiter.
func stripFlags(open, close string) ast.StripFlags {
	return ast.StripFlags{
		Open:  len(open) > 2 && open[2] == '~',
		Close: len(close) >= 3 && close[len(close)-3] == '~',
	}
}

func stripComment(comment string) string {
	comment = commentOpen.ReplaceAllString(comment, "")
	return commentClose.ReplaceAllString(comment, "")
}

func preparePath(data bool, segments []pathSegment, loc *ast.SourceLocation) (*pathBuilder, error) {
	pb := &pathBuilder{data: data, parts: []string{}, loc: loc}
	if data {
		pb.original = "@"
	}

	for _, seg := range segments {
		literal := seg.original != seg.part
		pb.original += seg.separator + seg.part

		if !literal && (seg.part == ".." || seg.part == "." || seg.part == "this") {
			if len(pb.parts) > 0 {
				return nil, newException("Invalid path: "+pb.original, loc)
			}
			if seg.part == ".." {
				pb.depth++
			}
			continue
		}
		pb.parts = append(pb.parts, seg.part)
	}
	return pb, nil
}

func prepareMustache(path ast.Expression, params []ast.Expression, hash *ast.Hash, open string, strip ast.StripFlags, loc *ast.SourceLocation) *ast.MustacheStatement {
	var flag byte
	switch {
	case len(open) > 3:
		flag = open[3]
	case len(open) > 2:
		flag = open[2]
	}
	return &ast.MustacheStatement{
		Path:    path,
		Params:  params,
		Hash:    hash,
		Escaped: flag != '{' && flag != '&',
		Strip:   strip,
		Loc:     loc,
	}
}

// prepareProgram wraps statements in a Program. Without an explicit
// location the program spans its first and last statement.
func prepareProgram(body []ast.Statement, loc *ast.SourceLocation) *ast.Program {
	if loc == nil && len(body) > 0 {
		first, last := ast.LocOf(body[0]), ast.LocOf(body[len(body)-1])
		if first != nil && last != nil {
			loc = &ast.SourceLocation{Source: first.Source, Start: first.Start, End: last.End}
		}
	}
	return &ast.Program{Body: body, Loc: loc}
}

func prepareRawBlock(open *openTag, contents []ast.Statement, close string, loc *ast.SourceLocation) (*ast.BlockStatement, error) {
	if err := validateClose(open, close); err != nil {
		return nil, err
	}
	return &ast.BlockStatement{
		Path:    open.path,
		Params:  open.params,
		Hash:    open.hash,
		Program: &ast.Program{Body: contents, Loc: loc},
		Loc:     loc,
	}, nil
}

func prepareBlock(open *openTag, program *ast.Program, tail *inverseTail, close *closeTag, inverted bool, loc *ast.SourceLocation) (*ast.BlockStatement, error) {
	if close != nil && close.path != nil {
		if err := validateClose(open, originalOf(close.path)); err != nil {
			return nil, err
		}
	}

	program.BlockParams = open.blockParams

	var inverse *ast.Program
	var inverseStrip ast.StripFlags
	if tail != nil {
		if tail.chain && close != nil {
			if inner, ok := tail.program.Body[0].(*ast.BlockStatement); ok {
				inner.CloseStrip = close.strip
			}
		}
		inverseStrip = tail.strip
		inverse = tail.program
	}
	if inverted {
		program, inverse = inverse, program
	}

	block := &ast.BlockStatement{
		Path:         open.path,
		Params:       open.params,
		Hash:         open.hash,
		Program:      program,
		Inverse:      inverse,
		OpenStrip:    open.strip,
		InverseStrip: inverseStrip,
		Loc:          loc,
	}
	if close != nil {
		block.CloseStrip = close.strip
	}
	return block, nil
}

func validateClose(open *openTag, close string) error {
	if name := originalOf(open.path); name != close {
		return newException(name+" doesn't match "+close, ast.LocOf(open.path))
	}
	return nil
}

// originalOf is the source spelling of a block name.
func originalOf(e ast.Expression) string {
	switch e := e.(type) {
	case *ast.PathExpression:
		return e.Original
	case *ast.StringLiteral:
		return e.Original
	case *ast.NumberLiteral:
		return strconv.FormatFloat(e.Original, 'f', -1, 64)
	case *ast.BooleanLiteral:
		return strconv.FormatBool(e.Original)
	case *ast.NullLiteral:
		return "null"
	case *ast.UndefinedLiteral:
		return "undefined"
	}
	return ""
}
