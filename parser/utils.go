package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/heathj/hbsyntax/parser/ast"
	"github.com/pkg/errors"
	"golang.org/x/net/html/atom"
)

// isVoid reports whether name is an element that never has content or an
// end tag.
func isVoid(name string) bool {
	switch atom.Lookup([]byte(name)) {
	case atom.Area, atom.Base, atom.Br, atom.Col, atom.Command, atom.Embed, atom.Hr, atom.Img,
		atom.Input, atom.Keygen, atom.Link, atom.Meta, atom.Param, atom.Source, atom.Track, atom.Wbr:
		return true
	}
	return false
}

// Characters that may not appear in a block parameter, the same set that
// ends a mustache identifier.
var invalidBlockParam = regexp.MustCompile("[!\"#%-,\\./;->@\\[-\\^`\\{-~]")

// parseComponentBlockParams moves an `as |a b|` pseudo attribute of a
// component into program's block params and returns the attributes that
// remain. The tokenizer splits the construct into one attribute name per
// word, so the names are joined back before validation.
func parseComponentBlockParams(attributes []*ast.AttrNode, program *ast.Program) ([]*ast.AttrNode, error) {
	asIndex := -1
	for i, attr := range attributes {
		if attr.Name == "as" {
			asIndex = i
			break
		}
	}
	if asIndex == -1 || asIndex+1 >= len(attributes) || !strings.HasPrefix(attributes[asIndex+1].Name, "|") {
		return attributes, nil
	}

	names := make([]string, 0, len(attributes)-asIndex)
	for _, attr := range attributes[asIndex:] {
		names = append(names, attr.Name)
	}
	paramsString := strings.Join(names, " ")
	if !strings.HasSuffix(paramsString, "|") || strings.Count(paramsString, "|") != 2 {
		return nil, errors.Errorf("Invalid block parameters syntax: '%s'", paramsString)
	}

	var params []string
	for _, name := range names[1:] {
		param := strings.ReplaceAll(name, "|", "")
		if param == "" {
			continue
		}
		if invalidBlockParam.MatchString(param) {
			return nil, errors.Errorf("Invalid identifier for block parameters: '%s' in '%s'", param, paramsString)
		}
		params = append(params, param)
	}
	if len(params) == 0 {
		return nil, errors.Errorf("Cannot use zero block parameters: '%s'", paramsString)
	}

	program.BlockParams = params
	return attributes[:asIndex], nil
}

// sourceForMustache returns the text between the outer braces of a
// mustache, copied from the source lines. Without source the call is
// rendered from the nodes.
func (p *Parser) sourceForMustache(loc *ast.SourceLocation, path ast.Expression, params []ast.Expression, hash *ast.Hash) string {
	if p.source == nil || loc == nil {
		return ast.CallString(path, params, hash)
	}

	firstLine, lastLine := loc.Start.Line-1, loc.End.Line-1
	firstColumn, lastColumn := loc.Start.Column+2, loc.End.Column-2
	if firstLine < 0 || lastLine >= len(p.source) {
		return ast.CallString(path, params, hash)
	}

	lines := make([]string, 0, lastLine-firstLine+1)
	for i := firstLine; i <= lastLine; i++ {
		line := []rune(p.source[i])
		switch {
		case i == firstLine && i == lastLine:
			lines = append(lines, sliceRunes(line, firstColumn, lastColumn))
		case i == firstLine:
			lines = append(lines, sliceRunes(line, firstColumn, len(line)))
		case i == lastLine:
			lines = append(lines, sliceRunes(line, 0, lastColumn))
		default:
			lines = append(lines, string(line))
		}
	}
	return strings.Join(lines, "\n")
}

func sliceRunes(line []rune, from, to int) string {
	if to > len(line) {
		to = len(line)
	}
	if from > to {
		return ""
	}
	return string(line[from:to])
}

// rightStrippedOffsets counts the lines and trailing columns that were
// stripped from the start of original to produce value.
func rightStrippedOffsets(original, value string) (lines, columns int) {
	if value == "" {
		return strings.Count(original, "\n"), 0
	}
	difference := original
	if i := strings.Index(original, value); i >= 0 {
		difference = original[:i]
	}
	split := strings.Split(difference, "\n")
	last := split[len(split)-1]
	return len(split) - 1, len([]rune(last))
}

func startLine(loc *ast.SourceLocation) int {
	if loc == nil {
		return 0
	}
	return loc.Start.Line
}

func pluginName(plugin Plugin) string {
	return fmt.Sprintf("%T", plugin)
}
