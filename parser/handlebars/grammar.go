package handlebars

import (
	"strconv"

	"github.com/heathj/hbsyntax/parser/ast"
)

// reduceFunc builds the value of a production's left-hand side from the
// values of its right-hand side. loc spans the whole right-hand side.
type reduceFunc func(p *parser, v []any, loc *ast.SourceLocation) (any, error)

type production struct {
	lhs    symbol
	rhs    []symbol
	action reduceFunc
}

// openTag is the opening mustache of a block, inverse or raw block.
type openTag struct {
	open        string
	path        ast.Expression
	params      []ast.Expression
	hash        *ast.Hash
	blockParams []string
	strip       ast.StripFlags
}

type closeTag struct {
	path  ast.Expression
	strip ast.StripFlags
}

// inverseTail is what follows the main program of a block: an {{else}}
// section or an {{else if}} chain.
type inverseTail struct {
	strip   ast.StripFlags
	program *ast.Program
	chain   bool
}

type pathSegment struct {
	part      string
	original  string
	separator string
}

// pathBuilder is a path while its segments are still being reduced. It is
// turned into an *ast.PathExpression before anything else refers to it.
type pathBuilder struct {
	data     bool
	depth    int
	parts    []string
	original string
	loc      *ast.SourceLocation
}

func (pb *pathBuilder) expression() *ast.PathExpression {
	return &ast.PathExpression{Original: pb.original, Parts: pb.parts, Loc: pb.loc}
}

// as asserts v to T, yielding the zero value for nil or ε values.
func as[T any](v any) T {
	t, _ := v.(T)
	return t
}

func pass(_ *parser, v []any, _ *ast.SourceLocation) (any, error) {
	return v[0], nil
}

func none(*parser, []any, *ast.SourceLocation) (any, error) {
	return nil, nil
}

func rule(lhs symbol, rhs []symbol, action reduceFunc) production {
	if action == nil {
		action = pass
	}
	return production{lhs: lhs, rhs: rhs, action: action}
}

func syms(s ...symbol) []symbol { return s }

func openTagAction(_ *parser, v []any, _ *ast.SourceLocation) (any, error) {
	return &openTag{
		open:        as[string](v[0]),
		path:        as[ast.Expression](v[1]),
		params:      as[[]ast.Expression](v[2]),
		hash:        as[*ast.Hash](v[3]),
		blockParams: as[[]string](v[4]),
		strip:       stripFlags(as[string](v[0]), as[string](v[5])),
	}, nil
}

func mustacheAction(_ *parser, v []any, loc *ast.SourceLocation) (any, error) {
	return prepareMustache(
		as[ast.Expression](v[1]),
		as[[]ast.Expression](v[2]),
		as[*ast.Hash](v[3]),
		as[string](v[0]),
		stripFlags(as[string](v[0]), as[string](v[4])),
		loc,
	), nil
}

func literalAction(build func(text string, loc *ast.SourceLocation) (ast.Expression, error)) reduceFunc {
	return func(_ *parser, v []any, loc *ast.SourceLocation) (any, error) {
		return build(as[string](v[0]), loc)
	}
}

// productions is the mustache grammar. Optional and repeated symbols are
// spelled out as their own left-recursive nonterminals.
var productions = []production{
	rule(ntAccept, syms(ntRoot), nil),
	rule(ntRoot, syms(ntProgram, tokEOF), nil),
	rule(ntProgram, syms(ntStatements), func(_ *parser, v []any, _ *ast.SourceLocation) (any, error) {
		return prepareProgram(as[[]ast.Statement](v[0]), nil), nil
	}),

	rule(ntStatements, nil, func(*parser, []any, *ast.SourceLocation) (any, error) {
		return []ast.Statement{}, nil
	}),
	rule(ntStatements, syms(ntStatements, ntStatement), func(_ *parser, v []any, _ *ast.SourceLocation) (any, error) {
		return append(as[[]ast.Statement](v[0]), as[ast.Statement](v[1])), nil
	}),

	rule(ntStatement, syms(ntMustache), nil),
	rule(ntStatement, syms(ntBlock), nil),
	rule(ntStatement, syms(ntRawBlock), nil),
	rule(ntStatement, syms(ntPartial), nil),
	rule(ntStatement, syms(ntContent), nil),
	rule(ntStatement, syms(tokComment), func(_ *parser, v []any, loc *ast.SourceLocation) (any, error) {
		text := as[string](v[0])
		return &ast.CommentStatement{
			Value: stripComment(text),
			Strip: stripFlags(text, text),
			Loc:   loc,
		}, nil
	}),

	rule(ntContent, syms(tokContent), func(_ *parser, v []any, loc *ast.SourceLocation) (any, error) {
		text := as[string](v[0])
		return &ast.ContentStatement{Original: text, Value: text, Loc: loc}, nil
	}),

	rule(ntRawBlock, syms(ntOpenRawBlock, ntContents, tokEndRawBlock), func(_ *parser, v []any, loc *ast.SourceLocation) (any, error) {
		return prepareRawBlock(as[*openTag](v[0]), as[[]ast.Statement](v[1]), as[string](v[2]), loc)
	}),
	rule(ntContents, syms(ntContent), func(_ *parser, v []any, _ *ast.SourceLocation) (any, error) {
		return []ast.Statement{as[ast.Statement](v[0])}, nil
	}),
	rule(ntContents, syms(ntContents, ntContent), func(_ *parser, v []any, _ *ast.SourceLocation) (any, error) {
		return append(as[[]ast.Statement](v[0]), as[ast.Statement](v[1])), nil
	}),
	rule(ntOpenRawBlock, syms(tokOpenRawBlock, ntHelperName, ntParams, ntOptHash, tokCloseRawBlock), func(_ *parser, v []any, _ *ast.SourceLocation) (any, error) {
		return &openTag{
			path:   as[ast.Expression](v[1]),
			params: as[[]ast.Expression](v[2]),
			hash:   as[*ast.Hash](v[3]),
		}, nil
	}),

	rule(ntBlock, syms(ntOpenBlock, ntProgram, ntOptInverseChain, ntCloseBlock), func(_ *parser, v []any, loc *ast.SourceLocation) (any, error) {
		return prepareBlock(as[*openTag](v[0]), as[*ast.Program](v[1]), as[*inverseTail](v[2]), as[*closeTag](v[3]), false, loc)
	}),
	rule(ntBlock, syms(ntOpenInverse, ntProgram, ntOptInverseAndProgram, ntCloseBlock), func(_ *parser, v []any, loc *ast.SourceLocation) (any, error) {
		return prepareBlock(as[*openTag](v[0]), as[*ast.Program](v[1]), as[*inverseTail](v[2]), as[*closeTag](v[3]), true, loc)
	}),
	rule(ntOpenBlock, syms(tokOpenBlock, ntHelperName, ntParams, ntOptHash, ntOptBlockParams, tokClose), openTagAction),
	rule(ntOpenInverse, syms(tokOpenInverse, ntHelperName, ntParams, ntOptHash, ntOptBlockParams, tokClose), openTagAction),
	rule(ntOpenInverseChain, syms(tokOpenInverseChain, ntHelperName, ntParams, ntOptHash, ntOptBlockParams, tokClose), openTagAction),
	rule(ntInverseAndProgram, syms(tokInverse, ntProgram), func(_ *parser, v []any, _ *ast.SourceLocation) (any, error) {
		text := as[string](v[0])
		return &inverseTail{strip: stripFlags(text, text), program: as[*ast.Program](v[1])}, nil
	}),
	rule(ntInverseChain, syms(ntOpenInverseChain, ntProgram, ntOptInverseChain), func(_ *parser, v []any, loc *ast.SourceLocation) (any, error) {
		open := as[*openTag](v[0])
		program := as[*ast.Program](v[1])
		tail := as[*inverseTail](v[2])

		var end *closeTag
		if tail != nil {
			end = &closeTag{strip: tail.strip}
		}
		inverse, err := prepareBlock(open, program, tail, end, false, loc)
		if err != nil {
			return nil, err
		}
		chained := prepareProgram([]ast.Statement{inverse}, program.Loc)
		chained.Chained = true
		return &inverseTail{strip: open.strip, program: chained, chain: true}, nil
	}),
	rule(ntInverseChain, syms(ntInverseAndProgram), nil),
	rule(ntOptInverseChain, nil, none),
	rule(ntOptInverseChain, syms(ntInverseChain), nil),
	rule(ntOptInverseAndProgram, nil, none),
	rule(ntOptInverseAndProgram, syms(ntInverseAndProgram), nil),
	rule(ntCloseBlock, syms(tokOpenEndBlock, ntHelperName, tokClose), func(_ *parser, v []any, _ *ast.SourceLocation) (any, error) {
		return &closeTag{
			path:  as[ast.Expression](v[1]),
			strip: stripFlags(as[string](v[0]), as[string](v[2])),
		}, nil
	}),

	rule(ntMustache, syms(tokOpen, ntHelperName, ntParams, ntOptHash, tokClose), mustacheAction),
	rule(ntMustache, syms(tokOpenUnescaped, ntHelperName, ntParams, ntOptHash, tokCloseUnescaped), mustacheAction),

	rule(ntPartial, syms(tokOpenPartial, ntPartialName, ntParams, ntOptHash, tokClose), func(_ *parser, v []any, loc *ast.SourceLocation) (any, error) {
		return &ast.PartialStatement{
			Name:   as[ast.Expression](v[1]),
			Params: as[[]ast.Expression](v[2]),
			Hash:   as[*ast.Hash](v[3]),
			Strip:  stripFlags(as[string](v[0]), as[string](v[4])),
			Loc:    loc,
		}, nil
	}),

	rule(ntParams, nil, func(*parser, []any, *ast.SourceLocation) (any, error) {
		return []ast.Expression{}, nil
	}),
	rule(ntParams, syms(ntParams, ntParam), func(_ *parser, v []any, _ *ast.SourceLocation) (any, error) {
		return append(as[[]ast.Expression](v[0]), as[ast.Expression](v[1])), nil
	}),
	rule(ntParam, syms(ntHelperName), nil),
	rule(ntParam, syms(ntSexpr), nil),

	rule(ntSexpr, syms(tokOpenSexpr, ntHelperName, ntParams, ntOptHash, tokCloseSexpr), func(_ *parser, v []any, loc *ast.SourceLocation) (any, error) {
		return &ast.SubExpression{
			Path:   as[ast.Expression](v[1]),
			Params: as[[]ast.Expression](v[2]),
			Hash:   as[*ast.Hash](v[3]),
			Loc:    loc,
		}, nil
	}),

	rule(ntOptHash, nil, none),
	rule(ntOptHash, syms(ntHash), nil),
	rule(ntHash, syms(ntHashSegments), func(_ *parser, v []any, loc *ast.SourceLocation) (any, error) {
		return &ast.Hash{Pairs: as[[]*ast.HashPair](v[0]), Loc: loc}, nil
	}),
	rule(ntHashSegments, syms(ntHashSegment), func(_ *parser, v []any, _ *ast.SourceLocation) (any, error) {
		return []*ast.HashPair{as[*ast.HashPair](v[0])}, nil
	}),
	rule(ntHashSegments, syms(ntHashSegments, ntHashSegment), func(_ *parser, v []any, _ *ast.SourceLocation) (any, error) {
		return append(as[[]*ast.HashPair](v[0]), as[*ast.HashPair](v[1])), nil
	}),
	rule(ntHashSegment, syms(tokID, tokEquals, ntParam), func(_ *parser, v []any, loc *ast.SourceLocation) (any, error) {
		return &ast.HashPair{Key: id(as[string](v[0])), Value: as[ast.Expression](v[2]), Loc: loc}, nil
	}),

	rule(ntOptBlockParams, nil, none),
	rule(ntOptBlockParams, syms(ntBlockParams), nil),
	rule(ntBlockParams, syms(tokOpenBlockParams, ntIDs, tokCloseBlockParams), func(_ *parser, v []any, _ *ast.SourceLocation) (any, error) {
		return v[1], nil
	}),
	rule(ntIDs, syms(tokID), func(_ *parser, v []any, _ *ast.SourceLocation) (any, error) {
		return []string{id(as[string](v[0]))}, nil
	}),
	rule(ntIDs, syms(ntIDs, tokID), func(_ *parser, v []any, _ *ast.SourceLocation) (any, error) {
		return append(as[[]string](v[0]), id(as[string](v[1]))), nil
	}),

	rule(ntHelperName, syms(ntPath), func(_ *parser, v []any, _ *ast.SourceLocation) (any, error) {
		return as[*pathBuilder](v[0]).expression(), nil
	}),
	rule(ntHelperName, syms(ntDataName), func(_ *parser, v []any, _ *ast.SourceLocation) (any, error) {
		return as[*pathBuilder](v[0]).expression(), nil
	}),
	rule(ntHelperName, syms(tokString), literalAction(func(text string, loc *ast.SourceLocation) (ast.Expression, error) {
		return &ast.StringLiteral{Value: text, Original: text, Loc: loc}, nil
	})),
	rule(ntHelperName, syms(tokNumber), literalAction(func(text string, loc *ast.SourceLocation) (ast.Expression, error) {
		n, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, newException("Invalid number: "+text, loc)
		}
		return &ast.NumberLiteral{Value: n, Original: n, Loc: loc}, nil
	})),
	rule(ntHelperName, syms(tokBoolean), literalAction(func(text string, loc *ast.SourceLocation) (ast.Expression, error) {
		return &ast.BooleanLiteral{Value: text == "true", Original: text == "true", Loc: loc}, nil
	})),
	rule(ntHelperName, syms(tokUndefined), literalAction(func(_ string, loc *ast.SourceLocation) (ast.Expression, error) {
		return &ast.UndefinedLiteral{Loc: loc}, nil
	})),
	rule(ntHelperName, syms(tokNull), literalAction(func(_ string, loc *ast.SourceLocation) (ast.Expression, error) {
		return &ast.NullLiteral{Loc: loc}, nil
	})),

	rule(ntPartialName, syms(ntHelperName), nil),
	rule(ntPartialName, syms(ntSexpr), nil),

	rule(ntDataName, syms(tokData, ntPathSegments), func(_ *parser, v []any, loc *ast.SourceLocation) (any, error) {
		return preparePath(true, as[[]pathSegment](v[1]), loc)
	}),
	rule(ntPath, syms(ntPathSegments), func(_ *parser, v []any, loc *ast.SourceLocation) (any, error) {
		return preparePath(false, as[[]pathSegment](v[0]), loc)
	}),
	rule(ntPathSegments, syms(ntPathSegments, tokSep, tokID), func(_ *parser, v []any, _ *ast.SourceLocation) (any, error) {
		text := as[string](v[2])
		return append(as[[]pathSegment](v[0]), pathSegment{part: id(text), original: text, separator: as[string](v[1])}), nil
	}),
	rule(ntPathSegments, syms(tokID), func(_ *parser, v []any, _ *ast.SourceLocation) (any, error) {
		text := as[string](v[0])
		return []pathSegment{{part: id(text), original: text}}, nil
	}),
}
