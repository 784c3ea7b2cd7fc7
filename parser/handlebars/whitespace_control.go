package handlebars

import (
	"regexp"

	"github.com/heathj/hbsyntax/parser/ast"
)

var (
	prevWhitespace       = regexp.MustCompile(`\r?\n\s*?$`)
	prevWhitespaceAtRoot = regexp.MustCompile(`(^|\r?\n)\s*?$`)
	nextWhitespace       = regexp.MustCompile(`^\s*?\r?\n`)
	nextWhitespaceAtRoot = regexp.MustCompile(`^\s*?(\r?\n|$)`)

	leadingSpace       = regexp.MustCompile(`^\s+`)
	leadingLine        = regexp.MustCompile(`^[ \t]*\r?\n?`)
	trailingSpace      = regexp.MustCompile(`\s+$`)
	trailingBlanks     = regexp.MustCompile(`[ \t]+$`)
	partialIndentation = regexp.MustCompile(`([ \t]+$)`)
)

// WhitespaceControl trims content around `~` markers and around tags that
// stand alone on their line. It edits ContentStatement values in place.
type WhitespaceControl struct {
	options    Options
	isRootSeen bool
}

func NewWhitespaceControl(opts Options) *WhitespaceControl {
	return &WhitespaceControl{options: opts}
}

// stripInfo tells the enclosing program how a statement wants its neighbours
// trimmed.
type stripInfo struct {
	open, close      bool
	openStandalone   bool
	closeStandalone  bool
	inlineStandalone bool
}

// Accept processes program and everything below it. The first program a
// WhitespaceControl sees is treated as the root.
func (w *WhitespaceControl) Accept(program *ast.Program) *ast.Program {
	if program == nil {
		return nil
	}

	doStandalone := !w.options.IgnoreStandalone
	isRoot := !w.isRootSeen
	w.isRootSeen = true

	body := program.Body
	for i, current := range body {
		s := w.accept(current)
		if s == nil {
			continue
		}

		prevWS := isPrevWhitespace(body, i, isRoot)
		nextWS := isNextWhitespace(body, i, isRoot)
		openStandalone := s.openStandalone && prevWS
		closeStandalone := s.closeStandalone && nextWS
		inlineStandalone := s.inlineStandalone && prevWS && nextWS

		if s.close {
			omitRight(body, i, true)
		}
		if s.open {
			omitLeft(body, i, true)
		}

		if doStandalone && inlineStandalone {
			omitRight(body, i, false)
			if omitLeft(body, i, false) {
				if partial, ok := current.(*ast.PartialStatement); ok {
					if prev, ok := body[i-1].(*ast.ContentStatement); ok {
						if m := partialIndentation.FindStringSubmatch(prev.Original); m != nil {
							partial.Indent = m[1]
						}
					}
				}
			}
		}
		if doStandalone && openStandalone {
			block := current.(*ast.BlockStatement)
			omitRight(firstNonNil(block.Program, block.Inverse).Body, noIndex, false)
			omitLeft(body, i, false)
		}
		if doStandalone && closeStandalone {
			block := current.(*ast.BlockStatement)
			omitRight(body, i, false)
			omitLeft(firstNonNil(block.Inverse, block.Program).Body, noIndex, false)
		}
	}
	return program
}

// noIndex makes omitRight look at the first statement of a body and
// omitLeft at the last one.
const noIndex = -2

func (w *WhitespaceControl) accept(node ast.Statement) *stripInfo {
	switch n := node.(type) {
	case *ast.BlockStatement:
		return w.block(n)
	case *ast.MustacheStatement:
		return &stripInfo{open: n.Strip.Open, close: n.Strip.Close}
	case *ast.PartialStatement:
		return &stripInfo{inlineStandalone: true, open: n.Strip.Open, close: n.Strip.Close}
	case *ast.CommentStatement:
		return &stripInfo{inlineStandalone: true, open: n.Strip.Open, close: n.Strip.Close}
	}
	return nil
}

func (w *WhitespaceControl) block(block *ast.BlockStatement) *stripInfo {
	w.Accept(block.Program)
	w.Accept(block.Inverse)

	program := firstNonNil(block.Program, block.Inverse)
	var inverse *ast.Program
	if block.Program != nil {
		inverse = block.Inverse
	}
	firstInverse, lastInverse := inverse, inverse
	if chained, ok := chainedProgram(inverse, 0); ok {
		firstInverse = chained
		for {
			next, ok := chainedProgram(lastInverse, len(lastInverse.Body)-1)
			if !ok {
				break
			}
			lastInverse = next
		}
	}

	s := &stripInfo{
		open:            block.OpenStrip.Open,
		close:           block.CloseStrip.Close,
		openStandalone:  isNextWhitespace(program.Body, noIndex, false),
		closeStandalone: isPrevWhitespace(firstNonNil(firstInverse, program).Body, noIndex, false),
	}

	if block.OpenStrip.Close {
		omitRight(program.Body, noIndex, true)
	}

	if inverse != nil {
		if block.InverseStrip.Open {
			omitLeft(program.Body, noIndex, true)
		}
		if block.InverseStrip.Close {
			omitRight(firstInverse.Body, noIndex, true)
		}
		if block.CloseStrip.Open {
			omitLeft(lastInverse.Body, noIndex, true)
		}

		if !w.options.IgnoreStandalone &&
			isPrevWhitespace(program.Body, noIndex, false) &&
			isNextWhitespace(firstInverse.Body, noIndex, false) {
			omitLeft(program.Body, noIndex, false)
			omitRight(firstInverse.Body, noIndex, false)
		}
	} else if block.CloseStrip.Open {
		omitLeft(program.Body, noIndex, true)
	}
	return s
}

// chainedProgram returns the program of the {{else if}} block at index i of
// a chained inverse. Hand-built trees may mark an inverse chained without
// holding a block there.
func chainedProgram(inverse *ast.Program, i int) (*ast.Program, bool) {
	if inverse == nil || !inverse.Chained || i < 0 || i >= len(inverse.Body) {
		return nil, false
	}
	block, ok := inverse.Body[i].(*ast.BlockStatement)
	if !ok || block.Program == nil {
		return nil, false
	}
	return block.Program, true
}

func firstNonNil(programs ...*ast.Program) *ast.Program {
	for _, p := range programs {
		if p != nil {
			return p
		}
	}
	return &ast.Program{}
}

// isPrevWhitespace reports whether the statement before body[i] ends in a
// newline followed by blanks. With i == noIndex the end of body is checked.
func isPrevWhitespace(body []ast.Statement, i int, isRoot bool) bool {
	if i == noIndex {
		i = len(body)
	}
	if i-1 < 0 || i-1 >= len(body) {
		return isRoot
	}
	prev, ok := body[i-1].(*ast.ContentStatement)
	if !ok {
		return false
	}
	if i-2 >= 0 || !isRoot {
		return prevWhitespace.MatchString(prev.Original)
	}
	return prevWhitespaceAtRoot.MatchString(prev.Original)
}

// isNextWhitespace reports whether the statement after body[i] starts with
// blanks and a newline. With i == noIndex the start of body is checked.
func isNextWhitespace(body []ast.Statement, i int, isRoot bool) bool {
	if i == noIndex {
		i = -1
	}
	if i+1 >= len(body) {
		return isRoot
	}
	next, ok := body[i+1].(*ast.ContentStatement)
	if !ok {
		return false
	}
	if i+2 < len(body) || !isRoot {
		return nextWhitespace.MatchString(next.Original)
	}
	return nextWhitespaceAtRoot.MatchString(next.Original)
}

// omitRight trims the start of the content after body[i], or of the first
// statement when i == noIndex. multiple strips all whitespace rather than the
// rest of one line.
func omitRight(body []ast.Statement, i int, multiple bool) {
	if i == noIndex {
		i = -1
	}
	if i+1 >= len(body) {
		return
	}
	current, ok := body[i+1].(*ast.ContentStatement)
	if !ok || (!multiple && current.RightStripped) {
		return
	}

	original := current.Value
	if multiple {
		current.Value = leadingSpace.ReplaceAllString(current.Value, "")
	} else {
		current.Value = leadingLine.ReplaceAllString(current.Value, "")
	}
	current.RightStripped = current.Value != original
}

// omitLeft trims the end of the content before body[i], or of the last
// statement when i == noIndex. It reports whether anything was removed.
func omitLeft(body []ast.Statement, i int, multiple bool) bool {
	if i == noIndex {
		i = len(body)
	}
	if i-1 < 0 || i-1 >= len(body) {
		return false
	}
	current, ok := body[i-1].(*ast.ContentStatement)
	if !ok || (!multiple && current.LeftStripped) {
		return false
	}

	original := current.Value
	if multiple {
		current.Value = trailingSpace.ReplaceAllString(current.Value, "")
	} else {
		current.Value = trailingBlanks.ReplaceAllString(current.Value, "")
	}
	current.LeftStripped = current.Value != original
	return current.LeftStripped
}
