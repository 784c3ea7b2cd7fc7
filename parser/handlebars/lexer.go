package handlebars

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
)

type lexMode uint8

const (
	modeInitial lexMode = iota
	modeMu
	modeEmu
	modeCom
	modeRaw
)

type modeSet uint8

func modes(ms ...lexMode) modeSet {
	var s modeSet
	for _, m := range ms {
		s |= 1 << m
	}
	return s
}

func (s modeSet) has(m lexMode) bool {
	return s&(1<<m) != 0
}

// yyloc is the span of a token or a reduced symbol: lines are 1-based and
// columns 0-based, counted in runes.
type yyloc struct {
	firstLine, firstColumn int
	lastLine, lastColumn   int
}

type token struct {
	kind symbol
	text string
	loc  yyloc
}

// matcher returns the length in bytes of the match at the start of s, or
// -1 when there is none.
type matcher func(s string) int

// lexRule is one lexer rule. Rules are tried in order and the first one
// that matches wins, whatever the length of later matches.
type lexRule struct {
	modes modeSet
	match matcher
	// action may rewrite the token text. emit is false for rules that only
	// switch modes or skip input.
	action func(l *lexer, text string) (kind symbol, out string, emit bool)
	// unput rules switch modes without consuming their match.
	unput bool
	// joinsPath rules continue a path when they touch the identifier
	// before them, so "foo..bar" is one path and not three params.
	joinsPath bool
}

type lexer struct {
	input string
	pos   int
	stack []lexMode
	done  bool

	// line counts the newlines consumed so far.
	line int
	loc  yyloc
	// match is the text of the last match; errors point just before it.
	match string

	// prev is the kind of the last emitted token and prevEnd the offset
	// just past it.
	prev    symbol
	prevEnd int
}

func newLexer(input string) *lexer {
	return &lexer{
		input: input,
		stack: []lexMode{modeInitial},
		loc:   yyloc{firstLine: 1, lastLine: 1},
	}
}

func (l *lexer) mode() lexMode {
	return l.stack[len(l.stack)-1]
}

func (l *lexer) begin(m lexMode) {
	l.stack = append(l.stack, m)
}

func (l *lexer) popState() {
	if len(l.stack) > 1 {
		l.stack = l.stack[:len(l.stack)-1]
	}
}

// next returns the next token. Once the input is exhausted it keeps
// returning symEnd.
func (l *lexer) next() (token, error) {
	for {
		if l.done {
			return token{kind: symEnd, loc: l.point()}, nil
		}
		rest := l.input[l.pos:]
		if rest == "" {
			l.done = true
		}
		l.match = ""

		rule, n := l.firstMatch(rest)
		if rule == nil {
			if rest == "" {
				return token{kind: symEnd, loc: l.point()}, nil
			}
			return token{}, errors.New("Lexical error on line " + strconv.Itoa(l.line+1) + ". Unrecognized text.\n" + l.showPosition())
		}

		text := rest[:n]
		if rule.joinsPath && l.prev == tokID && l.prevEnd == l.pos {
			l.prev = tokSep
			return token{kind: tokSep, loc: l.point()}, nil
		}
		if rule.unput {
			rule.action(l, text)
			continue
		}
		l.advance(text)
		kind, out, emit := rule.action(l, text)
		if l.done && l.pos < len(l.input) {
			l.done = false
		}
		if emit {
			l.prev, l.prevEnd = kind, l.pos
			return token{kind: kind, text: out, loc: l.loc}, nil
		}
	}
}

func (l *lexer) firstMatch(rest string) (*lexRule, int) {
	m := l.mode()
	for i := range lexRules {
		rule := &lexRules[i]
		if !rule.modes.has(m) {
			continue
		}
		if n := rule.match(rest); n >= 0 {
			return rule, n
		}
	}
	return nil, -1
}

// advance consumes text and moves the location past it.
func (l *lexer) advance(text string) {
	l.match = text
	l.pos += len(text)

	first := yyloc{firstLine: l.loc.lastLine, firstColumn: l.loc.lastColumn}
	newlines, tail := splitLines(text)
	l.line += newlines
	first.lastLine = l.line + 1
	if newlines > 0 {
		first.lastColumn = utf8.RuneCountInString(tail)
	} else {
		first.lastColumn = l.loc.lastColumn + utf8.RuneCountInString(text)
	}
	l.loc = first
}

// point is an empty location at the current position.
func (l *lexer) point() yyloc {
	return yyloc{
		firstLine:   l.loc.lastLine,
		firstColumn: l.loc.lastColumn,
		lastLine:    l.loc.lastLine,
		lastColumn:  l.loc.lastColumn,
	}
}

// splitLines counts the line terminators in s (\r\n, \r or \n) and returns
// the text after the last one.
func splitLines(s string) (int, string) {
	count, tail := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\r':
			if i+1 < len(s) && s[i+1] == '\n' {
				i++
			}
			count++
			tail = i + 1
		case '\n':
			count++
			tail = i + 1
		}
	}
	return count, s[tail:]
}

// showPosition renders up to 20 characters on either side of the current
// match and a pointer under the start of the match.
func (l *lexer) showPosition() string {
	pre := l.pastInput()
	return pre + l.upcomingInput() + "\n" + strings.Repeat("-", utf8.RuneCountInString(pre)) + "^"
}

func (l *lexer) pastInput() string {
	past := []rune(l.input[:l.pos-len(l.match)])
	prefix := ""
	if len(past) > 20 {
		prefix = "..."
		past = past[len(past)-20:]
	}
	return prefix + strings.ReplaceAll(string(past), "\n", "")
}

func (l *lexer) upcomingInput() string {
	next := []rune(l.match)
	if len(next) < 20 {
		rest := []rune(l.input[l.pos:])
		if len(rest) > 20-len(next) {
			rest = rest[:20-len(next)]
		}
		next = append(next, rest...)
	}
	suffix := ""
	if len(next) > 20 {
		suffix = "..."
		next = next[:20]
	}
	return strings.ReplaceAll(string(next)+suffix, "\n", "")
}
