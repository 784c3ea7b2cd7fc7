package handlebars

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// idChars is an identifier segment: anything but whitespace and the
	// punctuation the mustache syntax reserves.
	idChars = `[^\s!"#%-,\./;->@\[-\^` + "`" + `\{-~]+`
	// lookahead must follow an identifier or a lone '.'.
	lookahead = `[=~}\s/.)|]`
	// literalLookahead must follow a literal keyword or a number.
	literalLookahead = `[~}\s)]`
)

// rx matches pattern anchored at the start of the input.
func rx(pattern string) matcher {
	re := regexp.MustCompile(`^(?:` + pattern + `)`)
	return func(s string) int {
		loc := re.FindStringIndex(s)
		if loc == nil {
			return -1
		}
		return loc[1]
	}
}

// followedBy requires the character after a match to belong to class. The
// end of input never satisfies it.
func followedBy(m matcher, class string) matcher {
	la := regexp.MustCompile(`^` + class)
	return func(s string) int {
		n := m(s)
		if n < 0 || !la.MatchString(s[n:]) {
			return -1
		}
		return n
	}
}

func endOfInput(s string) int {
	if s == "" {
		return 0
	}
	return -1
}

// contentBeforeMustache matches the shortest prefix, possibly empty, that
// is followed by "{{".
func contentBeforeMustache(s string) int {
	return strings.Index(s, "{{")
}

func anyContent(s string) int {
	if s == "" {
		return -1
	}
	return len(s)
}

// escapedContent matches at least two characters, as few as possible,
// followed by the end of input or an opening (possibly escaped) mustache.
func escapedContent(s string) int {
	n := 0
	for count := 0; n < len(s); count++ {
		if count >= 2 {
			rest := s[n:]
			if strings.HasPrefix(rest, "{{") || strings.HasPrefix(rest, `\{{`) || strings.HasPrefix(rest, `\\{{`) {
				return n
			}
		}
		_, size := utf8.DecodeRuneInString(s[n:])
		n += size
	}
	if utf8.RuneCountInString(s) >= 2 {
		return n
	}
	return -1
}

// rawContent matches at least one character, as few as possible, followed
// by "{{{{".
func rawContent(s string) int {
	if s == "" {
		return -1
	}
	_, size := utf8.DecodeRuneInString(s)
	i := strings.Index(s[size:], "{{{{")
	if i < 0 {
		return -1
	}
	return size + i
}

func emit(kind symbol) func(*lexer, string) (symbol, string, bool) {
	return func(_ *lexer, text string) (symbol, string, bool) {
		return kind, text, true
	}
}

func popAndEmit(kind symbol) func(*lexer, string) (symbol, string, bool) {
	return func(l *lexer, text string) (symbol, string, bool) {
		l.popState()
		return kind, text, true
	}
}

// strip drops start bytes from the front of text and end-start bytes from
// its back.
func strip(text string, start, end int) string {
	return text[start : len(text)-end+start]
}

var (
	initial = modes(modeInitial)
	mu      = modes(modeMu)
)

var lexRules = []lexRule{
	{modes: initial, match: contentBeforeMustache, action: func(l *lexer, text string) (symbol, string, bool) {
		switch {
		case strings.HasSuffix(text, `\\`):
			text = strip(text, 0, 1)
			l.begin(modeMu)
		case strings.HasSuffix(text, `\`):
			text = strip(text, 0, 1)
			l.begin(modeEmu)
		default:
			l.begin(modeMu)
		}
		return tokContent, text, text != ""
	}},
	{modes: initial, match: anyContent, action: emit(tokContent)},

	{modes: modes(modeEmu), match: escapedContent, action: popAndEmit(tokContent)},

	{modes: modes(modeRaw), match: followedBy(rx(`\{\{\{\{`), `[^/]`), action: func(l *lexer, text string) (symbol, string, bool) {
		l.begin(modeRaw)
		return tokContent, text, true
	}},
	{modes: modes(modeRaw), match: rx(`\{\{\{\{/` + idChars + `\}\}\}\}`), action: func(l *lexer, text string) (symbol, string, bool) {
		l.popState()
		if l.mode() == modeRaw {
			return tokContent, text, true
		}
		return tokEndRawBlock, strip(text, 5, 9), true
	}},
	{modes: modes(modeRaw), match: rawContent, action: emit(tokContent)},

	{modes: modes(modeCom), match: rx(`[\s\S]*?--~?\}\}`), action: popAndEmit(tokComment)},

	{modes: mu, match: rx(`\(`), action: emit(tokOpenSexpr)},
	{modes: mu, match: rx(`\)`), action: emit(tokCloseSexpr)},
	{modes: mu, match: rx(`\{\{\{\{`), action: emit(tokOpenRawBlock)},
	{modes: mu, match: rx(`\}\}\}\}`), action: func(l *lexer, text string) (symbol, string, bool) {
		l.popState()
		l.begin(modeRaw)
		return tokCloseRawBlock, text, true
	}},
	{modes: mu, match: rx(`\{\{~?>`), action: emit(tokOpenPartial)},
	{modes: mu, match: rx(`\{\{~?#`), action: emit(tokOpenBlock)},
	{modes: mu, match: rx(`\{\{~?/`), action: emit(tokOpenEndBlock)},
	{modes: mu, match: rx(`\{\{~?\^\s*~?\}\}`), action: popAndEmit(tokInverse)},
	{modes: mu, match: rx(`\{\{~?\s*else\s*~?\}\}`), action: popAndEmit(tokInverse)},
	{modes: mu, match: rx(`\{\{~?\^`), action: emit(tokOpenInverse)},
	{modes: mu, match: rx(`\{\{~?\s*else`), action: emit(tokOpenInverseChain)},
	{modes: mu, match: rx(`\{\{~?\{`), action: emit(tokOpenUnescaped)},
	{modes: mu, match: rx(`\{\{~?&`), action: emit(tokOpen)},
	{modes: mu, match: rx(`\{\{~?!--`), unput: true, action: func(l *lexer, text string) (symbol, string, bool) {
		l.popState()
		l.begin(modeCom)
		return 0, "", false
	}},
	{modes: mu, match: rx(`\{\{~?![\s\S]*?\}\}`), action: popAndEmit(tokComment)},
	{modes: mu, match: rx(`\{\{~?`), action: emit(tokOpen)},

	{modes: mu, match: rx(`=`), action: emit(tokEquals)},
	{modes: mu, match: rx(`\.\.`), joinsPath: true, action: emit(tokID)},
	{modes: mu, match: followedBy(rx(`\.`), lookahead), action: emit(tokID)},
	{modes: mu, match: rx(`[/.]`), action: emit(tokSep)},
	{modes: mu, match: rx(`\s+`), action: func(*lexer, string) (symbol, string, bool) {
		return 0, "", false
	}},
	{modes: mu, match: rx(`\}~?\}\}`), action: popAndEmit(tokCloseUnescaped)},
	{modes: mu, match: rx(`~?\}\}`), action: popAndEmit(tokClose)},
	{modes: mu, match: rx(`"(\\"|[^"])*"`), action: func(_ *lexer, text string) (symbol, string, bool) {
		return tokString, strings.ReplaceAll(strip(text, 1, 2), `\"`, `"`), true
	}},
	{modes: mu, match: rx(`'(\\'|[^'])*'`), action: func(_ *lexer, text string) (symbol, string, bool) {
		return tokString, strings.ReplaceAll(strip(text, 1, 2), `\'`, `'`), true
	}},
	{modes: mu, match: rx(`@`), action: emit(tokData)},
	{modes: mu, match: followedBy(rx(`true`), literalLookahead), action: emit(tokBoolean)},
	{modes: mu, match: followedBy(rx(`false`), literalLookahead), action: emit(tokBoolean)},
	{modes: mu, match: followedBy(rx(`undefined`), literalLookahead), action: emit(tokUndefined)},
	{modes: mu, match: followedBy(rx(`null`), literalLookahead), action: emit(tokNull)},
	{modes: mu, match: followedBy(rx(`-?[0-9]+(?:\.[0-9]+)?`), literalLookahead), action: emit(tokNumber)},
	{modes: mu, match: rx(`as\s+\|`), action: emit(tokOpenBlockParams)},
	{modes: mu, match: rx(`\|`), action: emit(tokCloseBlockParams)},
	{modes: mu, match: followedBy(rx(idChars), lookahead), action: emit(tokID)},
	{modes: mu, match: rx(`\[[^\]]*\]`), action: emit(tokID)},
	{modes: mu, match: rx(`.`), action: emit(tokInvalid)},

	{modes: modes(modeInitial, modeMu), match: endOfInput, action: emit(tokEOF)},
}
