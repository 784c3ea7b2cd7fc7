package html

// EntityParser decodes the body of a character reference, the text between
// '&' and ';'.
type EntityParser struct {
	named map[string][]rune
}

// NewEntityParser returns a parser over the given named reference table.
// A nil table selects the built-in HTML5 table.
func NewEntityParser(named map[string][]rune) *EntityParser {
	if named == nil {
		named = namedCharRefs
	}
	return &EntityParser{named: named}
}

// Parse decodes entity, which is "#x1F", "#31" or a name such as "amp".
// Numeric references yield a single 16-bit code unit: values past 0xFFFF
// wrap, and lone surrogates come out as U+FFFD once stored in a string.
func (e *EntityParser) Parse(entity string) (string, bool) {
	if entity == "" {
		return "", false
	}
	if len(entity) > 2 && entity[0] == '#' && (entity[1] == 'x' || entity[1] == 'X') {
		if n, ok := codeUnit(entity[2:], 16); ok {
			return string(rune(n)), true
		}
		return "", false
	}
	if len(entity) > 1 && entity[0] == '#' {
		if n, ok := codeUnit(entity[1:], 10); ok {
			return string(rune(n)), true
		}
		return "", false
	}
	for i := 0; i < len(entity); i++ {
		if !isASCIIAlphanumeric(entity[i]) {
			return "", false
		}
	}
	chars, ok := e.named[entity]
	if !ok {
		return "", false
	}
	return string(chars), true
}

// codeUnit parses digits in the given base, keeping only the low 16 bits
// of the value.
func codeUnit(digits string, base uint16) (uint16, bool) {
	var n uint16
	for i := 0; i < len(digits); i++ {
		d, ok := digitValue(digits[i])
		if !ok || d >= base {
			return 0, false
		}
		n = n*base + d
	}
	return n, true
}

func digitValue(c byte) (uint16, bool) {
	switch {
	case c >= '0' && c <= '9':
		return uint16(c - '0'), true
	case c >= 'a' && c <= 'f':
		return uint16(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return uint16(c-'A') + 10, true
	}
	return 0, false
}

func isASCIIAlphanumeric(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
