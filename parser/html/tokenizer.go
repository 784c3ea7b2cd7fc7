package html

import (
	"io"
	"strings"
	"unicode"

	"github.com/sirupsen/logrus"
)

// Tokenizer is an event-driven HTML tokenizer. It recognizes text, comments,
// start and end tags with their attributes, and reports them to a Delegate.
// Input may be fed in several parts; the state survives between parts so
// that a caller can interleave its own events, and even force the state,
// between them.
type Tokenizer struct {
	delegate     Delegate
	entityParser *EntityParser
	log          logrus.FieldLogger

	state  State
	input  []rune
	index  int
	line   int
	column int

	tagLine, tagColumn int
}

// NewTokenizer creates a tokenizer reporting to delegate. A nil
// entityParser selects the built-in named reference table.
func NewTokenizer(delegate Delegate, entityParser *EntityParser) *Tokenizer {
	if entityParser == nil {
		entityParser = NewEntityParser(nil)
	}
	t := &Tokenizer{
		delegate:     delegate,
		entityParser: entityParser,
		log:          discardLogger(),
	}
	t.Reset()
	return t
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// SetLogger attaches a logger. Every handled character is traced at
// logrus.TraceLevel.
func (t *Tokenizer) SetLogger(l logrus.FieldLogger) {
	if l == nil {
		l = discardLogger()
	}
	t.log = l
}

// Logger returns the attached logger, which discards its output when none
// was set.
func (t *Tokenizer) Logger() logrus.FieldLogger {
	return t.log
}

// Reset returns the tokenizer to its initial state and resets the delegate.
func (t *Tokenizer) Reset() {
	t.state = BeforeDataState
	t.input = t.input[:0]
	t.index = 0
	t.line = 1
	t.column = 0
	t.tagLine = -1
	t.tagColumn = -1
	t.delegate.Reset()
}

// State returns the current state.
func (t *Tokenizer) State() State {
	return t.state
}

// SetState forces the current state.
func (t *Tokenizer) SetState(s State) {
	t.state = s
}

// Position returns the 1-based line and 0-based column of the cursor.
func (t *Tokenizer) Position() (line, column int) {
	return t.line, t.column
}

// SetPosition moves the cursor's line and column without touching the input.
func (t *Tokenizer) SetPosition(line, column int) {
	t.line = line
	t.column = column
}

// TagStart returns the position of the '<' that opened the last tag.
func (t *Tokenizer) TagStart() (line, column int) {
	return t.tagLine, t.tagColumn
}

// Tokenize tokenizes a complete document.
func (t *Tokenizer) Tokenize(input string) error {
	t.Reset()
	if err := t.TokenizePart(input); err != nil {
		return err
	}
	return t.TokenizeEOF()
}

// TokenizePart feeds more input. Carriage returns are normalised to line
// feeds before the input is consumed.
func (t *Tokenizer) TokenizePart(input string) error {
	t.input = append(t.input, []rune(normalizeNewlines(input))...)
	for t.index < len(t.input) {
		if err := t.processRune(t.peek()); err != nil {
			return err
		}
	}
	return nil
}

// TokenizeEOF signals the end of input.
func (t *Tokenizer) TokenizeEOF() error {
	t.FlushData()
	return nil
}

// FlushData finishes a pending text run so that the delegate sees it before
// any event the caller is about to emit.
func (t *Tokenizer) FlushData() {
	if t.state == DataState {
		t.delegate.FinishData()
		t.state = BeforeDataState
	}
}

func normalizeNewlines(s string) string {
	if !strings.ContainsRune(s, '\r') {
		return s
	}
	return strings.ReplaceAll(strings.ReplaceAll(s, "\r\n", "\n"), "\r", "\n")
}

func (t *Tokenizer) peek() rune {
	return t.input[t.index]
}

func (t *Tokenizer) consume() rune {
	r := t.peek()
	t.index++
	if r == '\n' {
		t.line++
		t.column = 0
	} else {
		t.column++
	}
	return r
}

func (t *Tokenizer) markTagStart() {
	t.tagLine = t.line
	t.tagColumn = t.column
	t.delegate.TagOpen()
}

// consumeCharRef decodes the reference following a consumed '&'. The cursor
// only moves when the reference decodes.
func (t *Tokenizer) consumeCharRef() (string, bool) {
	end := -1
	for i := t.index; i < len(t.input); i++ {
		if t.input[i] == ';' {
			end = i
			break
		}
	}
	if end == -1 {
		return "", false
	}
	chars, ok := t.entityParser.Parse(string(t.input[t.index:end]))
	if !ok {
		return "", false
	}
	for t.index <= end {
		t.consume()
	}
	return chars, true
}

func (t *Tokenizer) charRefOrAmpersand() string {
	if chars, ok := t.consumeCharRef(); ok {
		return chars
	}
	return "&"
}

// a stateHandler is handed the rune under the cursor without consuming it
// and returns the next state to transition to.
type stateHandler func(r rune) (State, error)

func (t *Tokenizer) stateToParser(state State) stateHandler {
	switch state {
	case BeforeDataState:
		return t.beforeDataStateParser
	case DataState:
		return t.dataStateParser
	case TagOpenState:
		return t.tagOpenStateParser
	case MarkupDeclarationState:
		return t.markupDeclarationStateParser
	case CommentStartState:
		return t.commentStartStateParser
	case CommentStartDashState:
		return t.commentStartDashStateParser
	case CommentState:
		return t.commentStateParser
	case CommentEndDashState:
		return t.commentEndDashStateParser
	case CommentEndState:
		return t.commentEndStateParser
	case TagNameState:
		return t.tagNameStateParser
	case EndTagOpenState:
		return t.endTagOpenStateParser
	case BeforeAttributeNameState:
		return t.beforeAttributeNameStateParser
	case AttributeNameState:
		return t.attributeNameStateParser
	case AfterAttributeNameState:
		return t.afterAttributeNameStateParser
	case BeforeAttributeValueState:
		return t.beforeAttributeValueStateParser
	case AttributeValueDoubleQuotedState:
		return t.attributeValueDoubleQuotedStateParser
	case AttributeValueSingleQuotedState:
		return t.attributeValueSingleQuotedStateParser
	case AttributeValueUnquotedState:
		return t.attributeValueUnquotedStateParser
	case AfterAttributeValueQuotedState:
		return t.afterAttributeValueQuotedStateParser
	case SelfClosingStartTagState:
		return t.selfClosingStartTagStateParser
	}

	return nil
}

func (t *Tokenizer) processRune(r rune) error {
	handler := t.stateToParser(t.state)
	if handler == nil {
		return errUnknownState(t.state)
	}
	next, err := handler(r)
	if err != nil {
		return err
	}
	t.state = next
	if t.traceEnabled() {
		t.log.WithFields(logrus.Fields{"rune": string(r), "state": t.state}).Trace("[TOKEN]")
	}
	return nil
}

func (t *Tokenizer) traceEnabled() bool {
	l, ok := t.log.(interface{ IsLevelEnabled(logrus.Level) bool })
	return ok && l.IsLevelEnabled(logrus.TraceLevel)
}

func isSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\f', ' ':
		return true
	}
	return false
}

func isAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func (t *Tokenizer) beforeDataStateParser(r rune) (State, error) {
	if r == '<' {
		t.markTagStart()
		t.consume()
		return TagOpenState, nil
	}
	t.delegate.BeginData()
	return DataState, nil
}

func (t *Tokenizer) dataStateParser(r rune) (State, error) {
	switch r {
	case '<':
		t.delegate.FinishData()
		t.markTagStart()
		t.consume()
		return TagOpenState, nil
	case '&':
		t.consume()
		t.delegate.AppendToData(t.charRefOrAmpersand())
		return DataState, nil
	default:
		t.consume()
		t.delegate.AppendToData(string(r))
		return DataState, nil
	}
}

func (t *Tokenizer) tagOpenStateParser(r rune) (State, error) {
	t.consume()
	switch {
	case r == '!':
		return MarkupDeclarationState, nil
	case r == '/':
		return EndTagOpenState, nil
	case isAlpha(r):
		t.delegate.BeginStartTag()
		t.delegate.AppendToTagName(string(unicode.ToLower(r)))
		return TagNameState, nil
	default:
		return TagOpenState, nil
	}
}

func (t *Tokenizer) markupDeclarationStateParser(r rune) (State, error) {
	t.consume()
	if r == '-' && t.index < len(t.input) && t.peek() == '-' {
		t.consume()
		t.delegate.BeginComment()
		return CommentStartState, nil
	}
	return MarkupDeclarationState, nil
}

func (t *Tokenizer) commentStartStateParser(r rune) (State, error) {
	t.consume()
	switch r {
	case '-':
		return CommentStartDashState, nil
	case '>':
		t.delegate.FinishComment()
		return BeforeDataState, nil
	default:
		t.delegate.AppendToCommentData(string(r))
		return CommentState, nil
	}
}

func (t *Tokenizer) commentStartDashStateParser(r rune) (State, error) {
	t.consume()
	switch r {
	case '-':
		return CommentEndState, nil
	case '>':
		t.delegate.FinishComment()
		return BeforeDataState, nil
	default:
		t.delegate.AppendToCommentData("-" + string(r))
		return CommentState, nil
	}
}

func (t *Tokenizer) commentStateParser(r rune) (State, error) {
	t.consume()
	if r == '-' {
		return CommentEndDashState, nil
	}
	t.delegate.AppendToCommentData(string(r))
	return CommentState, nil
}

func (t *Tokenizer) commentEndDashStateParser(r rune) (State, error) {
	t.consume()
	if r == '-' {
		return CommentEndState, nil
	}
	t.delegate.AppendToCommentData("-" + string(r))
	return CommentState, nil
}

func (t *Tokenizer) commentEndStateParser(r rune) (State, error) {
	t.consume()
	if r == '>' {
		t.delegate.FinishComment()
		return BeforeDataState, nil
	}
	t.delegate.AppendToCommentData("--" + string(r))
	return CommentState, nil
}

func (t *Tokenizer) tagNameStateParser(r rune) (State, error) {
	t.consume()
	switch {
	case isSpace(r):
		return BeforeAttributeNameState, nil
	case r == '/':
		return SelfClosingStartTagState, nil
	case r == '>':
		if err := t.delegate.FinishTag(); err != nil {
			return TagNameState, err
		}
		return BeforeDataState, nil
	default:
		t.delegate.AppendToTagName(string(r))
		return TagNameState, nil
	}
}

func (t *Tokenizer) endTagOpenStateParser(r rune) (State, error) {
	t.consume()
	if isAlpha(r) {
		t.delegate.BeginEndTag()
		t.delegate.AppendToTagName(string(unicode.ToLower(r)))
		return TagNameState, nil
	}
	return EndTagOpenState, nil
}

func (t *Tokenizer) beforeAttributeNameStateParser(r rune) (State, error) {
	switch {
	case isSpace(r):
		t.consume()
		return BeforeAttributeNameState, nil
	case r == '/':
		t.consume()
		return SelfClosingStartTagState, nil
	case r == '>':
		t.consume()
		if err := t.delegate.FinishTag(); err != nil {
			return BeforeAttributeNameState, err
		}
		return BeforeDataState, nil
	default:
		t.delegate.BeginAttribute()
		return AttributeNameState, nil
	}
}

// finishEmptyAttributeValue closes an attribute that has a name only.
func (t *Tokenizer) finishEmptyAttributeValue() error {
	t.delegate.BeginAttributeValue(false)
	return t.delegate.FinishAttributeValue()
}

func (t *Tokenizer) attributeNameStateParser(r rune) (State, error) {
	switch {
	case isSpace(r):
		t.consume()
		return AfterAttributeNameState, nil
	case r == '/':
		if err := t.finishEmptyAttributeValue(); err != nil {
			return AttributeNameState, err
		}
		t.consume()
		return SelfClosingStartTagState, nil
	case r == '=':
		t.consume()
		return BeforeAttributeValueState, nil
	case r == '>':
		if err := t.finishEmptyAttributeValue(); err != nil {
			return AttributeNameState, err
		}
		t.consume()
		if err := t.delegate.FinishTag(); err != nil {
			return AttributeNameState, err
		}
		return BeforeDataState, nil
	default:
		t.consume()
		t.delegate.AppendToAttributeName(string(r))
		return AttributeNameState, nil
	}
}

func (t *Tokenizer) afterAttributeNameStateParser(r rune) (State, error) {
	switch {
	case isSpace(r):
		t.consume()
		return AfterAttributeNameState, nil
	case r == '/':
		if err := t.finishEmptyAttributeValue(); err != nil {
			return AfterAttributeNameState, err
		}
		t.consume()
		return SelfClosingStartTagState, nil
	case r == '=':
		t.consume()
		return BeforeAttributeValueState, nil
	case r == '>':
		if err := t.finishEmptyAttributeValue(); err != nil {
			return AfterAttributeNameState, err
		}
		t.consume()
		if err := t.delegate.FinishTag(); err != nil {
			return AfterAttributeNameState, err
		}
		return BeforeDataState, nil
	default:
		if err := t.finishEmptyAttributeValue(); err != nil {
			return AfterAttributeNameState, err
		}
		t.delegate.BeginAttribute()
		t.consume()
		t.delegate.AppendToAttributeName(string(r))
		return AttributeNameState, nil
	}
}

func (t *Tokenizer) beforeAttributeValueStateParser(r rune) (State, error) {
	switch {
	case isSpace(r):
		t.consume()
		return BeforeAttributeValueState, nil
	case r == '"':
		t.delegate.BeginAttributeValue(true)
		t.consume()
		return AttributeValueDoubleQuotedState, nil
	case r == '\'':
		t.delegate.BeginAttributeValue(true)
		t.consume()
		return AttributeValueSingleQuotedState, nil
	case r == '>':
		if err := t.finishEmptyAttributeValue(); err != nil {
			return BeforeAttributeValueState, err
		}
		t.consume()
		if err := t.delegate.FinishTag(); err != nil {
			return BeforeAttributeValueState, err
		}
		return BeforeDataState, nil
	default:
		t.delegate.BeginAttributeValue(false)
		t.consume()
		t.delegate.AppendToAttributeValue(string(r))
		return AttributeValueUnquotedState, nil
	}
}

func (t *Tokenizer) quotedAttributeValue(r, quote rune, current State) (State, error) {
	t.consume()
	switch r {
	case quote:
		if err := t.delegate.FinishAttributeValue(); err != nil {
			return current, err
		}
		return AfterAttributeValueQuotedState, nil
	case '&':
		t.delegate.AppendToAttributeValue(t.charRefOrAmpersand())
		return current, nil
	default:
		t.delegate.AppendToAttributeValue(string(r))
		return current, nil
	}
}

func (t *Tokenizer) attributeValueDoubleQuotedStateParser(r rune) (State, error) {
	return t.quotedAttributeValue(r, '"', AttributeValueDoubleQuotedState)
}

func (t *Tokenizer) attributeValueSingleQuotedStateParser(r rune) (State, error) {
	return t.quotedAttributeValue(r, '\'', AttributeValueSingleQuotedState)
}

func (t *Tokenizer) attributeValueUnquotedStateParser(r rune) (State, error) {
	switch {
	case isSpace(r):
		if err := t.delegate.FinishAttributeValue(); err != nil {
			return AttributeValueUnquotedState, err
		}
		t.consume()
		return BeforeAttributeNameState, nil
	case r == '&':
		t.consume()
		t.delegate.AppendToAttributeValue(t.charRefOrAmpersand())
		return AttributeValueUnquotedState, nil
	case r == '>':
		if err := t.delegate.FinishAttributeValue(); err != nil {
			return AttributeValueUnquotedState, err
		}
		t.consume()
		if err := t.delegate.FinishTag(); err != nil {
			return AttributeValueUnquotedState, err
		}
		return BeforeDataState, nil
	default:
		t.consume()
		t.delegate.AppendToAttributeValue(string(r))
		return AttributeValueUnquotedState, nil
	}
}

func (t *Tokenizer) afterAttributeValueQuotedStateParser(r rune) (State, error) {
	switch {
	case isSpace(r):
		t.consume()
		return BeforeAttributeNameState, nil
	case r == '/':
		t.consume()
		return SelfClosingStartTagState, nil
	case r == '>':
		t.consume()
		if err := t.delegate.FinishTag(); err != nil {
			return AfterAttributeValueQuotedState, err
		}
		return BeforeDataState, nil
	default:
		return BeforeAttributeNameState, nil
	}
}

func (t *Tokenizer) selfClosingStartTagStateParser(r rune) (State, error) {
	if r == '>' {
		t.consume()
		t.delegate.MarkTagAsSelfClosing()
		if err := t.delegate.FinishTag(); err != nil {
			return SelfClosingStartTagState, err
		}
		return BeforeDataState, nil
	}
	return BeforeAttributeNameState, nil
}
