package html

import (
	"strconv"
	"strings"
)

// TokenType is the kind of a recorded Token.
type TokenType uint

const (
	CharacterToken TokenType = iota
	StartTagToken
	EndTagToken
	CommentToken
)

func (t TokenType) String() string {
	switch t {
	case CharacterToken:
		return "Chars"
	case StartTagToken:
		return "StartTag"
	case EndTagToken:
		return "EndTag"
	case CommentToken:
		return "Comment"
	}
	return "TokenType(" + strconv.FormatUint(uint64(t), 10) + ")"
}

// Attribute is a recorded attribute. Quoted reports whether the value was
// written between quotes.
type Attribute struct {
	Name   string
	Value  string
	Quoted bool
}

// Token is a complete token assembled by a Recorder.
type Token struct {
	TokenType   TokenType
	TagName     string
	Attributes  []Attribute
	SelfClosing bool
	Data        string
	Line        int
	Column      int
}

// String renders the token on one line, e.g. `StartTag div class="a"`.
func (t Token) String() string {
	var sb strings.Builder
	sb.WriteString(t.TokenType.String())
	sb.WriteString(" ")
	sb.WriteString(strconv.Itoa(t.Line) + ":" + strconv.Itoa(t.Column))
	switch t.TokenType {
	case StartTagToken, EndTagToken:
		sb.WriteString(" " + t.TagName)
		for _, a := range t.Attributes {
			sb.WriteString(" " + a.Name + "=" + strconv.Quote(a.Value))
		}
		if t.SelfClosing {
			sb.WriteString(" /")
		}
	default:
		sb.WriteString(" " + strconv.Quote(t.Data))
	}
	return sb.String()
}

// Recorder is a Delegate that collects the tokenizer events into Tokens.
// It is used to drive a Tokenizer on plain HTML.
type Recorder struct {
	Tokens []Token

	tokenizer *Tokenizer
	current   Token
	name      strings.Builder
	data      strings.Builder
	attr      Attribute
	attrValue strings.Builder
}

// NewRecorder returns a recorder together with the tokenizer that feeds it.
func NewRecorder() (*Recorder, *Tokenizer) {
	r := &Recorder{}
	r.tokenizer = NewTokenizer(r, nil)
	return r, r.tokenizer
}

func (r *Recorder) Reset() {
	r.Tokens = nil
	r.current = Token{}
}

func (r *Recorder) TagOpen() {}

func (r *Recorder) start(tt TokenType) {
	r.current = Token{TokenType: tt}
	if r.tokenizer != nil {
		r.current.Line, r.current.Column = r.tokenizer.Position()
	}
	r.name.Reset()
	r.data.Reset()
}

func (r *Recorder) BeginData() {
	r.start(CharacterToken)
}

func (r *Recorder) AppendToData(s string) {
	r.data.WriteString(s)
}

func (r *Recorder) FinishData() {
	r.current.Data = r.data.String()
	r.Tokens = append(r.Tokens, r.current)
}

func (r *Recorder) BeginComment() {
	r.start(CommentToken)
	if r.tokenizer != nil {
		r.current.Line, r.current.Column = r.tokenizer.TagStart()
	}
}

func (r *Recorder) AppendToCommentData(s string) {
	r.data.WriteString(s)
}

func (r *Recorder) FinishComment() {
	r.current.Data = r.data.String()
	r.Tokens = append(r.Tokens, r.current)
}

func (r *Recorder) beginTag(tt TokenType) {
	r.start(tt)
	if r.tokenizer != nil {
		r.current.Line, r.current.Column = r.tokenizer.TagStart()
	}
}

func (r *Recorder) BeginStartTag() {
	r.beginTag(StartTagToken)
}

func (r *Recorder) BeginEndTag() {
	r.beginTag(EndTagToken)
}

func (r *Recorder) AppendToTagName(s string) {
	r.name.WriteString(s)
}

func (r *Recorder) MarkTagAsSelfClosing() {
	r.current.SelfClosing = true
}

func (r *Recorder) FinishTag() error {
	r.current.TagName = r.name.String()
	r.Tokens = append(r.Tokens, r.current)
	return nil
}

func (r *Recorder) BeginAttribute() {
	r.attr = Attribute{}
	r.attrValue.Reset()
}

func (r *Recorder) AppendToAttributeName(s string) {
	r.attr.Name += s
}

func (r *Recorder) BeginAttributeValue(quoted bool) {
	r.attr.Quoted = quoted
}

func (r *Recorder) AppendToAttributeValue(s string) {
	r.attrValue.WriteString(s)
}

func (r *Recorder) FinishAttributeValue() error {
	r.attr.Value = r.attrValue.String()
	r.current.Attributes = append(r.current.Attributes, r.attr)
	return nil
}
