package html

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xhtml "golang.org/x/net/html"
)

type stateMachineTestCase struct {
	in                string // the input; only its first rune is handled
	startingState     State  // the state to start from
	nextExpectedState State  // the next state
	consumed          int    // how many runes the handler should consume
}

// TestStateParsers checks that each state handler returns the next expected
// state and moves the cursor by the expected amount.
func TestStateParsers(t *testing.T) {
	stateParserTests := []stateMachineTestCase{
		{"<", BeforeDataState, TagOpenState, 1},
		{"a", BeforeDataState, DataState, 0},

		{"<", DataState, TagOpenState, 1},
		{"a", DataState, DataState, 1},
		{"&amp;", DataState, DataState, 5},
		{"&nope;", DataState, DataState, 1},
		{"&", DataState, DataState, 1},

		{"!", TagOpenState, MarkupDeclarationState, 1},
		{"/", TagOpenState, EndTagOpenState, 1},
		{"a", TagOpenState, TagNameState, 1},
		{"Z", TagOpenState, TagNameState, 1},
		{"1", TagOpenState, TagOpenState, 1},

		{"--", MarkupDeclarationState, CommentStartState, 2},
		{"-x", MarkupDeclarationState, MarkupDeclarationState, 1},
		{"D", MarkupDeclarationState, MarkupDeclarationState, 1},

		{"-", CommentStartState, CommentStartDashState, 1},
		{">", CommentStartState, BeforeDataState, 1},
		{"a", CommentStartState, CommentState, 1},
		{"-", CommentStartDashState, CommentEndState, 1},
		{">", CommentStartDashState, BeforeDataState, 1},
		{"a", CommentStartDashState, CommentState, 1},
		{"-", CommentState, CommentEndDashState, 1},
		{"a", CommentState, CommentState, 1},
		{"-", CommentEndDashState, CommentEndState, 1},
		{"a", CommentEndDashState, CommentState, 1},
		{">", CommentEndState, BeforeDataState, 1},
		{"a", CommentEndState, CommentState, 1},

		{" ", TagNameState, BeforeAttributeNameState, 1},
		{"\t", TagNameState, BeforeAttributeNameState, 1},
		{"\n", TagNameState, BeforeAttributeNameState, 1},
		{"/", TagNameState, SelfClosingStartTagState, 1},
		{">", TagNameState, BeforeDataState, 1},
		{"a", TagNameState, TagNameState, 1},

		{"a", EndTagOpenState, TagNameState, 1},
		{"1", EndTagOpenState, EndTagOpenState, 1},

		{" ", BeforeAttributeNameState, BeforeAttributeNameState, 1},
		{"/", BeforeAttributeNameState, SelfClosingStartTagState, 1},
		{">", BeforeAttributeNameState, BeforeDataState, 1},
		{"a", BeforeAttributeNameState, AttributeNameState, 0},

		{" ", AttributeNameState, AfterAttributeNameState, 1},
		{"/", AttributeNameState, SelfClosingStartTagState, 1},
		{"=", AttributeNameState, BeforeAttributeValueState, 1},
		{">", AttributeNameState, BeforeDataState, 1},
		{"a", AttributeNameState, AttributeNameState, 1},

		{" ", AfterAttributeNameState, AfterAttributeNameState, 1},
		{"/", AfterAttributeNameState, SelfClosingStartTagState, 1},
		{"=", AfterAttributeNameState, BeforeAttributeValueState, 1},
		{">", AfterAttributeNameState, BeforeDataState, 1},
		{"a", AfterAttributeNameState, AttributeNameState, 1},

		{" ", BeforeAttributeValueState, BeforeAttributeValueState, 1},
		{"\"", BeforeAttributeValueState, AttributeValueDoubleQuotedState, 1},
		{"'", BeforeAttributeValueState, AttributeValueSingleQuotedState, 1},
		{">", BeforeAttributeValueState, BeforeDataState, 1},
		{"a", BeforeAttributeValueState, AttributeValueUnquotedState, 1},

		{"\"", AttributeValueDoubleQuotedState, AfterAttributeValueQuotedState, 1},
		{"'", AttributeValueDoubleQuotedState, AttributeValueDoubleQuotedState, 1},
		{"&lt;", AttributeValueDoubleQuotedState, AttributeValueDoubleQuotedState, 4},
		{"'", AttributeValueSingleQuotedState, AfterAttributeValueQuotedState, 1},
		{"\"", AttributeValueSingleQuotedState, AttributeValueSingleQuotedState, 1},

		{" ", AttributeValueUnquotedState, BeforeAttributeNameState, 1},
		{">", AttributeValueUnquotedState, BeforeDataState, 1},
		{"&gt;", AttributeValueUnquotedState, AttributeValueUnquotedState, 4},
		{"a", AttributeValueUnquotedState, AttributeValueUnquotedState, 1},

		{" ", AfterAttributeValueQuotedState, BeforeAttributeNameState, 1},
		{"/", AfterAttributeValueQuotedState, SelfClosingStartTagState, 1},
		{">", AfterAttributeValueQuotedState, BeforeDataState, 1},
		{"a", AfterAttributeValueQuotedState, BeforeAttributeNameState, 0},

		{">", SelfClosingStartTagState, BeforeDataState, 1},
		{"a", SelfClosingStartTagState, BeforeAttributeNameState, 0},
	}

	for _, tt := range stateParserTests {
		tt := tt
		t.Run(tt.startingState.String()+"/"+tt.in, func(t *testing.T) {
			t.Parallel()
			_, tok := NewRecorder()
			tok.input = []rune(tt.in)
			tok.state = tt.startingState

			next, err := tok.stateToParser(tt.startingState)(tok.peek())
			require.NoError(t, err)
			assert.Equal(t, tt.nextExpectedState, next)
			assert.Equal(t, tt.consumed, tok.index)
		})
	}
}

func TestStateNames(t *testing.T) {
	assert.Equal(t, "beforeData", BeforeDataState.String())
	assert.Equal(t, "attributeValueDoubleQuoted", AttributeValueDoubleQuotedState.String())
	assert.Equal(t, "selfClosingStartTag", SelfClosingStartTagState.String())
	assert.Equal(t, "State(99)", State(99).String())
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		in       string
		expected []string
	}{
		{"hello", []string{`Chars 1:0 "hello"`}},
		{"<div>", []string{`StartTag 1:0 div`}},
		{"<DIV>", []string{`StartTag 1:0 dIV`}},
		{"<dIV>", []string{`StartTag 1:0 dIV`}},
		{"</div>", []string{`EndTag 1:0 div`}},
		{"<br/>", []string{`StartTag 1:0 br /`}},
		{"<input disabled>", []string{`StartTag 1:0 input disabled=""`}},
		{"<input disabled/>", []string{`StartTag 1:0 input disabled="" /`}},
		{"<input disabled   value=a>", []string{`StartTag 1:0 input disabled="" value="a"`}},
		{"<input a b>", []string{`StartTag 1:0 input a="" b=""`}},
		{`<div class="a b" id='c' title=d>`, []string{`StartTag 1:0 div class="a b" id="c" title="d"`}},
		{`<div title="a&amp;b">`, []string{`StartTag 1:0 div title="a&b"`}},
		{`<div title=>`, []string{`StartTag 1:0 div title=""`}},
		{"<!-- hi -->", []string{`Comment 1:0 " hi "`}},
		{"<!---->", []string{`Comment 1:0 ""`}},
		{"<!-- a-b -- c -->", []string{`Comment 1:0 " a-b -- c "`}},
		{"a &lt; b", []string{`Chars 1:0 "a < b"`}},
		{"a & b", []string{`Chars 1:0 "a & b"`}},
		{"&bogus;", []string{`Chars 1:0 "&bogus;"`}},
		{"&#65;&#x42;&#X43;", []string{`Chars 1:0 "ABC"`}},
		{"&NotEqualTilde;", []string{"Chars 1:0 \"\u2242\u0338\""}},
		{"<p>a\nb</p>\n", []string{
			`StartTag 1:0 p`,
			`Chars 1:3 "a\nb"`,
			`EndTag 2:1 p`,
			`Chars 2:5 "\n"`,
		}},
		{"a\r\nb\rc", []string{`Chars 1:0 "a\nb\nc"`}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			r, tok := NewRecorder()
			require.NoError(t, tok.Tokenize(tt.in))
			if diff := cmp.Diff(tt.expected, tokenStrings(r.Tokens)); diff != "" {
				t.Errorf("tokens mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTokenizePartKeepsState(t *testing.T) {
	r, tok := NewRecorder()
	require.NoError(t, tok.TokenizePart("<div cl"))
	assert.Equal(t, AttributeNameState, tok.State())
	require.NoError(t, tok.TokenizePart(`ass="x">text`))
	assert.Equal(t, DataState, tok.State())
	tok.FlushData()
	assert.Equal(t, BeforeDataState, tok.State())

	assert.Equal(t, []string{`StartTag 1:0 div class="x"`, `Chars 1:15 "text"`}, tokenStrings(r.Tokens))
}

func TestLogger(t *testing.T) {
	t.Parallel()

	_, tok := NewRecorder()
	assert.NotNil(t, tok.Logger())

	log := logrus.New()
	tok.SetLogger(log)
	assert.Same(t, log, tok.Logger())

	tok.SetLogger(nil)
	assert.NotNil(t, tok.Logger())
	assert.NotSame(t, log, tok.Logger())
}

func TestSetPosition(t *testing.T) {
	r, tok := NewRecorder()
	tok.SetPosition(7, 3)
	require.NoError(t, tok.TokenizePart("<b>"))
	line, column := tok.Position()
	assert.Equal(t, 7, line)
	assert.Equal(t, 6, column)
	tagLine, tagColumn := tok.TagStart()
	assert.Equal(t, 7, tagLine)
	assert.Equal(t, 3, tagColumn)
	require.Len(t, r.Tokens, 1)
}

type failingDelegate struct {
	Recorder
}

func (failingDelegate) FinishTag() error {
	return assert.AnError
}

func TestDelegateErrorAbortsTokenization(t *testing.T) {
	d := &failingDelegate{}
	tok := NewTokenizer(d, nil)
	err := tok.Tokenize("<div>after")
	require.ErrorIs(t, err, assert.AnError)
	assert.Empty(t, d.Tokens)
}

// TestTokenizeMatchesNetHTML cross-checks plain lowercase HTML against the
// golang.org/x/net/html tokenizer.
func TestTokenizeMatchesNetHTML(t *testing.T) {
	inputs := []string{
		`<div class="a">hello <b>world</b></div>`,
		`<ul><li id=one>1</li><li id='two'>2</li></ul>`,
		`<p>fish &amp; chips &lt;3</p>`,
		`<img src="a.png" alt=""><br/>tail`,
		`<!-- note --><span title="x &quot;y&quot;">z</span>`,
		"<pre>\nline one\nline two\n</pre>",
		`<input type=checkbox checked>`,
	}

	for _, in := range inputs {
		in := in
		t.Run(in, func(t *testing.T) {
			t.Parallel()
			r, tok := NewRecorder()
			require.NoError(t, tok.Tokenize(in))
			if diff := cmp.Diff(netHTMLTokens(t, in), normalizedTokens(r.Tokens)); diff != "" {
				t.Errorf("tokens differ from x/net/html (-want +got):\n%s", diff)
			}
		})
	}
}

func tokenStrings(tokens []Token) []string {
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, tok.String())
	}
	return out
}

func normalizedTokens(tokens []Token) []string {
	var out []string
	for _, tok := range tokens {
		switch tok.TokenType {
		case StartTagToken:
			s := "<" + tok.TagName
			for _, a := range tok.Attributes {
				s += " " + a.Name + "=" + a.Value
			}
			out = append(out, s+">")
		case EndTagToken:
			out = append(out, "</"+tok.TagName+">")
		case CharacterToken:
			out = append(out, "text:"+tok.Data)
		case CommentToken:
			out = append(out, "comment:"+tok.Data)
		}
	}
	return out
}

func netHTMLTokens(t *testing.T, in string) []string {
	t.Helper()
	var out []string
	z := xhtml.NewTokenizer(strings.NewReader(in))
	for {
		tt := z.Next()
		if tt == xhtml.ErrorToken {
			return out
		}
		tok := z.Token()
		switch tt {
		case xhtml.StartTagToken, xhtml.SelfClosingTagToken:
			s := "<" + tok.Data
			for _, a := range tok.Attr {
				s += " " + a.Key + "=" + a.Val
			}
			out = append(out, s+">")
		case xhtml.EndTagToken:
			out = append(out, "</"+tok.Data+">")
		case xhtml.TextToken:
			out = append(out, "text:"+tok.Data)
		case xhtml.CommentToken:
			out = append(out, "comment:"+tok.Data)
		}
	}
}
