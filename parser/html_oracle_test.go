package parser

import (
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/heathj/hbsyntax/parser/ast"
	nethtml "golang.org/x/net/html"
)

// netTokens renders the token stream of golang.org/x/net/html in the same
// shape as treeTokens.
func netTokens(t *testing.T, source string) []string {
	t.Helper()
	z := nethtml.NewTokenizer(strings.NewReader(source))
	var out []string
	for {
		tt := z.Next()
		switch tt {
		case nethtml.ErrorToken:
			return out
		case nethtml.TextToken:
			out = append(out, "text "+string(z.Text()))
		case nethtml.CommentToken:
			out = append(out, "comment "+string(z.Text()))
		case nethtml.StartTagToken, nethtml.SelfClosingTagToken:
			tok := z.Token()
			attrs := make([]string, 0, len(tok.Attr))
			for _, a := range tok.Attr {
				attrs = append(attrs, a.Key+"="+a.Val)
			}
			out = append(out, startToken(tok.Data, attrs))
			if tt == nethtml.SelfClosingTagToken && !isVoid(tok.Data) {
				out = append(out, "end "+tok.Data)
			}
		case nethtml.EndTagToken:
			out = append(out, "end "+z.Token().Data)
		}
	}
}

// treeTokens flattens a unified tree back into the tokens it was built
// from.
func treeTokens(body []ast.Statement) []string {
	var out []string
	for _, s := range body {
		switch n := s.(type) {
		case *ast.TextNode:
			out = append(out, "text "+n.Chars)
		case *ast.CommentStatement:
			out = append(out, "comment "+n.Value)
		case *ast.ElementNode:
			attrs := make([]string, 0, len(n.Attributes))
			for _, a := range n.Attributes {
				attrs = append(attrs, a.Name+"="+a.Value.(*ast.TextNode).Chars)
			}
			out = append(out, startToken(n.Tag, attrs))
			out = append(out, treeTokens(n.Children)...)
			if !isVoid(n.Tag) {
				out = append(out, "end "+n.Tag)
			}
		}
	}
	return out
}

func startToken(name string, attrs []string) string {
	sort.Strings(attrs)
	return strings.TrimSpace("start " + name + " " + strings.Join(attrs, " "))
}

func TestPlainHTMLMatchesNetHTML(t *testing.T) {
	inputs := []string{
		"text only",
		`<div class="a" id='b'>hello <b>world</b></div>`,
		"<ul><li>one</li><li>two</li></ul>",
		"<p>a &amp; b &lt; c</p>",
		`<img src="x.png" alt="pic"><br><input disabled>`,
		"<!-- note --><span data-x=1>t</span>",
		"<div>\n  <p>line</p>\n</div>\n",
		"<table><tr><td>1</td></tr></table>",
		`<a href="/x?a=1&amp;b=2">link</a>`,
	}

	for _, in := range inputs {
		in := in
		t.Run(in, func(t *testing.T) {
			t.Parallel()
			program := preprocess(t, in, Options{})
			if diff := cmp.Diff(netTokens(t, in), treeTokens(program.Body)); diff != "" {
				t.Errorf("token mismatch (-net +tree):\n%s", diff)
			}
		})
	}
}
