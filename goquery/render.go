package goquery

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Render builds the minimal product document:
//
//	<html><body>
//	<h1 id="productTitle">title</h1>
//	<span class="price">price</span>
//	</body></html>
//
// Both strings are escaped, so the result is well-formed for any input.
func Render(title, price string) string {
	h1 := element(atom.H1, html.Attribute{Key: "id", Val: "productTitle"})
	h1.AppendChild(textNode(title))

	span := element(atom.Span, html.Attribute{Key: "class", Val: "price"})
	span.AppendChild(textNode(price))

	body := element(atom.Body)
	body.AppendChild(textNode("\n"))
	body.AppendChild(h1)
	body.AppendChild(textNode("\n"))
	body.AppendChild(span)
	body.AppendChild(textNode("\n"))

	root := element(atom.Html)
	root.AppendChild(body)

	var sb strings.Builder
	// Rendering a tree built here cannot fail; the only errors come from the writer.
	_ = html.Render(&sb, root)
	return sb.String()
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     attrs,
	}
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// strippedText concatenates every descendant text node of n, each trimmed,
// with no separator. Script and style contents are skipped.
func strippedText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			sb.WriteString(strings.TrimSpace(n.Data))
			return
		case html.ElementNode:
			if n.DataAtom == atom.Script || n.DataAtom == atom.Style {
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
