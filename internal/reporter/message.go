package reporter

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ExtractMessage pulls the human message out of an error body. Backend errors
// are HTML pages whose first <p> holds the message; its inner text is returned
// untrimmed. Bodies without a <p> fall back to the document's trimmed text
// content, and bodies that are not markup at all to the trimmed raw text.
func ExtractMessage(rawBody string) string {
	doc, err := html.Parse(strings.NewReader(rawBody))
	if err != nil {
		return strings.TrimSpace(rawBody)
	}
	if p := findFirst(doc, atom.P); p != nil {
		return textContent(p)
	}
	if text := documentText(doc); text != "" {
		return text
	}
	return strings.TrimSpace(rawBody)
}

func findFirst(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, a); found != nil {
			return found
		}
	}
	return nil
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			return
		}
		if n.Type == html.ElementNode && (n.DataAtom == atom.Script || n.DataAtom == atom.Style) {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// documentText joins every text node of the document with single spaces.
func documentText(doc *html.Node) string {
	parts := make([]string, 0)
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			parts = append(parts, strings.Fields(n.Data)...)
			return
		}
		if n.Type == html.ElementNode && (n.DataAtom == atom.Script || n.DataAtom == atom.Style) {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return strings.Join(parts, " ")
}
