// Package htmltext extracts plain text from HTML knowledge notes so they can
// be fed to the expert system's teach parser.
package htmltext

import (
	"strings"

	"golang.org/x/net/html"
)

// Strip extracts the text content of an HTML fragment. Block-level elements
// become line breaks so each element reads as its own line.
func Strip(s string) string {
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		// Fallback to string if parsing fails
		return s
	}

	var buf strings.Builder
	var extractText func(*html.Node)
	extractText = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extractText(c)
		}
		if n.Type == html.ElementNode && isBlock(n.Data) {
			buf.WriteString("\n")
		}
	}
	extractText(doc)

	return strings.TrimSpace(buf.String())
}

// Sentences splits stripped text into non-empty trimmed lines, each a
// candidate teach sentence. Lines starting with # are skipped.
func Sentences(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out
}

func isBlock(tag string) bool {
	switch tag {
	case "p", "div", "li", "br", "h1", "h2", "h3", "h4", "tr", "section", "article":
		return true
	}
	return false
}
