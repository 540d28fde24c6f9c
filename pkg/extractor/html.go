// Package extractor converts HTML markup into plain text.
package extractor

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// Text extracts the readable text from an HTML document or fragment,
// joining text nodes with sep. Script, style and chrome elements are
// skipped so API-supplied markup (e.g. Stack Exchange answer bodies)
// reduces to its visible content.
func Text(content []byte, sep string) (string, error) {
	doc, err := html.Parse(bytes.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	var parts []string
	collectText(doc, &parts)

	return strings.Join(parts, sep), nil
}

func collectText(n *html.Node, parts *[]string) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "script", "style", "noscript", "nav", "header", "footer", "aside":
			return
		}
	}

	if n.Type == html.TextNode {
		text := strings.TrimSpace(n.Data)
		if text != "" {
			*parts = append(*parts, text)
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, parts)
	}
}
