package extract

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const blockSelector = "p, div, section, article, header, footer, li, tr, h1, h2, h3, h4, h5, h6, ul, ol, table, blockquote, pre"

// HTMLToText renders an HTML document (typically a job posting copied from a
// careers page) as line-oriented plain text. List items become "- " bullets
// and block elements end their line.
func HTMLToText(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	doc.Find("script, style, noscript, template, svg").Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("li").PrependHtml("- ")
	doc.Find(blockSelector).AppendHtml("\n")

	root := doc.Find("body")
	if root.Length() == 0 {
		root = doc.Selection
	}
	return cleanLines(root.Text()), nil
}

// cleanLines collapses runs of whitespace inside each line and drops blank lines.
func cleanLines(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	var out []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
