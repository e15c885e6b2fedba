// Package extract pulls citation records out of rendered article HTML.
// Generated articles carry a numbered Sources section whose entries align
// with in-text [n] markers.
package extract

import (
	"strings"

	"golang.org/x/net/html"
)

// sourcesHeadings are heading texts that introduce the citation list
var sourcesHeadings = []string{"sources", "references", "citations"}

// Entry is one extracted citation link before it becomes a model.Citation:
// position in the Sources list, href, and anchor (or list item) text.
type Entry struct {
	Seq   int
	URL   string
	Title string
}

// Citations extracts the numbered source entries from article HTML.
// It looks for a list element following a Sources/References heading and
// reads one entry per list item; sequence numbers follow list order,
// 1-based. Returns nil when the article has no recognizable source list.
func Citations(htmlContent string) ([]Entry, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return nil, err
	}

	list := findSourcesList(doc)
	if list == nil {
		return nil, nil
	}

	var entries []Entry
	seq := 0
	for li := list.FirstChild; li != nil; li = li.NextSibling {
		if li.Type != html.ElementNode || li.Data != "li" {
			continue
		}
		seq++

		href, anchorText := firstAnchor(li)
		title := anchorText
		if title == "" {
			title = strings.TrimSpace(nodeText(li))
		}

		entries = append(entries, Entry{
			Seq:   seq,
			URL:   href,
			Title: title,
		})
	}

	return entries, nil
}

// findSourcesList locates the first ol/ul that follows a sources heading
func findSourcesList(doc *html.Node) *html.Node {
	var list *html.Node
	var walk func(*html.Node)

	walk = func(n *html.Node) {
		if list != nil {
			return
		}
		if n.Type == html.ElementNode && isHeading(n.Data) && isSourcesHeading(nodeText(n)) {
			for sib := n.NextSibling; sib != nil; sib = sib.NextSibling {
				if sib.Type != html.ElementNode {
					continue
				}
				if sib.Data == "ol" || sib.Data == "ul" {
					list = sib
					return
				}
				if isHeading(sib.Data) {
					// Next section started without a list
					break
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)
	return list
}

func isHeading(tag string) bool {
	switch tag {
	case "h1", "h2", "h3", "h4":
		return true
	}
	return false
}

func isSourcesHeading(text string) bool {
	lower := strings.ToLower(strings.TrimSpace(text))
	for _, heading := range sourcesHeadings {
		if strings.HasPrefix(lower, heading) {
			return true
		}
	}
	return false
}

// firstAnchor returns the href and text of the first <a> under n
func firstAnchor(n *html.Node) (href, text string) {
	var walk func(*html.Node) bool
	walk = func(node *html.Node) bool {
		if node.Type == html.ElementNode && node.Data == "a" {
			for _, attr := range node.Attr {
				if attr.Key == "href" {
					href = strings.TrimSpace(attr.Val)
				}
			}
			text = strings.TrimSpace(nodeText(node))
			return true
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			if walk(c) {
				return true
			}
		}
		return false
	}
	walk(n)
	return href, text
}

// nodeText collects the concatenated text content under n
func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			b.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
