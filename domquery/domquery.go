// Package domquery bridges the parser's own DOM (package dom) to the
// CSS-selector ecosystem. It converts a dom.Element subtree into a
// golang.org/x/net/html node tree and runs goquery/cascadia selectors
// against that copy, translating matches back to the original elements
// through a side table.
//
// spec.md §1 treats the CSS-selector engine as an external collaborator
// referenced only through the interface it exposes; this package is that
// interface, in preference to a hand-rolled matcher living inside the
// parser core.
package domquery

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jnorthrup/jsoup/dom"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func init() {
	dom.SetSelectorMatch(Select)
	dom.SetSelectorMatchFirst(SelectFirst)
}

// bridge holds the mapping from the cloned golang.org/x/net/html tree back
// to the original dom.Element instances that produced it.
type bridge struct {
	byNode map[*html.Node]*dom.Element
}

// build converts root (and its descendants) into a golang.org/x/net/html
// tree rooted at an invisible document node, recording the reverse mapping
// for every element copied across.
func build(root *dom.Element) (*html.Node, *bridge) {
	b := &bridge{byNode: make(map[*html.Node]*dom.Element)}
	docNode := &html.Node{Type: html.DocumentNode}
	htmlNode := b.convert(root)
	docNode.AppendChild(htmlNode)
	return docNode, b
}

func (b *bridge) convert(el *dom.Element) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     el.TagName,
		DataAtom: atom.Lookup([]byte(el.TagName)),
	}
	for _, a := range el.Attributes.All() {
		n.Attr = append(n.Attr, html.Attribute{
			Namespace: a.Namespace,
			Key:       a.Name,
			Val:       a.Value,
		})
	}
	b.byNode[n] = el

	for _, child := range el.Children() {
		switch c := child.(type) {
		case *dom.Element:
			n.AppendChild(b.convert(c))
		case *dom.Text:
			n.AppendChild(&html.Node{Type: html.TextNode, Data: c.Data})
		case *dom.Comment:
			n.AppendChild(&html.Node{Type: html.CommentNode, Data: c.Data})
		}
	}
	return n
}

// Select returns every descendant of root matching the given CSS selector,
// using cascadia (via goquery) as the matching engine.
func Select(root *dom.Element, selector string) ([]*dom.Element, error) {
	docNode, b := build(root)
	doc := goquery.NewDocumentFromNode(docNode)

	sel, err := cascadiaSelectorOrError(doc, selector)
	if err != nil {
		return nil, err
	}

	var out []*dom.Element
	sel.Each(func(_ int, s *goquery.Selection) {
		if s.Length() == 0 {
			return
		}
		if el, ok := b.byNode[s.Get(0)]; ok {
			out = append(out, el)
		}
	})
	return out, nil
}

// SelectFirst returns the first descendant of root matching the given CSS
// selector, or nil if none match.
func SelectFirst(root *dom.Element, selector string) (*dom.Element, error) {
	matches, err := Select(root, selector)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, nil
	}
	return matches[0], nil
}

// cascadiaSelectorOrError runs Find and converts goquery's panic-on-invalid-
// selector behavior into a returned error, matching spec.md §7's "a parse
// never raises" discipline for the selector seam as well.
func cascadiaSelectorOrError(doc *goquery.Document, selector string) (sel *goquery.Selection, err error) {
	defer func() {
		if r := recover(); r != nil {
			sel = nil
			err = fmt.Errorf("domquery: invalid selector %q: %v", selector, r)
		}
	}()
	trimmed := strings.TrimSpace(selector)
	if trimmed == "" {
		return nil, fmt.Errorf("domquery: empty selector")
	}
	return doc.Find(trimmed), nil
}
