// Package page holds a parsed lapmaster result page. The generator stamps
// every page with the version it was built from and leaves an empty clock
// cell in the navigation bar; this package exposes both.
package page

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Element ids and attribute names written by the page generator.
const (
	StampID   = "versionstamp"
	StampAttr = "versionstamp"
	ClockID   = "clock"
)

var (
	ErrNoStamp = errors.New("page: no versionstamp element")
	ErrNoClock = errors.New("page: no clock element")
)

var mdConverter = converter.NewConverter(
	converter.WithPlugins(
		base.NewBasePlugin(),
		commonmark.NewCommonmarkPlugin(),
		table.NewTablePlugin(),
	),
)

// Document is a parsed page. It is not safe for concurrent mutation; the
// clock element is only ever written by one updater.
type Document struct {
	root *html.Node
}

// Parse reads an HTML page.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("page: parse: %w", err)
	}
	return &Document{root: root}, nil
}

// VersionStamp returns the versionstamp attribute of the versionstamp
// element, verbatim.
func (d *Document) VersionStamp() (string, error) {
	n := findByID(d.root, StampID)
	if n == nil {
		return "", ErrNoStamp
	}
	v, ok := attr(n, StampAttr)
	if !ok {
		return "", fmt.Errorf("%w: element has no %q attribute", ErrNoStamp, StampAttr)
	}
	return v, nil
}

// SetClock replaces the content of the clock element with text.
func (d *Document) SetClock(text string) error {
	n := findByID(d.root, ClockID)
	if n == nil {
		return ErrNoClock
	}
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return nil
}

// ClockText returns the current text content of the clock element, or ""
// when the page has none.
func (d *Document) ClockText() string {
	n := findByID(d.root, ClockID)
	if n == nil {
		return ""
	}
	return textContent(n)
}

// Title returns the <title> text.
func (d *Document) Title() string {
	n := findAtom(d.root, atom.Title)
	if n == nil {
		return ""
	}
	return strings.TrimSpace(textContent(n))
}

// Body renders the <body> element back to HTML.
func (d *Document) Body() (string, error) {
	n := findAtom(d.root, atom.Body)
	if n == nil {
		return "", nil
	}
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Markdown converts the page body to Markdown for terminal rendering.
func (d *Document) Markdown() (string, error) {
	body, err := d.Body()
	if err != nil {
		return "", err
	}
	md, err := mdConverter.ConvertString(body)
	if err != nil {
		return "", fmt.Errorf("page: markdown: %w", err)
	}
	return md, nil
}

// Render writes the whole document as HTML.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

func findByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode {
		if v, ok := attr(n, "id"); ok && v == id {
			return n
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

func findAtom(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findAtom(c, a); found != nil {
			return found
		}
	}
	return nil
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
