package markup

import (
	"regexp"
	"strings"
)

// NodeKind identifies how a Node is displayed.
type NodeKind string

const (
	NodePlain     NodeKind = "plain"
	NodeBold      NodeKind = "bold"
	NodeItalic    NodeKind = "italic"
	NodeUnderline NodeKind = "underline"
	NodeLink      NodeKind = "link"
	NodeTag       NodeKind = "tag"
	NodeDate      NodeKind = "date"
)

// Node is one rendered segment of a line.
type Node struct {
	Kind NodeKind `json:"kind"`
	// Text is the visible text.
	Text string `json:"text"`
	// Href is the link target for NodeLink.
	Href string `json:"href,omitempty"`
	// Strong marks italic, underline and link nodes that sit inside bold text.
	Strong bool `json:"strong,omitempty"`

	// Tag is the tag name for NodeTag.
	Tag string `json:"tag,omitempty"`
	// Color is the palette index for NodeTag.
	Color int `json:"color,omitempty"`
	// Key identifies a tag occurrence within one rendering target.
	Key string `json:"key,omitempty"`

	// Date is the normalized YYYY-MM-DD value for NodeDate.
	Date string `json:"date,omitempty"`
	// Overdue is set on NodeDate when Date is before today.
	Overdue bool `json:"overdue,omitempty"`
}

var (
	boldRE     = regexp.MustCompile(`\*\*(.*?)\*\*|__(.*?)__`)
	emphasisRE = regexp.MustCompile(`\*([^*_]+?)\*|_([^*_]+?)_`)
	urlRE      = regexp.MustCompile(`https?://[^\s]+|www\.[^\s]+|[a-zA-Z0-9][a-zA-Z0-9-]+\.[a-zA-Z]{2,}[^\s]*`)
)

// Inline renders bold, italic, underline and links in text.
//
// Bold is found first. Italic and underline are then found inside bold content
// and in the text between bold spans. Links are found in whatever text the
// italic and underline spans leave behind; the contents of italic and
// underline spans are never linked.
func Inline(text string) []Node {
	var nodes []Node
	last := 0
	for _, m := range boldRE.FindAllStringSubmatchIndex(text, -1) {
		nodes = appendEmphasis(nodes, text[last:m[0]], false)
		nodes = appendEmphasis(nodes, submatch(text, m), true)
		last = m[1]
	}
	return appendEmphasis(nodes, text[last:], false)
}

func appendEmphasis(nodes []Node, text string, strong bool) []Node {
	last := 0
	for _, m := range emphasisRE.FindAllStringSubmatchIndex(text, -1) {
		nodes = appendLinks(nodes, text[last:m[0]], strong)
		kind := NodeItalic
		if m[2] < 0 {
			kind = NodeUnderline
		}
		nodes = append(nodes, Node{Kind: kind, Text: submatch(text, m), Strong: strong})
		last = m[1]
	}
	return appendLinks(nodes, text[last:], strong)
}

func appendLinks(nodes []Node, text string, strong bool) []Node {
	last := 0
	for _, m := range urlRE.FindAllStringIndex(text, -1) {
		nodes = appendText(nodes, text[last:m[0]], strong)
		token := text[m[0]:m[1]]
		nodes = append(nodes, Node{Kind: NodeLink, Text: token, Href: LinkTarget(token), Strong: strong})
		last = m[1]
	}
	return appendText(nodes, text[last:], strong)
}

func appendText(nodes []Node, text string, strong bool) []Node {
	if text == "" {
		return nodes
	}
	kind := NodePlain
	if strong {
		kind = NodeBold
	}
	return append(nodes, Node{Kind: kind, Text: text})
}

// submatch returns whichever of the two alternative capture groups matched.
func submatch(text string, m []int) string {
	if m[2] >= 0 {
		return text[m[2]:m[3]]
	}
	return text[m[4]:m[5]]
}

// LinkTarget returns the href for a detected link token, adding https:// to
// bare hosts.
func LinkTarget(token string) string {
	if strings.HasPrefix(token, "http://") || strings.HasPrefix(token, "https://") {
		return token
	}
	return "https://" + token
}

// PlainText concatenates the visible text of nodes.
func PlainText(nodes []Node) string {
	var b strings.Builder
	for _, n := range nodes {
		b.WriteString(n.Text)
	}
	return b.String()
}
