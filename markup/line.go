package markup

import (
	"strconv"
	"time"
)

// LineOptions configures RenderLine.
type LineOptions struct {
	// KeyPrefix namespaces tag keys so two renderings of the same line on
	// one screen get distinct keys.
	KeyPrefix string
	Colors    TagColors
	Now       time.Time
}

// RenderLine renders one line: tag and date tokens become badges and the text
// around them goes through Inline.
func RenderLine(line string, opts LineOptions) []Node {
	var nodes []Node
	last := 0
	for _, a := range Scan(line) {
		if a.Start > last {
			nodes = append(nodes, Inline(line[last:a.Start])...)
		}
		switch a.Kind {
		case AnnotationTag:
			nodes = append(nodes, Node{
				Kind:  NodeTag,
				Text:  "#" + a.Value,
				Tag:   a.Value,
				Color: opts.Colors.Index(a.Value),
				Key:   TagKey(opts.KeyPrefix, a.Start),
			})
		case AnnotationDate:
			date := NormalizeDate(a.Value, opts.Now)
			nodes = append(nodes, Node{
				Kind:    NodeDate,
				Text:    "@" + a.Value,
				Date:    date,
				Overdue: IsOverdue(date, opts.Now),
			})
		}
		last = a.End()
	}
	if last < len(line) {
		nodes = append(nodes, Inline(line[last:])...)
	}
	return nodes
}

// TagKey builds the key of a tag occurrence at byte offset start.
func TagKey(prefix string, start int) string {
	return prefix + "-tag-" + strconv.Itoa(start)
}
