package markup

import (
	"regexp"
	"sort"
)

// AnnotationKind identifies what an Annotation marks.
type AnnotationKind string

const (
	// AnnotationTag marks a #tag token.
	AnnotationTag AnnotationKind = "tag"
	// AnnotationDate marks an @date token.
	AnnotationDate AnnotationKind = "date"
)

// Annotation is a located tag or date token within a line.
type Annotation struct {
	Kind AnnotationKind
	// Value is the tag name or the raw date token, without the leading # or @.
	Value string
	// Start is the byte offset of the # or @.
	Start int
	// Length is the byte length of the whole token including the # or @.
	Length int
}

// End returns the byte offset just past the annotation.
func (a Annotation) End() int {
	return a.Start + a.Length
}

var (
	tagRE  = regexp.MustCompile(`#(\w+)`)
	dateRE = regexp.MustCompile(`@(` + DatePattern + `)`)
)

// Scan finds every tag and date token in line, ordered by position.
//
// Tags and dates are located independently and then merged. Ties on Start
// keep tags before dates.
func Scan(line string) []Annotation {
	tags := scanKind(line, tagRE, AnnotationTag)
	dates := scanKind(line, dateRE, AnnotationDate)
	if len(tags) == 0 && len(dates) == 0 {
		return nil
	}
	out := make([]Annotation, 0, len(tags)+len(dates))
	out = append(out, tags...)
	out = append(out, dates...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start < out[j].Start
	})
	return out
}

func scanKind(line string, re *regexp.Regexp, kind AnnotationKind) []Annotation {
	matches := re.FindAllStringSubmatchIndex(line, -1)
	if len(matches) == 0 {
		return nil
	}
	out := make([]Annotation, 0, len(matches))
	for _, m := range matches {
		out = append(out, Annotation{
			Kind:   kind,
			Value:  line[m[2]:m[3]],
			Start:  m[0],
			Length: m[1] - m[0],
		})
	}
	return out
}

// Tags returns the tag names in text in order of appearance.
// Duplicates are kept.
func Tags(text string) []string {
	matches := tagRE.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	tags := make([]string, 0, len(matches))
	for _, m := range matches {
		tags = append(tags, m[1])
	}
	return tags
}

// FirstDate returns the raw token of the first @date in text.
func FirstDate(text string) (string, bool) {
	m := dateRE.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}
