package markup

import (
	"reflect"
	"testing"
)

func TestInline(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  []Node
	}{
		{
			name:  "all styles",
			input: "**bold** and *italic* and _under_ and www.example.com",
			want: []Node{
				{Kind: NodeBold, Text: "bold"},
				{Kind: NodePlain, Text: " and "},
				{Kind: NodeItalic, Text: "italic"},
				{Kind: NodePlain, Text: " and "},
				{Kind: NodeUnderline, Text: "under"},
				{Kind: NodePlain, Text: " and "},
				{Kind: NodeLink, Text: "www.example.com", Href: "https://www.example.com"},
			},
		},
		{
			name:  "underscore bold",
			input: "__loud__",
			want:  []Node{{Kind: NodeBold, Text: "loud"}},
		},
		{
			name:  "mismatched bold delimiters",
			input: "**a__",
			want:  []Node{{Kind: NodePlain, Text: "**a__"}},
		},
		{
			name:  "italic inside bold",
			input: "**a *b* c**",
			want: []Node{
				{Kind: NodeBold, Text: "a "},
				{Kind: NodeItalic, Text: "b", Strong: true},
				{Kind: NodeBold, Text: " c"},
			},
		},
		{
			name:  "link inside bold",
			input: "**see example.com**",
			want: []Node{
				{Kind: NodeBold, Text: "see "},
				{Kind: NodeLink, Text: "example.com", Href: "https://example.com", Strong: true},
			},
		},
		{
			name:  "italic content is not linked",
			input: "*example.com*",
			want:  []Node{{Kind: NodeItalic, Text: "example.com"}},
		},
		{
			name:  "explicit scheme",
			input: "go to http://x.io/a?b now",
			want: []Node{
				{Kind: NodePlain, Text: "go to "},
				{Kind: NodeLink, Text: "http://x.io/a?b", Href: "http://x.io/a?b"},
				{Kind: NodePlain, Text: " now"},
			},
		},
		{
			name:  "underscores within a word",
			input: "snake_case_name",
			want: []Node{
				{Kind: NodePlain, Text: "snake"},
				{Kind: NodeUnderline, Text: "case"},
				{Kind: NodePlain, Text: "name"},
			},
		},
		{
			name:  "empty",
			input: "",
			want:  nil,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Inline(tc.input)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("expected %+v, got %+v", tc.want, got)
			}
		})
	}
}

func TestInlineIsDeterministic(t *testing.T) {
	input := "**a** _b_ *c* d.io"
	first := Inline(input)
	for i := 0; i < 5; i++ {
		if got := Inline(input); !reflect.DeepEqual(got, first) {
			t.Fatalf("expected identical output on call %d", i)
		}
	}
}

func TestPlainText(t *testing.T) {
	if got := PlainText(Inline("**a** *b* c.io")); got != "a b c.io" {
		t.Fatalf("expected %q, got %q", "a b c.io", got)
	}
}
