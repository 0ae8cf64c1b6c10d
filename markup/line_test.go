package markup

import (
	"reflect"
	"testing"
)

func TestRenderLine(t *testing.T) {
	got := RenderLine("buy **milk** #errand @3/5", LineOptions{KeyPrefix: "left-1-text", Now: testNow})
	want := []Node{
		{Kind: NodePlain, Text: "buy "},
		{Kind: NodeBold, Text: "milk"},
		{Kind: NodePlain, Text: " "},
		{Kind: NodeTag, Text: "#errand", Tag: "errand", Color: 0, Key: "left-1-text-tag-13"},
		{Kind: NodePlain, Text: " "},
		{Kind: NodeDate, Text: "@3/5", Date: "2026-03-05", Overdue: true},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestRenderLineUsesCustomColors(t *testing.T) {
	got := RenderLine("#errand", LineOptions{KeyPrefix: "p", Colors: TagColors{"errand": 3}})
	if len(got) != 1 || got[0].Color != 3 {
		t.Fatalf("expected custom color 3, got %+v", got)
	}
}

func TestRenderLineFutureDate(t *testing.T) {
	got := RenderLine("@12/1", LineOptions{Now: testNow})
	if len(got) != 1 || got[0].Date != "2026-12-01" || got[0].Overdue {
		t.Fatalf("expected future date badge, got %+v", got)
	}
}

func TestRenderLineKeysDifferByPrefix(t *testing.T) {
	left := RenderLine("#a #a", LineOptions{KeyPrefix: "left-x-text"})
	right := RenderLine("#a #a", LineOptions{KeyPrefix: "right-x-text"})

	keys := map[string]bool{}
	for _, nodes := range [][]Node{left, right} {
		for _, n := range nodes {
			if n.Kind == NodeTag {
				keys[n.Key] = true
			}
		}
	}
	if len(keys) != 4 {
		t.Fatalf("expected 4 distinct keys, got %v", keys)
	}
}
