package markdown

import (
	"strings"
	"testing"
)

type panicRenderer struct{}

func (panicRenderer) Render(string) (string, error) {
	panic("boom")
}

func TestSafeRender_RecoversFromRendererPanic(t *testing.T) {
	const renderWidth = 20

	rendererMu.Lock()
	prev, hadPrev := renderers[renderWidth]
	renderers[renderWidth] = panicRenderer{}
	rendererMu.Unlock()

	defer func() {
		rendererMu.Lock()
		if hadPrev {
			renderers[renderWidth] = prev
		} else {
			delete(renderers, renderWidth)
		}
		rendererMu.Unlock()
	}()

	out := SafeRender(renderWidth, 0, []byte("hello\n"))
	if string(out) != "hello" {
		t.Fatalf("expected fallback to original markdown, got %q", string(out))
	}
}

func TestRender_Empty(t *testing.T) {
	if out := Render(80, 0, []byte("  \n\n")); out != nil {
		t.Fatalf("expected nil for blank input, got %q", string(out))
	}
}

func TestRender_Indents(t *testing.T) {
	out := string(Render(40, 2, []byte("# Tags\n\nWrite `#work`.")))

	if !strings.Contains(out, "#work") {
		t.Fatalf("expected tag example in output, got %q", out)
	}
	for _, line := range strings.Split(out, "\n") {
		if line != "" && !strings.HasPrefix(line, "  ") {
			t.Fatalf("expected indented lines, got %q", line)
		}
	}
}

func TestRenderGuide_MentionsMarkup(t *testing.T) {
	out := RenderGuide(80)

	for _, want := range []string{"[x]", "#tag", "@10/14", "**bold**", "_underline_"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected guide to mention %q, got %q", want, out)
		}
	}
}
