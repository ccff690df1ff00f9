package markdown

import (
	"errors"
	"strings"
	"testing"
)

type panicRenderer struct{}

func (panicRenderer) Render(string) (string, error) {
	panic("boom")
}

type failingRenderer struct{}

func (failingRenderer) Render(string) (string, error) {
	return "", errors.New("nope")
}

func withRenderer(t *testing.T, width int, r renderer) {
	t.Helper()

	rendererMu.Lock()
	prev, hadPrev := renderers[width]
	renderers[width] = r
	rendererMu.Unlock()

	t.Cleanup(func() {
		rendererMu.Lock()
		if hadPrev {
			renderers[width] = prev
		} else {
			delete(renderers, width)
		}
		rendererMu.Unlock()
	})
}

func TestRender_RecoversFromRendererPanic(t *testing.T) {
	withRenderer(t, 20, panicRenderer{})

	out := Render(20, 0, []byte("hello\n"))
	if string(out) != "hello" {
		t.Fatalf("expected fallback to original markdown, got %q", string(out))
	}
}

func TestRender_FallsBackOnError(t *testing.T) {
	withRenderer(t, 16, failingRenderer{})

	out := Render(20, 4, []byte("one two three four five"))
	for _, line := range strings.Split(string(out), "\n") {
		if !strings.HasPrefix(line, "    ") {
			t.Fatalf("expected indented fallback, got %q", out)
		}
	}
}

func TestRender_BlankInput(t *testing.T) {
	if out := Render(80, 0, []byte(" \n\n")); out != nil {
		t.Fatalf("expected nil for blank input, got %q", out)
	}
}

func TestRender_Markdown(t *testing.T) {
	out := string(Render(80, 2, []byte("# Groceries\n\n- milk\n- eggs\n")))
	if !strings.Contains(out, "milk") || !strings.Contains(out, "eggs") {
		t.Fatalf("expected list items in output, got %q", out)
	}
	for _, line := range strings.Split(out, "\n") {
		if line != "" && !strings.HasPrefix(line, "  ") {
			t.Fatalf("expected every line indented, got %q", out)
		}
	}
}

func TestPlainLines(t *testing.T) {
	lines := PlainLines(10, "alpha beta gamma\r\n")
	if len(lines) < 2 {
		t.Fatalf("expected wrapped lines, got %q", lines)
	}
	if PlainLines(10, "") != nil {
		t.Fatalf("expected nil for empty input")
	}
}
