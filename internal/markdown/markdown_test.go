package markdown

import (
	"strings"
	"testing"
)

func TestToHTMLRendersGFM(t *testing.T) {
	out, err := ToHTML("# Title\n\n~~old~~ **bold**")
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	for _, want := range []string{"<h1", "Title</h1>", "<del>old</del>", "<strong>bold</strong>"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output: %s", want, out)
		}
	}
}

func TestToHTMLDropsRawHTML(t *testing.T) {
	out, err := ToHTML("hello <script>alert(1)</script>")
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if strings.Contains(out, "<script>") {
		t.Fatalf("raw html must not pass through: %s", out)
	}
}
