package livemark

import (
	"testing"

	"github.com/livemark/preview/internal/handler"
)

func TestLocateTag(t *testing.T) {
	tests := []struct {
		name      string
		src       string
		from      int
		wantStart int
		wantLen   int
		wantOK    bool
	}{
		{
			"simple tag",
			`text <div class="x">`,
			0, 5, 15, true,
		},
		{
			"closing tag",
			`</div> tail`,
			0, 0, 6, true,
		},
		{
			"quoted angle does not close the tag",
			`<a title="a > b">`,
			0, 0, 17, true,
		},
		{
			"comment spans through its delimiter",
			`x <!-- a <div> b --> y`,
			0, 2, 18, true,
		},
		{
			"script body is folded into the span",
			`<script>var a = "<div>";</script> tail`,
			0, 0, 33, true,
		},
		{
			"script close match is case-insensitive",
			`<SCRIPT>x</SCRIPT>`,
			0, 0, 18, true,
		},
		{
			"style element",
			`<style>a { color: red }</style>`,
			0, 0, 31, true,
		},
		{
			"respects start offset",
			`<a><b>`,
			3, 3, 3, true,
		},
		{
			"no opener",
			`plain text, 1 < 2`,
			0, 0, 0, false,
		},
		{
			"unterminated tag",
			`<div class="x"`,
			0, 0, 0, false,
		},
		{
			"unterminated comment",
			`<!-- never closed`,
			0, 0, 0, false,
		},
		{
			"unterminated script",
			`<script>var a = 1;`,
			0, 0, 0, false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			z := NewTokenizer(tt.src, nil)
			rng, ok := z.locateTag(tt.from)
			if ok != tt.wantOK {
				t.Fatalf("locateTag(%q, %d) ok = %v, want %v", tt.src, tt.from, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if rng.Loc.Start != tt.wantStart || rng.Len != tt.wantLen {
				t.Errorf("locateTag(%q, %d) = {%d %d}, want {%d %d}",
					tt.src, tt.from, rng.Loc.Start, rng.Len, tt.wantStart, tt.wantLen)
			}
		})
	}
}

func TestLocateTagWarnsOnMissingDelimiter(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unclosed tag", `<div class="x"`},
		{"unterminated comment", `<!-- c`},
		{"unclosed script", `<script>var a;`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := handler.NewHandler(tt.src, "test.html")
			z := NewTokenizer(tt.src, h)
			if _, ok := z.locateTag(0); ok {
				t.Fatalf("locateTag(%q) ok = true, want false", tt.src)
			}
			if !h.HasWarnings() {
				t.Errorf("locateTag(%q) recorded no warning", tt.src)
			}
		})
	}
}
