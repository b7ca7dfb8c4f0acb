package livemark

import "testing"

func TestContextAt(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		offset int
		want   ScanContext
	}{
		{"between tags", `<p>hi</p>`, 4, ContextText},
		{"empty source", ``, 0, ContextText},
		{"tag name position", `<div class="x">`, 2, ContextTag},
		{"closing tag name", `<p>x</p>`, 6, ContextTag},
		{"attribute section", `<div class="x">`, 7, ContextAttribute},
		{"inside quoted value", `<div class="x">`, 13, ContextAttribute},
		{"comment interior", `<!-- note -->`, 6, ContextComment},
		{"script body", `<script>var a;</script>`, 10, ContextRawText},
		{"style body", `<style>a {}</style>`, 9, ContextRawText},
		{"script tag name still a tag", `<script src="a.js"></script>`, 3, ContextTag},
		{"script attributes still attributes", `<script src="a.js"></script>`, 9, ContextAttribute},
		{"after a complete document", `<p>hi</p> `, 10, ContextText},
		{"unterminated tag while typing", `<p>x</p><di`, 11, ContextTag},
		{"unterminated attribute while typing", `<div cla`, 8, ContextAttribute},
		{"unterminated comment while typing", `<p></p><!-- dra`, 15, ContextComment},
		{"offset clamped past end", `<di`, 99, ContextTag},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ContextAt(tt.src, tt.offset); got != tt.want {
				t.Errorf("ContextAt(%q, %d) = %v, want %v", tt.src, tt.offset, got, tt.want)
			}
		})
	}
}
