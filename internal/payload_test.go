package livemark

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/net/html/atom"
)

func TestBuildPayload(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Payload
	}{
		{
			"text run",
			`  some text  `,
			Payload{Type: TextNode, Value: `  some text  `},
		},
		{
			"comment keeps interior whitespace",
			`<!-- c -->`,
			Payload{Type: CommentNode, Value: ` c `},
		},
		{
			"doctype",
			`<!DOCTYPE html>`,
			Payload{Type: DoctypeNode},
		},
		{
			"open tag upper-cases the name",
			`<div class="x">`,
			Payload{Type: ElementNode, Name: "DIV", Atom: atom.Div, Attr: []Attribute{{Key: "class", Val: "x"}}},
		},
		{
			"unknown tag has no atom",
			`<custom-thing>`,
			Payload{Type: ElementNode, Name: "CUSTOM-THING"},
		},
		{
			"closing tag",
			`</div>`,
			Payload{Type: ElementNode, Name: "DIV", Atom: atom.Div, Closing: true},
		},
		{
			"self-closing tag",
			`<img src="a.png"/>`,
			Payload{Type: ElementNode, Name: "IMG", Atom: atom.Img, Closed: true, Attr: []Attribute{{Key: "src", Val: "a.png"}}},
		},
		{
			"self-closing without attributes",
			`<br/>`,
			Payload{Type: ElementNode, Name: "BR", Atom: atom.Br, Closed: true},
		},
		{
			"script is closed even without a slash",
			`<script>var a = 1;</script>`,
			Payload{Type: ElementNode, Name: "SCRIPT", Atom: atom.Script, Closed: true},
		},
		{
			"style is closed even without a slash",
			`<style>a {}</style>`,
			Payload{Type: ElementNode, Name: "STYLE", Atom: atom.Style, Closed: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildPayload(tt.content)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("buildPayload(%q) mismatch (-want +got):\n%s", tt.content, diff)
			}
		})
	}
}

func TestPayloadString(t *testing.T) {
	tests := []struct {
		name string
		p    Payload
		want string
	}{
		{"text", Payload{Type: TextNode, Value: "hi"}, "hi"},
		{"comment", Payload{Type: CommentNode, Value: " c "}, "<!-- c -->"},
		{"doctype", Payload{Type: DoctypeNode}, "<!DOCTYPE>"},
		{"open tag", Payload{Type: ElementNode, Name: "A", Attr: []Attribute{{Key: "href", Val: "/"}}}, `<A href="/">`},
		{"closing tag", Payload{Type: ElementNode, Name: "A", Closing: true}, "</A>"},
		{"self-closing tag", Payload{Type: ElementNode, Name: "BR", Closed: true}, "<BR/>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}
