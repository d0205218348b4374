package chromebrowser

import (
	"strings"
	"testing"

	"jellyboxd/internal/letterboxd"
)

func TestQueryUsesCSSForSelectors(t *testing.T) {
	sel, _ := query(letterboxd.CSS("a.submit-matched-films"))
	if sel != "a.submit-matched-films" {
		t.Fatalf("unexpected selector %q", sel)
	}
}

func TestTextXPath(t *testing.T) {
	tests := []struct {
		tag  string
		text string
		want string
	}{
		{
			tag:  "h1",
			text: "Import summary",
			want: "//h1[contains(translate(normalize-space(.), 'ABCDEFGHIJKLMNOPQRSTUVWXYZ', 'abcdefghijklmnopqrstuvwxyz'), 'import summary')]",
		},
		{
			tag:  "",
			text: "  SELECT   A FILE ",
			want: "//*[contains(translate(normalize-space(.), 'ABCDEFGHIJKLMNOPQRSTUVWXYZ', 'abcdefghijklmnopqrstuvwxyz'), 'select a file')" +
				" and not(*[contains(translate(normalize-space(.), 'ABCDEFGHIJKLMNOPQRSTUVWXYZ', 'abcdefghijklmnopqrstuvwxyz'), 'select a file')])]",
		},
	}
	for _, tt := range tests {
		if got := textXPath(tt.tag, tt.text); got != tt.want {
			t.Fatalf("textXPath(%q, %q) = %q, want %q", tt.tag, tt.text, got, tt.want)
		}
	}
}

func TestTextXPathMatchesDescendantText(t *testing.T) {
	// A tag-scoped locator tests the element's whole string value, so
	// <h1><span>Import summary</span></h1> matches.
	got := textXPath("h1", "Import summary")
	if strings.Contains(got, "text()") {
		t.Fatalf("tag-scoped locator restricted to direct text nodes: %q", got)
	}
	if !strings.HasPrefix(got, "//h1[contains(translate(normalize-space(.),") {
		t.Fatalf("tag-scoped locator should test the string value of h1: %q", got)
	}
}

func TestXPathLiteralQuoting(t *testing.T) {
	tests := map[string]string{
		"plain":         "'plain'",
		"it's":          `"it's"`,
		`say "hi"`:      `'say "hi"'`,
		`it's "quoted"`: `concat('it', "'", 's "quoted"')`,
	}
	for in, want := range tests {
		if got := xpathLiteral(in); got != want {
			t.Fatalf("xpathLiteral(%q) = %s, want %s", in, got, want)
		}
	}
}
