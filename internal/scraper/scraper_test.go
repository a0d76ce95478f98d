package scraper

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
)

func mustDoc(t *testing.T, htmlText string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlText))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return doc
}

const w3cFixture = `<html><body><table>
<tr><th scope="row"><code>article</code></th><td>Article</td></tr>
<tr><th scope="row"><code>foo bar</code></th><td>Broken</td></tr>
<tr><th scope="row"><code></code></th><td>Empty</td></tr>
<tr><th scope="row"><code><a href="#x">nested</a></code></th><td>Nested</td></tr>
<tr><th scope="row"><code>div</code></th><td>Div</td></tr>
<tr><th scope="row"><code>article</code></th><td>Again</td></tr>
<tr><th><code>ignored</code></th><td>No scope</td></tr>
</table></body></html>`

func TestExtractW3C(t *testing.T) {
	ext := ExtractW3C(mustDoc(t, w3cFixture))

	if diff := cmp.Diff([]string{"article", "div"}, ext.Names); diff != "" {
		t.Errorf("ExtractW3C() names mismatch (-want +got):\n%s", diff)
	}
	if ext.Matched != 6 {
		t.Errorf("Matched = %d, want 6", ext.Matched)
	}
	if ext.Rejected != 3 {
		t.Errorf("Rejected = %d, want 3", ext.Rejected)
	}
	if ext.Skipped != 0 {
		t.Errorf("Skipped = %d, want 0", ext.Skipped)
	}
}

const whatwgFixture = `<html><body>
<table><thead><tr><th>Element</th></tr></thead><tbody>
<tr><th><code id="elements-3:the-a-element"><a href="#a">a</a></code></th><td>Hyperlink</td></tr>
<tr><th><code id="attributes-3:attr-hyperlink-href"><a href="#href">href</a></code></th><td>Attribute</td></tr>
<tr><th><code id="elements-3:the-span-element"><a href="#span">span</a></code></th><td>Span</td></tr>
<tr><th><code><a href="#noid">noid</a></code></th><td>No id</td></tr>
<tr><th><code id="elements-3:broken">bare</code></th><td>Not nested</td></tr>
<tr><th><code id="interfaces-3:HTMLElement"><a href="#i">HTMLElement</a></code></th><td>Interface</td></tr>
</tbody></table>
</body></html>`

func TestExtractWHATWG(t *testing.T) {
	ext := ExtractWHATWG(mustDoc(t, whatwgFixture))

	if diff := cmp.Diff([]string{"a", "span"}, ext.Names); diff != "" {
		t.Errorf("ExtractWHATWG() names mismatch (-want +got):\n%s", diff)
	}
	if ext.Matched != 6 {
		t.Errorf("Matched = %d, want 6", ext.Matched)
	}
	if ext.Skipped != 3 {
		t.Errorf("Skipped = %d, want 3", ext.Skipped)
	}
	if ext.Rejected != 1 {
		t.Errorf("Rejected = %d, want 1", ext.Rejected)
	}
}

func TestExtractNoMatches(t *testing.T) {
	ext := Extract(mustDoc(t, `<p>nothing here</p>`), W3CRule)
	if len(ext.Names) != 0 || ext.Matched != 0 {
		t.Errorf("expected empty extraction, got %+v", ext)
	}
}

func TestScraperParseNames(t *testing.T) {
	s := NewScraper(WHATWGRule)
	ext, err := s.ParseNames(whatwgFixture)
	if err != nil {
		t.Fatalf("ParseNames: %v", err)
	}
	if diff := cmp.Diff([]string{"a", "span"}, ext.Names); diff != "" {
		t.Errorf("ParseNames() mismatch (-want +got):\n%s", diff)
	}
}

func TestFirstText(t *testing.T) {
	doc := mustDoc(t, `<code id="one">x</code><code id="two"><a>y</a></code><code id="three"></code>`)

	tests := []struct {
		id     string
		depth  int
		want   string
		wantOK bool
	}{
		{"one", 1, "x", true},
		{"one", 2, "", false},
		{"two", 1, "", false},
		{"two", 2, "y", true},
		{"three", 1, "", false},
	}

	for _, tt := range tests {
		node := doc.Find("#" + tt.id).Get(0)
		got, ok := firstText(node, tt.depth)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("firstText(#%s, %d) = (%q, %v), want (%q, %v)", tt.id, tt.depth, got, ok, tt.want, tt.wantOK)
		}
	}

	if _, ok := firstText(nil, 1); ok {
		t.Errorf("firstText(nil) should not be ok")
	}
}
