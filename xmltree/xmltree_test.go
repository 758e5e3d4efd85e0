package xmltree

import (
	"errors"
	"testing"
)

func mustParse(t *testing.T, src string) *Node {
	t.Helper()
	root, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	return root
}

func TestParse_Structure(t *testing.T) {
	root := mustParse(t, `<book><title lang="en">Go</title><title>Zweite</title><year>2009</year></book>`)

	if root.Tag != "book" {
		t.Errorf("root.Tag = %q, want %q", root.Tag, "book")
	}
	if len(root.Children) != 3 {
		t.Fatalf("root has %d children, want 3", len(root.Children))
	}

	// Children keep document order.
	wantTags := []string{"title", "title", "year"}
	for i, want := range wantTags {
		if root.Children[i].Tag != want {
			t.Errorf("child %d tag = %q, want %q", i, root.Children[i].Tag, want)
		}
	}

	if got := root.Children[0].Text; got != "Go" {
		t.Errorf("first title text = %q, want %q", got, "Go")
	}
}

func TestParse_ChildReturnsFirstMatch(t *testing.T) {
	root := mustParse(t, `<r><x>one</x><x>two</x></r>`)

	c := root.Child("x")
	if c == nil {
		t.Fatal("Child(x) returned nil")
	}
	if c.Text != "one" {
		t.Errorf("Child(x).Text = %q, want %q", c.Text, "one")
	}
	if root.Child("y") != nil {
		t.Error("Child(y) should return nil for missing tag")
	}
}

func TestParse_AttributeLookup(t *testing.T) {
	root := mustParse(t, `<c r="B12" t="" s="1"/>`)

	tests := []struct {
		name    string
		want    string
		present bool
	}{
		{"r", "B12", true},
		{"t", "", true}, // present but empty: distinguishable from missing
		{"s", "1", true},
		{"v", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := root.Attr(tt.name)
			if ok != tt.present {
				t.Fatalf("Attr(%q) ok = %v, want %v", tt.name, ok, tt.present)
			}
			if got != tt.want {
				t.Errorf("Attr(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestParse_PrefixedAttributesVerbatim(t *testing.T) {
	src := `<workbook xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
  <sheets>
    <sheet name="First" sheetId="1" r:id="rId1"/>
  </sheets>
</workbook>`
	root := mustParse(t, src)

	if root.Tag != "workbook" {
		t.Errorf("root.Tag = %q, want %q (default namespace stripped)", root.Tag, "workbook")
	}

	sheets := root.Child("sheets")
	if sheets == nil {
		t.Fatal("no sheets child")
	}
	sheet := sheets.Child("sheet")
	if sheet == nil {
		t.Fatal("no sheet child")
	}

	rid, ok := sheet.Attr("r:id")
	if !ok {
		t.Fatal("Attr(r:id) not found; prefixed name was not preserved")
	}
	if rid != "rId1" {
		t.Errorf("Attr(r:id) = %q, want %q", rid, "rId1")
	}

	name, ok := sheet.Attr("name")
	if !ok || name != "First" {
		t.Errorf("Attr(name) = %q, %v, want First, true", name, ok)
	}
}

func TestParse_UndeclaredPrefixKept(t *testing.T) {
	// The decoder leaves an undeclared prefix verbatim; so do we.
	root := mustParse(t, `<a foo:bar="v"/>`)

	got, ok := root.Attr("foo:bar")
	if !ok || got != "v" {
		t.Errorf("Attr(foo:bar) = %q, %v, want v, true", got, ok)
	}
}

func TestParse_AttributeOrder(t *testing.T) {
	root := mustParse(t, `<c r="A1" t="s" s="2"/>`)

	want := []string{"r", "t", "s"}
	if len(root.Attrs) != len(want) {
		t.Fatalf("got %d attrs, want %d", len(root.Attrs), len(want))
	}
	for i, name := range want {
		if root.Attrs[i].Name != name {
			t.Errorf("attr %d name = %q, want %q", i, root.Attrs[i].Name, name)
		}
	}
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"mismatched tags", "<a><b></a>"},
		{"truncated", "<a><b>"},
		{"empty input", ""},
		{"garbage", "not xml at all <"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src))
			if err == nil {
				t.Fatal("Parse() expected error")
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Errorf("Parse() error = %T, want *ParseError", err)
			}
		})
	}
}

func TestParse_ErrorLine(t *testing.T) {
	src := "<a>\n<b>\n</a>"
	_, err := Parse([]byte(src))
	if err == nil {
		t.Fatal("Parse() expected error")
	}

	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("Parse() error = %T, want *ParseError", err)
	}
	if pe.Line != 3 {
		t.Errorf("ParseError.Line = %d, want 3", pe.Line)
	}
}

func TestParse_TextConcatenation(t *testing.T) {
	root := mustParse(t, `<t>one <b>ignored</b>two</t>`)

	// Character data around child elements is concatenated on the parent.
	if root.Text != "one two" {
		t.Errorf("root.Text = %q, want %q", root.Text, "one two")
	}
}

func TestHasChild(t *testing.T) {
	root := mustParse(t, `<si><r><t>a</t></r></si>`)

	if !root.HasChild("r") {
		t.Error("HasChild(r) = false, want true")
	}
	if root.HasChild("t") {
		t.Error("HasChild(t) = true for grandchild, want false")
	}
}
