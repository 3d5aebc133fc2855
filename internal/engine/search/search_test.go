package search

import (
	"testing"

	"github.com/dshills/kiln/internal/engine/document"
	"github.com/dshills/kiln/internal/renderer/highlight"
	"github.com/dshills/kiln/internal/syntax"
)

func TestFind(t *testing.T) {
	doc := document.FromLines([]string{
		"alpha",
		"beta gamma",
		"\tgamma",
		"delta",
	})

	tests := []struct {
		name  string
		query string
		dir   Direction
		last  int
		want  Match
		found bool
	}{
		{"from top", "gamma", Forward, -1, Match{Line: 1, Col: 5, RCol: 5, Len: 5}, true},
		{"next row", "gamma", Forward, 1, Match{Line: 2, Col: 1, RCol: 4, Len: 5}, true},
		{"wraps forward", "gamma", Forward, 2, Match{Line: 1, Col: 5, RCol: 5, Len: 5}, true},
		{"backward", "gamma", Backward, 2, Match{Line: 1, Col: 5, RCol: 5, Len: 5}, true},
		{"wraps backward", "delta", Backward, 0, Match{Line: 3, Col: 0, RCol: 0, Len: 5}, true},
		{"missing", "omega", Forward, -1, Match{}, false},
		{"empty query", "", Forward, -1, Match{}, false},
		{"stale last", "alpha", Forward, 42, Match{Line: 0, Col: 0, RCol: 0, Len: 5}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Find(doc, tt.query, tt.dir, tt.last)
			if ok != tt.found {
				t.Fatalf("Find() found = %v, want %v", ok, tt.found)
			}
			if got != tt.want {
				t.Errorf("Find() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFindWrapsFromLastRow(t *testing.T) {
	doc := document.FromLines([]string{"needle", "hay", "hay", "hay"})

	m, ok := Find(doc, "needle", Forward, doc.NumRows()-1)
	if !ok {
		t.Fatal("Find() did not wrap to row 0")
	}
	if m.Line != 0 || m.Col != 0 {
		t.Errorf("Find() = %+v, want row 0 col 0", m)
	}
}

func TestFindSelfOnlyMatch(t *testing.T) {
	doc := document.FromLines([]string{"x", "needle", "y"})

	m, ok := Find(doc, "needle", Forward, 1)
	if !ok || m.Line != 1 {
		t.Errorf("Find() = %+v, %v; want the same row after a full cycle", m, ok)
	}
}

func TestFindEmptyDocument(t *testing.T) {
	if _, ok := Find(document.New(), "x", Forward, -1); ok {
		t.Error("Find() on empty document should fail")
	}
}

func TestHighlightAndRestore(t *testing.T) {
	doc := document.FromLines([]string{"int x = 42;"}, document.WithSyntax(builtin("c")))
	before := append([]highlight.Class(nil), doc.Row(0).Highlight()...)

	m, ok := Find(doc, "x = 4", Forward, -1)
	if !ok {
		t.Fatal("Find() failed")
	}
	o := Highlight(doc, m)
	if o == nil || o.Row != 0 {
		t.Fatalf("Highlight() = %+v", o)
	}

	hl := doc.Row(0).Highlight()
	for i := m.RCol; i < m.RCol+m.Len; i++ {
		if hl[i] != highlight.Match {
			t.Errorf("class[%d] = %v, want match", i, hl[i])
		}
	}
	if hl[0] != highlight.Keyword2 {
		t.Errorf("class[0] = %v, want keyword2", hl[0])
	}

	if !o.Restore(doc) {
		t.Fatal("Restore() = false")
	}
	for i, c := range doc.Row(0).Highlight() {
		if c != before[i] {
			t.Errorf("class[%d] = %v after restore, want %v", i, c, before[i])
		}
	}

	var nilOverlay *Overlay
	if nilOverlay.Restore(doc) {
		t.Error("nil overlay Restore() should be false")
	}
	if Highlight(doc, Match{Line: 9}) != nil {
		t.Error("Highlight() on a missing row should be nil")
	}
}

func countMatchRows(doc *document.Document) int {
	n := 0
	for i := 0; i < doc.NumRows(); i++ {
		for _, c := range doc.Row(i).Highlight() {
			if c == highlight.Match {
				n++
				break
			}
		}
	}
	return n
}

func TestSession(t *testing.T) {
	doc := document.FromLines([]string{"foo", "bar foo", "baz", "foo bar"})
	s := NewSession(doc)

	m, ok := s.Edit("foo")
	if !ok || m.Line != 0 {
		t.Fatalf("Edit() = %+v, %v; want row 0", m, ok)
	}

	m, _ = s.Next("foo")
	if m.Line != 1 || m.Col != 4 {
		t.Errorf("Next() = %+v, want row 1 col 4", m)
	}
	m, _ = s.Next("foo")
	if m.Line != 3 {
		t.Errorf("Next() = %+v, want row 3", m)
	}
	m, _ = s.Next("foo")
	if m.Line != 0 {
		t.Errorf("Next() should wrap, got %+v", m)
	}
	m, _ = s.Prev("foo")
	if m.Line != 3 {
		t.Errorf("Prev() should wrap backward, got %+v", m)
	}
	if got := countMatchRows(doc); got != 1 {
		t.Errorf("%d rows carry a match overlay, want 1", got)
	}

	// Typing restarts from the top.
	m, _ = s.Edit("ba")
	if m.Line != 1 {
		t.Errorf("Edit() = %+v, want row 1", m)
	}

	if _, ok := s.Edit("nothing"); ok {
		t.Error("Edit(nothing) should fail")
	}
	if s.Overlay() != nil || countMatchRows(doc) != 0 {
		t.Error("a failed step should leave no overlay")
	}

	s.Next("foo")
	s.Done()
	if s.Overlay() != nil || countMatchRows(doc) != 0 {
		t.Error("Done() should remove the overlay")
	}
}

func TestSessionPrevWithoutMatchSearchesForward(t *testing.T) {
	doc := document.FromLines([]string{"a", "x", "x"})
	s := NewSession(doc)

	m, ok := s.Prev("x")
	if !ok || m.Line != 1 {
		t.Errorf("Prev() = %+v, %v; want row 1", m, ok)
	}
}

func builtin(name string) *syntax.Profile {
	p, ok := syntax.DefaultRegistry().Lookup(name)
	if !ok {
		panic("no built-in filetype " + name)
	}
	return p
}
