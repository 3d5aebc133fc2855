package highlight

import (
	"testing"

	"github.com/dshills/kiln/internal/syntax"
)

var cProfile = builtin("c")

func builtin(name string) *syntax.Profile {
	p, ok := syntax.DefaultRegistry().Lookup(name)
	if !ok {
		panic("no built-in filetype " + name)
	}
	return p
}

// classString renders classes as one letter each for compact comparisons.
func classString(hl []Class) string {
	letters := map[Class]byte{
		Normal:       '.',
		Comment:      'c',
		BlockComment: 'b',
		Keyword1:     'k',
		Keyword2:     't',
		String:       's',
		Number:       'n',
		Match:        'm',
	}
	out := make([]byte, len(hl))
	for i, c := range hl {
		out[i] = letters[c]
	}
	return string(out)
}

func TestScan(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		in       bool
		want     string
		wantOpen bool
	}{
		{"keyword needs separator", "intx", false, "....", false},
		{"keyword before space", "int x", false, "ttt..", false},
		{"keyword at end", "return", false, "kkkkkk", false},
		{"keyword after punctuation", "(int)", false, ".ttt.", false},
		{"keyword inside identifier", "xint", false, "....", false},
		{"primary keyword", "if (x)", false, "kk....", false},
		{"number", "x = 42;", false, "....nn.", false},
		{"decimal", "3.14", false, "nnnn", false},
		{"number in identifier", "x1", false, "..", false},
		{"number after paren", "f(1)", false, "..n.", false},
		{"string", `"ab" x`, false, "ssss..", false},
		{"single quote", `'a'`, false, "sss", false},
		{"escaped quote", `"a\"b"`, false, "ssssss", false},
		{"unterminated string", `"abc`, false, "ssss", false},
		{"comment marker in string", `"//"`, false, "ssss", false},
		{"line comment", "x // int", false, "..cccccc", false},
		{"block comment", "a /* b */ c", false, "..bbbbbbb..", false},
		{"open block comment", "x /* y", false, "..bbbb", true},
		{"continued comment", "still", true, "bbbbb", true},
		{"closing comment", "a */ int b", true, "bbbb.ttt..", false},
		{"block start in string", `"/*" x`, false, "ssss..", false},
		{"empty row keeps state", "", true, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hl, open := Scan([]byte(tt.text), cProfile, tt.in, nil)
			if len(hl) != len(tt.text) {
				t.Fatalf("len(hl) = %d, want %d", len(hl), len(tt.text))
			}
			if got := classString(hl); got != tt.want {
				t.Errorf("Scan(%q) = %q, want %q", tt.text, got, tt.want)
			}
			if open != tt.wantOpen {
				t.Errorf("Scan(%q) open = %v, want %v", tt.text, open, tt.wantOpen)
			}
		})
	}
}

func TestScanNilProfile(t *testing.T) {
	hl, open := Scan([]byte("/* int 1"), nil, true, nil)
	if open {
		t.Error("nil profile should never leave a comment open")
	}
	for i, c := range hl {
		if c != Normal {
			t.Errorf("class[%d] = %v, want normal", i, c)
		}
	}
}

func TestScanFlags(t *testing.T) {
	p := syntax.NewProfile(syntax.Definition{
		Name:     "plain",
		Keywords: []string{"if"},
	})

	hl, _ := Scan([]byte(`if "a" 12`), p, false, nil)
	if got := classString(hl); got != "kk......." {
		t.Errorf("Scan() = %q, want numbers and strings disabled", got)
	}
}

func TestScanWithoutBlockComment(t *testing.T) {
	p := builtin("python")

	hl, open := Scan([]byte("/* x # y"), p, true, nil)
	if open {
		t.Error("profile without block markers cannot leave a comment open")
	}
	if got := classString(hl); got != ".....ccc" {
		t.Errorf("Scan() = %q", got)
	}
}

func TestScanReusesDst(t *testing.T) {
	dst := make([]Class, 3, 16)
	for i := range dst {
		dst[i] = Match
	}

	hl, _ := Scan([]byte("abcde"), cProfile, false, dst)
	if &hl[0] != &dst[0] {
		t.Error("Scan should reuse dst when it has capacity")
	}
	for i, c := range hl {
		if c != Normal {
			t.Errorf("class[%d] = %v, want normal", i, c)
		}
	}
}

func TestIsSeparator(t *testing.T) {
	for _, c := range []byte(" \t\n\x00,.()+-/*=~%<>[];") {
		if !IsSeparator(c) {
			t.Errorf("IsSeparator(%q) = false", c)
		}
	}
	for _, c := range []byte("az09_\"'{}#|") {
		if IsSeparator(c) {
			t.Errorf("IsSeparator(%q) = true", c)
		}
	}
}
