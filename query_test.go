package ir

import (
	"errors"
	"testing"
)

// ═══════════════════════════════════════════════════════════════════════════════
// PARSER TESTS
// ═══════════════════════════════════════════════════════════════════════════════

func TestParseQuery_Shapes(t *testing.T) {
	tests := []struct {
		name  string
		q     string
		check func(t *testing.T, n *Node)
	}{
		{"single term", "alpha", func(t *testing.T, n *Node) {
			if n.Kind != NodeTerm || n.Term != "alpha" {
				t.Errorf("got %+v", n)
			}
		}},
		{"term keeps original case", "Alpha", func(t *testing.T, n *Node) {
			if n.Term != "Alpha" {
				t.Errorf("term = %q, want original text", n.Term)
			}
		}},
		{"and", "a AND b", func(t *testing.T, n *Node) {
			if n.Kind != NodeAnd || n.A.Term != "a" || n.B.Term != "b" {
				t.Errorf("got %+v", n)
			}
		}},
		{"lowercase operators", "a and b or c", func(t *testing.T, n *Node) {
			if n.Kind != NodeOr || n.A.Kind != NodeAnd || n.B.Term != "c" {
				t.Errorf("AND must bind tighter than OR: %+v", n)
			}
		}},
		{"not", "NOT a", func(t *testing.T, n *Node) {
			if n.Kind != NodeNot || n.A.Term != "a" {
				t.Errorf("got %+v", n)
			}
		}},
		{"dash is not", "-a", func(t *testing.T, n *Node) {
			if n.Kind != NodeNot || n.A.Term != "a" {
				t.Errorf("got %+v", n)
			}
		}},
		{"double not", "NOT NOT a", func(t *testing.T, n *Node) {
			if n.Kind != NodeNot || n.A.Kind != NodeNot || n.A.A.Term != "a" {
				t.Errorf("got %+v", n)
			}
		}},
		{"parens override precedence", "(a OR b) AND c", func(t *testing.T, n *Node) {
			if n.Kind != NodeAnd || n.A.Kind != NodeOr || n.B.Term != "c" {
				t.Errorf("got %+v", n)
			}
		}},
		{"parens hug terms", "(a)AND(b)", func(t *testing.T, n *Node) {
			if n.Kind != NodeAnd || n.A.Term != "a" || n.B.Term != "b" {
				t.Errorf("got %+v", n)
			}
		}},
		{"left associative or", "a OR b OR c", func(t *testing.T, n *Node) {
			if n.Kind != NodeOr || n.A.Kind != NodeOr || n.B.Term != "c" {
				t.Errorf("got %+v", n)
			}
		}},
		{"cyrillic terms", "мир AND тест", func(t *testing.T, n *Node) {
			if n.Kind != NodeAnd || n.A.Term != "мир" || n.B.Term != "тест" {
				t.Errorf("got %+v", n)
			}
		}},
		{"cyrillic word stays a term", "ИЛИ", func(t *testing.T, n *Node) {
			if n.Kind != NodeTerm || n.Term != "ИЛИ" {
				t.Errorf("got %+v", n)
			}
		}},
		{"mixed case operator", "a AnD b", func(t *testing.T, n *Node) {
			if n.Kind != NodeAnd {
				t.Errorf("got %+v", n)
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := ParseQuery(tt.q)
			if err != nil {
				t.Fatalf("ParseQuery(%q): %v", tt.q, err)
			}
			tt.check(t, n)
		})
	}
}

func TestParseQuery_Errors(t *testing.T) {
	bad := []string{
		"",
		"   ",
		"alpha AND",
		"AND alpha",
		"OR",
		"(alpha",
		"alpha)",
		"alpha beta", // adjacency is not implicit AND
		"()",
		"NOT",
		"alpha AND (beta OR)",
	}
	for _, q := range bad {
		if _, err := ParseQuery(q); err == nil {
			t.Errorf("ParseQuery(%q) succeeded, want error", q)
		} else if !errors.Is(err, ErrParse) {
			t.Errorf("ParseQuery(%q) error %v is not ErrParse", q, err)
		}
	}
}

func TestLexQuery_DashBehavior(t *testing.T) {
	// A lone dash lexes as NOT, but a dash inside a word stays part of the
	// term — the tokenizer's joiner rules apply at evaluation.
	n, err := ParseQuery("- alpha")
	if err != nil {
		t.Fatal(err)
	}
	if n.Kind != NodeNot {
		t.Errorf("lone dash: got %+v", n)
	}
	n, err = ParseQuery("stop-now")
	if err != nil {
		t.Fatal(err)
	}
	if n.Kind != NodeTerm || n.Term != "stop-now" {
		t.Errorf("inner dash: got %+v", n)
	}
}
