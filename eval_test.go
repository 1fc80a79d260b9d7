package ir

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func openTestEvaluator(t *testing.T) (*Reader, *Evaluator) {
	t.Helper()
	rd, err := OpenReader(buildTestIndex(t))
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	t.Cleanup(func() { rd.Close() })
	return rd, NewEvaluator(rd, DefaultAnalyzerConfig())
}

// ═══════════════════════════════════════════════════════════════════════════════
// READER TESTS
// ═══════════════════════════════════════════════════════════════════════════════

func TestReader_Directory(t *testing.T) {
	rd, _ := openTestEvaluator(t)

	if rd.DocCount() != 3 || rd.TermCount() != 3 {
		t.Errorf("docs=%d terms=%d, want 3 and 3", rd.DocCount(), rd.TermCount())
	}
	// The token-less document is still part of the universe.
	if want := []uint32{1, 3, 30002}; !reflect.DeepEqual(rd.Universe(), want) {
		t.Errorf("universe = %v, want %v", rd.Universe(), want)
	}

	d, ok := rd.Doc(30002)
	if !ok || d.Lang != "ru" || d.Title != "Гамма" {
		t.Errorf("Doc(30002) = %+v, %v", d, ok)
	}
	if _, ok := rd.Doc(99); ok {
		t.Error("Doc(99) found a ghost document")
	}
}

func TestReader_Postings(t *testing.T) {
	rd, _ := openTestEvaluator(t)

	tests := []struct {
		term string
		want []uint32
	}{
		{"alpha", []uint32{1}},
		{"beta", []uint32{1, 30002}},
		{"гамма", []uint32{30002}},
		{"missing", nil},
	}
	for _, tt := range tests {
		got, err := rd.Postings(tt.term)
		if err != nil {
			t.Fatalf("Postings(%q): %v", tt.term, err)
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Postings(%q) = %v, want %v", tt.term, got, tt.want)
		}
	}

	if df, ok := rd.Lookup("beta"); !ok || df != 2 {
		t.Errorf("Lookup(beta) = %d, %v", df, ok)
	}
	if _, ok := rd.Lookup("missing"); ok {
		t.Error("Lookup(missing) reported found")
	}
}

// ═══════════════════════════════════════════════════════════════════════════════
// EVALUATION TESTS
// ═══════════════════════════════════════════════════════════════════════════════

func TestSearch_Boolean(t *testing.T) {
	_, ev := openTestEvaluator(t)

	tests := []struct {
		q    string
		want []uint32
	}{
		{"alpha", []uint32{1}},
		{"Alpha", []uint32{1}}, // query terms are folded
		{"alpha AND beta", []uint32{1}},
		{"alpha OR гамма", []uint32{1, 30002}},
		{"NOT alpha", []uint32{3, 30002}},
		{"-alpha", []uint32{3, 30002}},
		{"(alpha OR beta) AND NOT гамма", []uint32{1}},
		{"beta AND NOT beta", nil},
		{"beta AND missing", nil},
		{"missing OR beta", []uint32{1, 30002}},
		{"NOT missing", []uint32{1, 3, 30002}},
		{"NOT NOT alpha", []uint32{1}},
	}
	for _, tt := range tests {
		t.Run(tt.q, func(t *testing.T) {
			got, err := ev.Search(tt.q)
			if err != nil {
				t.Fatalf("Search(%q): %v", tt.q, err)
			}
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Search(%q) = %v, want %v", tt.q, got, tt.want)
			}
		})
	}
}

func TestSearch_Algebra(t *testing.T) {
	_, ev := openTestEvaluator(t)

	eq := func(a, b string) {
		t.Helper()
		ra, err := ev.Search(a)
		if err != nil {
			t.Fatal(err)
		}
		rb, err := ev.Search(b)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(ra, rb) {
			t.Errorf("%q = %v, but %q = %v", a, ra, b, rb)
		}
	}

	eq("alpha AND beta", "beta AND alpha")
	eq("alpha OR гамма", "гамма OR alpha")
	eq("NOT (alpha OR гамма)", "NOT alpha AND NOT гамма")
	eq("NOT (alpha AND beta)", "NOT alpha OR NOT beta")
	eq("alpha", "NOT NOT alpha")
}

func TestSearch_ParseErrorSurfaces(t *testing.T) {
	_, ev := openTestEvaluator(t)
	if _, err := ev.Search("alpha AND"); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestSearch_UniverseUnchangedAfterNot(t *testing.T) {
	rd, ev := openTestEvaluator(t)
	before := rd.UniverseBitmap().GetCardinality()
	if _, err := ev.Search("NOT beta AND NOT alpha"); err != nil {
		t.Fatal(err)
	}
	if after := rd.UniverseBitmap().GetCardinality(); after != before {
		t.Errorf("universe bitmap mutated: %d -> %d", before, after)
	}
}

func TestWriteResults(t *testing.T) {
	_, ev := openTestEvaluator(t)

	var sb strings.Builder
	if err := ev.WriteResults(&sb, []uint32{1, 30002}, 0); err != nil {
		t.Fatal(err)
	}
	want := "1\ten\tAlpha\thttp://en/1\n" +
		"30002\tru\tГамма\thttp://ru/2\n"
	if sb.String() != want {
		t.Errorf("results:\n%s\nwant:\n%s", sb.String(), want)
	}
}

func TestWriteResults_TopAndUnknown(t *testing.T) {
	_, ev := openTestEvaluator(t)

	var sb strings.Builder
	if err := ev.WriteResults(&sb, []uint32{1, 3, 30002}, 2); err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(sb.String(), "\n"); got != 2 {
		t.Errorf("top=2 printed %d rows", got)
	}

	sb.Reset()
	if err := ev.WriteResults(&sb, []uint32{424242}, 5); err != nil {
		t.Fatal(err)
	}
	if want := "424242\t?\t?\t?\n"; sb.String() != want {
		t.Errorf("unknown docid row = %q, want %q", sb.String(), want)
	}
}

func TestEvaluator_StemmedQueryTerms(t *testing.T) {
	rd, err := OpenReader(buildStemmedIndex(t))
	if err != nil {
		t.Fatal(err)
	}
	defer rd.Close()
	ev := NewEvaluator(rd, AnalyzerConfig{Stemmer: StemmerNative})

	// "Running" folds to "running" and stems to "run", which is what the
	// stemmed index stores.
	ids, err := ev.Search("Running")
	if err != nil {
		t.Fatal(err)
	}
	if want := []uint32{1}; !reflect.DeepEqual(ids, want) {
		t.Errorf("Search(Running) = %v, want %v", ids, want)
	}
}

func buildStemmedIndex(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	corpus := filepath.Join(root, "corpus")
	writeCorpusFile(t, corpus, "enwiki/text/0001.txt", "A", "u", "running dogs")
	out := filepath.Join(root, "index")
	_, err := BuildIndex(BuildOptions{
		CorpusDir: corpus,
		OutDir:    out,
		Analyzer:  AnalyzerConfig{Stemmer: StemmerNative},
	})
	if err != nil {
		t.Fatal(err)
	}
	return out
}
