package ir

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

// ═══════════════════════════════════════════════════════════════════════════════
// VERIFICATION TESTS
// ═══════════════════════════════════════════════════════════════════════════════

func TestVerifyIndex_CleanBuild(t *testing.T) {
	rep, err := VerifyIndex(buildTestIndex(t))
	if err != nil {
		t.Fatal(err)
	}
	if !rep.OK() {
		t.Errorf("fresh build has issues: %v", rep.Issues)
	}
	if rep.Terms != 3 || rep.Docs != 3 || rep.Postings != 4 {
		t.Errorf("report = %+v", rep)
	}
}

func TestVerifyIndex_DetectsCorruption(t *testing.T) {
	writeIndex := func(t *testing.T, terms string, postings []uint32, docs string) string {
		t.Helper()
		dir := t.TempDir()
		buf := make([]byte, 4*len(postings))
		for i, id := range postings {
			binary.LittleEndian.PutUint32(buf[i*4:], id)
		}
		for name, data := range map[string][]byte{
			TermsFile:    []byte(terms),
			PostingsFile: buf,
			DocsFile:     []byte(docs),
		} {
			if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
				t.Fatal(err)
			}
		}
		return dir
	}
	docs := "1\ten\tA\tu\tp\n2\ten\tB\tu\tp\n"

	tests := []struct {
		name     string
		terms    string
		postings []uint32
		docs     string
	}{
		{"order violated", "b\t1\t0\t4\na\t1\t4\t4\n", []uint32{1, 2}, docs},
		{"duplicate term", "a\t1\t0\t4\na\t1\t4\t4\n", []uint32{1, 2}, docs},
		{"post_len mismatch", "a\t2\t0\t4\n", []uint32{1}, docs},
		{"gap in offsets", "a\t1\t0\t4\nb\t1\t8\t4\n", []uint32{1, 0, 2}, docs},
		{"postings not ascending", "a\t2\t0\t8\n", []uint32{2, 1}, docs},
		{"duplicate posting", "a\t2\t0\t8\n", []uint32{1, 1}, docs},
		{"unknown docid", "a\t1\t0\t4\n", []uint32{7}, docs},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep, err := VerifyIndex(writeIndex(t, tt.terms, tt.postings, tt.docs))
			if err != nil {
				t.Fatal(err)
			}
			if rep.OK() {
				t.Error("verification passed on a corrupt index")
			}
		})
	}
}

func TestOpenReader_MalformedDictionaryFatal(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		DocsFile:     "1\ten\tA\tu\tp\n",
		TermsFile:    "a\t1\t0\n", // three fields
		PostingsFile: "",
	}
	for name, data := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := OpenReader(dir); err == nil {
		t.Fatal("expected ErrBadDictionary")
	}
}

func TestOpenReader_MissingArtifacts(t *testing.T) {
	if _, err := OpenReader(t.TempDir()); err == nil {
		t.Fatal("expected error on empty index dir")
	}
}

func TestOpenReader_SkipsJunkDocLines(t *testing.T) {
	dir := t.TempDir()
	docs := "garbage\n\n1\ten\tA\tu\tp\nnotanum\ten\tB\tu\tp\n2\ten\tC\tu\tp\n"
	files := map[string]string{
		DocsFile:     docs,
		TermsFile:    "",
		PostingsFile: "",
	}
	for name, data := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	rd, err := OpenReader(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer rd.Close()
	if rd.DocCount() != 2 {
		t.Errorf("DocCount = %d, want 2", rd.DocCount())
	}
}
