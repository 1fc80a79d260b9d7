// ═══════════════════════════════════════════════════════════════════════════════
// INDEX VERIFICATION
// ═══════════════════════════════════════════════════════════════════════════════
// Offline consistency check of the three artifacts against the format
// contract:
//
//  1. terms.tsv is strictly ascending by term bytes, no duplicates
//  2. post_len = df*4 and postings are laid out contiguously
//  3. every posting list is a strictly ascending u32 array of length df
//  4. every posted docid appears in docs.tsv
//
// Violations are collected, not fatal, so one bad term does not hide the
// rest. I/O failures on the artifacts themselves are errors.
// ═══════════════════════════════════════════════════════════════════════════════

package ir

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// maxVerifyIssues caps the report so a corrupt index does not produce
// millions of lines.
const maxVerifyIssues = 100

// VerifyReport summarizes an index verification run.
type VerifyReport struct {
	Terms    int
	Docs     int
	Postings uint64
	Issues   []string
}

// OK reports whether verification found no violations.
func (r *VerifyReport) OK() bool { return len(r.Issues) == 0 }

func (r *VerifyReport) issue(format string, args ...any) {
	if len(r.Issues) < maxVerifyIssues {
		r.Issues = append(r.Issues, fmt.Sprintf(format, args...))
	}
}

// VerifyIndex checks the artifacts in dir against the format invariants.
func VerifyIndex(dir string) (*VerifyReport, error) {
	rd, err := OpenReader(dir)
	if err != nil {
		return nil, err
	}
	defer rd.Close()

	rep := &VerifyReport{Terms: rd.TermCount(), Docs: rd.DocCount()}

	var prevTerm []byte
	var nextOff uint64
	for i, e := range rd.dict {
		term := rd.pool[e.termOff : e.termOff+e.termLen]
		if i > 0 && bytes.Compare(prevTerm, term) >= 0 {
			rep.issue("dictionary order violated at entry %d: %q !< %q", i, prevTerm, term)
		}
		prevTerm = term

		if e.postLen != uint64(e.df)*4 {
			rep.issue("term %q: post_len=%d, want df*4=%d", term, e.postLen, uint64(e.df)*4)
		}
		if e.postOff != nextOff {
			rep.issue("term %q: post_off=%d, want contiguous %d", term, e.postOff, nextOff)
		}
		nextOff = e.postOff + e.postLen

		if err := rep.checkPostings(rd, string(term), e); err != nil {
			return nil, err
		}
	}
	return rep, nil
}

// checkPostings reads one term's posting list and validates ordering, length,
// and docid membership in the directory.
func (rep *VerifyReport) checkPostings(rd *Reader, term string, e dictEntry) error {
	if e.postLen == 0 {
		return nil
	}
	buf := make([]byte, e.postLen)
	if _, err := rd.postings.ReadAt(buf, int64(e.postOff)); err != nil {
		return fmt.Errorf("reading postings for %q: %w", term, err)
	}

	// Iterate what is actually on disk; a df/post_len mismatch is already
	// reported by the caller.
	var prev uint32
	for j, n := uint64(0), e.postLen/4; j < n; j++ {
		id := binary.LittleEndian.Uint32(buf[j*4:])
		if j > 0 && id <= prev {
			rep.issue("term %q: postings not strictly ascending at %d: %d <= %d", term, j, id, prev)
		}
		if _, ok := rd.Doc(id); !ok {
			rep.issue("term %q: docid %d not in %s", term, id, DocsFile)
		}
		prev = id
		rep.Postings++
	}
	return nil
}
