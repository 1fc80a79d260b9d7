// ═══════════════════════════════════════════════════════════════════════════════
// INDEX READER
// ═══════════════════════════════════════════════════════════════════════════════
// The reader is the query-time view of the three build artifacts. At open it
// loads the document directory and the dictionary fully into memory and keeps
// postings.bin open for random reads; posting lists are pulled lazily per
// query term.
//
// MEMORY LAYOUT:
// --------------
// All term bytes live in one contiguous pool; dictionary entries carry
// (offset, length) into it. That keeps the dictionary a flat []dictEntry —
// binary-searchable, one allocation, no per-term string headers.
//
// The universe — every docid in docs.tsv, including documents that produced
// no tokens — is materialized both as a sorted []uint32 and as a roaring
// bitmap, because it is the complement base for every NOT.
// ═══════════════════════════════════════════════════════════════════════════════

package ir

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/RoaringBitmap/roaring"
)

// ErrBadDictionary marks a malformed terms.tsv line (fewer than four
// tab-separated fields). The dictionary is a required artifact, so this is
// fatal at load.
var ErrBadDictionary = errors.New("malformed terms.tsv line")

// DocRec is one document-directory entry.
type DocRec struct {
	DocID uint32
	Lang  string
	Title string
	URL   string
	Path  string
}

// dictEntry references one term in the pool and its postings extent.
type dictEntry struct {
	termOff uint32
	termLen uint32
	df      uint32
	postOff uint64
	postLen uint64
}

// Reader provides random access to a built index.
type Reader struct {
	pool     []byte
	dict     []dictEntry
	docs     []DocRec // sorted by docid
	universe []uint32 // sorted, unique
	uniBits  *roaring.Bitmap
	postings *os.File
}

// OpenReader loads docs.tsv and terms.tsv from dir and opens postings.bin
// for random reads. All three artifacts are required.
func OpenReader(dir string) (*Reader, error) {
	r := &Reader{}
	if err := r.loadDocs(filepath.Join(dir, DocsFile)); err != nil {
		return nil, err
	}
	if err := r.loadDict(filepath.Join(dir, TermsFile)); err != nil {
		return nil, err
	}
	f, err := os.Open(filepath.Join(dir, PostingsFile))
	if err != nil {
		return nil, fmt.Errorf("cannot open %s: %w", PostingsFile, err)
	}
	r.postings = f
	return r, nil
}

// Close releases the postings file handle.
func (r *Reader) Close() error {
	if r.postings != nil {
		return r.postings.Close()
	}
	return nil
}

// DocCount returns the number of directory entries.
func (r *Reader) DocCount() int { return len(r.docs) }

// TermCount returns the number of dictionary entries.
func (r *Reader) TermCount() int { return len(r.dict) }

// Universe returns the sorted, unique set of all known docids.
func (r *Reader) Universe() []uint32 { return r.universe }

// UniverseBitmap returns the universe as a bitmap; callers must not mutate
// it (clone before AndNot-style in-place operations).
func (r *Reader) UniverseBitmap() *roaring.Bitmap { return r.uniBits }

// Doc looks up a directory record by docid.
func (r *Reader) Doc(docid uint32) (DocRec, bool) {
	i := sort.Search(len(r.docs), func(i int) bool { return r.docs[i].DocID >= docid })
	if i < len(r.docs) && r.docs[i].DocID == docid {
		return r.docs[i], true
	}
	return DocRec{}, false
}

// Lookup finds a term in the dictionary. ok is false on a miss.
func (r *Reader) Lookup(term string) (df uint32, ok bool) {
	i, ok := r.findTerm(term)
	if !ok {
		return 0, false
	}
	return r.dict[i].df, true
}

// Postings reads the full posting list for a term. A dictionary miss yields
// an empty list, not an error.
func (r *Reader) Postings(term string) ([]uint32, error) {
	i, ok := r.findTerm(term)
	if !ok {
		return nil, nil
	}
	e := r.dict[i]
	if e.df == 0 || e.postLen == 0 {
		return nil, nil
	}
	buf := make([]byte, e.postLen)
	if _, err := r.postings.ReadAt(buf, int64(e.postOff)); err != nil {
		return nil, fmt.Errorf("reading postings for %q: %w", term, err)
	}
	out := make([]uint32, e.df)
	for j := range out {
		out[j] = binary.LittleEndian.Uint32(buf[j*4:])
	}
	return out, nil
}

// findTerm binary-searches the dictionary by byte-wise term comparison.
func (r *Reader) findTerm(term string) (int, bool) {
	t := []byte(term)
	lo, hi := 0, len(r.dict)-1
	for lo <= hi {
		mid := lo + (hi-lo)/2
		e := r.dict[mid]
		c := bytes.Compare(r.pool[e.termOff:e.termOff+e.termLen], t)
		switch {
		case c == 0:
			return mid, true
		case c < 0:
			lo = mid + 1
		default:
			hi = mid - 1
		}
	}
	return 0, false
}

// loadDocs reads the document directory, sorts it by docid, and derives the
// universe. Short or malformed lines are skipped.
func (r *Reader) loadDocs(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("cannot open %s: %w", DocsFile, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 8*1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		fields := strings.SplitN(line, "\t", 5)
		if len(fields) < 5 {
			continue
		}
		id, err := strconv.ParseUint(fields[0], 10, 32)
		if err != nil {
			continue
		}
		r.docs = append(r.docs, DocRec{
			DocID: uint32(id),
			Lang:  fields[1],
			Title: fields[2],
			URL:   fields[3],
			Path:  fields[4],
		})
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", DocsFile, err)
	}

	sort.Slice(r.docs, func(i, j int) bool { return r.docs[i].DocID < r.docs[j].DocID })

	r.universe = make([]uint32, 0, len(r.docs))
	for _, d := range r.docs {
		if n := len(r.universe); n == 0 || r.universe[n-1] != d.DocID {
			r.universe = append(r.universe, d.DocID)
		}
	}
	r.uniBits = roaring.New()
	r.uniBits.AddMany(r.universe)
	return nil
}

// loadDict reads terms.tsv into the term pool and dictionary vector,
// preserving the file's ascending term order. A malformed line is fatal.
func (r *Reader) loadDict(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("cannot open %s: %w", TermsFile, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 8*1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if line == "" {
			continue
		}
		fields := strings.SplitN(line, "\t", 4)
		if len(fields) < 4 {
			return fmt.Errorf("%w: %s:%d", ErrBadDictionary, TermsFile, lineNo)
		}
		df, err := strconv.ParseUint(fields[1], 10, 32)
		if err != nil {
			return fmt.Errorf("%w: %s:%d: df: %v", ErrBadDictionary, TermsFile, lineNo, err)
		}
		postOff, err := strconv.ParseUint(fields[2], 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %s:%d: post_off: %v", ErrBadDictionary, TermsFile, lineNo, err)
		}
		postLen, err := strconv.ParseUint(fields[3], 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %s:%d: post_len: %v", ErrBadDictionary, TermsFile, lineNo, err)
		}

		r.dict = append(r.dict, dictEntry{
			termOff: uint32(len(r.pool)),
			termLen: uint32(len(fields[0])),
			df:      uint32(df),
			postOff: postOff,
			postLen: postLen,
		})
		r.pool = append(r.pool, fields[0]...)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", TermsFile, err)
	}
	return nil
}
