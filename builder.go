// ═══════════════════════════════════════════════════════════════════════════════
// INDEX BUILDER
// ═══════════════════════════════════════════════════════════════════════════════
// The builder turns a corpus directory into three flat artifacts:
//
//	docs.tsv      docid \t lang \t title \t url \t path   (input order)
//	terms.tsv     term \t df \t post_off \t post_len      (sorted by term)
//	postings.bin  concatenated little-endian u32 arrays, dictionary order
//
// BUILD FLOW:
// -----------
//  1. Enumerate *.txt files under paths containing "/text/", sorted.
//  2. Per file: parse the 6-line header (Title:/URL:), derive the docid from
//     the filename digits (+30000 for Russian documents so the two id spaces
//     never collide), append a docs.tsv record, then feed every body line
//     through the analyzer into the term table.
//  3. Finalize: sort terms by bytes, sort+deduplicate each posting list, and
//     stream the dictionary and postings out contiguously.
//
// The term table is an ordinary owning map; per-document deduplication stamps
// each term entry with the ordinal of the last document that posted it, which
// answers "seen in this document?" in O(1) without a separate set.
// ═══════════════════════════════════════════════════════════════════════════════

package ir

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"time"
)

// Artifact file names inside an index directory.
const (
	DocsFile     = "docs.tsv"
	TermsFile    = "terms.tsv"
	PostingsFile = "postings.bin"
)

// ruDocOffset keeps English and Russian docid spaces disjoint without
// renumbering the source files.
const ruDocOffset = 30000

// headerLines is the number of leading metadata lines in every corpus file.
const headerLines = 6

// progressEvery controls how often build progress is logged.
const progressEvery = 500

// ErrEmptyCorpus is returned when the corpus walk finds no indexable files.
var ErrEmptyCorpus = errors.New("no .txt files found under corpus")

// BuildOptions configures one index build.
type BuildOptions struct {
	CorpusDir string
	OutDir    string
	Limit     int // keep only the first N files when > 0
	Analyzer  AnalyzerConfig
}

// BuildStats summarizes a finished build.
type BuildStats struct {
	Docs        uint32
	Bytes       uint64
	Tokens      uint64
	Postings    uint64
	UniqueTerms int
	Elapsed     time.Duration
}

// termEntry accumulates one term's postings during the build.
//
// lastSeen holds the 1-based ordinal of the last document that appended its
// docid; comparing it against the current ordinal deduplicates repeated
// occurrences within a document.
type termEntry struct {
	term     string
	postings []uint32
	lastSeen int
}

// BuildIndex builds the three index artifacts from a corpus tree.
// A corpus file that cannot be opened is logged and skipped; all other
// failures abort the build.
func BuildIndex(opts BuildOptions) (*BuildStats, error) {
	if err := opts.Analyzer.Validate(); err != nil {
		return nil, err
	}
	files, err := collectTextFiles(opts.CorpusDir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyCorpus, opts.CorpusDir)
	}
	if opts.Limit > 0 && opts.Limit < len(files) {
		files = files[:opts.Limit]
	}

	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}
	docsOut, err := os.Create(filepath.Join(opts.OutDir, DocsFile))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", DocsFile, err)
	}
	defer docsOut.Close()
	docsW := bufio.NewWriter(docsOut)

	table := make(map[string]*termEntry, 1<<16)
	st := &BuildStats{}
	start := time.Now()
	var tokens []string
	var postings uint64

	for ord, path := range files {
		f, err := os.Open(path)
		if err != nil {
			slog.Warn("cannot open corpus file, skipping", "path", path, "error", err)
			continue
		}

		slash := filepath.ToSlash(path)
		lang := langFromPath(slash)
		docid := docIDFromPath(path)
		if lang == "ru" {
			docid += ruDocOffset
		}

		sc := bufio.NewScanner(f)
		sc.Buffer(make([]byte, 0, 64*1024), 8*1024*1024)

		title, url := parseHeader(sc)
		fmt.Fprintf(docsW, "%d\t%s\t%s\t%s\t%s\n", docid, lang, title, url, slash)

		seq := ord + 1 // 1-based so the zero value of lastSeen never matches
		for sc.Scan() {
			line := sc.Text()
			st.Bytes += uint64(len(line)) + 1
			tokens = AppendTokens(tokens[:0], line)
			for _, tok := range tokens {
				st.Tokens++
				tok = opts.Analyzer.StemToken(tok)
				if tok == "" {
					continue
				}
				e := table[tok]
				if e == nil {
					e = &termEntry{term: tok}
					table[tok] = e
				}
				if e.lastSeen != seq {
					e.lastSeen = seq
					e.postings = append(e.postings, docid)
					postings++
				}
			}
		}
		f.Close()
		if err := sc.Err(); err != nil {
			slog.Warn("read error, document truncated", "path", path, "error", err)
		}

		st.Docs++
		if st.Docs%progressEvery == 0 {
			slog.Info("build progress",
				"docs", st.Docs,
				"terms", len(table),
				"postings", postings,
				"tokens", st.Tokens,
				"elapsed", time.Since(start).Round(time.Millisecond),
			)
		}
	}

	if err := docsW.Flush(); err != nil {
		return nil, fmt.Errorf("writing %s: %w", DocsFile, err)
	}

	if err := writeDictionary(opts.OutDir, table, st); err != nil {
		return nil, err
	}

	st.Elapsed = time.Since(start)
	slog.Info("build done",
		"docs", st.Docs,
		"unique_terms", st.UniqueTerms,
		"postings", st.Postings,
		"tokens", st.Tokens,
		"bytes", st.Bytes,
		"elapsed", st.Elapsed.Round(time.Millisecond),
	)
	return st, nil
}

// writeDictionary finalizes the term table and writes terms.tsv plus
// postings.bin. Postings are sorted, deduplicated, and laid out contiguously
// in dictionary order so post_off grows monotonically.
func writeDictionary(outDir string, table map[string]*termEntry, st *BuildStats) error {
	entries := make([]*termEntry, 0, len(table))
	for _, e := range table {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].term < entries[j].term })

	postOut, err := os.Create(filepath.Join(outDir, PostingsFile))
	if err != nil {
		return fmt.Errorf("creating %s: %w", PostingsFile, err)
	}
	defer postOut.Close()
	termsOut, err := os.Create(filepath.Join(outDir, TermsFile))
	if err != nil {
		return fmt.Errorf("creating %s: %w", TermsFile, err)
	}
	defer termsOut.Close()

	postW := bufio.NewWriter(postOut)
	termsW := bufio.NewWriter(termsOut)

	var offset uint64
	for _, e := range entries {
		slices.Sort(e.postings)
		e.postings = slices.Compact(e.postings)
		df := uint32(len(e.postings))
		byteLen := uint64(df) * 4

		fmt.Fprintf(termsW, "%s\t%d\t%d\t%d\n", e.term, df, offset, byteLen)
		if err := binary.Write(postW, binary.LittleEndian, e.postings); err != nil {
			return fmt.Errorf("writing %s: %w", PostingsFile, err)
		}
		offset += byteLen
		st.Postings += uint64(df)
	}
	st.UniqueTerms = len(entries)

	if err := postW.Flush(); err != nil {
		return fmt.Errorf("writing %s: %w", PostingsFile, err)
	}
	if err := termsW.Flush(); err != nil {
		return fmt.Errorf("writing %s: %w", TermsFile, err)
	}
	return nil
}

// collectTextFiles enumerates regular *.txt files whose slash path contains
// "/text/", sorted ascending by path.
func collectTextFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if filepath.Ext(path) != ".txt" {
			return nil
		}
		if !strings.Contains(filepath.ToSlash(path), "/text/") {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking corpus: %w", err)
	}
	sort.Strings(files)
	return files, nil
}

// langFromPath infers the document language from the corpus layout.
func langFromPath(slashPath string) string {
	switch {
	case strings.Contains(slashPath, "/enwiki/"):
		return "en"
	case strings.Contains(slashPath, "/ruwiki/"):
		return "ru"
	}
	return "unk"
}

// docIDFromPath concatenates the ASCII digits of the file stem and parses
// them base-10 into a u32 (wrapping, like the original numbering tool).
func docIDFromPath(path string) uint32 {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	var v uint32
	for i := 0; i < len(stem); i++ {
		c := stem[i]
		if c < '0' || c > '9' {
			continue
		}
		v = v*10 + uint32(c-'0')
	}
	return v
}

// parseHeader consumes up to headerLines lines from the scanner, capturing
// the Title: and URL: fields. A single space after the colon is trimmed.
func parseHeader(sc *bufio.Scanner) (title, url string) {
	for i := 0; i < headerLines; i++ {
		if !sc.Scan() {
			return title, url
		}
		line := sc.Text()
		if v, ok := strings.CutPrefix(line, "Title:"); ok {
			title = strings.TrimPrefix(v, " ")
		} else if v, ok := strings.CutPrefix(line, "URL:"); ok {
			url = strings.TrimPrefix(v, " ")
		}
	}
	return title, url
}
