// Command bool_index builds and inspects boolean retrieval indexes.
//
//	bool_index build    --corpus <dir> --out <dir> [--limit N] [--stemmer M]
//	bool_index lookup   --index <dir> --term <t>
//	bool_index verify   --index <dir>
//	bool_index tokenize --input <file|dir> [--print] [--limit N] [--freq-out f.tsv]
//	bool_index stem     [--lang auto|en|ru] [--input tokens.txt]
//
// Progress and summaries go to stderr; dumps go to stdout. Exit code 2 on
// usage errors and missing inputs.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	ir "github.com/Goida88/IR"
)

const lookupShow = 30

func newFlagSet(name string) *flag.FlagSet {
	fl := flag.NewFlagSet("bool_index "+name, flag.ExitOnError)
	fl.Usage = func() {
		usage()
		fl.PrintDefaults()
	}
	return fl
}

func loadConfig(path string) *ir.Config {
	cfg, err := ir.LoadConfig(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage:
  bool_index build    --corpus <dir> --out <dir> [--limit N] [--stemmer none|native|snowball] [--config f.yaml]
  bool_index lookup   --index <dir> --term <term>
  bool_index verify   --index <dir>
  bool_index tokenize --input <file|dir> [--print] [--limit N] [--freq-out out.tsv]
  bool_index stem     [--lang auto|en|ru] [--input tokens.txt]
`)
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "build":
		buildCmd(os.Args[2:])
	case "lookup":
		lookupCmd(os.Args[2:])
	case "verify":
		verifyCmd(os.Args[2:])
	case "tokenize":
		tokenizeCmd(os.Args[2:])
	case "stem":
		stemCmd(os.Args[2:])
	case "-h", "--help":
		usage()
	default:
		usage()
		os.Exit(2)
	}
}

func fatal(msg string, err error) {
	slog.Error(msg, "error", err)
	os.Exit(2)
}

func buildCmd(args []string) {
	fl := newFlagSet("build")
	corpus := fl.String("corpus", "", "corpus root directory")
	out := fl.String("out", "", "output index directory")
	limit := fl.Int("limit", 0, "index only the first N files (0 = all)")
	stemmer := fl.String("stemmer", "", "stemmer mode: none|native|snowball")
	configPath := fl.String("config", "", "optional YAML config file")
	fl.Parse(args)

	cfg := loadConfig(*configPath)
	if *stemmer != "" {
		cfg.Analyzer.Stemmer = *stemmer
	}
	ir.SetupLogging(cfg.Logging)

	if *corpus == "" || *out == "" {
		usage()
		os.Exit(2)
	}

	_, err := ir.BuildIndex(ir.BuildOptions{
		CorpusDir: *corpus,
		OutDir:    *out,
		Limit:     *limit,
		Analyzer:  cfg.Analyzer,
	})
	if err != nil {
		fatal("build failed", err)
	}
}

func lookupCmd(args []string) {
	fl := newFlagSet("lookup")
	indexDir := fl.String("index", "", "index directory")
	term := fl.String("term", "", "term to look up")
	fl.Parse(args)

	ir.SetupLogging(ir.DefaultConfig().Logging)
	if *indexDir == "" || *term == "" {
		usage()
		os.Exit(2)
	}

	rd, err := ir.OpenReader(*indexDir)
	if err != nil {
		fatal("cannot open index", err)
	}
	defer rd.Close()

	t := ir.Fold(*term)
	ids, err := rd.Postings(t)
	if err != nil {
		fatal("lookup failed", err)
	}
	if _, ok := rd.Lookup(t); !ok {
		fmt.Println("NOT FOUND")
		return
	}

	fmt.Printf("term=%s df=%d\n", t, len(ids))
	show := len(ids)
	if show > lookupShow {
		show = lookupShow
	}
	for _, id := range ids[:show] {
		fmt.Println(id)
	}
	if len(ids) > show {
		fmt.Printf("... (%d more)\n", len(ids)-show)
	}
}

func verifyCmd(args []string) {
	fl := newFlagSet("verify")
	indexDir := fl.String("index", "", "index directory")
	fl.Parse(args)

	ir.SetupLogging(ir.DefaultConfig().Logging)
	if *indexDir == "" {
		usage()
		os.Exit(2)
	}

	rep, err := ir.VerifyIndex(*indexDir)
	if err != nil {
		fatal("verify failed", err)
	}
	for _, issue := range rep.Issues {
		fmt.Println(issue)
	}
	slog.Info("verify done",
		"terms", rep.Terms,
		"docs", rep.Docs,
		"postings", rep.Postings,
		"issues", len(rep.Issues),
	)
	if !rep.OK() {
		os.Exit(1)
	}
}

// tokenizeCmd streams files through the tokenizer, reporting corpus-level
// token statistics and an optional term-frequency table.
func tokenizeCmd(args []string) {
	fl := newFlagSet("tokenize")
	input := fl.String("input", "", "input file or directory")
	print := fl.Bool("print", false, "print tokens to stdout")
	limit := fl.Uint64("limit", 0, "process only the first N files (0 = all)")
	freqOut := fl.String("freq-out", "", "write term frequencies to this TSV file")
	fl.Parse(args)

	ir.SetupLogging(ir.DefaultConfig().Logging)
	if *input == "" {
		usage()
		os.Exit(2)
	}

	info, err := os.Stat(*input)
	if err != nil {
		fatal("input path does not exist", err)
	}

	var files []string
	if info.IsDir() {
		err := filepath.WalkDir(*input, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.Type().IsRegular() && filepath.Ext(path) == ".txt" {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			fatal("walking input", err)
		}
		sort.Strings(files)
		if *limit > 0 && *limit < uint64(len(files)) {
			files = files[:*limit]
		}
	} else {
		files = []string{*input}
	}

	var freq map[string]uint64
	if *freqOut != "" {
		freq = make(map[string]uint64, 1<<17)
	}

	var nFiles, nBytes, nTokens, lenSum, nErrors uint64
	stdout := bufio.NewWriter(os.Stdout)
	for _, path := range files {
		f, err := os.Open(path)
		if err != nil {
			nErrors++
			continue
		}
		sc := bufio.NewScanner(f)
		sc.Buffer(make([]byte, 0, 64*1024), 8*1024*1024)
		for i := 0; i < 6 && sc.Scan(); i++ {
			// header lines
		}
		for sc.Scan() {
			line := sc.Text()
			nBytes += uint64(len(line)) + 1
			for _, tok := range ir.TokenizeLine(line) {
				nTokens++
				lenSum += uint64(len([]rune(tok)))
				if *print {
					fmt.Fprintln(stdout, tok)
				}
				if freq != nil {
					freq[tok]++
				}
			}
		}
		f.Close()
		nFiles++
	}
	stdout.Flush()

	avgLen := 0.0
	if nTokens > 0 {
		avgLen = float64(lenSum) / float64(nTokens)
	}
	slog.Info("tokenize done",
		"files", nFiles,
		"bytes", nBytes,
		"tokens", nTokens,
		"avg_token_len", fmt.Sprintf("%.2f", avgLen),
		"errors", nErrors,
	)

	if freq != nil {
		if err := writeFreq(*freqOut, freq); err != nil {
			fatal("writing frequency table", err)
		}
		slog.Info("frequency table written", "path", *freqOut, "unique_terms", len(freq))
	}
	if nErrors > 0 {
		os.Exit(1)
	}
}

// writeFreq dumps term frequencies sorted by count descending, term
// ascending.
func writeFreq(path string, freq map[string]uint64) error {
	type tf struct {
		term  string
		count uint64
	}
	rows := make([]tf, 0, len(freq))
	for t, c := range freq {
		rows = append(rows, tf{t, c})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].count != rows[j].count {
			return rows[i].count > rows[j].count
		}
		return rows[i].term < rows[j].term
	})

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%d\n", r.term, r.count)
	}
	return w.Flush()
}

// stemCmd is a line filter: tokens in, stems out.
func stemCmd(args []string) {
	fl := newFlagSet("stem")
	lang := fl.String("lang", "auto", "stemmer language: auto|en|ru")
	input := fl.String("input", "", "read tokens from this file instead of stdin")
	fl.Parse(args)

	ir.SetupLogging(ir.DefaultConfig().Logging)

	var stem func(string) string
	switch *lang {
	case "auto":
		stem = ir.Stem
	case "en":
		stem = ir.StemEnglish
	case "ru":
		stem = ir.StemRussian
	default:
		usage()
		os.Exit(2)
	}

	in := os.Stdin
	if *input != "" {
		f, err := os.Open(*input)
		if err != nil {
			fatal("cannot open input", err)
		}
		defer f.Close()
		in = f
	}

	var lines, changed uint64
	out := bufio.NewWriter(os.Stdout)
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		tok := strings.TrimRight(sc.Text(), "\r")
		if tok == "" {
			continue
		}
		s := stem(tok)
		if s != tok {
			changed++
		}
		fmt.Fprintln(out, s)
		lines++
	}
	out.Flush()
	slog.Info("stem done", "tokens_in", lines, "changed", changed, "lang", *lang)
}
