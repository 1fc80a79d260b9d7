// Command bool_search evaluates boolean queries against a built index.
//
//	bool_search --index <dir> --query "<expr>" [--top N]
//	bool_search --index <dir>            (reads one query per line from stdin)
//
// In stdin mode, lines starting with '#' are comments and "----" is printed
// after each processed line. Query results go to stdout; load and per-query
// timing go to stderr. Exit code 2 on usage errors and missing inputs; in
// stdin mode a query parse error is reported and the loop continues.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	ir "github.com/Goida88/IR"
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage:
  bool_search --index <dir> --query "<expr>" [--top N] [--config f.yaml]
  bool_search --index <dir>            (reads queries from stdin)
`)
}

func main() {
	fl := flag.NewFlagSet("bool_search", flag.ExitOnError)
	fl.Usage = usage
	indexDir := fl.String("index", "", "index directory")
	query := fl.String("query", "", "single query to evaluate")
	top := fl.Int("top", 0, "max results to print (default 20)")
	configPath := fl.String("config", "", "optional YAML config file")
	fl.Parse(os.Args[1:])

	cfg, err := ir.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
	ir.SetupLogging(cfg.Logging)

	if *indexDir == "" {
		usage()
		os.Exit(2)
	}
	if *top <= 0 {
		*top = cfg.Search.Top
	}

	t0 := time.Now()
	rd, err := ir.OpenReader(*indexDir)
	if err != nil {
		slog.Error("cannot open index", "error", err)
		os.Exit(2)
	}
	defer rd.Close()
	slog.Info("index loaded",
		"docs", rd.DocCount(),
		"universe", len(rd.Universe()),
		"terms", rd.TermCount(),
		"elapsed", time.Since(t0).Round(time.Millisecond),
	)

	ev := ir.NewEvaluator(rd, cfg.Analyzer)
	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	runOne := func(q string) error {
		q0 := time.Now()
		ids, err := ev.Search(q)
		if err != nil {
			return err
		}
		slog.Info("search",
			"hits", len(ids),
			"elapsed", time.Since(q0).Round(time.Microsecond),
			"query", q,
		)
		return ev.WriteResults(out, ids, *top)
	}

	// Single-shot mode.
	if *query != "" {
		if err := runOne(*query); err != nil {
			out.Flush()
			slog.Error("query failed", "error", err)
			os.Exit(2)
		}
		return
	}

	// REPL mode: one query per line, '#' comments, "----" separators.
	// Parse errors abort the query, not the session.
	sc := bufio.NewScanner(os.Stdin)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if len(line) > 0 && line[0] == '#' {
			continue
		}
		if line != "" {
			if err := runOne(line); err != nil {
				if !errors.Is(err, ir.ErrParse) {
					out.Flush()
					slog.Error("query failed", "error", err)
					os.Exit(2)
				}
				slog.Error("bad query", "error", err, "query", line)
			}
		}
		fmt.Fprintln(out, "----")
		out.Flush()
	}
}
