// ═══════════════════════════════════════════════════════════════════════════════
// QUERY EVALUATION: BITMAP SET ALGEBRA
// ═══════════════════════════════════════════════════════════════════════════════
// Evaluation is a pure post-order walk of the AST. Posting lists are
// materialized into roaring bitmaps and combined with bitmap operations:
//
//	TERM t   → fold (+ stem, if the index was built stemmed), load postings
//	AND a b  → roaring.And(A, B)        intersection
//	OR  a b  → roaring.Or(A, B)         union
//	NOT a    → roaring.AndNot(U, A)     complement against the universe
//
// The universe is every docid in the document directory — including documents
// that produced no tokens — so NOT can surface them.
//
// Bitmaps iterate in ascending docid order, so every intermediate result and
// the final []uint32 are sorted and unique by construction, matching what a
// two-pointer merge over the raw arrays would produce.
// ═══════════════════════════════════════════════════════════════════════════════

package ir

import (
	"fmt"
	"io"

	"github.com/RoaringBitmap/roaring"
)

// DefaultTop is the default number of result rows printed.
const DefaultTop = 20

// Evaluator executes boolean queries against an open index Reader.
type Evaluator struct {
	rd       *Reader
	analyzer AnalyzerConfig
}

// NewEvaluator wires a Reader to an evaluator. The analyzer configuration
// must match the one the index was built with, or stemmed indexes become
// unreachable from surface query terms.
func NewEvaluator(rd *Reader, analyzer AnalyzerConfig) *Evaluator {
	return &Evaluator{rd: rd, analyzer: analyzer}
}

// Search parses and evaluates a query, returning the matching docids in
// ascending order.
func (ev *Evaluator) Search(query string) ([]uint32, error) {
	ast, err := ParseQuery(query)
	if err != nil {
		return nil, err
	}
	bm, err := ev.Eval(ast)
	if err != nil {
		return nil, err
	}
	return bm.ToArray(), nil
}

// Eval evaluates an AST node to a bitmap of matching documents.
func (ev *Evaluator) Eval(n *Node) (*roaring.Bitmap, error) {
	switch n.Kind {
	case NodeTerm:
		return ev.termBitmap(n.Term)
	case NodeNot:
		a, err := ev.Eval(n.A)
		if err != nil {
			return nil, err
		}
		return roaring.AndNot(ev.rd.UniverseBitmap(), a), nil
	case NodeAnd:
		a, b, err := ev.evalPair(n)
		if err != nil {
			return nil, err
		}
		return roaring.And(a, b), nil
	case NodeOr:
		a, b, err := ev.evalPair(n)
		if err != nil {
			return nil, err
		}
		return roaring.Or(a, b), nil
	}
	return nil, fmt.Errorf("unknown query node kind %d", n.Kind)
}

func (ev *Evaluator) evalPair(n *Node) (*roaring.Bitmap, *roaring.Bitmap, error) {
	a, err := ev.Eval(n.A)
	if err != nil {
		return nil, nil, err
	}
	b, err := ev.Eval(n.B)
	if err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

// termBitmap folds (and optionally stems) a query term and loads its posting
// list. A dictionary miss is an empty bitmap, not an error.
func (ev *Evaluator) termBitmap(term string) (*roaring.Bitmap, error) {
	t := ev.analyzer.StemToken(Fold(term))
	ids, err := ev.rd.Postings(t)
	if err != nil {
		return nil, err
	}
	bm := roaring.New()
	bm.AddMany(ids)
	return bm, nil
}

// WriteResults prints up to top result rows to w, one per docid:
//
//	docid \t lang \t title \t url
//
// Docids missing from the directory render as "?" placeholders.
func (ev *Evaluator) WriteResults(w io.Writer, ids []uint32, top int) error {
	if top <= 0 {
		top = DefaultTop
	}
	if top > len(ids) {
		top = len(ids)
	}
	for _, id := range ids[:top] {
		d, ok := ev.rd.Doc(id)
		if !ok {
			d = DocRec{Lang: "?", Title: "?", URL: "?"}
		}
		if _, err := fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", id, d.Lang, d.Title, d.URL); err != nil {
			return err
		}
	}
	return nil
}
