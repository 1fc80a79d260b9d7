// ═══════════════════════════════════════════════════════════════════════════════
// TEXT ANALYSIS PIPELINE
// ═══════════════════════════════════════════════════════════════════════════════
// Analysis transforms a raw text line into the terms that enter the index:
//
//  1. Tokenization → codepoint-level segmentation, lowercased (tokenizer.go)
//  2. Stemming     → optional per-token morphological reduction (stemmer.go)
//
// The SAME pipeline must run at build time and at query time, otherwise a
// stemmed index is unreachable from unstemmed query terms. The builder and
// the evaluator therefore both take an AnalyzerConfig.
//
// STEMMER MODES:
// --------------
//   "none"      no stemming; index stores surface tokens (the default — the
//               published corpus artifacts are unstemmed)
//   "native"    the package's own English/Russian stemmers
//   "snowball"  the kljensen/snowball English/Russian stemmers, same script
//               dispatch; coarser stems, smaller dictionary
// ═══════════════════════════════════════════════════════════════════════════════

package ir

import (
	"fmt"

	snowballeng "github.com/kljensen/snowball/english"
	snowballru "github.com/kljensen/snowball/russian"
)

// Stemmer mode names accepted by AnalyzerConfig.
const (
	StemmerNone     = "none"
	StemmerNative   = "native"
	StemmerSnowball = "snowball"
)

// AnalyzerConfig selects how tokens are normalized after segmentation.
type AnalyzerConfig struct {
	Stemmer string `yaml:"stemmer"` // none | native | snowball
}

// DefaultAnalyzerConfig returns the configuration matching the published
// index artifacts: tokenization only, no stemming.
func DefaultAnalyzerConfig() AnalyzerConfig {
	return AnalyzerConfig{Stemmer: StemmerNone}
}

// Validate checks that the configured stemmer mode is known.
func (c AnalyzerConfig) Validate() error {
	switch c.Stemmer {
	case "", StemmerNone, StemmerNative, StemmerSnowball:
		return nil
	}
	return fmt.Errorf("unknown stemmer mode %q", c.Stemmer)
}

// StemToken reduces a single lowercased token according to the configured
// mode. Mode "none" (or empty) returns the token unchanged.
func (c AnalyzerConfig) StemToken(tok string) string {
	switch c.Stemmer {
	case StemmerNative:
		return Stem(tok)
	case StemmerSnowball:
		if hasCyrillic(tok) {
			return snowballru.Stem(tok, false)
		}
		return snowballeng.Stem(tok, false)
	}
	return tok
}

// Analyze runs the full pipeline on one line: tokenize, then stem each token
// per the configuration.
func Analyze(line string, cfg AnalyzerConfig) []string {
	tokens := TokenizeLine(line)
	if cfg.Stemmer == "" || cfg.Stemmer == StemmerNone {
		return tokens
	}
	for i, tok := range tokens {
		tokens[i] = cfg.StemToken(tok)
	}
	return tokens
}
