// ═══════════════════════════════════════════════════════════════════════════════
// STEMMER: LIGHTWEIGHT MORPHOLOGICAL REDUCTION
// ═══════════════════════════════════════════════════════════════════════════════
// Two deliberately simple stemmers — a trimmed Porter variant for English and
// a Snowball-flavored suffix stripper for Russian — plus a script-based
// dispatcher. Their contract is the exact rule set below, not linguistic
// correctness: the same corpus must always stem to the same terms, so the
// known rough edges (the eed branch, the ылы suffix) are frozen and must not
// be "fixed" without rebuilding every index.
// ═══════════════════════════════════════════════════════════════════════════════

package ir

import "strings"

// Stem reduces a lowercased token, dispatching by script: a token containing
// any Cyrillic lead byte (0xD0/0xD1) goes to the Russian stemmer, everything
// else to the English one.
func Stem(tok string) string {
	if hasCyrillic(tok) {
		return StemRussian(tok)
	}
	return StemEnglish(tok)
}

func hasCyrillic(tok string) bool {
	for i := 0; i < len(tok); i++ {
		if tok[i] == 0xD0 || tok[i] == 0xD1 {
			return true
		}
	}
	return false
}

// ───────────────────────────────────────────────────────────────────────────────
// ENGLISH
// ───────────────────────────────────────────────────────────────────────────────

func isVowelEn(c byte) bool {
	return c == 'a' || c == 'e' || c == 'i' || c == 'o' || c == 'u'
}

// hasVowelEn reports whether s contains a vowel; 'y' counts as one anywhere
// except position 0.
func hasVowelEn(s string) bool {
	for i := 0; i < len(s); i++ {
		if isVowelEn(s[i]) {
			return true
		}
		if s[i] == 'y' && i > 0 {
			return true
		}
	}
	return false
}

func isConsonantEn(c byte) bool {
	if c < 'a' || c > 'z' {
		return false
	}
	return !isVowelEn(c) && c != 'y'
}

// StemEnglish applies the simplified Porter pipeline to an ASCII lowercase
// token. Tokens shorter than 3 bytes pass through unchanged.
//
// The pipeline, in order:
//
//  1. plural suffixes: sses→ss, ies→i, ss kept, trailing s dropped when the
//     rest contains a vowel (and the token is longer than 3)
//  2. verb suffixes: eed→ee (only when the token is longer than 4 — "feed"
//     stays, "agreed" → "agree"), ed/ing dropped when the rest has a vowel
//  3. tail rewrite: a stem ending in at/bl/iz gains an 'e'
//  4. double consonant: a trailing doubled consonant outside {l,s,z} loses
//     one letter
//  5. final y→i when preceded by a vowel
func StemEnglish(tok string) string {
	n := len(tok)
	if n < 3 {
		return tok
	}

	// Step 1: plural suffixes. The n>3 guard uses the original length.
	switch {
	case strings.HasSuffix(tok, "sses"):
		tok = tok[:len(tok)-2]
	case strings.HasSuffix(tok, "ies"):
		tok = tok[:len(tok)-2]
	case strings.HasSuffix(tok, "ss"):
		// keep
	case strings.HasSuffix(tok, "s") && n > 3:
		if hasVowelEn(tok[:len(tok)-1]) {
			tok = tok[:len(tok)-1]
		}
	}

	if len(tok) < 3 {
		return tok
	}

	// Step 2: verb suffixes.
	switch {
	case strings.HasSuffix(tok, "eed"):
		if len(tok) > 4 {
			tok = tok[:len(tok)-1]
		}
	case strings.HasSuffix(tok, "ed"):
		if hasVowelEn(tok[:len(tok)-2]) {
			tok = tok[:len(tok)-2]
		}
	case strings.HasSuffix(tok, "ing"):
		if hasVowelEn(tok[:len(tok)-3]) {
			tok = tok[:len(tok)-3]
		}
	}

	// Step 3: tail rewrite.
	if len(tok) >= 2 {
		switch tok[len(tok)-2:] {
		case "at", "bl", "iz":
			tok += "e"
		}
	}

	// Step 4: trailing double consonant.
	if n := len(tok); n >= 2 && tok[n-1] == tok[n-2] && isConsonantEn(tok[n-1]) {
		if c := tok[n-1]; c != 'l' && c != 's' && c != 'z' {
			tok = tok[:n-1]
		}
	}

	// Step 5: final y → i.
	if n := len(tok); n >= 2 && tok[n-1] == 'y' && hasVowelEn(tok[:n-1]) {
		tok = tok[:n-1] + "i"
	}

	return tok
}

// ───────────────────────────────────────────────────────────────────────────────
// RUSSIAN
// ───────────────────────────────────────────────────────────────────────────────

// minStemBytesRu is the minimum byte length of the prefix that must survive
// suffix stripping — 4 bytes, roughly two Cyrillic characters.
const minStemBytesRu = 4

var (
	ruReflexive = []string{"ся", "сь"}

	ruAdjective = []string{
		"ыми", "ими", "ого", "ему", "ому", "ее", "ие", "ое", "ая", "яя",
		"ый", "ий", "ой", "ые", "ие", "ых", "их", "ую", "юю",
	}

	ruVerb = []string{
		"ившись", "ывшись", "вшись",
		"иться",
		"ать", "ять", "еть", "ить", "ыть", "нуть",
		"ала", "яла", "ела", "ила", "ыла", "али", "яли", "ели", "или", "ылы",
		"ает", "яет", "еет", "ит", "ют", "уют", "яют", "ешь", "ишь", "ем", "им", "ете", "ите",
		"ал", "ял", "ел", "ил", "ыл",
	}

	ruNoun = []string{
		"иями", "ями", "ами",
		"ов", "ев", "ей", "ам", "ям", "ах", "ях", "ом", "ем", "ой", "ей", "ою", "ею",
		"а", "я", "у", "ю", "е", "о", "ы", "и", "ь",
	}
)

// stripFirstRu strips the first suffix in sufs (in declared order) that
// matches tok while leaving at least minStemBytesRu bytes of prefix.
func stripFirstRu(tok string, sufs []string) (string, bool) {
	n := len(tok)
	for _, suf := range sufs {
		m := len(suf)
		if m < n && strings.HasSuffix(tok, suf) && n-m >= minStemBytesRu {
			return tok[:n-m], true
		}
	}
	return tok, false
}

// StemRussian strips at most one reflexive suffix, then one suffix from the
// adjective, verb, or noun set — adjectives additionally try a noun suffix,
// mirroring full adjective+noun endings like "красивого".
func StemRussian(tok string) string {
	tok, _ = stripFirstRu(tok, ruReflexive)

	if stripped, ok := stripFirstRu(tok, ruAdjective); ok {
		stripped, _ = stripFirstRu(stripped, ruNoun)
		return stripped
	}
	if stripped, ok := stripFirstRu(tok, ruVerb); ok {
		return stripped
	}
	tok, _ = stripFirstRu(tok, ruNoun)
	return tok
}
