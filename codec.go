// Package ir implements a bilingual (English + Russian) boolean text-retrieval
// engine: a UTF-8 codec and tokenizer, lightweight morphological stemmers, an
// inverted-index builder with a persistent on-disk representation, and a
// boolean query engine evaluating AND/OR/NOT expressions over posting lists.
//
// ═══════════════════════════════════════════════════════════════════════════════
// CODEC: UTF-8 SCALARS AND CHARACTER CLASSES
// ═══════════════════════════════════════════════════════════════════════════════
// The codec is the bottom of the analysis stack. Everything above it — the
// tokenizer, the stemmers, query-term folding — operates on decoded codepoints
// rather than raw bytes, so the exact decode behavior is part of the index
// contract: two builds of the same corpus must tokenize identically.
//
// DECODE POLICY:
// --------------
// Standard mask-based UTF-8 (1–4 byte sequences). Any malformed sequence —
// truncated tail, bad continuation byte, stray continuation — yields U+FFFD
// and consumes exactly ONE byte, so the scanner always makes progress and a
// single corrupt byte cannot swallow the text that follows it.
//
// Note this is deliberately laxer than unicode/utf8: overlong encodings and
// surrogate codepoints decode to their nominal values instead of erroring.
// That is the behavior the corpus artifacts were built with, and changing it
// would silently change token boundaries on dirty input.
// ═══════════════════════════════════════════════════════════════════════════════
package ir

// RuneError is the replacement codepoint emitted for malformed UTF-8.
const RuneError rune = 0xFFFD

// DecodeRune decodes one codepoint from b starting at index i and reports how
// many bytes it consumed. Malformed input yields (RuneError, 1).
func DecodeRune(b []byte, i int) (rune, int) {
	c0 := b[i]
	if c0 < 0x80 {
		return rune(c0), 1
	}
	switch {
	case c0&0xE0 == 0xC0:
		if i+1 >= len(b) || b[i+1]&0xC0 != 0x80 {
			return RuneError, 1
		}
		return rune(c0&0x1F)<<6 | rune(b[i+1]&0x3F), 2
	case c0&0xF0 == 0xE0:
		if i+2 >= len(b) || b[i+1]&0xC0 != 0x80 || b[i+2]&0xC0 != 0x80 {
			return RuneError, 1
		}
		return rune(c0&0x0F)<<12 | rune(b[i+1]&0x3F)<<6 | rune(b[i+2]&0x3F), 3
	case c0&0xF8 == 0xF0:
		if i+3 >= len(b) || b[i+1]&0xC0 != 0x80 || b[i+2]&0xC0 != 0x80 || b[i+3]&0xC0 != 0x80 {
			return RuneError, 1
		}
		return rune(c0&0x07)<<18 | rune(b[i+1]&0x3F)<<12 | rune(b[i+2]&0x3F)<<6 | rune(b[i+3]&0x3F), 4
	}
	return RuneError, 1
}

// AppendRune appends the canonical UTF-8 encoding of cp to dst.
func AppendRune(dst []byte, cp rune) []byte {
	switch {
	case cp <= 0x7F:
		return append(dst, byte(cp))
	case cp <= 0x7FF:
		return append(dst, 0xC0|byte(cp>>6)&0x1F, 0x80|byte(cp)&0x3F)
	case cp <= 0xFFFF:
		return append(dst, 0xE0|byte(cp>>12)&0x0F, 0x80|byte(cp>>6)&0x3F, 0x80|byte(cp)&0x3F)
	default:
		return append(dst, 0xF0|byte(cp>>18)&0x07, 0x80|byte(cp>>12)&0x3F, 0x80|byte(cp>>6)&0x3F, 0x80|byte(cp)&0x3F)
	}
}

// ═══════════════════════════════════════════════════════════════════════════════
// CHARACTER CLASSES
// ═══════════════════════════════════════════════════════════════════════════════
// The letter class covers exactly the scripts the corpus contains: ASCII,
// Cyrillic, Greek (enwiki math articles), and micro sign U+00B5. Anything
// outside these classes is a token separator.

// IsDigit reports whether cp is an ASCII decimal digit.
func IsDigit(cp rune) bool { return cp >= '0' && cp <= '9' }

// IsLetter reports whether cp belongs to the indexer's letter class:
// ASCII letters, Cyrillic, Greek, and U+00B5.
func IsLetter(cp rune) bool {
	if (cp >= 'a' && cp <= 'z') || (cp >= 'A' && cp <= 'Z') {
		return true
	}
	if (cp >= 0x0410 && cp <= 0x044F) || cp == 0x0401 || cp == 0x0451 {
		return true
	}
	if cp >= 0x0370 && cp <= 0x03FF {
		return true
	}
	return cp == 0x00B5
}

// IsAlnum reports whether cp is a letter or an ASCII digit.
func IsAlnum(cp rune) bool { return IsLetter(cp) || IsDigit(cp) }

// IsHyphen reports whether cp is one of the hyphen shapes that may join a
// compound token: ASCII hyphen-minus, U+2010..U+2012, and minus sign U+2212.
func IsHyphen(cp rune) bool {
	return cp == 0x002D || cp == 0x2010 || cp == 0x2011 || cp == 0x2012 || cp == 0x2212
}

// IsApostrophe reports whether cp is an apostrophe (ASCII or U+2019).
func IsApostrophe(cp rune) bool { return cp == 0x0027 || cp == 0x2019 }

// ToLower folds a single codepoint: ASCII A–Z, Cyrillic А–Я, and Ё. All other
// codepoints map to themselves.
func ToLower(cp rune) rune {
	if cp >= 'A' && cp <= 'Z' {
		return cp + 32
	}
	if cp >= 0x0410 && cp <= 0x042F {
		return cp + 32
	}
	if cp == 0x0401 {
		return 0x0451
	}
	return cp
}

// Fold lowercases a whole string using the codec's ASCII+Cyrillic fold.
// Malformed bytes pass through as U+FFFD.
func Fold(s string) string {
	b := []byte(s)
	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); {
		cp, n := DecodeRune(b, i)
		out = AppendRune(out, ToLower(cp))
		i += n
	}
	return string(out)
}
