// ═══════════════════════════════════════════════════════════════════════════════
// TOKENIZER: SEGMENTING A TEXT LINE INTO LEXICAL TOKENS
// ═══════════════════════════════════════════════════════════════════════════════
// The tokenizer turns one line of UTF-8 text into an ordered sequence of
// lowercased tokens. It is a single left-to-right scan over decoded
// codepoints with one codepoint of lookahead.
//
// SEGMENTATION POLICY:
// --------------------
//   alnum                  → lowercase, append to the pending token
//   hyphen / '+'           → append only mid-token and when the next
//                            codepoint is alnum        ("stop-now", "c++")
//   '.'                    → append only between ASCII digits      ("3.14")
//   apostrophe             → append only mid-token and when the next
//                            codepoint is a letter     ("don't")
//   anything else          → flush the pending token, discard the char
//
// End of input flushes. Empty tokens are never emitted, so a leading hyphen
// or a trailing dot can never start or end a token.
//
// Example:
//
//	"Hello, world! 3.14 and don't stop-now"
//	→ ["hello", "world", "3.14", "and", "don't", "stop-now"]
// ═══════════════════════════════════════════════════════════════════════════════

package ir

// TokenizeLine splits one line into lowercased tokens.
func TokenizeLine(line string) []string {
	return AppendTokens(nil, line)
}

// AppendTokens tokenizes line and appends the tokens to dst, returning the
// extended slice. It exists so the builder can reuse one token buffer across
// the whole corpus.
func AppendTokens(dst []string, line string) []string {
	b := []byte(line)
	var tok []byte

	flush := func() {
		if len(tok) > 0 {
			dst = append(dst, string(tok))
			tok = tok[:0]
		}
	}

	for i := 0; i < len(b); {
		cp, n := DecodeRune(b, i)

		// One codepoint of lookahead for the join rules.
		var next rune = -1
		if i+n < len(b) {
			next, _ = DecodeRune(b, i+n)
		}

		switch {
		case IsAlnum(cp):
			tok = AppendRune(tok, ToLower(cp))
		case len(tok) > 0 && (IsHyphen(cp) || cp == '+') && next >= 0 && IsAlnum(next):
			tok = AppendRune(tok, cp)
		case cp == '.' && len(tok) > 0 && isASCIIDigitByte(tok[len(tok)-1]) && next >= 0 && IsDigit(next):
			tok = append(tok, '.')
		case len(tok) > 0 && IsApostrophe(cp) && next >= 0 && IsLetter(next):
			tok = AppendRune(tok, cp)
		default:
			flush()
		}
		i += n
	}
	flush()
	return dst
}

func isASCIIDigitByte(c byte) bool { return c >= '0' && c <= '9' }
