package sparql

import "strings"

// Tokenizer scans a SPARQL query held fully in memory — unlike the Turtle
// tokenizer, there is no streaming reader or growable buffer here, since
// query texts are small. String literals do not interpret backslash
// escapes; this is a known, deliberate limitation carried over from the
// source tokenizer.
type Tokenizer struct {
	s            string
	pos          int
	kind         Kind
	tBegin, tEnd int
}

// NewTokenizer returns a Tokenizer over s, positioned before the first
// token; call Advance to read it.
func NewTokenizer(s string) *Tokenizer {
	return &Tokenizer{s: s}
}

// Kind returns the kind of the most recently scanned token.
func (t *Tokenizer) Kind() Kind { return t.kind }

// Text returns the raw text of the most recently scanned token.
func (t *Tokenizer) Text() string { return t.s[t.tBegin:t.tEnd] }

// Offset returns the byte offset of the start of the most recently scanned
// token, for use in SyntaxError.
func (t *Tokenizer) Offset() int { return t.tBegin }

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isAlnum(c byte) bool { return isAlpha(c) || isDigit(c) }

// idchar matches characters allowed in a variable name after the leading
// '$'/'?'.
func idchar(c byte) bool { return isAlnum(c) || c == '_' }

// ncchar matches characters allowed in a keyword or relative IRI token.
func ncchar(c byte) bool { return isAlnum(c) || c == ':' || c == '_' || c == '-' }

const iriForbidden = "<>'{}|^`"

// scanCompareOrSelf handles '<', '>' and '!': either the bare character or,
// if immediately followed by '=', the matching two-character comparison
// operator. The source tokenizer funnels a failed '<'-as-IRI attempt into
// this same logic via a fallthrough that leaves 'cur' in a hazardous,
// under-specified state (see the absolute_iri case in Advance for the
// fix); this function itself is the well-defined half that both the
// original and this implementation agree on.
func (t *Tokenizer) scanCompareOrSelf(c byte) Kind {
	begin := t.pos
	t.pos++
	if t.pos >= len(t.s) || t.s[t.pos] != '=' {
		t.tBegin, t.tEnd = begin, t.pos
		return Kind(c)
	}
	t.pos++
	t.tBegin, t.tEnd = begin, t.pos
	switch c {
	case '<':
		return KindLessEqual
	case '>':
		return KindGreaterEqual
	default:
		return KindNotEqual
	}
}

// Advance scans and returns the next token.
func (t *Tokenizer) Advance() Kind {
	for t.pos < len(t.s) && isSpace(t.s[t.pos]) {
		t.pos++
	}
	if t.pos >= len(t.s) {
		t.kind = KindDone
		return t.kind
	}

	c := t.s[t.pos]

	if isDigit(c) {
		begin := t.pos
		t.pos++
		for t.pos < len(t.s) && isDigit(t.s[t.pos]) {
			t.pos++
		}
		t.tBegin, t.tEnd = begin, t.pos
		t.kind = KindInteger
		return t.kind
	}

	switch c {
	case '<':
		p := t.pos + 1
		for p < len(t.s) && t.s[p] > 0x20 && !strings.ContainsRune(iriForbidden, rune(t.s[p])) {
			p++
		}
		if p < len(t.s) && t.s[p] == '>' {
			t.tBegin = t.pos
			t.pos = p + 1
			t.tEnd = t.pos
			t.kind = KindAbsoluteIRI
			return t.kind
		}
		// Fixed deviation from the source: a '<' that does not close as an
		// absolute IRI is tokenized as the ordinary comparison operator
		// ('<' or '<='), never by falling through the IRI-scan's own
		// cursor state.
		t.kind = t.scanCompareOrSelf('<')
		return t.kind

	case '>', '!':
		t.kind = t.scanCompareOrSelf(c)
		return t.kind

	case '^', '&', '|':
		begin := t.pos
		t.pos++
		if t.pos >= len(t.s) || t.s[t.pos] != c {
			break
		}
		t.pos++
		t.tBegin, t.tEnd = begin, t.pos
		switch c {
		case '^':
			t.kind = KindDatatype
		case '&':
			t.kind = KindAnd
		case '|':
			t.kind = KindOr
		}
		return t.kind

	case '{', '}', '(', ')', '[', ']', ';', '.', '+', ',', '*', '-', '/', '=':
		t.tBegin = t.pos
		t.pos++
		t.tEnd = t.pos
		t.kind = Kind(c)
		return t.kind

	case '@':
		begin := t.pos + 1
		t.pos++
		if t.pos >= len(t.s) || !isAlpha(t.s[t.pos]) {
			break
		}
		t.pos++
		for t.pos < len(t.s) && (isAlpha(t.s[t.pos]) || t.s[t.pos] == '-') {
			t.pos++
		}
		t.tBegin, t.tEnd = begin, t.pos
		t.kind = KindLanguageTag
		return t.kind

	case '$', '?':
		begin := t.pos
		t.pos++
		for t.pos < len(t.s) && idchar(t.s[t.pos]) {
			t.pos++
		}
		t.tBegin, t.tEnd = begin, t.pos
		t.kind = KindVariable
		return t.kind

	case '\'', '"':
		begin := t.pos
		t.pos++
		for t.pos < len(t.s) && t.s[t.pos] != c {
			t.pos++
		}
		if t.pos >= len(t.s) {
			break // unterminated string literal
		}
		t.pos++
		t.tBegin, t.tEnd = begin+1, t.pos-1
		t.kind = KindLiteral
		return t.kind

	default:
		if ncchar(c) {
			begin := t.pos
			kind := KindKeyword
			for t.pos < len(t.s) && ncchar(t.s[t.pos]) {
				if t.s[t.pos] == ':' {
					kind = KindRelativeIRI
				}
				t.pos++
			}
			t.tBegin, t.tEnd = begin, t.pos
			t.kind = kind
			return t.kind
		}
	}

	t.kind = KindError
	return t.kind
}
