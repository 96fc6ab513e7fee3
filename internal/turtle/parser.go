package turtle

import "io"

// parserState is the three (plus terminal) states the Parser cycles
// through while reading one statement.
type parserState int

const (
	expectingSubject parserState = iota
	expectingPredicate
	expectingObject
	done
)

// Parser drives a Tokenizer through the Turtle grammar and reports each
// accepted statement to a caller-supplied sink.
type Parser struct {
	tok        *Tokenizer
	state      parserState
	namespaces map[string]string

	subj, pred, obj, lexical, datatype, lang string
}

// NewParser returns a Parser reading Turtle from r.
func NewParser(r io.Reader) *Parser {
	p := &Parser{
		tok:        NewTokenizer(r),
		namespaces: make(map[string]string),
	}
	p.tok.Advance()
	return p
}

// Good reports whether parsing reached a clean end of input: the parser is
// in its terminal state (end of input was seen while expecting a subject,
// so no statement is left half-open) and the tokenizer itself hit no
// syntax error.
func (p *Parser) Good() bool {
	return p.state == done && p.tok.Good()
}

// Parse drives the parser to completion, calling sink once per accepted
// triple. If sink returns an error, parsing stops immediately and that
// error is returned. Otherwise Parse returns nil on a clean end of input
// and a *SyntaxError (or the tokenizer's I/O error) otherwise.
func (p *Parser) Parse(sink func(Triple) error) error {
	for {
		ok, err := p.advance()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		t := Triple{SubjectIRI: p.subj, PredicateIRI: p.pred}
		if p.obj != "" {
			t.ObjectIRI = p.obj
		} else {
			t.Lexical = p.lexical
			t.Datatype = p.datatype
			t.Lang = p.lang
		}
		if err := sink(t); err != nil {
			return err
		}
	}
	if !p.Good() {
		if ioErr := p.tok.Err(); ioErr != nil {
			return ioErr
		}
		return p.syntaxErr("malformed statement")
	}
	return nil
}

func (p *Parser) syntaxErr(reason string) error {
	return &SyntaxError{LineNo: p.tok.LineNo(), Reason: reason}
}

// advance reads one more statement, mirroring TurtleParser::advance's
// switch-with-fallthrough state machine. The bool result is false either
// because input is exhausted cleanly or because of a syntax error; callers
// distinguish the two via Good/err.
func (p *Parser) advance() (bool, error) {
	switch p.state {
	case done:
		return false, nil

	case expectingSubject:
		if p.tok.Kind() == kindFinished {
			p.state = done
			return false, nil
		}

		for p.tok.Kind() == kindDirective {
			if err := p.parsePrefixDirective(); err != nil {
				return false, err
			}
		}

		if !p.parseResource(&p.subj) {
			return false, nil
		}
		fallthrough

	case expectingPredicate:
		if !p.parseResource(&p.pred) {
			return false, nil
		}
		fallthrough

	case expectingObject:
		if !p.parseObject() {
			return false, nil
		}

		switch p.tok.Kind() {
		case kindDot:
			p.tok.Advance()
			p.state = expectingSubject
			return true, nil
		case kindSemicolon:
			p.tok.Advance()
			if p.tok.Kind() == kindDot {
				p.state = expectingSubject
				p.tok.Advance()
			} else {
				p.state = expectingPredicate
			}
			return true, nil
		case kindComma:
			p.tok.Advance()
			p.state = expectingObject
			return true, nil
		}
	}

	return false, nil
}

// parsePrefixDirective consumes "@prefix name: <iri> ." once the tokenizer
// is sitting on the '@prefix' directive token. Any other directive name is
// a fatal error, as is malformed structure around it.
func (p *Parser) parsePrefixDirective() error {
	if string(p.tok.Bytes()) != "prefix" {
		return p.syntaxErr("unsupported directive")
	}
	p.tok.Advance()

	if p.tok.Kind() != kindName {
		return p.syntaxErr("expected prefix label")
	}
	label := p.tok.Bytes()
	if len(label) == 0 || label[0] == '_' || label[len(label)-1] != ':' {
		return p.syntaxErr("malformed prefix label")
	}
	prefix := string(label[:len(label)-1])
	p.tok.Advance()

	if p.tok.Kind() != kindURI {
		return p.syntaxErr("expected namespace IRI")
	}
	p.namespaces[prefix] = string(p.tok.Bytes())
	p.tok.Advance()

	if p.tok.Kind() != kindDot {
		return p.syntaxErr("expected '.' after @prefix directive")
	}
	p.tok.Advance()
	return nil
}

// parseResource parses either a <uri> token or a prefixed name:local token
// into *dst, advancing past it. It returns false (leaving *dst untouched)
// if the current token is not a resource.
func (p *Parser) parseResource(dst *string) bool {
	switch p.tok.Kind() {
	case kindURI:
		*dst = string(p.tok.Bytes())
		p.tok.Advance()
		return true
	case kindName:
		b := p.tok.Bytes()
		for i, c := range b {
			if c == ':' {
				ns, ok := p.namespaces[string(b[:i])]
				if !ok {
					return false
				}
				*dst = ns + string(b[i+1:])
				p.tok.Advance()
				return true
			}
		}
	}
	return false
}

// parseLiteral parses a "string" token optionally followed by @lang or
// ^^resource into the lexical/datatype/lang fields, advancing past it.
func (p *Parser) parseLiteral() bool {
	if p.tok.Kind() != kindString {
		return false
	}
	p.lexical = string(p.tok.Bytes())
	p.tok.Advance()

	if p.tok.Kind() == kindDirective {
		// The directive token itself (the lowercase/digit/'-' run right
		// after '@') is discarded; only the subsequent name token is kept
		// as the language tag. This mirrors the source parser exactly,
		// including its quirk of losing any lowercase lead segment before
		// the first uppercase subtag in e.g. "en-US".
		p.tok.Advance()
		if p.tok.Kind() != kindName {
			return false
		}
		lang := p.tok.Bytes()
		if len(lang) == 0 || lang[len(lang)-1] == '-' {
			return false
		}
		p.lang = string(lang)
		p.tok.Advance()
		p.datatype = ""
		return true
	}

	p.lang = ""
	if p.tok.Kind() == kindCarets {
		p.tok.Advance()
		if !p.parseResource(&p.datatype) {
			return false
		}
	} else {
		p.datatype = ""
	}
	return true
}

// parseObject parses either a resource or a literal into the object
// fields, clearing the ones that don't apply.
func (p *Parser) parseObject() bool {
	if p.parseResource(&p.obj) {
		p.lexical, p.datatype, p.lang = "", "", ""
		return true
	}
	if p.parseLiteral() {
		p.obj = ""
		return true
	}
	return false
}
