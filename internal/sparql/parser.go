package sparql

import (
	"sort"
	"strconv"
	"strings"
)

// Parser turns a SPARQL SELECT query into a Query. A Parser is single-use:
// construct one with NewParser and call Parse once.
type Parser struct {
	tok      *Tokenizer
	cur      Kind
	prefixes map[string]string
}

// NewParser returns a Parser over query, primed to its first token.
func NewParser(query string) *Parser {
	p := &Parser{
		tok:      NewTokenizer(query),
		prefixes: make(map[string]string),
	}
	p.cur = p.tok.Advance()
	return p
}

func (p *Parser) syntaxErr(reason string) error {
	return &SyntaxError{Offset: p.tok.Offset(), Reason: reason}
}

func (p *Parser) accept(k Kind) bool {
	if p.cur == k {
		p.cur = p.tok.Advance()
		return true
	}
	return false
}

func (p *Parser) acceptKeyword(keyword string) bool {
	if p.cur == KindKeyword && strings.EqualFold(p.tok.Text(), keyword) {
		p.cur = p.tok.Advance()
		return true
	}
	return false
}

// parseIRI consumes a relative_iri or absolute_iri token and resolves it to
// an absolute IRI string. ok is false (with err nil) when the current token
// is neither kind; it's an error only once a prefix reference turns out to
// be undeclared.
func (p *Parser) parseIRI() (iri string, ok bool, err error) {
	switch p.cur {
	case KindRelativeIRI:
		text := p.tok.Text()
		i := strings.IndexByte(text, ':')
		prefix, local := text[:i], text[i+1:]
		ns, known := p.prefixes[prefix]
		if !known {
			return "", false, p.syntaxErr("undeclared namespace prefix \"" + prefix + "\" used")
		}
		iri = ns + local

	case KindAbsoluteIRI:
		text := p.tok.Text()
		iri = text[1 : len(text)-1]

	default:
		return "", false, nil
	}

	p.cur = p.tok.Advance()
	return iri, true, nil
}

func (p *Parser) parseNode() (Node, bool, error) {
	switch p.cur {
	case KindRelativeIRI, KindAbsoluteIRI:
		iri, ok, err := p.parseIRI()
		if err != nil {
			return nil, false, err
		}
		if !ok {
			return nil, false, nil
		}
		return ResourceNode{IRI: iri}, true, nil

	case KindLiteral:
		text := p.tok.Text()
		lit := LiteralNode{Lexical: text}
		p.cur = p.tok.Advance()

		switch {
		case p.accept(KindDatatype):
			iri, ok, err := p.parseIRI()
			if err != nil {
				return nil, false, err
			}
			if !ok {
				return nil, false, p.syntaxErr("datatype IRI expected after '^^' token")
			}
			lit.Datatype = iri

		case p.accept(KindLanguageTag):
			// Note: the language tag's own text was already consumed as
			// part of the '@'-prefixed token; nothing further to read.

		}
		return lit, true, nil

	case KindVariable:
		name := p.tok.Text()[1:]
		p.cur = p.tok.Advance()
		return VariableNode{Name: name}, true, nil
	}

	return nil, false, nil
}

func (p *Parser) parseBasicGraphPattern(quads *[]Quad) error {
	var t Quad
	t.Subject = UnboundNode{}
	t.Predicate = UnboundNode{}
	t.Object = UnboundNode{}
	t.Graph = UnboundNode{}

	subj, ok, err := p.parseNode()
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	t.Subject = subj

	pred, ok, err := p.parseNode()
	if err != nil {
		return err
	}
	if !ok {
		return p.syntaxErr("predicate expected while reading triple")
	}
	t.Predicate = pred

	obj, ok, err := p.parseNode()
	if err != nil {
		return err
	}
	if !ok {
		return p.syntaxErr("object expected while reading triple")
	}
	t.Object = obj

	*quads = append(*quads, t)

	for {
		switch p.cur {
		case Kind('.'):
			p.cur = p.tok.Advance()

			subj, ok, err := p.parseNode()
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
			t.Subject = subj

			pred, ok, err := p.parseNode()
			if err != nil {
				return err
			}
			if !ok {
				return p.syntaxErr("predicate expected while reading triple")
			}
			t.Predicate = pred

			obj, ok, err := p.parseNode()
			if err != nil {
				return err
			}
			if !ok {
				return p.syntaxErr("object expected while reading triple")
			}
			t.Object = obj

			*quads = append(*quads, t)

		case Kind(';'):
			p.cur = p.tok.Advance()

			pred, ok, err := p.parseNode()
			if err != nil {
				return err
			}
			if !ok {
				return p.syntaxErr("predicate expected while reading triple")
			}
			t.Predicate = pred

			obj, ok, err := p.parseNode()
			if err != nil {
				return err
			}
			if !ok {
				return p.syntaxErr("object expected while reading triple")
			}
			t.Object = obj

			*quads = append(*quads, t)

		case Kind(','):
			p.cur = p.tok.Advance()

			obj, ok, err := p.parseNode()
			if err != nil {
				return err
			}
			if !ok {
				return p.syntaxErr("object expected while reading triple")
			}
			t.Object = obj

			*quads = append(*quads, t)

		default:
			return nil
		}
	}
}

func (p *Parser) parseGroupGraphPattern(pattern *Pattern) (bool, error) {
	if !p.accept(Kind('{')) {
		return false, nil
	}

	for {
		if err := p.parseBasicGraphPattern(&pattern.Mandatory); err != nil {
			return false, err
		}

		nested, err := p.parseGroupGraphPattern(pattern)
		if err != nil {
			return false, err
		}
		if nested {
			p.accept(Kind('.'))
			continue
		}

		if p.acceptKeyword("OPTIONAL") {
			sub := &Pattern{}
			ok, err := p.parseGroupGraphPattern(sub)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, p.syntaxErr("group pattern expected after OPTIONAL keyword")
			}
			p.accept(Kind('.'))
			pattern.Optional = append(pattern.Optional, sub)
			continue
		}

		break
	}

	if !p.accept(Kind('}')) {
		return false, p.syntaxErr("closing curly brace expected")
	}
	return true, nil
}

func (p *Parser) parseInteger() (int64, bool) {
	if p.cur != KindInteger {
		return 0, false
	}
	n, err := strconv.ParseInt(p.tok.Text(), 10, 64)
	if err != nil {
		return 0, false
	}
	p.cur = p.tok.Advance()
	return n, true
}

func (p *Parser) parseOrderCondition() (*OrderCond, error) {
	var desc bool
	var expr Expr
	var err error

	switch {
	case p.cur == KindVariable:
		node, _, nerr := p.parseNode()
		if nerr != nil {
			return nil, nerr
		}
		expr = ValueExpr{Node: node}

	case p.acceptKeyword("ASC"):
		expr, err = p.parseBracketedExpression()
		if err != nil {
			return nil, err
		}
		if expr == nil {
			return nil, p.syntaxErr("bracketted expression expected after ASC keyword")
		}

	case p.acceptKeyword("DESC"):
		desc = true
		expr, err = p.parseBracketedExpression()
		if err != nil {
			return nil, err
		}
		if expr == nil {
			return nil, p.syntaxErr("bracketted expression expected after DESC keyword")
		}

	default:
		expr, err = p.parseBracketedExpression()
		if err != nil {
			return nil, err
		}
	}

	if expr == nil {
		return nil, nil
	}
	return &OrderCond{Desc: desc, Expr: expr}, nil
}

func (p *Parser) parseBracketedExpression() (Expr, error) {
	if !p.accept(Kind('(')) {
		return nil, nil
	}

	e, err := p.parseOrExpression()
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, p.syntaxErr("expression expected after '(' token")
	}

	if !p.accept(Kind(')')) {
		return nil, p.syntaxErr("')' token expected after expression")
	}
	return e, nil
}

// parseOrExpression reads a sequence of "&&"-joined and-expressions
// combined with "||". The original parser accepted and built '&&' at this
// level too, which silently turned every OR into an AND; this builds OpOr
// from the actual "||" token.
func (p *Parser) parseOrExpression() (Expr, error) {
	e, err := p.parseAndExpression()
	if err != nil || e == nil {
		return e, err
	}

	for p.accept(KindOr) {
		f, ferr := p.parseAndExpression()
		if ferr != nil {
			return nil, ferr
		}
		if f == nil {
			return nil, p.syntaxErr("expression expected after '||' token")
		}
		e = BinaryExpr{Op: OpOr, Left: e, Right: f}
	}

	return e, nil
}

func (p *Parser) parseAndExpression() (Expr, error) {
	e, err := p.parseRelationalExpression()
	if err != nil || e == nil {
		return e, err
	}

	for p.accept(KindAnd) {
		f, ferr := p.parseRelationalExpression()
		if ferr != nil {
			return nil, ferr
		}
		if f == nil {
			return nil, p.syntaxErr("expression expected after '&&' token")
		}
		e = BinaryExpr{Op: OpAnd, Left: e, Right: f}
	}

	return e, nil
}

func (p *Parser) parseRelationalExpression() (Expr, error) {
	e, err := p.parseAdditiveExpression()
	if err != nil || e == nil {
		return e, err
	}

	var op BinaryOp
	switch {
	case p.accept(Kind('=')):
		op = OpEqual
	case p.accept(Kind('<')):
		op = OpLess
	case p.accept(Kind('>')):
		op = OpGreater
	case p.accept(KindNotEqual):
		op = OpNotEqual
	case p.accept(KindLessEqual):
		op = OpLessEqual
	case p.accept(KindGreaterEqual):
		op = OpGreaterEqual
	default:
		return e, nil
	}

	f, err := p.parseAdditiveExpression()
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, p.syntaxErr("expression expected after relational token")
	}
	return BinaryExpr{Op: op, Left: e, Right: f}, nil
}

func (p *Parser) parseAdditiveExpression() (Expr, error) {
	e, err := p.parseMultiplicativeExpression()
	if err != nil || e == nil {
		return e, err
	}

	for {
		var op BinaryOp
		switch {
		case p.accept(Kind('+')):
			op = OpPlus
		case p.accept(Kind('-')):
			op = OpMinus
		default:
			return e, nil
		}

		f, ferr := p.parseMultiplicativeExpression()
		if ferr != nil {
			return nil, ferr
		}
		if f == nil {
			return nil, p.syntaxErr("expression expected after additive token")
		}
		e = BinaryExpr{Op: op, Left: e, Right: f}
	}
}

func (p *Parser) parseMultiplicativeExpression() (Expr, error) {
	e, err := p.parseUnaryExpression()
	if err != nil || e == nil {
		return e, err
	}

	for {
		var op BinaryOp
		switch {
		case p.accept(Kind('*')):
			op = OpMul
		case p.accept(Kind('/')):
			op = OpDiv
		default:
			return e, nil
		}

		f, ferr := p.parseUnaryExpression()
		if ferr != nil {
			return nil, ferr
		}
		if f == nil {
			return nil, p.syntaxErr("expression expected after multiplicative token")
		}
		e = BinaryExpr{Op: op, Left: e, Right: f}
	}
}

// parseUnaryExpression reads an optional '!'/'+'/'-' prefix over a primary
// expression. The unary minus case parses its operand exactly once; the
// source it's ported from called parse_primary_expression twice here,
// silently consuming and discarding a second primary expression from the
// input whenever unary minus was used.
func (p *Parser) parseUnaryExpression() (Expr, error) {
	switch {
	case p.accept(Kind('!')):
		e, err := p.parsePrimaryExpression()
		if err != nil {
			return nil, err
		}
		if e == nil {
			return nil, p.syntaxErr("primary expression expected after '!' token")
		}
		return UnaryExpr{Op: OpInvert, Operand: e}, nil

	case p.accept(Kind('+')):
		e, err := p.parsePrimaryExpression()
		if err != nil {
			return nil, err
		}
		if e == nil {
			return nil, p.syntaxErr("primary expression expected after '+' token")
		}
		return e, nil

	case p.accept(Kind('-')):
		e, err := p.parsePrimaryExpression()
		if err != nil {
			return nil, err
		}
		if e == nil {
			return nil, p.syntaxErr("primary expression expected after '-' token")
		}
		return UnaryExpr{Op: OpNegate, Operand: e}, nil

	default:
		return p.parsePrimaryExpression()
	}
}

func (p *Parser) parsePrimaryExpression() (Expr, error) {
	e, err := p.parseBracketedExpression()
	if err != nil {
		return nil, err
	}
	if e != nil {
		return e, nil
	}

	node, ok, err := p.parseNode()
	if err != nil {
		return nil, err
	}
	if ok {
		return ValueExpr{Node: node}, nil
	}

	return nil, nil
}

func accumulateVariables(pat *Pattern, vars map[string]struct{}) {
	for _, q := range pat.Mandatory {
		for _, n := range [4]Node{q.Graph, q.Subject, q.Predicate, q.Object} {
			if v, ok := n.(VariableNode); ok {
				vars[v.Name] = struct{}{}
			}
		}
	}
	for _, sub := range pat.Optional {
		accumulateVariables(sub, vars)
	}
}

// Parse consumes the whole query and returns its Query, or an error
// describing the first syntax problem encountered.
func (p *Parser) Parse() (*Query, error) {
	q := &Query{Limit: -1, Offset: -1}

	for p.acceptKeyword("PREFIX") {
		if p.cur != KindRelativeIRI {
			return nil, p.syntaxErr("IRI prefix expected in PREFIX clause")
		}
		text := p.tok.Text()
		if text[len(text)-1] != ':' {
			return nil, p.syntaxErr("IRI prefix should end with a colon")
		}
		prefix := text[:len(text)-1]
		p.cur = p.tok.Advance()

		if p.cur != KindAbsoluteIRI {
			return nil, p.syntaxErr("absolute IRI expected in PREFIX clause")
		}
		iriText := p.tok.Text()
		p.prefixes[prefix] = iriText[1 : len(iriText)-1]
		p.cur = p.tok.Advance()
	}

	if !p.acceptKeyword("SELECT") {
		return nil, p.syntaxErr("query verb expected")
	}

	q.Distinct = p.acceptKeyword("DISTINCT")

	for p.cur == KindVariable {
		q.Projection = append(q.Projection, p.tok.Text()[1:])
		p.cur = p.tok.Advance()
	}
	if len(q.Projection) == 0 && !p.accept(Kind('*')) {
		return nil, p.syntaxErr("list of variables or '*' expected after SELECT keyword")
	}

	p.acceptKeyword("WHERE")
	if ok, err := p.parseGroupGraphPattern(&q.Pattern); err != nil {
		return nil, err
	} else if !ok {
		return nil, p.syntaxErr("group graph pattern expected after WHERE keyword")
	}

	if len(q.Projection) == 0 {
		varSet := make(map[string]struct{})
		accumulateVariables(&q.Pattern, varSet)
		for name := range varSet {
			q.Projection = append(q.Projection, name)
		}
		sort.Strings(q.Projection)
	}

	if p.acceptKeyword("ORDER") {
		if !p.acceptKeyword("BY") {
			return nil, p.syntaxErr("BY keyword expected after ORDER keyword")
		}

		oc, err := p.parseOrderCondition()
		if err != nil {
			return nil, err
		}
		if oc == nil {
			return nil, p.syntaxErr("order condition expected after 'ORDER BY'")
		}
		for oc != nil {
			q.Order = append(q.Order, *oc)
			oc, err = p.parseOrderCondition()
			if err != nil {
				return nil, err
			}
		}
	}

	if p.acceptKeyword("LIMIT") {
		n, ok := p.parseInteger()
		if !ok {
			return nil, p.syntaxErr("non-negative integer expected after LIMIT keyword")
		}
		q.Limit = n
	}

	if p.acceptKeyword("OFFSET") {
		n, ok := p.parseInteger()
		if !ok {
			return nil, p.syntaxErr("non-negative integer expected after OFFSET keyword")
		}
		q.Offset = n
	}

	q.Prefixes = p.prefixes
	return q, nil
}

// Full reports whether the parser consumed the entire query text; a
// trailing unparsed token usually indicates a missing operator or a typo.
func (p *Parser) Full() bool {
	return p.cur == KindDone
}
