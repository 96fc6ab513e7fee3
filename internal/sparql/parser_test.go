package sparql

import "testing"

func TestParserConcreteScenarioFour(t *testing.T) {
	q, err := NewParser(`PREFIX ex:<http://e/> SELECT ?x WHERE { ?x ex:p "v" }`).Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Distinct {
		t.Fatal("expected non-distinct query")
	}
	if len(q.Projection) != 1 || q.Projection[0] != "x" {
		t.Fatalf("got projection %v", q.Projection)
	}
	if len(q.Pattern.Mandatory) != 1 {
		t.Fatalf("got %d mandatory quads", len(q.Pattern.Mandatory))
	}
	quad := q.Pattern.Mandatory[0]
	if _, ok := quad.Subject.(VariableNode); !ok {
		t.Fatalf("subject = %#v, want variable", quad.Subject)
	}
	pred, ok := quad.Predicate.(ResourceNode)
	if !ok || pred.IRI != "http://e/p" {
		t.Fatalf("predicate = %#v, want resource http://e/p", quad.Predicate)
	}
	obj, ok := quad.Object.(LiteralNode)
	if !ok || obj.Lexical != "v" {
		t.Fatalf("object = %#v, want literal v", quad.Object)
	}
}

func TestParserConcreteScenarioFive(t *testing.T) {
	q, err := NewParser(`SELECT * WHERE { ?s ?p ?o }`).Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"o", "p", "s"}
	if len(q.Projection) != len(want) {
		t.Fatalf("got projection %v, want %v", q.Projection, want)
	}
	for i := range want {
		if q.Projection[i] != want[i] {
			t.Fatalf("got projection %v, want %v", q.Projection, want)
		}
	}
}

func TestParserOptionalPattern(t *testing.T) {
	q, err := NewParser(`PREFIX ex:<http://e/> SELECT * WHERE { ?s ex:p ?o OPTIONAL { ?s ex:q ?o2 } }`).Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(q.Pattern.Mandatory) != 1 {
		t.Fatalf("got %d mandatory quads", len(q.Pattern.Mandatory))
	}
	if len(q.Pattern.Optional) != 1 {
		t.Fatalf("got %d optional patterns", len(q.Pattern.Optional))
	}
	if len(q.Pattern.Optional[0].Mandatory) != 1 {
		t.Fatalf("got %d quads in optional", len(q.Pattern.Optional[0].Mandatory))
	}
}

func TestParserOrderLimitOffset(t *testing.T) {
	q, err := NewParser(`PREFIX ex:<http://e/> SELECT ?x WHERE { ?x ex:p ?y } ORDER BY ?x LIMIT 10 OFFSET 5`).Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(q.Order) != 1 {
		t.Fatalf("got %d order conditions", len(q.Order))
	}
	if q.Limit != 10 || q.Offset != 5 {
		t.Fatalf("got limit=%d offset=%d", q.Limit, q.Offset)
	}
}

func TestParserUndeclaredPrefixIsError(t *testing.T) {
	_, err := NewParser(`SELECT ?x WHERE { ?x ex:p ?y }`).Parse()
	if err == nil {
		t.Fatal("expected an error for an undeclared prefix")
	}
}

// TestParserOrUsesDoublePipe exercises the fixed deviation: '||' builds an
// OR node and '&&' builds an AND node; the source swapped these.
func TestParserOrUsesDoublePipe(t *testing.T) {
	p := NewParser(`(?a || ?b)`)
	e, err := p.parseBracketedExpression()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bin, ok := e.(BinaryExpr)
	if !ok || bin.Op != OpOr {
		t.Fatalf("got %#v, want a top-level OpOr", e)
	}
}

func TestParserAndUsesDoubleAmpersand(t *testing.T) {
	p := NewParser(`(?a && ?b)`)
	e, err := p.parseBracketedExpression()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bin, ok := e.(BinaryExpr)
	if !ok || bin.Op != OpAnd {
		t.Fatalf("got %#v, want a top-level OpAnd", e)
	}
}

// TestParserUnaryMinusConsumesOperandOnce exercises the fixed deviation:
// unary minus parses exactly one primary expression, so a second value
// placed right after it is left for the caller rather than silently eaten.
func TestParserUnaryMinusConsumesOperandOnce(t *testing.T) {
	p := NewParser(`-?a ?b`)
	e, err := p.parseUnaryExpression()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	un, ok := e.(UnaryExpr)
	if !ok || un.Op != OpNegate {
		t.Fatalf("got %#v, want OpNegate", e)
	}
	if p.cur != KindVariable || p.tok.Text() != "?b" {
		t.Fatalf("expected '?b' left unconsumed, got kind %v text %q", p.cur, p.tok.Text())
	}
}

func TestParserFull(t *testing.T) {
	p := NewParser(`SELECT * WHERE { ?s ?p ?o }`)
	if _, err := p.Parse(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.Full() {
		t.Fatal("expected parser to have consumed the entire query")
	}
}
