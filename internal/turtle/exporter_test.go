package turtle

import (
	"bytes"
	"testing"
)

func TestAbbreviate(t *testing.T) {
	cases := map[int]string{1: "a", 2: "b", 26: "z", 27: "aa", 28: "ab", 52: "az", 53: "ba"}
	for n, want := range cases {
		if got := abbreviate(n); got != want {
			t.Errorf("abbreviate(%d) = %q, want %q", n, got, want)
		}
	}
}

// TestExportConcreteScenarioTwo exercises the worked example from the
// specification: importing the three triples from scenario 1 into model m1
// and exporting them back should reproduce the triples modulo the actual
// prefix letter chosen.
func TestExportConcreteScenarioTwo(t *testing.T) {
	rows := []Row{
		{SubjectIRI: "http://e/a", PredicateIRI: "http://e/p", ObjectLexical: "v"},
		{SubjectIRI: "http://e/a", PredicateIRI: "http://e/q", ObjectIsResource: true, ObjectIRI: "http://e/a"},
		{SubjectIRI: "http://e/a", PredicateIRI: "http://e/q", ObjectIsResource: true, ObjectIRI: "http://e/b"},
	}
	var buf bytes.Buffer
	i := 0
	err := Export(&buf, func() (Row, bool, error) {
		if i >= len(rows) {
			return Row{}, false, nil
		}
		r := rows[i]
		i++
		return r, true, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "@prefix a: <http://e/>.\na:a a:p \"v\";\n\ta:q a:a, a:b.\n"
	if got := buf.String(); got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestExportFlatURNIsNotAbbreviated(t *testing.T) {
	rows := []Row{
		{SubjectIRI: "urn:a", PredicateIRI: "urn:p", ObjectIsResource: true, ObjectIRI: "urn:b"},
	}
	var buf bytes.Buffer
	i := 0
	err := Export(&buf, func() (Row, bool, error) {
		if i >= len(rows) {
			return Row{}, false, nil
		}
		r := rows[i]
		i++
		return r, true, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "<urn:a> <urn:p> <urn:b>.\n"
	if got := buf.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestExportTypedLiteral(t *testing.T) {
	rows := []Row{
		{SubjectIRI: "http://e/a", PredicateIRI: "http://e/p", ObjectLexical: "42",
			ObjectDatatype: "http://www.w3.org/2001/XMLSchema#integer"},
	}
	var buf bytes.Buffer
	i := 0
	err := Export(&buf, func() (Row, bool, error) {
		if i >= len(rows) {
			return Row{}, false, nil
		}
		r := rows[i]
		i++
		return r, true, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "@prefix a: <http://e/>.\n@prefix b: <http://www.w3.org/2001/XMLSchema#>.\na:a a:p \"42\"^^b:integer.\n"
	if got := buf.String(); got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}
