// Package query executes a mapped SPARQL SQL statement and turns its rows
// into ordered variable bindings, ready for XML serialization.
package query

// Binding is one variable's value within a single result row. A variable
// left unmatched by an OPTIONAL sub-pattern is simply absent from the
// row's Bindings.
type Binding struct {
	Name     string
	IsURI    bool
	Value    string
	Datatype string // only meaningful when !IsURI and non-empty
}

// Row is one solution: the ordered bindings present for that row.
type Row struct {
	Bindings []Binding
}
