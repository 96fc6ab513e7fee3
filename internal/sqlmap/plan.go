package sqlmap

// ProjectionCol describes one projected column group in the order the
// mapped SQL's result columns appear. Resource-typed variables contribute a
// single IRI column; others contribute a (datatype, lexical) pair.
type ProjectionCol struct {
	Name     string
	Resource bool
}

// Plan accompanies the generated SQL text, telling the query executor how
// to read each row back into named bindings.
type Plan struct {
	Columns []ProjectionCol
}
