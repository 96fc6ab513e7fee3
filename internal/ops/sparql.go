package ops

import (
	"context"

	"github.com/quiesnet/rdfstore/internal/query"
	"github.com/quiesnet/rdfstore/internal/sparql"
	"github.com/quiesnet/rdfstore/internal/sqlmap"
	"github.com/quiesnet/rdfstore/internal/store"
)

// Compile parses queryText and maps it to a parameterized SQL statement
// against st, without executing it.
func Compile(st *store.Store, queryText string) (*sparql.Query, string, []any, sqlmap.Plan, error) {
	q, err := sparql.NewParser(queryText).Parse()
	if err != nil {
		return nil, "", nil, sqlmap.Plan{}, err
	}

	lookup := func(lexical string, datatype int64) (int64, bool, error) {
		return store.LookupNode(st.DB(), lexical, datatype)
	}

	sqlText, args, plan, err := sqlmap.Map(q, lookup)
	if err != nil {
		return nil, "", nil, sqlmap.Plan{}, err
	}
	return q, sqlText, args, plan, nil
}

// Query compiles and runs queryText, returning its projected variable
// names and result rows.
func Query(ctx context.Context, st *store.Store, queryText string) ([]string, []query.Row, error) {
	q, sqlText, args, plan, err := Compile(st, queryText)
	if err != nil {
		return nil, nil, err
	}

	rows, err := query.Execute(ctx, st.DB(), plan, sqlText, args)
	if err != nil {
		return nil, nil, err
	}
	return q.Projection, rows, nil
}
