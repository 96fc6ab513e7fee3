package query

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/quiesnet/rdfstore/internal/sqlmap"
)

// Execute runs the mapper's generated SQL as a single query and decodes
// every row according to plan: a resource-typed column reads one nullable
// string (the IRI), rendered as <uri>; any other column reads a
// (datatype, lexical) pair, rendered as <literal> with an optional
// datatype attribute. A NULL column (an OPTIONAL sub-pattern that didn't
// match) simply omits that binding from the row.
func Execute(ctx context.Context, db *sql.DB, plan sqlmap.Plan, sqlText string, args []any) ([]Row, error) {
	rows, err := db.QueryContext(ctx, sqlText, args...)
	if err != nil {
		return nil, fmt.Errorf("execute mapped query: %w", err)
	}
	defer rows.Close()

	scanCols := 0
	for _, c := range plan.Columns {
		if c.Resource {
			scanCols++
		} else {
			scanCols += 2
		}
	}

	var results []Row
	for rows.Next() {
		dest := make([]any, scanCols)
		raw := make([]sql.NullString, scanCols)
		for i := range raw {
			dest[i] = &raw[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan result row: %w", err)
		}

		var row Row
		i := 0
		for _, col := range plan.Columns {
			if col.Resource {
				if raw[i].Valid {
					row.Bindings = append(row.Bindings, Binding{Name: col.Name, IsURI: true, Value: raw[i].String})
				}
				i++
				continue
			}
			datatype, lexical := raw[i], raw[i+1]
			i += 2
			if !lexical.Valid {
				continue
			}
			row.Bindings = append(row.Bindings, Binding{Name: col.Name, Value: lexical.String, Datatype: datatype.String})
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate result rows: %w", err)
	}
	return results, nil
}
