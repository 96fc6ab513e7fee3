package ops

import (
	"context"
	"fmt"
	"io"

	"github.com/quiesnet/rdfstore/internal/store"
	"github.com/quiesnet/rdfstore/internal/turtle"
	"github.com/quiesnet/rdfstore/internal/xsdtype"
)

// Export writes the named model as Turtle to w. If the model IRI has never
// been interned, Export writes nothing and returns nil: an unknown model is
// not an error.
func Export(ctx context.Context, st *store.Store, modelIRI string, w io.Writer) error {
	modelID, ok, err := store.LookupNode(st.DB(), modelIRI, int64(xsdtype.IRI))
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	rows, err := st.QueryContext(ctx, `
		SELECT sn.l, pn.l, on_.d, on_.l, dn.l
		FROM Quad q
		JOIN Node sn ON sn.oid = q.s
		JOIN Node pn ON pn.oid = q.p
		JOIN Node on_ ON on_.oid = q.o
		JOIN Node dn ON dn.oid = on_.d
		WHERE q.m = ?
		ORDER BY q.s, q.p, q.o
	`, modelID)
	if err != nil {
		return fmt.Errorf("query model quads: %w", err)
	}
	defer rows.Close()

	return turtle.Export(w, func() (turtle.Row, bool, error) {
		if !rows.Next() {
			return turtle.Row{}, false, rows.Err()
		}
		var subjIRI, predIRI, objLexical, datatypeIRI string
		var objDatatypeID int64
		if err := rows.Scan(&subjIRI, &predIRI, &objDatatypeID, &objLexical, &datatypeIRI); err != nil {
			return turtle.Row{}, false, fmt.Errorf("scan model quad: %w", err)
		}

		r := turtle.Row{SubjectIRI: subjIRI, PredicateIRI: predIRI}
		if objDatatypeID == int64(xsdtype.IRI) {
			r.ObjectIsResource = true
			r.ObjectIRI = objLexical
			return r, true, nil
		}

		r.ObjectLexical = objLexical
		if objDatatypeID != int64(xsdtype.Plain) {
			r.ObjectDatatype = datatypeIRI
		}
		return r, true, nil
	})
}
