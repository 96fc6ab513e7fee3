// Package ops wires the parsers, the node interner, the import differ and
// the SPARQL mapper together into the operations the CLI runs. Import uses
// a two-transaction sequence: parse-and-intern, commit, diff-and-apply,
// commit.
package ops

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"github.com/quiesnet/rdfstore/internal/store"
	"github.com/quiesnet/rdfstore/internal/turtle"
	"github.com/quiesnet/rdfstore/internal/xsdtype"
)

// Import parses the Turtle document read from r, interns every node it
// names inside one transaction, commits it, then diffs the resulting
// triple set against the model's stored quads and applies the minimal
// change inside a second transaction.
//
// The two transactions are split deliberately: node interning during a
// large parse can run for a while, and committing it before the diff
// keeps that work from holding write locks across the comparison.
func Import(ctx context.Context, st *store.Store, modelIRI string, r io.Reader) (store.DiffResult, error) {
	tx1, err := st.BeginTx(ctx)
	if err != nil {
		return store.DiffResult{}, fmt.Errorf("begin intern transaction: %w", err)
	}

	var triples []store.IDTriple
	p := turtle.NewParser(r)
	parseErr := p.Parse(func(tr turtle.Triple) error {
		idTriple, err := internTriple(tx1, tr)
		if err != nil {
			return err
		}
		triples = append(triples, idTriple)
		return nil
	})
	if parseErr != nil {
		tx1.Rollback()
		return store.DiffResult{}, parseErr
	}

	modelID, err := store.InternNode(tx1, modelIRI, int64(xsdtype.IRI))
	if err != nil {
		tx1.Rollback()
		return store.DiffResult{}, err
	}

	if err := tx1.Commit(); err != nil {
		return store.DiffResult{}, fmt.Errorf("commit intern transaction: %w", err)
	}

	tx2, err := st.BeginTx(ctx)
	if err != nil {
		return store.DiffResult{}, fmt.Errorf("begin diff transaction: %w", err)
	}

	result, err := store.Diff(tx2, modelID, triples)
	if err != nil {
		tx2.Rollback()
		return store.DiffResult{}, err
	}

	if err := tx2.Commit(); err != nil {
		return store.DiffResult{}, fmt.Errorf("commit diff transaction: %w", err)
	}

	return result, nil
}

func internTriple(tx *sql.Tx, tr turtle.Triple) (store.IDTriple, error) {
	sid, err := store.InternNode(tx, tr.SubjectIRI, int64(xsdtype.IRI))
	if err != nil {
		return store.IDTriple{}, err
	}
	pid, err := store.InternNode(tx, tr.PredicateIRI, int64(xsdtype.IRI))
	if err != nil {
		return store.IDTriple{}, err
	}

	var oid int64
	if tr.IsResource() {
		oid, err = store.InternNode(tx, tr.ObjectIRI, int64(xsdtype.IRI))
		if err != nil {
			return store.IDTriple{}, err
		}
	} else {
		datatype := int64(xsdtype.Plain)
		if tr.Datatype != "" {
			datatype, err = store.InternNode(tx, tr.Datatype, int64(xsdtype.IRI))
			if err != nil {
				return store.IDTriple{}, err
			}
		}
		oid, err = store.InternNode(tx, tr.Lexical, datatype)
		if err != nil {
			return store.IDTriple{}, err
		}
	}

	return store.IDTriple{S: sid, P: pid, O: oid}, nil
}
