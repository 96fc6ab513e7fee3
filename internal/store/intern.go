package store

import (
	"database/sql"
	"errors"
)

// queryRower is satisfied by *sql.DB and *sql.Tx.
type queryRower interface {
	QueryRow(query string, args ...any) *sql.Row
}

// LookupNode finds the id of the Node interning (lexical, datatype), without
// creating it. Used wherever a missing node must yield "no match" rather
// than a new row: SPARQL query mapping and model lookup for export/query.
func LookupNode(q queryRower, lexical string, datatype int64) (id int64, ok bool, err error) {
	err = q.QueryRow(`SELECT oid FROM Node WHERE l = ? AND d = ?`, lexical, datatype).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, wrapDBError("lookup node", err)
	}
	return id, true, nil
}

// InternNode returns the id of the Node interning (lexical, datatype),
// inserting it first if absent. Must run inside the transaction that scopes
// one import's parse phase, per the two-transaction import sequencing.
func InternNode(tx *sql.Tx, lexical string, datatype int64) (int64, error) {
	id, ok, err := LookupNode(tx, lexical, datatype)
	if err != nil {
		return 0, err
	}
	if ok {
		return id, nil
	}

	res, err := tx.Exec(`INSERT INTO Node (l, d) VALUES (?, ?)`, lexical, datatype)
	if err != nil {
		return 0, wrapDBError("intern node", err)
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, wrapDBError("intern node", err)
	}
	return id, nil
}
