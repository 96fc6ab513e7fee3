package store

import "github.com/quiesnet/rdfstore/internal/xsdtype"

// schemaSQL is applied on every Open; every statement is idempotent so
// repeated opens of an existing database are safe. Unlike the embedded
// schema.sql the teacher ships, this is a plain string constant: the
// statement count here is small enough that go:embed would only add an
// indirection.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS Node (
	oid INTEGER PRIMARY KEY,
	l   TEXT NOT NULL,
	d   INTEGER NOT NULL,
	UNIQUE(l, d)
);

CREATE TABLE IF NOT EXISTS Quad (
	oid INTEGER PRIMARY KEY,
	m   INTEGER NOT NULL,
	s   INTEGER NOT NULL,
	p   INTEGER NOT NULL,
	o   INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_quad_model_spo ON Quad(m, s, p, o);
`

// seedSchema inserts the reserved Node rows (ids 0-6) if they are not
// already present. SQLite's AUTOINCREMENT isn't used on Node.oid, so a
// fresh database's next auto-assigned id is 7 once these seeds exist.
func seedSchema(exec execer) error {
	if _, err := exec.Exec(schemaSQL); err != nil {
		return err
	}
	for _, seed := range xsdtype.Seeds {
		if _, err := exec.Exec(
			`INSERT OR IGNORE INTO Node (oid, l, d) VALUES (?, ?, ?)`,
			int64(seed.ID), seed.Lexical, selfReferentialDatatype(seed.ID),
		); err != nil {
			return err
		}
	}
	return nil
}

// selfReferentialDatatype returns the datatype id stored alongside a
// reserved Node row. IRI (0) and plain-literal (1) reference themselves;
// the xsd: datatype IRIs (2-6) are IRI-typed Nodes, so their datatype
// column is 0.
func selfReferentialDatatype(id xsdtype.ID) int64 {
	if id == xsdtype.IRI || id == xsdtype.Plain {
		return int64(id)
	}
	return int64(xsdtype.IRI)
}
