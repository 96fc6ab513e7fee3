package store

import (
	"database/sql"
	"sort"
)

// IDTriple is a parsed triple after node interning: subject, predicate and
// object ids, compared and sorted lexicographically in that order.
type IDTriple struct {
	S, P, O int64
}

func compareTriple(a, b IDTriple) int {
	switch {
	case a.S != b.S:
		return cmpInt64(a.S, b.S)
	case a.P != b.P:
		return cmpInt64(a.P, b.P)
	default:
		return cmpInt64(a.O, b.O)
	}
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// sortDedup sorts triples by (s, p, o) and removes exact duplicates in
// place, returning the deduplicated slice and the number of duplicates
// removed.
func sortDedup(triples []IDTriple) ([]IDTriple, int) {
	sort.Slice(triples, func(i, j int) bool {
		return compareTriple(triples[i], triples[j]) < 0
	})

	out := triples[:0]
	dupes := 0
	for i, t := range triples {
		if i > 0 && t == out[len(out)-1] {
			dupes++
			continue
		}
		out = append(out, t)
	}
	return out, dupes
}

type storedQuad struct {
	oid int64
	t   IDTriple
}

func loadStoredQuads(tx *sql.Tx, modelID int64) ([]storedQuad, error) {
	rows, err := tx.Query(`SELECT oid, s, p, o FROM Quad WHERE m = ? ORDER BY s, p, o`, modelID)
	if err != nil {
		return nil, wrapDBError("load stored quads", err)
	}
	defer rows.Close()

	var stored []storedQuad
	for rows.Next() {
		var q storedQuad
		if err := rows.Scan(&q.oid, &q.t.S, &q.t.P, &q.t.O); err != nil {
			return nil, wrapDBError("load stored quads", err)
		}
		stored = append(stored, q)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBError("load stored quads", err)
	}
	return stored, nil
}

// DiffResult reports what Diff computed and then applied.
type DiffResult struct {
	Added      int
	Removed    int
	Duplicates int
}

// Diff sorts and deduplicates parsed, merge-walks it against the quads
// already stored for modelID (loaded ordered by (s, p, o)), and applies the
// minimal insert/delete set inside tx. Callers are expected to commit tx
// themselves once Diff returns.
func Diff(tx *sql.Tx, modelID int64, parsed []IDTriple) (DiffResult, error) {
	sorted, dupes := sortDedup(parsed)

	stored, err := loadStoredQuads(tx, modelID)
	if err != nil {
		return DiffResult{}, err
	}

	var toRemove []int64
	var toAdd []IDTriple

	i, j := 0, 0
	for i < len(sorted) || j < len(stored) {
		switch {
		case j >= len(stored):
			toAdd = append(toAdd, sorted[i])
			i++
		case i >= len(sorted):
			toRemove = append(toRemove, stored[j].oid)
			j++
		default:
			switch c := compareTriple(sorted[i], stored[j].t); {
			case c < 0:
				toAdd = append(toAdd, sorted[i])
				i++
			case c > 0:
				toRemove = append(toRemove, stored[j].oid)
				j++
			default:
				i++
				j++
			}
		}
	}

	for _, oid := range toRemove {
		if _, err := tx.Exec(`DELETE FROM Quad WHERE oid = ?`, oid); err != nil {
			return DiffResult{}, wrapDBError("delete quad", err)
		}
	}
	for _, t := range toAdd {
		if _, err := tx.Exec(
			`INSERT INTO Quad (m, s, p, o) VALUES (?, ?, ?, ?)`,
			modelID, t.S, t.P, t.O,
		); err != nil {
			return DiffResult{}, wrapDBError("insert quad", err)
		}
	}

	return DiffResult{Added: len(toAdd), Removed: len(toRemove), Duplicates: dupes}, nil
}
