package store

import (
	"context"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenSeedsReservedNodes(t *testing.T) {
	s := openTestStore(t)
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM Node WHERE oid BETWEEN 0 AND 6`).Scan(&count); err != nil {
		t.Fatalf("query: %v", err)
	}
	if count != 7 {
		t.Fatalf("got %d reserved nodes, want 7", count)
	}
}

func TestInternNodeStableAcrossCalls(t *testing.T) {
	s := openTestStore(t)
	tx, err := s.BeginTx(context.Background())
	if err != nil {
		t.Fatalf("BeginTx: %v", err)
	}
	defer tx.Rollback()

	id1, err := InternNode(tx, "http://e/a", 0)
	if err != nil {
		t.Fatalf("InternNode: %v", err)
	}
	id2, err := InternNode(tx, "http://e/a", 0)
	if err != nil {
		t.Fatalf("InternNode: %v", err)
	}
	if id1 != id2 {
		t.Fatalf("got ids %d and %d, want the same id", id1, id2)
	}

	other, err := InternNode(tx, "http://e/a", 1)
	if err != nil {
		t.Fatalf("InternNode: %v", err)
	}
	if other == id1 {
		t.Fatal("distinct datatype produced the same id")
	}
}

func TestLookupNodeMissing(t *testing.T) {
	s := openTestStore(t)
	_, ok, err := LookupNode(s.db, "http://e/nonexistent", 0)
	if err != nil {
		t.Fatalf("LookupNode: %v", err)
	}
	if ok {
		t.Fatal("expected LookupNode to report no match")
	}
}

func TestDiffMinimalChangeset(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	tx, err := s.BeginTx(ctx)
	if err != nil {
		t.Fatalf("BeginTx: %v", err)
	}
	a, _ := InternNode(tx, "http://e/a", 0)
	p, _ := InternNode(tx, "http://e/p", 0)
	b, _ := InternNode(tx, "http://e/b", 0)
	c, _ := InternNode(tx, "http://e/c", 0)
	model, _ := InternNode(tx, "http://e/m1", 0)

	res, err := Diff(tx, model, []IDTriple{{a, p, b}})
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if res.Added != 1 || res.Removed != 0 {
		t.Fatalf("got %+v, want one addition", res)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	tx2, err := s.BeginTx(ctx)
	if err != nil {
		t.Fatalf("BeginTx: %v", err)
	}
	defer tx2.Rollback()

	res2, err := Diff(tx2, model, []IDTriple{{a, p, b}})
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if res2.Added != 0 || res2.Removed != 0 {
		t.Fatalf("re-import should be a no-op, got %+v", res2)
	}

	res3, err := Diff(tx2, model, []IDTriple{{a, p, c}})
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if res3.Added != 1 || res3.Removed != 1 {
		t.Fatalf("got %+v, want one addition and one removal", res3)
	}
}

func TestDiffRemovesDuplicatesBeforeComparing(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	tx, err := s.BeginTx(ctx)
	if err != nil {
		t.Fatalf("BeginTx: %v", err)
	}
	defer tx.Rollback()

	a, _ := InternNode(tx, "http://e/a", 0)
	p, _ := InternNode(tx, "http://e/p", 0)
	b, _ := InternNode(tx, "http://e/b", 0)
	model, _ := InternNode(tx, "http://e/m1", 0)

	res, err := Diff(tx, model, []IDTriple{{a, p, b}, {a, p, b}})
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if res.Duplicates != 1 {
		t.Fatalf("got %d duplicates, want 1", res.Duplicates)
	}
	if res.Added != 1 {
		t.Fatalf("got %d additions, want 1", res.Added)
	}
}
