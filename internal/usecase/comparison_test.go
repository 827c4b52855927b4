package usecase

import (
	"context"
	"errors"
	"testing"

	"BillCompare/internal/compare"
	"BillCompare/internal/domain"
	chardiff "BillCompare/internal/infrastructure/diff"
	"BillCompare/internal/ports"
)

// gatedSource holds each Bills call until its release channel fires.
type gatedSource struct {
	*Catalog
	gates map[string]chan struct{}
}

func (g *gatedSource) Bills(ctx context.Context, q ports.RangeQuery) ([]domain.Bill, error) {
	if gate, ok := g.gates[q.Start]; ok {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return g.Catalog.Bills(ctx, q)
}

func TestComparisonLoad(t *testing.T) {
	t.Parallel()

	cmp := NewComparison(ComparisonDeps{
		Source: NewCatalog(CatalogDeps{Store: fixtureStore()}),
		Differ: chardiff.NewCharDiffer(0),
	})
	if cmp.Session() != nil {
		t.Fatal("no session before the first load")
	}

	session, err := cmp.Refresh(context.Background(), ports.RangeQuery{})
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if len(session.Pool()) != 3 || session.Roster().Len() != 3 {
		t.Fatalf("unexpected session pool=%d roster=%d", len(session.Pool()), session.Roster().Len())
	}
	if cmp.Session() != session {
		t.Fatal("loaded session should become current")
	}
}

func TestComparisonDiscardsStaleLoad(t *testing.T) {
	t.Parallel()

	slow := make(chan struct{})
	source := &gatedSource{
		Catalog: NewCatalog(CatalogDeps{Store: fixtureStore()}),
		gates:   map[string]chan struct{}{"2025-01": slow},
	}
	cmp := NewComparison(ComparisonDeps{Source: source, Differ: chardiff.NewCharDiffer(0)})

	older := cmp.Begin()
	newer := cmp.Begin()

	type result struct {
		session *compare.Session
		err     error
	}
	done := make(chan result, 1)
	go func() {
		s, err := cmp.Load(context.Background(), older, ports.RangeQuery{Start: "2025-01", End: "2025-01"})
		done <- result{s, err}
	}()

	fresh, err := cmp.Load(context.Background(), newer, ports.RangeQuery{Start: "2025-02", End: "2025-03"})
	if err != nil {
		t.Fatalf("newer Load: %v", err)
	}
	close(slow)

	stale := <-done
	if !errors.Is(stale.err, domain.ErrStaleResponse) || stale.session != nil {
		t.Fatalf("older load = %v, %v; want ErrStaleResponse", stale.session, stale.err)
	}
	if cmp.Session() != fresh || len(fresh.Pool()) != 2 {
		t.Fatal("stale load must not replace the newer session")
	}
}

func TestComparisonLoadHonoursCancel(t *testing.T) {
	t.Parallel()

	source := &gatedSource{
		Catalog: NewCatalog(CatalogDeps{Store: fixtureStore()}),
		gates:   map[string]chan struct{}{"2025-01": make(chan struct{})},
	}
	cmp := NewComparison(ComparisonDeps{Source: source})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := cmp.Refresh(ctx, ports.RangeQuery{Start: "2025-01", End: "2025-01"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestSelectView(t *testing.T) {
	t.Parallel()

	cmp := NewComparison(ComparisonDeps{
		Source: NewCatalog(CatalogDeps{Store: fixtureStore()}),
		Differ: chardiff.NewCharDiffer(0),
	})
	session, err := cmp.Refresh(context.Background(), ports.RangeQuery{})
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	view, err := SelectView(session, "20250105_10_民法修正草案.docx", nil)
	if err != nil {
		t.Fatalf("SelectView: %v", err)
	}
	if view.Kind != compare.ViewComparison || len(view.Versions) != 2 {
		t.Fatalf("expected a two-version comparison, got %s with %d versions", view.Kind, len(view.Versions))
	}
	if view.Versions[0].Affiliation != domain.Executive || view.Versions[1].Affiliation != domain.DPP {
		t.Fatalf("unexpected version order %v, %v", view.Versions[0].Affiliation, view.Versions[1].Affiliation)
	}
	if len(view.Table.Rows) != 1 || !view.Table.Rows[0].HasDifference() {
		t.Fatalf("expected one differing article, got %+v", view.Table.Rows)
	}

	single, err := SelectView(session, "20250105_10_民法修正草案.docx", []domain.Affiliation{domain.DPP})
	if err != nil || single.Kind != compare.ViewSingle {
		t.Fatalf("single selection = %v, %v", single.Kind, err)
	}

	if _, err := SelectView(session, "20250105_10_民法修正草案.docx", []domain.Affiliation{domain.TPP}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("absent version err = %v", err)
	}
	if _, err := SelectView(session, "missing.docx", nil); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("missing bill err = %v", err)
	}
}
