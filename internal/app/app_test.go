package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"

	"BillCompare/internal/config"
	"BillCompare/internal/domain"
	"BillCompare/internal/infrastructure/storage"
	"BillCompare/internal/ports"
)

func seedDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	store := storage.NewDirStore(dir)
	ctx := context.Background()
	bills := []domain.Bill{
		{SourceFile: "20250101_1_民法修正草案.docx", Proposers: []string{"行政院"},
			ComparisonTable: []domain.ArticleEntry{{ModifiedText: "第一條 甲", CurrentText: "第一條 乙"}}},
		{SourceFile: "20250102_2_民法修正草案.docx", Proposers: []string{"王小明"}},
	}
	if err := store.SaveMonth(ctx, domain.MonthRef{Year: 2025, Month: 1}, bills, ""); err != nil {
		t.Fatalf("SaveMonth: %v", err)
	}
	if err := store.SaveMonth(ctx, domain.MonthRef{Year: 2025, Month: 2}, bills[:1], ""); err != nil {
		t.Fatalf("SaveMonth: %v", err)
	}
	if err := store.SaveLegislators(ctx, []domain.Legislator{{Name: "王小明", Party: "民主進步黨"}}); err != nil {
		t.Fatalf("SaveLegislators: %v", err)
	}
	return dir
}

func TestImportIntoSQLArchive(t *testing.T) {
	t.Parallel()

	dir := seedDir(t)
	dsn := filepath.Join(t.TempDir(), "archive.db")
	application := New(config.Config{}, nil)

	result, err := application.Import(context.Background(),
		config.StoreConfig{Kind: config.StoreDir, Dir: dir},
		config.StoreConfig{Kind: config.StoreSQL, DSN: dsn},
	)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if result.Months != 2 || result.Bills != 3 {
		t.Fatalf("unexpected result %+v", result)
	}
	if _, err := ulid.Parse(result.BatchID); err != nil {
		t.Fatalf("batch id %q is not a ULID: %v", result.BatchID, err)
	}

	archive, err := storage.OpenSQLArchive(context.Background(), dsn)
	if err != nil {
		t.Fatalf("OpenSQLArchive: %v", err)
	}
	defer archive.Close()

	bills, err := archive.LoadMonth(context.Background(), domain.MonthRef{Year: 2025, Month: 1})
	if err != nil || len(bills) != 2 || bills[0].ComparisonTable[0].CurrentText != "第一條 乙" {
		t.Fatalf("archived month = %+v, %v", bills, err)
	}
}

func TestLocalComparison(t *testing.T) {
	t.Parallel()

	cfg := config.Config{
		Store:  config.StoreConfig{Kind: config.StoreDir, Dir: seedDir(t)},
		Server: config.ServerConfig{DefaultMonths: 3},
	}
	cmp, closeFn, err := New(cfg, nil).Comparison(context.Background(), true)
	if err != nil {
		t.Fatalf("Comparison: %v", err)
	}
	defer closeFn()

	session, err := cmp.Refresh(context.Background(), ports.RangeQuery{Start: "2025-01", End: "2025-01"})
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	versions := session.SelectBase(session.Pool()[0])
	if len(versions) != 2 {
		t.Fatalf("expected executive and DPP versions, got %d", len(versions))
	}
}

func TestArchiveSyncOnlyForArchives(t *testing.T) {
	t.Parallel()

	sync := config.SyncConfig{Dir: t.TempDir(), Interval: time.Minute}
	archive := storage.NewDirStore(t.TempDir())

	dirApp := New(config.Config{Store: config.StoreConfig{Kind: config.StoreDir, Sync: sync}}, nil)
	if dirApp.archiveSync(archive) != nil {
		t.Fatal("a directory store must not sync from a directory")
	}

	off := New(config.Config{Store: config.StoreConfig{Kind: config.StoreSQL}}, nil)
	if off.archiveSync(archive) != nil {
		t.Fatal("sync without an interval must be disabled")
	}

	on := New(config.Config{Store: config.StoreConfig{Kind: config.StoreSQL, Sync: sync}}, nil)
	if on.archiveSync(archive) == nil {
		t.Fatal("expected a sync job for a sql store")
	}
}
