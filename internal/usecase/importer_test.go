package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"

	"BillCompare/internal/domain"
	"BillCompare/internal/ports"
)

func TestImporterCopiesEveryMonth(t *testing.T) {
	t.Parallel()

	src, dst := fixtureStore(), &memStore{}
	result, err := NewImporter(nil).Import(context.Background(), src, dst)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if result.Months != len(src.months) {
		t.Fatalf("imported %d months, want %d", result.Months, len(src.months))
	}
	if _, err := ulid.Parse(result.BatchID); err != nil {
		t.Fatalf("batch id %q: %v", result.BatchID, err)
	}
	if len(dst.legislators) != len(src.legislators) {
		t.Fatalf("roster not copied: %+v", dst.legislators)
	}
	bills, err := dst.LoadMonth(context.Background(), domain.MonthRef{Year: 2025, Month: 1})
	if err != nil || len(bills) != 1 {
		t.Fatalf("copied month = %+v, %v", bills, err)
	}
}

type failingStore struct{ ports.BillArchive }

func (failingStore) Months(context.Context) ([]domain.MonthRef, error) {
	return nil, errors.New("boom")
}

func TestImporterReportsListFailure(t *testing.T) {
	t.Parallel()

	if _, err := NewImporter(nil).Import(context.Background(), failingStore{}, &memStore{}); err == nil {
		t.Fatal("expected error")
	}
}

type manualScheduler struct {
	job     func(time.Time)
	stopped bool
}

func (m *manualScheduler) Start(_ context.Context, job func(time.Time)) error {
	m.job = job
	return nil
}

func (m *manualScheduler) Stop(context.Context) error {
	m.stopped = true
	return nil
}

func TestArchiveSyncImportsOnTick(t *testing.T) {
	t.Parallel()

	driver := &manualScheduler{}
	dst := &memStore{}
	sync := NewArchiveSync(driver, NewImporter(nil), fixtureStore(), dst, nil)

	if err := sync.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if driver.job == nil {
		t.Fatal("job not registered")
	}
	driver.job(time.Now())
	if months, _ := dst.Months(context.Background()); len(months) == 0 {
		t.Fatal("tick did not import")
	}

	if err := sync.Stop(context.Background()); err != nil || !driver.stopped {
		t.Fatalf("Stop: %v stopped=%v", err, driver.stopped)
	}
}
