package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"BillCompare/internal/domain"
	"BillCompare/internal/ports"
)

// DirStore keeps monthly bill files and the roster in one directory.
type DirStore struct {
	dir string
}

var _ ports.BillArchive = (*DirStore)(nil)

// NewDirStore serves the files under dir.
func NewDirStore(dir string) *DirStore {
	return &DirStore{dir: dir}
}

// Months lists the months that have a bill file, newest first.
func (s *DirStore) Months(ctx context.Context) ([]domain.MonthRef, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read data dir: %w", err)
	}

	var months []domain.MonthRef
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if m, ok := ParseMonthFileName(entry.Name()); ok {
			months = append(months, m)
		}
	}
	domain.SortMonthsNewestFirst(months)
	return months, nil
}

// LoadMonth reads one month. A missing file is ErrNotFound.
func (s *DirStore) LoadMonth(ctx context.Context, month domain.MonthRef) ([]domain.Bill, error) {
	data, err := s.read(MonthFileName(month))
	if err != nil {
		return nil, fmt.Errorf("month %s: %w", month.Label(), err)
	}
	return decodeBills(bytes.NewReader(data))
}

// Legislators reads the roster file. A missing file is ErrNotFound.
func (s *DirStore) Legislators(ctx context.Context) ([]domain.Legislator, error) {
	data, err := s.read(LegislatorsFile)
	if err != nil {
		return nil, fmt.Errorf("legislators: %w", err)
	}
	return decodeRoster(bytes.NewReader(data))
}

// SaveMonth writes one month file, replacing any previous content.
func (s *DirStore) SaveMonth(ctx context.Context, month domain.MonthRef, bills []domain.Bill, batchID string) error {
	data, err := encodeJSON(domain.NormalizeBills(bills))
	if err != nil {
		return err
	}
	return s.write(MonthFileName(month), data)
}

// SaveLegislators writes the roster file.
func (s *DirStore) SaveLegislators(ctx context.Context, legislators []domain.Legislator) error {
	data, err := encodeJSON(domain.LegislatorRoster{JSONList: legislators})
	if err != nil {
		return err
	}
	return s.write(LegislatorsFile, data)
}

func (s *DirStore) read(name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

// write replaces name atomically through a temp file in the same directory.
func (s *DirStore) write(name string, data []byte) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	tmp, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("close %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, name)); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("rename %s: %w", name, err)
	}
	return nil
}
