package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"BillCompare/internal/compare"
	"BillCompare/internal/domain"
	"BillCompare/internal/ports"
)

// ComparisonDeps wires the data source and the diff primitive.
type ComparisonDeps struct {
	Source ports.BillSource
	Differ ports.Differ
	Logger *slog.Logger
}

// Comparison loads bill pools into comparison sessions. Overlapping loads
// are ordered by request token: a load finishing after a newer one has been
// applied is discarded.
type Comparison struct {
	source   ports.BillSource
	renderer compare.Renderer
	logger   *slog.Logger

	mu      sync.Mutex
	issued  uint64
	applied uint64
	session *compare.Session
}

// NewComparison constructs the comparison workflow.
func NewComparison(deps ComparisonDeps) *Comparison {
	return &Comparison{
		source:   deps.Source,
		renderer: compare.NewRenderer(deps.Differ, deps.Logger),
		logger:   deps.Logger,
	}
}

// Begin issues the token for the next load.
func (c *Comparison) Begin() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.issued++
	return c.issued
}

// Load fetches the roster and the bill pool concurrently and installs a
// fresh session. It returns ErrStaleResponse when a newer load was applied
// while this one was in flight.
func (c *Comparison) Load(ctx context.Context, token uint64, q ports.RangeQuery) (*compare.Session, error) {
	if c.source == nil {
		return nil, fmt.Errorf("bill source is not configured")
	}

	var (
		legislators []domain.Legislator
		bills       []domain.Bill
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		legislators, err = c.source.Legislators(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		bills, err = c.source.Bills(gctx, q)
		return err
	})
	if err := g.Wait(); err != nil {
		c.logError("load failed", "token", token, "error", err)
		return nil, fmt.Errorf("load pool: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if token < c.applied {
		c.debug("discard stale load", "token", token, "applied", c.applied)
		return nil, fmt.Errorf("load %d: %w", token, domain.ErrStaleResponse)
	}
	c.applied = token
	c.session = compare.NewSession(bills, legislators, c.renderer)
	c.debug("session loaded", "token", token, "session", c.session.ID, "bills", len(bills), "legislators", len(legislators))
	return c.session, nil
}

// Refresh issues a token and loads with it.
func (c *Comparison) Refresh(ctx context.Context, q ports.RangeQuery) (*compare.Session, error) {
	return c.Load(ctx, c.Begin(), q)
}

// Session returns the last applied session, if any.
func (c *Comparison) Session() *compare.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// SelectView makes the bill named by sourceFile the base of s and selects
// the given affiliations, or every available version when none are given.
func SelectView(s *compare.Session, sourceFile string, affs []domain.Affiliation) (compare.View, error) {
	base, err := s.FindBySource(sourceFile)
	if err != nil {
		return compare.View{}, err
	}
	versions := s.SelectBase(base)
	if len(versions) == 0 {
		return compare.View{}, fmt.Errorf("bill %q: %w", sourceFile, domain.ErrNoVersions)
	}

	if len(affs) == 0 {
		for _, v := range versions.Ordered() {
			affs = append(affs, v.Affiliation)
		}
	}
	if err := s.Select(affs...); err != nil {
		return compare.View{}, err
	}
	return s.View(), nil
}

func (c *Comparison) debug(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}

func (c *Comparison) logError(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Error(msg, args...)
	}
}
