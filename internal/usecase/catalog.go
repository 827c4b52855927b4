package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"golang.org/x/sync/errgroup"

	"BillCompare/internal/catalog"
	"BillCompare/internal/domain"
	"BillCompare/internal/ports"
)

// monthLoadLimit bounds concurrent month reads of one range query.
const monthLoadLimit = 4

// CatalogDeps wires the store behind the data-source endpoints.
type CatalogDeps struct {
	Store         ports.MonthlyStore
	DefaultMonths int
	Logger        *slog.Logger
}

// Catalog answers data-source queries over a monthly store. It also serves
// as a local BillSource for offline comparisons.
type Catalog struct {
	store         ports.MonthlyStore
	defaultMonths int
	logger        *slog.Logger
}

var _ ports.BillSource = (*Catalog)(nil)

// NewCatalog constructs the query component.
func NewCatalog(deps CatalogDeps) *Catalog {
	return &Catalog{
		store:         deps.Store,
		defaultMonths: deps.DefaultMonths,
		logger:        deps.Logger,
	}
}

// Categories returns the category code to label map.
func (c *Catalog) Categories(context.Context) (map[string]string, error) {
	return maps.Clone(domain.CategoryDefinitions), nil
}

// AvailableMonths lists stored months, newest first.
func (c *Catalog) AvailableMonths(ctx context.Context) ([]domain.MonthEntry, error) {
	months, err := c.months(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.MonthEntries(months), nil
}

// Legislators returns the stored roster.
func (c *Catalog) Legislators(ctx context.Context) ([]domain.Legislator, error) {
	legislators, err := c.store.Legislators(ctx)
	if err != nil {
		return nil, fmt.Errorf("load legislators: %w", err)
	}
	return legislators, nil
}

// Month returns one month, optionally narrowed to a category.
func (c *Catalog) Month(ctx context.Context, month domain.MonthRef, category string) ([]domain.Bill, error) {
	bills, err := c.store.LoadMonth(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("load month: %w", err)
	}
	return catalog.FilterCategory(bills, category), nil
}

// MonthSummary counts category tags of one month.
func (c *Catalog) MonthSummary(ctx context.Context, month domain.MonthRef) (map[string]int, error) {
	bills, err := c.Month(ctx, month, "")
	if err != nil {
		return nil, err
	}
	return catalog.CategoryCounts(bills), nil
}

// Bills returns the pool of a range query.
func (c *Catalog) Bills(ctx context.Context, q ports.RangeQuery) ([]domain.Bill, error) {
	months, err := c.resolve(ctx, q)
	if err != nil {
		return nil, err
	}
	bills, err := c.load(ctx, months)
	if err != nil {
		return nil, err
	}
	return catalog.FilterCategory(bills, q.Category), nil
}

// CategorySummary counts category tags over a range.
func (c *Catalog) CategorySummary(ctx context.Context, q ports.RangeQuery) (map[string]int, error) {
	bills, err := c.Bills(ctx, ports.RangeQuery{Start: q.Start, End: q.End})
	if err != nil {
		return nil, err
	}
	return catalog.CategoryCounts(bills), nil
}

// PartyStats summarizes party participation over a range.
func (c *Catalog) PartyStats(ctx context.Context, q ports.RangeQuery) (domain.PartyStats, error) {
	bills, legislators, err := c.billsWithRoster(ctx, q)
	if err != nil {
		return domain.PartyStats{}, err
	}
	return catalog.PartyStats(bills, legislators), nil
}

// PartyBills lists the bills of one participation bucket.
func (c *Catalog) PartyBills(ctx context.Context, q ports.RangeQuery, party string) ([]domain.Bill, error) {
	if party == "" {
		return nil, fmt.Errorf("party: %w", domain.ErrInvalidInput)
	}
	bills, legislators, err := c.billsWithRoster(ctx, q)
	if err != nil {
		return nil, err
	}
	buckets := catalog.PartyParticipation(bills, legislators)
	members, ok := buckets[party]
	if !ok {
		return nil, fmt.Errorf("party %q: %w", party, domain.ErrNotFound)
	}
	return domain.NormalizeBills(members), nil
}

// Progress counts bills per progress class over a range.
func (c *Catalog) Progress(ctx context.Context, q ports.RangeQuery) (map[string]int, error) {
	bills, err := c.Bills(ctx, q)
	if err != nil {
		return nil, err
	}
	return catalog.ProgressCounts(bills), nil
}

// ProgressBills lists the bills of one progress class over a range,
// narrowed to q.Category when set.
func (c *Catalog) ProgressBills(ctx context.Context, q ports.RangeQuery, class string) ([]domain.Bill, error) {
	if !slices.Contains(domain.ProgressClasses, class) {
		return nil, fmt.Errorf("progress class %q: %w", class, domain.ErrInvalidInput)
	}
	bills, err := c.Bills(ctx, ports.RangeQuery{Start: q.Start, End: q.End})
	if err != nil {
		return nil, err
	}
	return domain.NormalizeBills(catalog.FilterProgress(bills, class, q.Category)), nil
}

// Ranking returns the most frequent bill titles over a range.
func (c *Catalog) Ranking(ctx context.Context, q ports.RangeQuery) ([]catalog.RankedTitle, error) {
	bills, err := c.Bills(ctx, q)
	if err != nil {
		return nil, err
	}
	return catalog.TitleRanking(bills), nil
}

func (c *Catalog) billsWithRoster(ctx context.Context, q ports.RangeQuery) ([]domain.Bill, []domain.Legislator, error) {
	legislators, err := c.Legislators(ctx)
	if err != nil {
		return nil, nil, err
	}
	bills, err := c.Bills(ctx, q)
	if err != nil {
		return nil, nil, err
	}
	return bills, legislators, nil
}

func (c *Catalog) months(ctx context.Context) ([]domain.MonthRef, error) {
	months, err := c.store.Months(ctx)
	if err != nil {
		return nil, fmt.Errorf("list months: %w", err)
	}
	domain.SortMonthsNewestFirst(months)
	return months, nil
}

func (c *Catalog) resolve(ctx context.Context, q ports.RangeQuery) ([]domain.MonthRef, error) {
	available, err := c.months(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.ResolveRange(available, q.Start, q.End, c.defaultMonths)
}

// load reads months concurrently and concatenates them in request order.
// A month that vanished since listing is skipped.
func (c *Catalog) load(ctx context.Context, months []domain.MonthRef) ([]domain.Bill, error) {
	parts := make([][]domain.Bill, len(months))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(monthLoadLimit)
	for i, month := range months {
		i, month := i, month
		g.Go(func() error {
			bills, err := c.store.LoadMonth(gctx, month)
			if errors.Is(err, domain.ErrNotFound) {
				c.debug("month disappeared", "month", month.Label())
				return nil
			}
			if err != nil {
				return fmt.Errorf("load month %s: %w", month.Label(), err)
			}
			parts[i] = bills
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	all := []domain.Bill{}
	for _, part := range parts {
		all = append(all, part...)
	}
	return all, nil
}

func (c *Catalog) debug(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}
