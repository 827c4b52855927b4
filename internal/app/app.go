package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"BillCompare/internal/compare"
	"BillCompare/internal/config"
	"BillCompare/internal/infrastructure/billapi"
	chardiff "BillCompare/internal/infrastructure/diff"
	"BillCompare/internal/infrastructure/scheduler"
	"BillCompare/internal/infrastructure/storage"
	"BillCompare/internal/logging"
	"BillCompare/internal/ports"
	"BillCompare/internal/render"
	"BillCompare/internal/server"
	"BillCompare/internal/source"
	"BillCompare/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg      config.Config
	logger   *slog.Logger
	registry *source.Registry
	differ   ports.Differ
}

// New builds an application over the built-in store backends.
func New(cfg config.Config, baseLogger *slog.Logger) *Application {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level, cfg.Logging.Format)
	}
	return &Application{
		cfg:      cfg,
		logger:   baseLogger,
		registry: source.DefaultRegistry(),
		differ:   chardiff.NewCharDiffer(0),
	}
}

// Config returns the loaded configuration.
func (a *Application) Config() config.Config {
	return a.cfg
}

// Layout is the configured comparison layout.
func (a *Application) Layout() render.Layout {
	return render.ParseLayout(a.cfg.Compare.Layout)
}

// OpenStore opens the configured monthly store.
func (a *Application) OpenStore(ctx context.Context) (source.Store, error) {
	return a.registry.Open(ctx, a.cfg.Store)
}

// Catalog builds the query use case over an opened store.
func (a *Application) Catalog(store ports.MonthlyStore) *usecase.Catalog {
	return usecase.NewCatalog(usecase.CatalogDeps{
		Store:         store,
		DefaultMonths: a.cfg.Server.DefaultMonths,
		Logger:        a.logger.With("component", "catalog"),
	})
}

// Comparison builds the comparison use case. With local set it reads the
// configured store directly instead of the data-source API. The returned
// close function releases whatever was opened.
func (a *Application) Comparison(ctx context.Context, local bool) (*usecase.Comparison, func() error, error) {
	var (
		src     ports.BillSource
		closeFn = func() error { return nil }
	)
	if local {
		store, err := a.OpenStore(ctx)
		if err != nil {
			return nil, nil, err
		}
		src = a.Catalog(store)
		closeFn = store.Close
	} else {
		src = billapi.NewClient(a.cfg.API.BaseURL, &http.Client{Timeout: a.cfg.API.Timeout})
	}

	cmp := usecase.NewComparison(usecase.ComparisonDeps{
		Source: src,
		Differ: a.differ,
		Logger: a.logger.With("component", "comparison"),
	})
	return cmp, closeFn, nil
}

// Serve runs the HTTP API until ctx is cancelled.
func (a *Application) Serve(ctx context.Context) error {
	store, err := a.OpenStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	if sync := a.archiveSync(store); sync != nil {
		if err := sync.Start(ctx); err != nil {
			return fmt.Errorf("start sync: %w", err)
		}
		defer sync.Stop(context.Background())
	}

	srv := server.New(server.Deps{
		Catalog:  a.Catalog(store),
		Renderer: compare.NewRenderer(a.differ, a.logger.With("component", "diff")),
		Layout:   a.Layout(),
		Logger:   a.logger.With("component", "server"),
	})

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("listening", "addr", a.cfg.Server.Listen, "store", a.cfg.Store.Kind)
		errCh <- srv.Listen(a.cfg.Server.Listen)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
		a.logger.Info("shutting down")
		if err := srv.Shutdown(); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	}
}

// Import copies every month and the roster from one store into another,
// tagging the copy with a fresh batch ID.
func (a *Application) Import(ctx context.Context, from, to config.StoreConfig) (usecase.ImportResult, error) {
	src, err := a.registry.Open(ctx, from)
	if err != nil {
		return usecase.ImportResult{}, fmt.Errorf("source: %w", err)
	}
	defer src.Close()

	dst, err := a.registry.Open(ctx, to)
	if err != nil {
		return usecase.ImportResult{}, fmt.Errorf("target: %w", err)
	}
	defer dst.Close()

	return usecase.NewImporter(a.logger.With("component", "import")).Import(ctx, src, dst)
}

// archiveSync returns the periodic directory import for store, or nil when
// sync is off or the store already is the directory.
func (a *Application) archiveSync(store ports.BillArchive) *usecase.ArchiveSync {
	sync := a.cfg.Store.Sync
	if sync.Interval <= 0 || sync.Dir == "" || a.cfg.Store.Kind == config.StoreDir {
		return nil
	}
	logger := a.logger.With("component", "sync")
	return usecase.NewArchiveSync(
		scheduler.NewTickerScheduler(sync.Interval),
		usecase.NewImporter(logger),
		storage.NewDirStore(sync.Dir),
		store,
		logger,
	)
}
