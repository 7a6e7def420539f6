package gachalog

import (
	"context"
	"fmt"

	"wish-archive/core/logger"
	"wish-archive/core/reconcile"
	"wish-archive/feature/catalog"
	"wish-archive/feature/gachalog/fetch"
	"wish-archive/feature/gachalog/models"
	"wish-archive/feature/gachalog/resolve"

	"go.uber.org/zap"
)

// Store is the persistence a refresh needs.
type Store interface {
	reconcile.Mutator[models.Record]
	FindArchiveByUID(ctx context.Context, uid string) (*models.Archive, error)
	CreateArchive(ctx context.Context, uid string) (*models.Archive, error)
	MaxRecordID(ctx context.Context, archiveID uint, queryType int) (int64, error)
}

// CatalogSource provides the catalog records are resolved against.
type CatalogSource interface {
	Get(ctx context.Context) (*catalog.Catalog, error)
}

// Waiter blocks between two requests.
type Waiter interface {
	Wait(ctx context.Context) error
}

// Engine walks the gacha log API and merges it into the store.
type Engine struct {
	fetcher  fetch.Client
	store    Store
	catalog  CatalogSource
	waiter   Waiter
	pageSize int
	logger   *zap.Logger
}

// NewEngine creates a refresh engine.
func NewEngine(fetcher fetch.Client, store Store, catalog CatalogSource, waiter Waiter, pageSize int, logger *zap.Logger) *Engine {
	if pageSize <= 0 {
		pageSize = 20
	}
	return &Engine{
		fetcher:  fetcher,
		store:    store,
		catalog:  catalog,
		waiter:   waiter,
		pageSize: pageSize,
		logger:   logger,
	}
}

// run holds the state of one Refresh call.
type run struct {
	*Engine
	authQuery string
	strategy  reconcile.Strategy
	sink      ProgressSink
	resolver  *resolve.Resolver
	archive   *models.Archive
	state     models.FetchState
	requests  int
	log       *zap.Logger
}

// Refresh fetches every query type in order and merges the records with
// strategy. It returns the archive the records belong to, or nil when no
// page carried any record.
//
// An expired auth query stops the refresh without an error: the final
// snapshot sent to sink has AuthExpired set and the interrupted query type
// is not stored. Types completed before a failure stay committed.
func (e *Engine) Refresh(ctx context.Context, authQuery string, strategy reconcile.Strategy, sink ProgressSink) (*models.Archive, error) {
	// Fail before any request for an unknown strategy
	reconcile.NewMerger[models.Record](strategy)

	cat, err := e.catalog.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	r := &run{
		Engine:    e,
		authQuery: authQuery,
		strategy:  strategy,
		sink:      sink,
		resolver:  resolve.New(cat),
		log:       e.logger.With(zap.String("strategy", string(strategy))),
	}

	for _, qt := range models.QueryTypes {
		expired, err := r.refreshType(ctx, qt)
		if err != nil {
			return r.archive, err
		}
		if expired {
			r.log.Warn("Auth query expired, refresh stopped", zap.Stringer("query_type", qt))
			return r.archive, nil
		}
	}

	r.log.Info("Refresh completed",
		zap.Int("requests", r.requests),
		zap.Int("resolved_names", r.resolver.Len()))

	return r.archive, nil
}

// refreshType fetches and merges one query type. It reports whether the auth
// query expired.
func (r *run) refreshType(ctx context.Context, qt models.QueryType) (bool, error) {
	merger := reconcile.NewMerger[models.Record](r.strategy)
	r.state = models.FetchState{QueryType: qt}

	var endID int64
	for {
		if err := r.wait(ctx); err != nil {
			return false, err
		}
		r.state.Items = r.state.Items[:0]

		page, err := r.fetcher.FetchPage(ctx, fetch.PageRequest{
			QueryType: int(qt),
			EndID:     endID,
			Size:      r.pageSize,
			AuthQuery: r.authQuery,
		})
		r.requests++
		if err != nil {
			return false, fmt.Errorf("failed to fetch %s page after id %d: %w", qt, endID, err)
		}

		if page == nil {
			r.state.AuthExpired = true
			r.sink.emit(r.state)
			return true, nil
		}

		for _, item := range page.Items {
			if err := r.ensureArchive(ctx, item.UID); err != nil {
				return false, err
			}

			if merger.NeedsCursor() {
				cursor, err := r.store.MaxRecordID(ctx, r.archive.InnerID, int(qt))
				if err != nil {
					return false, err
				}
				merger.SetCursor(cursor)
			}

			resolved := r.resolver.ResolveRaw(item.Name, item.ItemType)
			record := models.Record{
				ArchiveID: r.archive.InnerID,
				QueryType: int(qt),
				ID:        item.ID,
				GachaType: item.GachaType,
				ItemID:    resolved.ID,
				Name:      item.Name,
				Time:      item.Time,
			}

			if !merger.Offer(record) {
				break
			}
			r.state.Items = append(r.state.Items, resolved)
		}

		r.sink.emit(r.state)

		r.log.Debug("Fetched page",
			zap.Stringer("query_type", qt),
			zap.Int64("end_id", endID),
			zap.Int("items", len(page.Items)),
			zap.Int("kept", len(merger.Kept())))

		if merger.Done() || page.IsLast() {
			break
		}
		endID = merger.EndID()
	}

	return false, r.commit(ctx, qt, merger)
}

// ensureArchive resolves the archive on the first record carrying a uid.
func (r *run) ensureArchive(ctx context.Context, uid string) error {
	if r.archive != nil {
		return nil
	}
	if uid == "" {
		return fmt.Errorf("record without uid before any archive was resolved")
	}

	archive, err := r.store.FindArchiveByUID(ctx, uid)
	if err != nil {
		return err
	}
	if archive == nil {
		archive, err = r.store.CreateArchive(ctx, uid)
		if err != nil {
			return err
		}
		r.log.Info("Archive created", zap.String("uid", uid))
	}

	r.archive = archive
	r.log = logger.WithArchive(r.log, uid)
	return nil
}

func (r *run) commit(ctx context.Context, qt models.QueryType, merger *reconcile.Merger[models.Record]) error {
	if r.archive == nil {
		return nil
	}

	plan := merger.Plan(reconcile.Partition{ArchiveID: r.archive.InnerID, QueryType: int(qt)})
	if _, err := reconcile.ApplyPlan[models.Record](ctx, r.store, plan, reconcile.ApplyOptions{}); err != nil {
		return err
	}

	r.log.Info("Query type merged",
		zap.Stringer("query_type", qt),
		zap.Int("offered", plan.Summary.Offered),
		zap.Int("inserted", len(plan.Inserts)),
		zap.Int64("delete_from", plan.DeleteFrom),
		zap.Bool("stopped_early", plan.Summary.StoppedEarly))
	return nil
}

// wait applies the rate-limit delay before every request but the first.
func (r *run) wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.requests == 0 || r.waiter == nil {
		return nil
	}
	return r.waiter.Wait(ctx)
}
