package gachalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"wish-archive/core/reconcile"
	"wish-archive/feature/gachalog/models"
	"wish-archive/feature/gachalog/store"
	"wish-archive/feature/statistics"

	"go.uber.org/zap"
)

var (
	// ErrRefreshInProgress is returned when a refresh is already running.
	ErrRefreshInProgress = errors.New("a refresh is already running")
	// ErrArchiveNotFound is returned for an unknown uid.
	ErrArchiveNotFound = errors.New("archive not found")
)

// RefreshResult is the outcome of Service.Refresh.
type RefreshResult struct {
	// Archive is the current archive after the refresh, nil if there is none.
	Archive *models.Archive `json:"archive"`
	// State is the last progress snapshot.
	State models.FetchState `json:"state"`
	// Changed reports whether any page carried records.
	Changed bool `json:"changed"`
}

// Service owns the current archive and the archive list.
type Service struct {
	engine  *Engine
	store   *store.Store
	catalog CatalogSource
	pools   statistics.Pools
	logger  *zap.Logger

	refreshMu sync.Mutex

	mu       sync.RWMutex
	current  *models.Archive
	archives []models.Archive
	loaded   bool
}

// NewService creates a new gacha log service.
func NewService(engine *Engine, store *store.Store, catalog CatalogSource, pools statistics.Pools, logger *zap.Logger) *Service {
	return &Service{
		engine:  engine,
		store:   store,
		catalog: catalog,
		pools:   pools,
		logger:  logger,
	}
}

// Refresh runs one refresh. Only one refresh runs at a time; a concurrent
// call returns ErrRefreshInProgress. When the refresh touches no archive the
// current archive is left as it was.
func (s *Service) Refresh(ctx context.Context, authQuery string, strategy reconcile.Strategy, sink ProgressSink) (*RefreshResult, error) {
	if !s.refreshMu.TryLock() {
		return nil, ErrRefreshInProgress
	}
	defer s.refreshMu.Unlock()

	start := time.Now()
	var last models.FetchState
	capture := func(state models.FetchState) {
		last = state
		if sink != nil {
			sink(state)
		}
	}

	archive, err := s.engine.Refresh(ctx, authQuery, strategy, capture)
	// Types committed before a failure still belong to the archive
	if archive != nil {
		s.setCurrent(ctx, archive)
	}
	if err != nil {
		s.logger.Error("Refresh failed", zap.Error(err), zap.Duration("duration", time.Since(start)))
		return nil, err
	}

	result := &RefreshResult{
		Archive: s.Current(),
		State:   last,
		Changed: archive != nil,
	}

	s.logger.Info("Refresh finished",
		zap.Bool("changed", result.Changed),
		zap.Bool("auth_expired", last.AuthExpired),
		zap.Duration("duration", time.Since(start)))

	return result, nil
}

func (s *Service) setCurrent(ctx context.Context, archive *models.Archive) {
	if err := s.store.SelectArchive(ctx, archive.InnerID); err != nil {
		s.logger.Warn("Failed to persist archive selection", zap.Error(err))
	}

	selected := *archive
	selected.IsSelected = true

	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = &selected
	if !s.loaded {
		return
	}

	found := false
	for i := range s.archives {
		if s.archives[i].InnerID == selected.InnerID {
			found = true
		}
		s.archives[i].IsSelected = s.archives[i].InnerID == selected.InnerID
	}
	if !found {
		s.archives = append(s.archives, selected)
	}
}

// Current returns the current archive, or nil.
func (s *Service) Current() *models.Archive {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil
	}
	c := *s.current
	return &c
}

// Archives returns every archive. The list is read from the store once and
// kept in sync by later refreshes.
func (s *Service) Archives(ctx context.Context) ([]models.Archive, error) {
	s.mu.RLock()
	if s.loaded {
		out := append([]models.Archive(nil), s.archives...)
		s.mu.RUnlock()
		return out, nil
	}
	s.mu.RUnlock()

	list, err := s.store.ListArchives(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.archives = list
	s.loaded = true
	if s.current == nil {
		for i := range list {
			if list[i].IsSelected {
				c := list[i]
				s.current = &c
			}
		}
	}

	return append([]models.Archive(nil), list...), nil
}

// Statistics computes the report of the archive of uid.
func (s *Service) Statistics(ctx context.Context, uid string) (*statistics.Report, error) {
	archive, err := s.store.FindArchiveByUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if archive == nil {
		return nil, fmt.Errorf("%w: %s", ErrArchiveNotFound, uid)
	}

	records, err := s.store.ListAllRecords(ctx, archive.InnerID)
	if err != nil {
		return nil, err
	}

	cat, err := s.catalog.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	// Ids share one sequence across query types
	pulls := make([]statistics.Pull, len(records))
	for i, r := range records {
		pulls[i] = statistics.Pull{
			ID:        r.ID,
			GachaType: r.GachaType,
			ItemID:    r.ItemID,
			Time:      r.Time,
		}
	}

	return statistics.Compute(pulls, cat, s.pools), nil
}
