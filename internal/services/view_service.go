package services

import (
	"context"
	"time"

	"yatstats/internal/caching"
	"yatstats/internal/metrics"
	"yatstats/internal/models"
	"yatstats/internal/repositories"
	"yatstats/pkg/logger"
)

type ViewService interface {
	// BuildView returns ErrTenantNotFound for unknown keys and an
	// *AggregationError when any store call fails.
	BuildView(ctx context.Context, tenantKey string) (*models.CompositeView, error)
	// Invalidate drops any cached view for tenantKey.
	Invalidate(ctx context.Context, tenantKey string) error
}

type ViewServiceOption func(*viewService)

// WithViewCache serves and stores complete views through cache for ttl.
func WithViewCache(cache caching.ViewCache, ttl time.Duration) ViewServiceOption {
	return func(s *viewService) {
		if cache != nil && ttl > 0 {
			s.cache = cache
			s.cacheTTL = ttl
		}
	}
}

func WithViewMetrics(m *metrics.Manager) ViewServiceOption {
	return func(s *viewService) {
		s.metrics = m
	}
}

func WithViewLogger(l *logger.Logger) ViewServiceOption {
	return func(s *viewService) {
		if l != nil {
			s.log = l
		}
	}
}

type viewService struct {
	tenants  repositories.TenantRepository
	stats    repositories.StatsRepository
	cache    caching.ViewCache
	cacheTTL time.Duration
	metrics  *metrics.Manager
	log      *logger.Logger
}

func NewViewService(tenants repositories.TenantRepository, stats repositories.StatsRepository, opts ...ViewServiceOption) ViewService {
	s := &viewService{
		tenants: tenants,
		stats:   stats,
		cache:   caching.NewNoopViewCache(),
		log:     logger.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *viewService) BuildView(ctx context.Context, tenantKey string) (*models.CompositeView, error) {
	start := time.Now()

	if view := s.cached(ctx, tenantKey); view != nil {
		s.metrics.ObserveViewBuild(metrics.OutcomeCacheHit, time.Since(start))
		return view, nil
	}

	school, err := s.tenants.GetSchool(ctx, tenantKey)
	if err != nil {
		return nil, s.fail(tenantKey, err, start)
	}
	if school == nil {
		s.log.Debug("tenant not found", "hsid", tenantKey)
		s.metrics.ObserveViewBuild(metrics.OutcomeNotFound, time.Since(start))
		return nil, ErrTenantNotFound
	}

	roster, err := s.tenants.GetRoster(ctx, tenantKey)
	if err != nil {
		return nil, s.fail(tenantKey, err, start)
	}

	stats, err := s.stats.LoadStats(ctx, playerIDs(roster))
	if err != nil {
		return nil, s.fail(tenantKey, err, start)
	}

	view := assemble(school, roster, stats)

	if s.cacheTTL > 0 {
		if err := s.cache.SetView(ctx, tenantKey, view, s.cacheTTL); err != nil {
			s.log.Warn("failed to cache view", "hsid", tenantKey, "error", err)
		}
	}

	s.metrics.ObserveViewBuild(metrics.OutcomeOK, time.Since(start))
	return view, nil
}

func (s *viewService) Invalidate(ctx context.Context, tenantKey string) error {
	return s.cache.DeleteView(ctx, tenantKey)
}

// cached returns a usable cached view or nil. Cache errors fall through to
// the store.
func (s *viewService) cached(ctx context.Context, tenantKey string) *models.CompositeView {
	if s.cacheTTL <= 0 {
		return nil
	}
	view, err := s.cache.GetView(ctx, tenantKey)
	if err != nil {
		s.log.Warn("view cache read failed", "hsid", tenantKey, "error", err)
		return nil
	}
	if view == nil {
		return nil
	}
	return assemble(view.School, view.Roster, view.Stats)
}

func (s *viewService) fail(tenantKey string, err error, start time.Time) error {
	s.log.Error("failed to build view", "hsid", tenantKey, "error", err)
	s.metrics.ObserveViewBuild(metrics.OutcomeFailed, time.Since(start))
	return &AggregationError{TenantKey: tenantKey, Err: err}
}

// assemble builds the view and gives every roster player a stats entry.
func assemble(school *models.School, roster []models.Player, stats models.StatsIndex) *models.CompositeView {
	if roster == nil {
		roster = []models.Player{}
	}
	index := make(models.StatsIndex, len(roster))
	for id, s := range stats {
		if s.Batting == nil {
			s.Batting = []models.BattingLine{}
		}
		if s.Pitching == nil {
			s.Pitching = []models.PitchingLine{}
		}
		index[id] = s
	}
	for _, p := range roster {
		index.Ensure(p.ID)
	}
	return &models.CompositeView{School: school, Roster: roster, Stats: index}
}

// playerIDs returns the distinct non-zero ids on the roster, in roster order.
func playerIDs(roster []models.Player) []int64 {
	ids := make([]int64, 0, len(roster))
	seen := make(map[int64]struct{}, len(roster))
	for _, p := range roster {
		if p.ID == 0 {
			continue
		}
		if _, ok := seen[p.ID]; ok {
			continue
		}
		seen[p.ID] = struct{}{}
		ids = append(ids, p.ID)
	}
	return ids
}
