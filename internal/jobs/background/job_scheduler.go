package background

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"yatstats/internal/metrics"
	"yatstats/pkg/logger"

	"github.com/go-co-op/gocron/v2"
)

// PoolStats is the connection pool snapshot the scheduler publishes.
// *pgxpool.Stat satisfies it.
type PoolStats interface {
	TotalConns() int32
	IdleConns() int32
	AcquiredConns() int32
}

// StatFunc takes a pool snapshot.
type StatFunc func() PoolStats

// JobScheduler runs the periodic maintenance jobs.
type JobScheduler struct {
	scheduler gocron.Scheduler
	stats     StatFunc
	metrics   *metrics.Manager
	log       *logger.Logger
	jobs      map[string]gocron.Job
	mu        sync.RWMutex
}

// NewJobScheduler creates a scheduler that publishes pool stats every interval.
func NewJobScheduler(stats StatFunc, m *metrics.Manager, interval time.Duration, log *logger.Logger) (*JobScheduler, error) {
	if log == nil {
		log = logger.NewNop()
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	js := &JobScheduler{
		scheduler: scheduler,
		stats:     stats,
		metrics:   m,
		log:       log,
		jobs:      make(map[string]gocron.Job),
	}

	if err := js.registerJobs(interval); err != nil {
		_ = scheduler.Shutdown()
		return nil, err
	}
	return js, nil
}

// Start starts the job scheduler
func (js *JobScheduler) Start() {
	js.log.Info("starting background job scheduler", "jobs", js.JobNames())
	js.scheduler.Start()
}

// Stop stops the job scheduler
func (js *JobScheduler) Stop() error {
	js.log.Info("stopping background job scheduler")
	return js.scheduler.Shutdown()
}

// JobNames lists the registered jobs.
func (js *JobScheduler) JobNames() []string {
	js.mu.RLock()
	defer js.mu.RUnlock()

	names := make([]string, 0, len(js.jobs))
	for name := range js.jobs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (js *JobScheduler) registerJobs(interval time.Duration) error {
	if js.stats == nil || interval <= 0 {
		return nil
	}

	job, err := js.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(js.collectPoolStats),
		gocron.WithName("pool-stats"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return fmt.Errorf("create pool stats job: %w", err)
	}

	js.mu.Lock()
	js.jobs["pool-stats"] = job
	js.mu.Unlock()
	return nil
}

func (js *JobScheduler) collectPoolStats() {
	stat := js.stats()
	if stat == nil {
		return
	}
	js.metrics.SetPoolStats(stat.TotalConns(), stat.IdleConns(), stat.AcquiredConns())
	js.log.Debug("pool stats collected",
		"total", stat.TotalConns(),
		"idle", stat.IdleConns(),
		"acquired", stat.AcquiredConns(),
	)
}
