package database

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
)

// Querier is the read surface repositories depend on. *pgxpool.Pool and
// pgxmock pools both satisfy it.
type Querier interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// QueryHook is called once per statement after it completes.
type QueryHook func(ctx context.Context, elapsed time.Duration, err error)

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithQueryTimeout bounds every statement issued through the executor.
func WithQueryTimeout(d time.Duration) ExecutorOption {
	return func(e *Executor) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithQueryHook registers a hook observing each statement.
func WithQueryHook(hook QueryHook) ExecutorOption {
	return func(e *Executor) {
		if hook != nil {
			e.hooks = append(e.hooks, hook)
		}
	}
}

// Executor decorates a Querier with per-statement timeouts and hooks.
// Every statement runs on the caller's context, so request cancellation
// reaches the driver.
type Executor struct {
	q       Querier
	timeout time.Duration
	hooks   []QueryHook
}

// NewExecutor wraps q.
func NewExecutor(q Querier, opts ...ExecutorOption) *Executor {
	e := &Executor{q: q}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Executor) Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	ctx, done := e.begin(ctx)
	rows, err := e.q.Query(ctx, sql, args...)
	if err != nil {
		done(err)
		return nil, err
	}
	return &observedRows{Rows: rows, done: done}, nil
}

func (e *Executor) QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row {
	ctx, done := e.begin(ctx)
	return &observedRow{row: e.q.QueryRow(ctx, sql, args...), done: done}
}

// begin derives the statement context and returns a completion func that is
// safe to call more than once.
func (e *Executor) begin(ctx context.Context) (context.Context, func(error)) {
	cancel := context.CancelFunc(func() {})
	if e.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
	}
	start := time.Now()

	var once sync.Once
	return ctx, func(err error) {
		once.Do(func() {
			elapsed := time.Since(start)
			for _, hook := range e.hooks {
				hook(ctx, elapsed, err)
			}
			cancel()
		})
	}
}

type observedRows struct {
	pgx.Rows
	done func(error)
}

func (r *observedRows) Close() {
	r.Rows.Close()
	r.done(r.Rows.Err())
}

type observedRow struct {
	row  pgx.Row
	done func(error)
}

func (r *observedRow) Scan(dest ...any) error {
	err := r.row.Scan(dest...)
	if errors.Is(err, pgx.ErrNoRows) {
		r.done(nil)
	} else {
		r.done(err)
	}
	return err
}
