package postgres

import (
	"context"
	"fmt"
	"github.com/cenkalti/backoff/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"log/slog"
	"time"
)

// Options tunes the pool and the startup retry. Zero values take defaults.
type Options struct {
	MaxConns   int32
	Attempts   int
	RetryDelay time.Duration
}

func (o Options) withDefaults() Options {
	if o.MaxConns <= 0 {
		o.MaxConns = 8
	}
	if o.Attempts <= 0 {
		o.Attempts = 5
	}
	if o.RetryDelay <= 0 {
		o.RetryDelay = time.Second
	}
	return o
}

// Connect opens a pool and waits for the database to answer a ping, retrying
// while it starts up. A malformed DSN fails immediately.
func Connect(ctx context.Context, dsn string, opts Options, log *slog.Logger) (*pgxpool.Pool, error) {
	opts = opts.withDefaults()
	if log == nil {
		log = slog.Default()
	}
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	cfg.MaxConns = opts.MaxConns
	cfg.MinConns = 1
	cfg.HealthCheckPeriod = 30 * time.Second

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = opts.RetryDelay

	pool, err := backoff.Retry(ctx, func() (*pgxpool.Pool, error) { return open(ctx, cfg) },
		backoff.WithBackOff(b),
		backoff.WithMaxTries(uint(opts.Attempts)),
		backoff.WithNotify(func(err error, next time.Duration) {
			log.Warn("postgres not ready", "retry_in", next, "err", err)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("postgres unreachable after %d attempts: %w", opts.Attempts, err)
	}
	return pool, nil
}

func open(ctx context.Context, cfg *pgxpool.Config) (*pgxpool.Pool, error) {
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}
