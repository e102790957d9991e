package console

import (
	"context"
	"golang.org/x/sync/errgroup"
	"log/slog"
	"sync"
)

type Stat struct {
	Label string
	Count int
	OK    bool
}

type Counter struct {
	Label string
	Count func(ctx context.Context) (int, error)
}

// CountOf counts records through a full GetAll; the API has no count endpoint.
func CountOf[T any](label string, src Lister[T]) Counter {
	return Counter{Label: label, Count: func(ctx context.Context) (int, error) {
		items, err := src.GetAll(ctx)
		return len(items), err
	}}
}

// Dashboard shows one count per resource. Each count loads independently; a
// failure marks only that stat unavailable.
type Dashboard struct {
	counters []Counter
	log      *slog.Logger

	mu    sync.Mutex
	phase Phase
	stats []Stat
}

func NewDashboard(log *slog.Logger, counters ...Counter) *Dashboard {
	if log == nil {
		log = slog.Default()
	}
	return &Dashboard{counters: counters, log: log}
}

func (d *Dashboard) Load(ctx context.Context) {
	d.mu.Lock()
	d.phase = Loading
	d.mu.Unlock()

	stats := make([]Stat, len(d.counters))
	var g errgroup.Group
	for i, c := range d.counters {
		g.Go(func() error {
			n, err := c.Count(ctx)
			if err != nil {
				d.log.Error("count failed", "stat", c.Label, "err", err)
				stats[i] = Stat{Label: c.Label}
				return nil
			}
			stats[i] = Stat{Label: c.Label, Count: n, OK: true}
			return nil
		})
	}
	_ = g.Wait()

	d.mu.Lock()
	d.stats = stats
	d.phase = Ready
	d.mu.Unlock()
}

func (d *Dashboard) Phase() Phase {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.phase
}

func (d *Dashboard) Stats() []Stat {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Stat, len(d.stats))
	copy(out, d.stats)
	return out
}
