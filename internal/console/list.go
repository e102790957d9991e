package console

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

type Phase int

const (
	Loading Phase = iota
	Ready
)

func (p Phase) String() string {
	if p == Loading {
		return "loading"
	}
	return "ready"
}

var ErrUnmounted = errors.New("page unmounted")

// Lister is the read half of a resource service.
type Lister[T any] interface {
	GetAll(ctx context.Context) ([]T, error)
}

// List holds a page's copy of the last successful GetAll. It is never merged:
// every refresh replaces it wholesale. Results that arrive after Unmount are
// dropped.
type List[T any] struct {
	noun string
	src  Lister[T]
	log  *slog.Logger

	mu      sync.Mutex
	phase   Phase
	items   []T
	gen     uint64
	mounted bool
}

func NewList[T any](noun string, src Lister[T], log *slog.Logger) *List[T] {
	if log == nil {
		log = slog.Default()
	}
	return &List[T]{noun: noun, src: src, log: log, items: []T{}}
}

// Mount starts a new page lifetime and loads the list.
func (l *List[T]) Mount(ctx context.Context) error {
	l.mu.Lock()
	l.gen++
	l.mounted = true
	l.phase = Loading
	l.mu.Unlock()
	return l.Refresh(ctx)
}

// Unmount ends the current lifetime. In-flight calls still complete but their
// results are not applied.
func (l *List[T]) Unmount() {
	l.mu.Lock()
	l.gen++
	l.mounted = false
	l.mu.Unlock()
}

// Refresh re-fetches the whole list. A failed fetch is logged and leaves the
// previous list in place; it is not surfaced to the user.
func (l *List[T]) Refresh(ctx context.Context) error {
	gen, ok := l.lifetime()
	if !ok {
		return ErrUnmounted
	}

	items, err := l.src.GetAll(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()
	if gen != l.gen {
		return ErrUnmounted
	}
	l.phase = Ready
	if err != nil {
		l.log.Error("fetch failed", "resource", l.noun, "err", err)
		return err
	}
	if items == nil {
		items = []T{}
	}
	l.items = items
	return nil
}

func (l *List[T]) Phase() Phase {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.phase
}

func (l *List[T]) Items() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

func (l *List[T]) lifetime() (uint64, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.gen, l.mounted
}
