package console

import (
	"context"
	"errors"
	"fmt"
	"github.com/ariefcatur/nexus-admin/internal/catalog"
	"io"
	"log/slog"
	"sync"
)

var errBoom = errors.New("boom")

func quietLog() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

// fakeProducts records every call in order.
type fakeProducts struct {
	mu      sync.Mutex
	calls   []string
	items   []catalog.Product
	listErr error
	saveErr error
	delErr  error
	created []catalog.ProductFields
	updated map[int64]catalog.ProductFields

	// block, when set, holds Create until released.
	block chan struct{}
}

func (f *fakeProducts) record(c string) {
	f.mu.Lock()
	f.calls = append(f.calls, c)
	f.mu.Unlock()
}

func (f *fakeProducts) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeProducts) GetAll(context.Context) ([]catalog.Product, error) {
	f.record("getAll")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]catalog.Product(nil), f.items...), nil
}

func (f *fakeProducts) Create(_ context.Context, fields catalog.ProductFields) (catalog.Product, error) {
	f.record("create")
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return catalog.Product{}, f.saveErr
	}
	f.created = append(f.created, fields)
	p := catalog.Product{ID: int64(len(f.items) + 1), Name: fields.Name, Description: fields.Description, Price: *fields.Price}
	f.items = append(f.items, p)
	return p, nil
}

func (f *fakeProducts) Update(_ context.Context, id int64, fields catalog.ProductFields) (catalog.Product, error) {
	f.record(fmt.Sprintf("update:%d", id))
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return catalog.Product{}, f.saveErr
	}
	if f.updated == nil {
		f.updated = map[int64]catalog.ProductFields{}
	}
	f.updated[id] = fields
	return catalog.Product{ID: id, Name: fields.Name}, nil
}

func (f *fakeProducts) Delete(_ context.Context, id int64) error {
	f.record(fmt.Sprintf("delete:%d", id))
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.delErr
}

type fakeUsers struct {
	users []catalog.User
	err   error
}

func (f fakeUsers) GetAll(context.Context) ([]catalog.User, error) { return f.users, f.err }
