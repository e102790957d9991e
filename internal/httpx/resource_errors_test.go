package httpx

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/ariefcatur/nexus-admin/internal/catalog"
	"github.com/ariefcatur/nexus-admin/internal/redisx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// memStores enforces the unique store number like the stores table does.
type memStores struct {
	mu    sync.Mutex
	items []catalog.Store
}

func (m *memStores) List(context.Context) ([]catalog.Store, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]catalog.Store{}, m.items...), nil
}

func (m *memStores) Get(_ context.Context, id int64) (catalog.Store, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.items {
		if s.ID == id {
			return s, nil
		}
	}
	return catalog.Store{}, catalog.ErrNotFound
}

func (m *memStores) Create(_ context.Context, f catalog.StoreFields) (catalog.Store, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.items {
		if s.StoreID == f.StoreID {
			return catalog.Store{}, catalog.ErrConflict
		}
	}
	s := catalog.Store{ID: int64(len(m.items) + 1), StoreID: f.StoreID, StoreLocation: f.StoreLocation}
	m.items = append(m.items, s)
	return s, nil
}

func (m *memStores) Update(_ context.Context, id int64, f catalog.StoreFields) (catalog.Store, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, s := range m.items {
		if s.ID == id {
			m.items[i] = catalog.Store{ID: id, StoreID: f.StoreID, StoreLocation: f.StoreLocation}
			return m.items[i], nil
		}
	}
	return catalog.Store{}, catalog.ErrNotFound
}

func (m *memStores) Delete(context.Context, int64) error { return catalog.ErrNotFound }

// memOrders applies the status lifecycle like OrderRepo.Update does.
type memOrders struct {
	mu    sync.Mutex
	items []catalog.Order
}

func (m *memOrders) List(context.Context) ([]catalog.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]catalog.Order{}, m.items...), nil
}

func (m *memOrders) Get(_ context.Context, id int64) (catalog.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if id < 1 || int(id) > len(m.items) {
		return catalog.Order{}, catalog.ErrNotFound
	}
	return m.items[id-1], nil
}

func (m *memOrders) Create(_ context.Context, f catalog.OrderFields) (catalog.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o := catalog.Order{ID: int64(len(m.items) + 1), UserID: f.UserID, Status: f.Status, Total: *f.Total}
	m.items = append(m.items, o)
	return o, nil
}

func (m *memOrders) Update(_ context.Context, id int64, f catalog.OrderFields) (catalog.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if id < 1 || int(id) > len(m.items) {
		return catalog.Order{}, catalog.ErrNotFound
	}
	cur := m.items[id-1]
	if !catalog.CanTransition(cur.Status, f.Status) {
		return catalog.Order{}, fmt.Errorf("%w: %s -> %s", catalog.ErrInvalidTransition, cur.Status, f.Status)
	}
	m.items[id-1] = catalog.Order{ID: id, UserID: f.UserID, Status: f.Status, Total: *f.Total}
	return m.items[id-1], nil
}

func (m *memOrders) Delete(context.Context, int64) error { return catalog.ErrNotFound }

type errorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

func decodeError(t *testing.T, body string) errorBody {
	t.Helper()
	var eb errorBody
	require.NoError(t, json.Unmarshal([]byte(body), &eb), body)
	return eb
}

func TestDuplicateStoreNumberIsConflict(t *testing.T) {
	f := newFixture(t)

	resp, body := f.do(t, http.MethodPost, "/api/stores/", `{"store_id":101,"store_location":"Seattle"}`, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode, body)

	resp, body = f.do(t, http.MethodPost, "/api/stores/", `{"store_id":101,"store_location":"Tacoma"}`, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "already exists", decodeError(t, body).Error)

	resp, body = f.do(t, http.MethodPut, "/api/stores/1/", `{"store_id":102,"store_location":"Seattle"}`, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode, body)
	assert.Len(t, f.events.evs, 2)
}

func TestOrderStatusTransitions(t *testing.T) {
	f := newFixture(t)

	resp, body := f.do(t, http.MethodPost, "/api/orders/", `{"user_id":1,"status":"CREATED","total":"10.00"}`, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode, body)

	resp, body = f.do(t, http.MethodPut, "/api/orders/1/", `{"user_id":1,"status":"SHIPPED","total":"10.00"}`, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	eb := decodeError(t, body)
	assert.Contains(t, eb.Error, "invalid status transition")
	assert.Contains(t, eb.Fields["status"], "CREATED -> SHIPPED")

	for _, st := range []catalog.Status{catalog.StatusPaid, catalog.StatusShipped, catalog.StatusCompleted} {
		resp, body = f.do(t, http.MethodPut, "/api/orders/1/", fmt.Sprintf(`{"user_id":1,"status":%q,"total":"10.00"}`, st), nil)
		require.Equal(t, http.StatusOK, resp.StatusCode, body)
	}

	resp, _ = f.do(t, http.MethodPut, "/api/orders/1/", `{"user_id":1,"status":"CANCELLED","total":"10.00"}`, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = f.do(t, http.MethodPut, "/api/orders/1/", `{"user_id":1,"status":"LOST","total":"10.00"}`, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decodeError(t, body).Fields["status"], "must be one of")
}

func TestCreateWhileKeyInFlightIsConflict(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.mr.Set(fmt.Sprintf(redisx.KeyIdemCreate, catalog.ResourceProducts, "k1"), "pending"))

	resp, body := f.do(t, http.MethodPost, "/api/products/", `{"name":"Mouse","price":"1"}`,
		map[string]string{HeaderIdempotencyKey: "k1"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, decodeError(t, body).Error, "still in progress")
	assert.Equal(t, 0, f.repo.writes)
}

func TestValuesBeyondColumnLimitsAreRejected(t *testing.T) {
	f := newFixture(t)

	resp, body := f.do(t, http.MethodPost, "/api/products/", `{"name":"Yacht","price":"123456789012.34"}`, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "must be at most 99999999.99", decodeError(t, body).Fields["price"])

	resp, body = f.do(t, http.MethodPost, "/api/orders/", `{"user_id":1,"status":"CREATED","total":"10000000000"}`, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "must be at most 9999999999.99", decodeError(t, body).Fields["total"])

	resp, body = f.do(t, http.MethodPost, "/api/stores/", `{"store_id":3000000000,"store_location":"Far"}`, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "must be at most 2147483647", decodeError(t, body).Fields["store_id"])

	resp, _ = f.do(t, http.MethodPost, "/api/products/", `{"name":"Edge","price":"99999999.99"}`, nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestDatabaseRangeErrorIsBadRequest(t *testing.T) {
	h := &ResourceHandler[catalog.Product, catalog.ProductFields]{
		Resource: catalog.ResourceProducts,
		Log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/products/", nil)
	h.fail(rec, req, fmt.Errorf("%w: numeric field overflow", catalog.ErrOutOfRange))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "value out of range", decodeError(t, rec.Body.String()).Error)
}
