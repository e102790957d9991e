package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"github.com/ariefcatur/nexus-admin/internal/catalog"
	kafkax "github.com/ariefcatur/nexus-admin/internal/kafka"
	"github.com/ariefcatur/nexus-admin/internal/redisx"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	kafkago "github.com/segmentio/kafka-go"
	"log/slog"
	"net/http"
	"strconv"
	"time"
)

const HeaderIdempotencyKey = "Idempotency-Key"

type Lister[T any] interface {
	List(ctx context.Context) ([]T, error)
}

type Writer[T, F any] interface {
	Get(ctx context.Context, id int64) (T, error)
	Create(ctx context.Context, f F) (T, error)
	Update(ctx context.Context, id int64, f F) (T, error)
	Delete(ctx context.Context, id int64) error
}

type Idempotency interface {
	Begin(ctx context.Context, resource, key string) (id int64, fresh bool, err error)
	Complete(ctx context.Context, resource, key string, id int64) error
	Abort(ctx context.Context, resource, key string) error
}

type Publisher interface {
	Publish(key, value []byte, headers ...kafkago.Header)
}

type keyed interface {
	Key() int64
}

// ResourceHandler serves /api/<resource>/ and /api/<resource>/<id>/. A nil
// Writer makes the resource read-only.
type ResourceHandler[T keyed, F any] struct {
	Resource string
	Reader   Lister[T]
	Writer   Writer[T, F]
	Idem     Idempotency
	Events   Publisher
	Metrics  *Metrics
	Service  string
	Log      *slog.Logger
}

func (h *ResourceHandler[T, F]) Register(r chi.Router) {
	if h.Log == nil {
		h.Log = slog.Default()
	}
	r.Route("/api/"+h.Resource, func(r chi.Router) {
		r.Get("/", h.list)
		if h.Writer == nil {
			return
		}
		r.Post("/", h.create)
		for _, p := range []string{"/{id}", "/{id}/"} {
			r.Put(p, h.update)
			r.Patch(p, h.update)
			r.Delete(p, h.delete)
		}
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func (h *ResourceHandler[T, F]) list(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	items, err := h.Reader.List(ctx)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if items == nil {
		items = []T{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *ResourceHandler[T, F]) decode(w http.ResponseWriter, r *http.Request) (F, bool) {
	var f F
	if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return f, false
	}
	if fields := checkFields(f); fields != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "validation failed", "fields": fields})
		return f, false
	}
	return f, true
}

func (h *ResourceHandler[T, F]) create(w http.ResponseWriter, r *http.Request) {
	f, ok := h.decode(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	key := r.Header.Get(HeaderIdempotencyKey)
	if key != "" && h.Idem != nil {
		id, fresh, err := h.Idem.Begin(ctx, h.Resource, key)
		switch {
		case errors.Is(err, redisx.ErrInFlight):
			writeErr(w, http.StatusConflict, err.Error())
			return
		case err != nil:
			// redis is a shortcut, not the source of truth
			h.Log.Warn("idempotency unavailable", "resource", h.Resource, "err", err)
			key = ""
		case !fresh:
			rec, err := h.Writer.Get(ctx, id)
			if err != nil {
				h.fail(w, r, err)
				return
			}
			writeJSON(w, http.StatusOK, rec)
			return
		}
	}

	rec, err := h.Writer.Create(ctx, f)
	if err != nil {
		if key != "" && h.Idem != nil {
			_ = h.Idem.Abort(ctx, h.Resource, key)
		}
		h.fail(w, r, err)
		return
	}
	if key != "" && h.Idem != nil {
		if err := h.Idem.Complete(ctx, h.Resource, key, rec.Key()); err != nil {
			h.Log.Warn("idempotency complete failed", "resource", h.Resource, "err", err)
		}
	}
	h.changed(r, catalog.OpCreated, rec.Key(), rec)
	writeJSON(w, http.StatusCreated, rec)
}

func (h *ResourceHandler[T, F]) update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	f, ok := h.decode(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	rec, err := h.Writer.Update(ctx, id, f)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.changed(r, catalog.OpUpdated, id, rec)
	writeJSON(w, http.StatusOK, rec)
}

func (h *ResourceHandler[T, F]) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.Writer.Delete(ctx, id); err != nil {
		h.fail(w, r, err)
		return
	}
	h.changed(r, catalog.OpDeleted, id, nil)
	w.WriteHeader(http.StatusNoContent)
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeErr(w, http.StatusNotFound, "not found")
		return 0, false
	}
	return id, true
}

// changed counts the mutation and publishes a change event. Publishing is
// fire-and-forget; the write has already committed.
func (h *ResourceHandler[T, F]) changed(r *http.Request, op catalog.Op, id int64, rec any) {
	h.Metrics.mutation(h.Resource, op)
	if h.Events == nil {
		return
	}
	ev, err := catalog.NewChangeEvent(h.Service, middleware.GetReqID(r.Context()), h.Resource, op, id, rec)
	if err != nil {
		h.Log.Error("build change event", "resource", h.Resource, "id", id, "err", err)
		return
	}
	h.Events.Publish(catalog.PartitionKey(h.Resource, id), kafkax.MustMarshal(ev),
		kafkax.EventHeaders(ev.EventType, ev.EventVersion)...)
}

func (h *ResourceHandler[T, F]) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		writeErr(w, http.StatusNotFound, "not found")
	case errors.Is(err, catalog.ErrConflict):
		writeErr(w, http.StatusConflict, err.Error())
	case errors.Is(err, catalog.ErrOutOfRange):
		writeErr(w, http.StatusBadRequest, catalog.ErrOutOfRange.Error())
	case errors.Is(err, catalog.ErrInvalidTransition):
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error(), "fields": FieldErrors{"status": err.Error()}})
	default:
		h.Log.Error("request failed", "resource", h.Resource, "method", r.Method, "path", r.URL.Path, "err", err)
		writeErr(w, http.StatusInternalServerError, "internal error")
	}
}
