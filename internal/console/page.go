package console

import (
	"context"
	"errors"
	"fmt"
	"github.com/ariefcatur/nexus-admin/internal/catalog"
	"log/slog"
	"strings"
)

var (
	ErrModalClosed = errors.New("modal is not open")
	ErrSubmitting  = errors.New("submit already in progress")
)

// Resource is the service contract a mutable page drives.
type Resource[T, F any] interface {
	Lister[T]
	Create(ctx context.Context, fields F) (T, error)
	Update(ctx context.Context, id int64, fields F) (T, error)
	Delete(ctx context.Context, id int64) error
}

type Keyed interface {
	Key() int64
}

// Confirmer asks the user a yes/no question synchronously.
type Confirmer func(prompt string) bool

// Confirmed answers yes without asking; the TUI collects the answer before
// calling Delete.
func Confirmed(string) bool { return true }

// Page is a list page with a single create/edit modal. Fm is the raw form
// state, F the payload sent to the service.
type Page[T Keyed, Fm any, F any] struct {
	*List[T]
	svc    Resource[T, F]
	schema Schema[T, Fm, F]

	// guarded by List.mu
	open       bool
	mode       Mode[T]
	form       Fm
	submitting bool
	alert      string
}

func NewPage[T Keyed, Fm any, F any](svc Resource[T, F], schema Schema[T, Fm, F], log *slog.Logger) *Page[T, Fm, F] {
	return &Page[T, Fm, F]{
		List:   NewList[T](schema.Noun, svc, log),
		svc:    svc,
		schema: schema,
		mode:   Creating[T]{},
	}
}

func (p *Page[T, Fm, F]) Schema() Schema[T, Fm, F] { return p.schema }

// Unmount also drops any modal state so a remount starts clean.
func (p *Page[T, Fm, F]) Unmount() {
	p.List.Unmount()
	p.mu.Lock()
	p.open = false
	p.submitting = false
	p.alert = ""
	p.resetLocked()
	p.mu.Unlock()
}

func (p *Page[T, Fm, F]) OpenCreate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.resetLocked()
	p.open = true
}

func (p *Page[T, Fm, F]) OpenEdit(target T) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.mode = Editing[T]{Target: target}
	p.form = p.schema.FromRecord(target)
	p.open = true
}

// Close dismisses the modal (cancel or backdrop) and returns it to create mode
// with empty fields.
func (p *Page[T, Fm, F]) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.open = false
	p.resetLocked()
}

func (p *Page[T, Fm, F]) resetLocked() {
	var empty Fm
	p.mode = Creating[T]{}
	p.form = empty
}

// EditForm applies fn to the form under the page lock.
func (p *Page[T, Fm, F]) EditForm(fn func(*Fm)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fn(&p.form)
}

func (p *Page[T, Fm, F]) DismissAlert() {
	p.mu.Lock()
	p.alert = ""
	p.mu.Unlock()
}

// Submit sends the form as an Update when editing and a Create otherwise.
// On success the modal closes, the form resets and the list is re-fetched.
// On failure the modal stays open with the entered values and an alert is
// raised.
func (p *Page[T, Fm, F]) Submit(ctx context.Context) error {
	p.mu.Lock()
	if !p.open {
		p.mu.Unlock()
		return ErrModalClosed
	}
	if p.submitting {
		p.mu.Unlock()
		return ErrSubmitting
	}
	mode, form, gen := p.mode, p.form, p.gen
	fields, err := p.schema.Validate(form)
	if err != nil {
		p.alert = err.Error()
		p.mu.Unlock()
		return err
	}
	p.submitting = true
	p.mu.Unlock()

	if target, editing := EditTarget[T](mode); editing {
		_, err = p.svc.Update(ctx, target.Key(), fields)
	} else {
		_, err = p.svc.Create(ctx, fields)
	}

	p.mu.Lock()
	if gen != p.gen {
		p.mu.Unlock()
		return ErrUnmounted
	}
	p.submitting = false
	if err != nil {
		p.log.Error("save failed", "resource", p.noun, "err", err)
		p.alert = fmt.Sprintf("Failed to save %s", strings.ToLower(p.noun))
		p.mu.Unlock()
		return err
	}
	p.open = false
	p.resetLocked()
	p.mu.Unlock()

	_ = p.Refresh(ctx)
	return nil
}

func (p *Page[T, Fm, F]) DeletePrompt() string {
	return fmt.Sprintf("Are you sure you want to delete this %s?", strings.ToLower(p.noun))
}

// Delete removes a record once the user confirms. Failures are logged only;
// the list was never changed so there is nothing to roll back. It reports
// whether a delete call was issued.
func (p *Page[T, Fm, F]) Delete(ctx context.Context, id int64, confirm Confirmer) (bool, error) {
	if confirm == nil || !confirm(p.DeletePrompt()) {
		return false, nil
	}
	gen, ok := p.lifetime()
	if !ok {
		return false, ErrUnmounted
	}
	if err := p.svc.Delete(ctx, id); err != nil {
		p.log.Error("delete failed", "resource", p.noun, "id", id, "err", err)
		return true, err
	}
	if cur, _ := p.lifetime(); cur != gen {
		return true, ErrUnmounted
	}
	_ = p.Refresh(ctx)
	return true, nil
}

// PageView is a consistent copy of a page for rendering.
type PageView[T any, Fm any] struct {
	Phase       Phase
	Items       []T
	ModalOpen   bool
	Mode        Mode[T]
	Form        Fm
	Submitting  bool
	Alert       string
	Title       string
	SubmitLabel string
}

func (p *Page[T, Fm, F]) View() PageView[T, Fm] {
	p.mu.Lock()
	defer p.mu.Unlock()
	items := make([]T, len(p.items))
	copy(items, p.items)
	v := PageView[T, Fm]{
		Phase:      p.phase,
		Items:      items,
		ModalOpen:  p.open,
		Mode:       p.mode,
		Form:       p.form,
		Submitting: p.submitting,
		Alert:      p.alert,
	}
	if _, editing := EditTarget[T](p.mode); editing {
		v.Title, v.SubmitLabel = "Edit "+p.noun, "Update "+p.noun
	} else {
		v.Title, v.SubmitLabel = "Add New "+p.noun, "Create "+p.noun
	}
	return v
}

var (
	_ Keyed = catalog.Product{}
	_ Keyed = catalog.Store{}
	_ Keyed = catalog.Order{}
	_ Keyed = catalog.User{}
)
