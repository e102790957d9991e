package console

// Mode is what the shared modal is doing: either Creating or Editing a record.
type Mode[T any] interface {
	isMode()
}

type Creating[T any] struct{}

type Editing[T any] struct {
	Target T
}

func (Creating[T]) isMode() {}
func (Editing[T]) isMode()  {}

// EditTarget returns the record being edited, if any.
func EditTarget[T any](m Mode[T]) (T, bool) {
	if e, ok := m.(Editing[T]); ok {
		return e.Target, true
	}
	var zero T
	return zero, false
}
