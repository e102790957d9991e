package console

import (
	"fmt"
	"strings"
)

// Input is one editable form field.
type Input[Fm any] struct {
	Label       string
	Placeholder string
	Required    bool
	Multiline   bool
	Get         func(Fm) string
	Set         func(*Fm, string)
}

// Schema ties a record type to its form and write payload.
type Schema[T any, Fm any, F any] struct {
	Noun       string
	Inputs     []Input[Fm]
	FromRecord func(T) Fm
	Parse      func(Fm) (F, error)
}

type RequiredError struct {
	Label string
}

func (e *RequiredError) Error() string { return e.Label + " is required" }

// Validate checks required inputs and then parses the form. No service call
// is made for a form that fails here.
func (s Schema[T, Fm, F]) Validate(form Fm) (F, error) {
	for _, in := range s.Inputs {
		if in.Required && strings.TrimSpace(in.Get(form)) == "" {
			var zero F
			return zero, &RequiredError{Label: in.Label}
		}
	}
	f, err := s.Parse(form)
	if err != nil {
		return f, fmt.Errorf("invalid %s: %w", strings.ToLower(s.Noun), err)
	}
	return f, nil
}
