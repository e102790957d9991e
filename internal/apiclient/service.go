package apiclient

import (
	"context"
	"net/http"
)

// Service bundles the four CRUD calls for one resource.
type Service[T, F any] struct {
	c        *Client
	resource string
}

func NewService[T, F any](c *Client, resource string) *Service[T, F] {
	return &Service[T, F]{c: c, resource: resource}
}

func (s *Service[T, F]) GetAll(ctx context.Context) ([]T, error) {
	var out []T
	status, eb, err := s.c.do(ctx, http.MethodGet, s.c.collectionURL(s.resource), nil, nil, &out)
	if err != nil {
		return nil, err
	}
	if status >= 300 {
		return nil, s.readError(status, eb)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// Create posts the fields with a fresh idempotency key; the server assigns
// the identity.
func (s *Service[T, F]) Create(ctx context.Context, fields F) (T, error) {
	var out T
	h := http.Header{}
	h.Set(HeaderIdempotencyKey, s.c.newKey())
	status, eb, err := s.c.do(ctx, http.MethodPost, s.c.collectionURL(s.resource), h, fields, &out)
	if err != nil {
		return out, err
	}
	if status >= 300 {
		return out, s.writeError(status, eb, 0)
	}
	return out, nil
}

func (s *Service[T, F]) Update(ctx context.Context, id int64, fields F) (T, error) {
	var out T
	status, eb, err := s.c.do(ctx, http.MethodPut, s.c.itemURL(s.resource, id), nil, fields, &out)
	if err != nil {
		return out, err
	}
	if status >= 300 {
		return out, s.writeError(status, eb, id)
	}
	return out, nil
}

func (s *Service[T, F]) Delete(ctx context.Context, id int64) error {
	status, eb, err := s.c.do(ctx, http.MethodDelete, s.c.itemURL(s.resource, id), nil, nil, nil)
	if err != nil {
		return err
	}
	if status >= 300 {
		return s.writeError(status, eb, id)
	}
	return nil
}

func (s *Service[T, F]) readError(status int, eb errorBody) error {
	if status == http.StatusNotFound {
		return &NotFoundError{Resource: s.resource}
	}
	return &ServerError{Status: status, Message: eb.Error}
}

func (s *Service[T, F]) writeError(status int, eb errorBody, id int64) error {
	switch {
	case status == http.StatusNotFound:
		return &NotFoundError{Resource: s.resource, ID: id}
	case status >= 500:
		return &ServerError{Status: status, Message: eb.Error}
	case status >= 400:
		return &ValidationError{Status: status, Message: eb.Error, Fields: eb.Fields}
	default:
		return &ServerError{Status: status, Message: eb.Error}
	}
}
