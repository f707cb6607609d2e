package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go-crowd-monitor/pkg/validation"
)

var (
	// ErrReadOnly is returned when writing to a backend that only serves reads
	ErrReadOnly = errors.New("storage backend is read-only")

	// ErrBackendUnavailable indicates no backend is configured for a scheme
	ErrBackendUnavailable = errors.New("storage backend unavailable")
)

// EncodeFunc writes encoded image bytes to w
type EncodeFunc func(w io.Writer) error

// ImageStore resolves raw location strings to readable and writable image data
type ImageStore interface {
	Open(ctx context.Context, location string) (io.ReadCloser, error)
	Write(ctx context.Context, location string, encode EncodeFunc) error
}

// Backend serves one location scheme
type Backend interface {
	Open(ctx context.Context, loc validation.Location) (io.ReadCloser, error)
	Write(ctx context.Context, loc validation.Location, encode EncodeFunc) error
}

// Router implements ImageStore by dispatching on the location scheme
type Router struct {
	validator *validation.LocationValidator
	backends  map[string]Backend
}

// NewRouter creates a router serving local paths only. Further backends are
// added with Register.
func NewRouter() *Router {
	r := &Router{
		validator: validation.NewLocationValidator(),
		backends:  make(map[string]Backend),
	}
	r.Register(validation.SchemeFile, NewLocalStore())
	return r
}

// Register binds a backend to a scheme, replacing any previous binding
func (r *Router) Register(scheme string, backend Backend) {
	r.backends[scheme] = backend
}

// Open implements ImageStore
func (r *Router) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	loc, backend, err := r.resolve(location)
	if err != nil {
		return nil, err
	}
	return backend.Open(ctx, loc)
}

// Write implements ImageStore
func (r *Router) Write(ctx context.Context, location string, encode EncodeFunc) error {
	loc, backend, err := r.resolve(location)
	if err != nil {
		return err
	}
	return backend.Write(ctx, loc, encode)
}

func (r *Router) resolve(location string) (validation.Location, Backend, error) {
	loc, err := r.validator.Validate(location)
	if err != nil {
		return validation.Location{}, nil, err
	}
	backend, ok := r.backends[loc.Scheme]
	if !ok {
		return validation.Location{}, nil, fmt.Errorf("%w: no backend for %s://", ErrBackendUnavailable, loc.Scheme)
	}
	return loc, backend, nil
}
