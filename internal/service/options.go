package service

import (
	"time"

	"github.com/google/uuid"
)

// Option replaces a non-deterministic input of a service.
type Option func(*runtime)

// WithClock sets the time source.
func WithClock(now func() time.Time) Option {
	return func(r *runtime) { r.now = now }
}

// WithIDGenerator sets the source of record identifiers.
func WithIDGenerator(newID func() string) Option {
	return func(r *runtime) { r.newID = newID }
}

type runtime struct {
	now   func() time.Time
	newID func() string
}

func newRuntime(opts []Option) runtime {
	r := runtime{
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}
