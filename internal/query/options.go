package query

import (
	"github.com/rs/zerolog"

	"github.com/rshade/portalgun/internal/engine"
)

// Option configures a Controller.
type Option func(*Controller)

// WithDefaultPageSize sets the page size used after a kind change. Values
// below one are ignored.
func WithDefaultPageSize(size int) Option {
	return func(c *Controller) {
		if engine.ValidatePageSize(size) == nil {
			c.defaultPageSize = size
		}
	}
}

// WithLogger sets the logger used when a call's context carries none.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) {
		c.logger = l
	}
}

// WithOnChange registers fn to receive the latest State after every change.
// fn may run on a drain goroutine and must not call the Controller's mutators.
func WithOnChange(fn func(State)) Option {
	return func(c *Controller) {
		c.onChange = fn
	}
}
