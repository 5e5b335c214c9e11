//go:build !manifold

// Package manifold binds the Manifold C library as a geometry kernel. Without
// the "manifold" build tag only New is compiled, and it always fails, so
// `orient -kernel manifold` reports how to enable the backend.
package manifold

import (
	"errors"

	"github.com/chazu/orient/pkg/kernel"
)

// ErrUnavailable is returned by New when built without the manifold tag.
var ErrUnavailable = errors.New("manifold kernel not compiled in: rebuild orient with -tags=manifold to use -kernel manifold")

func New() (kernel.Kernel, error) {
	return nil, ErrUnavailable
}
