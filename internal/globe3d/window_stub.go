//go:build !cgo

package globe3d

import (
	"context"

	"github.com/pkg/errors"
)

type WindowOptions struct {
	Reload <-chan *Config
}

func RunWindow(_ context.Context, _ *Config, _ WindowOptions) error {
	return errors.New("window mode requires cgo (build/run with CGO_ENABLED=1)")
}
