package action

import (
	"context"

	"github.com/petems/hotkeyd/internal/config"
)

// Runner defines the interface for running a binding's action
type Runner interface {
	Run(ctx context.Context, b config.Binding) error
}
