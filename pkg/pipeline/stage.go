// Package pipeline provides the stage abstraction and the data passed between stages.
package pipeline

import (
	"context"
)

// Stage represents a processing stage.
// Each stage takes an input and produces an output.
type Stage[In, Out any] interface {
	// Execute runs the stage with the given input and returns the output.
	Execute(ctx context.Context, input In) (Out, error)
}
