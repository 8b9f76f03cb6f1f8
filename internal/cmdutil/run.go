package cmdutil

import (
	"context"
	"errors"
	"io"
)

// RunStream pulls values from next until it returns io.EOF, applies visit and
// forwards kept values via send. It returns the number of values sent and the
// first error other than io.EOF.
func RunStream[T, U any](
	ctx context.Context,
	next func() (T, error),
	visit func(T) (bool, U, error),
	send func(U) error,
) (int, error) {
	total := 0
	for {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		v, err := next()
		if errors.Is(err, io.EOF) {
			return total, nil
		}
		if err != nil {
			return total, err
		}
		keep, out, vErr := visit(v)
		if vErr != nil {
			return total, vErr
		}
		if !keep {
			continue
		}
		if err := send(out); err != nil {
			return total, err
		}
		total++
	}
}
