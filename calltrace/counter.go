package calltrace

import (
	"context"
	"fmt"
	"strconv"

	"github.com/goliatone/go-cache-trace/store"
)

// Counted wraps op so every invocation increments a persistent counter keyed
// by identity. The increment happens before the wrapped operation runs; if it
// fails, the operation is not invoked and the error is returned. Counts
// therefore include calls that later fail.
func Counted[A, R any](s store.Store, identity string, op Operation[A, R]) Operation[A, R] {
	return func(ctx context.Context, arg A) (R, error) {
		if _, err := s.Incr(ctx, identity); err != nil {
			var zero R
			return zero, fmt.Errorf("count %s: %w", identity, err)
		}
		return op(ctx, arg)
	}
}

// CallCount reads the counter maintained by Counted for identity. An
// identity that has never been called reports zero.
func CallCount(ctx context.Context, s store.Store, identity string) (int64, error) {
	val, ok, err := s.Get(ctx, identity)
	if err != nil {
		return 0, fmt.Errorf("read counter %s: %w", identity, err)
	}
	if !ok {
		return 0, nil
	}

	n, err := strconv.ParseInt(string(val), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("counter %s holds a non-integer value: %w", identity, err)
	}
	return n, nil
}
