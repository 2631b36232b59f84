package calltrace

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-cache-trace/store"
)

const (
	inputsSuffix  = ":inputs"
	outputsSuffix = ":outputs"

	// failurePrefix marks an outputs entry recorded for a failed call.
	failurePrefix = "!error: "
)

// InputsKey returns the list key holding the encoded argument tuples
// recorded for identity.
func InputsKey(identity string) string {
	return identity + inputsSuffix
}

// OutputsKey returns the list key holding the encoded results recorded for
// identity.
func OutputsKey(identity string) string {
	return identity + outputsSuffix
}

// Recorded wraps op so each invocation appends its encoded argument tuple to
// the inputs history before the call runs, and its encoded result to the
// outputs history after. A failed call still produces an outputs entry, a
// failure marker carrying the error text, keeping the two histories aligned
// entry for entry.
//
// If recording the input fails, the operation is not invoked. If recording
// the output fails, the error is returned even though the operation itself
// succeeded; callers that see it must treat the histories as possibly
// misaligned.
//
// A nil enc falls back to NewEncoder.
func Recorded[A, R any](s store.Store, identity string, enc Encoder, op Operation[A, R]) Operation[A, R] {
	if enc == nil {
		enc = NewEncoder()
	}

	return func(ctx context.Context, arg A) (R, error) {
		var zero R

		input := []byte(enc.EncodeTuple(arg))
		if err := s.ListAppend(ctx, InputsKey(identity), input); err != nil {
			return zero, fmt.Errorf("record input %s: %w", identity, err)
		}

		out, opErr := op(ctx, arg)
		if opErr != nil {
			entry := []byte(failurePrefix + opErr.Error())
			if err := s.ListAppend(ctx, OutputsKey(identity), entry); err != nil {
				return zero, errors.Join(opErr, fmt.Errorf("record failure %s: %w", identity, err))
			}
			return zero, opErr
		}

		if err := s.ListAppend(ctx, OutputsKey(identity), []byte(enc.EncodeValue(out))); err != nil {
			return out, fmt.Errorf("record output %s: %w", identity, err)
		}
		return out, nil
	}
}
