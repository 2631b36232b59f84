package calltrace

import "context"

// Operation is a single store-backed operation: it takes one argument and
// returns one result. Decorators such as Counted and Recorded wrap an
// Operation and return another, so instrumentation composes by nesting.
type Operation[A, R any] func(ctx context.Context, arg A) (R, error)
