// Package calltrace provides composable instrumentation decorators for
// store-backed operations.
//
// # Overview
//
// This package implements the decorator pattern over a generic Operation
// type. Each decorator wraps an Operation and returns another with the same
// signature, so instrumentation composes by nesting. Two decorators are
// provided: Counted, which maintains a persistent per-identity call counter,
// and Recorded, which appends every call's encoded arguments and result to
// persistent history lists. Both persist through the store package, so the
// collected data survives process restarts and is shared by every process
// that points at the same backend.
//
// # Key Features
//
//   - **Composable decorators**: Counted and Recorded wrap any Operation and nest freely
//   - **Persistent counts**: call totals live in the store under the operation's identity
//   - **Aligned histories**: inputs and outputs are recorded entry for entry, including failures
//   - **Transcript replay**: Replayer renders recorded histories as readable call transcripts
//   - **Identity registry**: Registry catches two operations claiming the same identity
//
// # Basic Usage
//
// Wrap an operation with both decorators, counting outermost so every
// attempt is counted even when recording fails:
//
//	base := func(ctx context.Context, name string) (string, error) {
//		return "hello " + name, nil
//	}
//
//	op := calltrace.Counted(st, "greet",
//		calltrace.Recorded(st, "greet", nil, base))
//
//	out, err := op(ctx, "world")
//	count, err := calltrace.CallCount(ctx, st, "greet")
//
// # Identities and Keys
//
// An identity names one instrumented operation. It doubles as the counter
// key, and the history lists live under the derived keys InputsKey and
// OutputsKey, so identities must not contain ':' or whitespace. Use
// SanitizeIdentity to fold an arbitrary name into a valid identity and
// ValidateIdentity to check one.
//
// # Failure Recording
//
// A failed call still counts and still produces an outputs entry, a failure
// marker carrying the error text. The histories therefore stay aligned: the
// i-th inputs entry and the i-th outputs entry always describe the same
// call.
//
// # Replaying
//
// Replayer reads the recorded histories back and writes one line per call:
//
//	r := calltrace.NewReplayer(st)
//	err := r.Replay(ctx, "greet", os.Stdout)
//
//	// greet was called 1 times:
//	// greet(*("world")) -> hello world
//
// ReplayPage renders a single fixed-size window of the history instead of
// the whole transcript, which keeps replays of busy operations bounded.
//
// # See Also
//
// For the store contract the decorators persist through, see the store
// package. For a ready-wired facade over these decorators, see the
// tracecache package.
package calltrace
