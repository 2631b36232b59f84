// Package tracecache provides a store-backed cache whose write path is fully
// instrumented.
//
// # Overview
//
// A Cache files arbitrary byte payloads under generated UUID keys and wraps
// the store operation in the calltrace decorators, so every Store call is
// counted and its arguments and result are recorded for later replay. Typed
// variants convert on the way in (StoreString, StoreInt, StoreFloat) and on
// the way out (GetString, GetInt, GetFloat), with GetAs available for caller
// supplied conversions.
//
// # Basic Usage
//
//	c, err := tracecache.New(ctx, st)
//	if err != nil {
//		return err
//	}
//
//	key, err := c.StoreString(ctx, "hello")
//	text, ok, err := c.GetString(ctx, key)
//	count, err := c.StoreCallCount(ctx)
//
// # Initialization Flushes the Store
//
// New flushes every key in the backing store's database before the cache is
// handed out. That includes counters and histories from earlier runs: a new
// Cache starts its transcript from zero. Point the store at a dedicated
// logical database when other data shares the server.
//
// # Typed Reads
//
// The store holds plain bytes; typed reads convert and report failures as a
// ConversionError carrying the identifier and target type:
//
//	n, ok, err := c.GetInt(ctx, key)
//	var convErr *tracecache.ConversionError
//	if errors.As(err, &convErr) {
//		// stored value was not an integer
//	}
//
// An identifier that was never stored reports ok == false with a nil error,
// mirroring the store contract.
package tracecache
