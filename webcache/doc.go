// Package webcache provides a read-through page cache with per-URL access
// counting.
//
// # Overview
//
// A Client answers Fetch calls from a store-backed cache, going to the
// upstream only when no fresh copy exists. Fetched bodies are cached under
// "cached:<url>" for a configurable TTL, after which the next fetch goes
// upstream again. Independently of caching, every fetch attempt increments
// "count:<url>", so AccessCount reports how often a page was asked for, not
// how often it was downloaded.
//
// # Basic Usage
//
//	client, err := webcache.New(st, webcache.DefaultConfig())
//	if err != nil {
//		return err
//	}
//
//	body, err := client.Fetch(ctx, "https://example.com")
//	hits, err := client.AccessCount(ctx, "https://example.com")
//
// # Counting Semantics
//
// The counter is bumped before the cache is consulted and before the
// upstream is contacted, so hits, misses, and failed fetches all count. A
// failed counter update aborts the fetch.
//
// # Fetching
//
// Cache misses go through the Fetcher interface. The default fetcher issues
// a plain HTTP GET with the configured timeout and treats any non-2xx
// response as an error, which also means error pages are never cached.
// Supply Config.Fetcher to stub the upstream in tests or to add headers,
// authentication, or retries.
package webcache
