// Package httputil provides HTTP utilities for fetching remote scene
// documents.
//
// # Overview
//
//   - [Client]: cached document fetching over HTTP(S)
//   - [Retry]: automatic retry with exponential backoff
//
// # Caching
//
// [Client] stores fetched document bytes through a [cache.Cache], keyed by
// source URL. Repeated snapshot runs against the same remote document skip
// the network entirely until the entry expires.
//
// # Retry
//
// Transient failures (network errors, 5xx responses, 429 rate limits) are
// wrapped as [RetryableError] and retried with exponential backoff. Client
// errors (4xx) fail immediately.
package httputil
