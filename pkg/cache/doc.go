// Package cache implements the request-coalescing record cache behind
// data-bound views.
//
// Each key is in one of three states: absent, pending (a fetch is in
// flight) or present. At most one upstream fetch exists per key at any
// time; concurrent callers for a pending key attach to the in-flight call
// and all receive the same result. Failures are not cached, so the next
// fetch for the key retries.
package cache
