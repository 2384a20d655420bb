// Package observability binds the engine's lifecycle hooks to Prometheus
// metrics. Hosts that already consume hooks can merge these in with
// domain.MergeHooks.
package observability
