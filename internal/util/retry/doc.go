// Package retry re-invokes operations under an exponential backoff policy.
//
// [Wrap] turns any [Operation] into one with the same signature that retries
// allow-listed error kinds and results rejected by guards. Waiting between
// attempts is delegated to a [Handler]; [BackoffHandler] sleeps for the delay
// computed by [Backoff], and [LogHandler] or metrics handlers can be chained
// in front of it. It is used for Hetzner Cloud API calls, object storage
// uploads and readiness probes.
package retry
