// Package hcloud runs Hetzner Cloud API calls under retry profiles.
//
// # Generic Operations
//
// DeleteOperation provides idempotent resource deletion:
//   - Returns success if the resource doesn't exist
//   - Retries locked, rate limited and conflicting requests
//
// EnsureOperation provides get-or-create semantics with optional validation:
//   - Get → Validate if exists → Create if not
//   - A create that loses a uniqueness race is retried and re-reads the resource
//
// # Polling
//
// WaitForAction polls an action until it is no longer running. Running
// results are rejected by a result guard, so each poll is one attempt of the
// hcloud.action.wait profile and the wait between polls follows its backoff.
//
// # Error Handling
//
// Error kinds for the retry allow-list are in errors.go:
//   - ResourceLocked: resource busy with another action
//   - RateLimited: API rate limit hit
//   - Conflict: resource changed during the request
//
// Everything else, including invalid input and authentication failures, is
// returned after the first attempt.
package hcloud
