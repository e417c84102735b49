// Package ptr provides helper functions for creating pointers to values.
package ptr

import "time"

// To returns a pointer to v.
func To[T any](v T) *T { return &v }

// Bool returns a pointer to the given bool value.
func Bool(b bool) *bool { return &b }

// Int returns a pointer to the given int value.
func Int(i int) *int { return &i }

// Duration returns a pointer to the given duration.
func Duration(d time.Duration) *time.Duration { return &d }
