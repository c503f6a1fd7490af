// Package kvstore wraps a fallible, possibly-absent string key/value
// backend behind result-typed read and write operations. Callers never
// receive a bare error: every failure mode is captured inside the
// result so the session can keep running on in-memory state.
package kvstore

import "errors"

var (
	// ErrUnavailable is reported when no backend is configured at all.
	ErrUnavailable = errors.New("storage backend unavailable")
)

// Backend is the raw string store underneath a Store. Get reports
// found=false for an absent key; any other failure comes back as err.
type Backend interface {
	Get(key string) (value string, found bool, err error)
	Put(key, value string) error
}
