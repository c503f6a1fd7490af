// Package state binds one slice of domain state to one store key. The
// in-memory value is the source of truth for the session; storage is
// best-effort durability behind it.
package state

import (
	"thonex/internal/kvstore"
	"thonex/internal/log"
)

// Container owns the load-once/write-on-change lifecycle for a single
// keyed document. Construction performs exactly one read; if that read
// came back missing or failed, one write of the initial value
// normalizes storage. Every Set/Update triggers exactly one write. A
// failed read or write sticks in Err and is never cleared for the rest
// of the session; the in-memory value keeps advancing regardless.
type Container[T any] struct {
	store *kvstore.Store
	key   string
	log   *log.Logger
	value T
	err   error
}

func NewContainer[T any](store *kvstore.Store, key string, initial T, logger *log.Logger) *Container[T] {
	if logger == nil {
		logger = log.Discard()
	}
	c := &Container[T]{store: store, key: key, log: logger.WithComponent(log.ComponentState)}
	res := kvstore.ReadJSON(store, key, initial)
	c.value = res.Value
	if !res.OK {
		c.err = res.Err
	}
	if res.Missing || !res.OK {
		c.log.Debug("normalizing stored document", log.FieldKey, key)
		c.write()
	}
	return c
}

// Get returns the current in-memory value.
func (c *Container[T]) Get() T {
	return c.value
}

// Set replaces the value and writes it through.
func (c *Container[T]) Set(v T) {
	c.value = v
	c.write()
}

// Update replaces the value with fn(previous) and writes it through.
func (c *Container[T]) Update(fn func(T) T) {
	c.value = fn(c.value)
	c.write()
}

// Err returns the most recent persistence failure seen by this
// container, or nil. A success never clears it. No rollback happens on
// failure; the flag only marks that storage may be behind.
func (c *Container[T]) Err() error {
	return c.err
}

// Key returns the storage key this container is bound to.
func (c *Container[T]) Key() string {
	return c.key
}

func (c *Container[T]) write() {
	res := c.store.WriteJSON(c.key, c.value)
	if !res.OK {
		c.err = res.Err
		c.log.Warn("storage out of sync", log.FieldKey, c.key, log.FieldError, res.Err)
	}
}
