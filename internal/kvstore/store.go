package kvstore

import (
	"encoding/json"

	"thonex/internal/log"
)

// ReadResult is the outcome of a keyed read. OK means the backend was
// reachable and the stored value (if any) deserialized; Missing means
// the key was absent and Value carries the fallback. When OK is false
// Value also carries the fallback and Err says why.
type ReadResult[T any] struct {
	OK      bool
	Missing bool
	Value   T
	Err     error
}

// WriteResult is the outcome of a keyed write.
type WriteResult struct {
	OK  bool
	Err error
}

// Store exposes JSON document reads and writes over a Backend. A nil
// backend models storage disabled by the host environment; every
// operation then degrades to the fallback without erroring out.
type Store struct {
	backend Backend
	log     *log.Logger
}

func New(backend Backend, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Discard()
	}
	return &Store{backend: backend, log: logger.WithComponent(log.ComponentStore)}
}

// Available reports whether a backend is configured.
func (s *Store) Available() bool {
	return s.backend != nil
}

// ReadJSON reads and deserializes the document at key. The fallback is
// returned both for an absent key (OK, Missing) and for any failure
// (backend missing, read error, corrupt value).
func ReadJSON[T any](s *Store, key string, fallback T) ReadResult[T] {
	if s.backend == nil {
		return ReadResult[T]{OK: false, Value: fallback, Err: ErrUnavailable}
	}
	raw, found, err := s.backend.Get(key)
	if err != nil {
		s.log.Warn("read failed", log.FieldOperation, log.OpRead, log.FieldKey, key, log.FieldError, err)
		return ReadResult[T]{OK: false, Value: fallback, Err: err}
	}
	if !found {
		return ReadResult[T]{OK: true, Missing: true, Value: fallback}
	}
	var value T
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		// Corrupt document: leave it in place, hand back the fallback.
		// The next successful write overwrites it.
		s.log.Warn("stored value is corrupt", log.FieldOperation, log.OpRead, log.FieldKey, key, log.FieldError, err)
		return ReadResult[T]{OK: false, Value: fallback, Err: err}
	}
	return ReadResult[T]{OK: true, Value: value}
}

// WriteJSON serializes v and writes it at key.
func (s *Store) WriteJSON(key string, v any) WriteResult {
	if s.backend == nil {
		return WriteResult{OK: false, Err: ErrUnavailable}
	}
	raw, err := json.Marshal(v)
	if err != nil {
		s.log.Warn("serialize failed", log.FieldOperation, log.OpWrite, log.FieldKey, key, log.FieldError, err)
		return WriteResult{OK: false, Err: err}
	}
	if err := s.backend.Put(key, string(raw)); err != nil {
		s.log.Warn("write failed", log.FieldOperation, log.OpWrite, log.FieldKey, key, log.FieldError, err)
		return WriteResult{OK: false, Err: err}
	}
	return WriteResult{OK: true}
}
