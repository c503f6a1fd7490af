package kvstore

import "sync"

// MemoryBackend is a map-backed Backend for the memory data backend and
// for tests. FailReads/FailWrites simulate a broken store.
type MemoryBackend struct {
	mu         sync.Mutex
	items      map[string]string
	FailReads  error
	FailWrites error
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{items: make(map[string]string)}
}

func (b *MemoryBackend) Get(key string) (string, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.FailReads != nil {
		return "", false, b.FailReads
	}
	value, ok := b.items[key]
	return value, ok, nil
}

func (b *MemoryBackend) Put(key, value string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.FailWrites != nil {
		return b.FailWrites
	}
	b.items[key] = value
	return nil
}

// Seed stores a raw document directly, bypassing failure injection.
func (b *MemoryBackend) Seed(key, value string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.items[key] = value
}

// Raw returns the stored document for a key, for test assertions.
func (b *MemoryBackend) Raw(key string) (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	value, ok := b.items[key]
	return value, ok
}
