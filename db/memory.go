package db

import (
	"context"
	"sync"
)

// MemoryKV keeps values in a map. Used for tests and the "memory" driver.
type MemoryKV struct {
	mu sync.RWMutex
	m  map[string]string
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{m: make(map[string]string)}
}

func (kv *MemoryKV) Get(_ context.Context, key string) (string, error) {
	kv.mu.RLock()
	defer kv.mu.RUnlock()
	v, ok := kv.m[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (kv *MemoryKV) Set(_ context.Context, key, value string) error {
	kv.mu.Lock()
	kv.m[key] = value
	kv.mu.Unlock()
	return nil
}

func (kv *MemoryKV) Remove(_ context.Context, key string) error {
	kv.mu.Lock()
	delete(kv.m, key)
	kv.mu.Unlock()
	return nil
}
