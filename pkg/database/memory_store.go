package database

import (
	"context"

	cmap "github.com/orcaman/concurrent-map/v2"
)

// MemoryStore 进程内存储，用于测试和无持久化的演示
type MemoryStore struct {
	data cmap.ConcurrentMap[string, []byte]
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: cmap.New[[]byte]()}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	val, ok := s.data.Get(key)
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	val := make([]byte, len(value))
	copy(val, value)
	s.data.Set(key, val)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.data.Remove(key)
	return nil
}

func (s *MemoryStore) Close() error { return nil }
