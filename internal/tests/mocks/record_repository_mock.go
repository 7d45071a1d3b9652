package mocks

import (
	"context"
	"sync"

	"chatshell/internal/repositories"
)

type RecordRepositoryMock struct {
	GetFunc func(ctx context.Context, key string) ([]byte, error)
	PutFunc func(ctx context.Context, key string, value []byte) error

	mu   sync.Mutex
	puts [][]byte
}

func (m *RecordRepositoryMock) Get(ctx context.Context, key string) ([]byte, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	return nil, repositories.ErrRecordNotFound
}

func (m *RecordRepositoryMock) Put(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	m.puts = append(m.puts, append([]byte(nil), value...))
	m.mu.Unlock()
	if m.PutFunc != nil {
		return m.PutFunc(ctx, key, value)
	}
	return nil
}

// Puts returns every value passed to Put, oldest first.
func (m *RecordRepositoryMock) Puts() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]byte, len(m.puts))
	copy(out, m.puts)
	return out
}
