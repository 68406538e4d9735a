package cache

import "sync"

// Mock is a Cache double for tests, exposing its backing map and call
// counts. Guarded by a mutex so tests may exercise it from the worker
// pool.
type Mock struct {
	mu      sync.Mutex
	Data    map[string]string
	Hits    int
	Misses  int
	Sets    int
	Deletes int
}

// NewMock creates an empty mock cache.
func NewMock() *Mock {
	return &Mock{Data: make(map[string]string)}
}

func (m *Mock) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	if ok {
		m.Hits++
	} else {
		m.Misses++
	}
	return val, ok
}

func (m *Mock) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sets++
	m.Data[key] = value
	return nil
}

func (m *Mock) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Deletes++
	delete(m.Data, key)
	return nil
}
