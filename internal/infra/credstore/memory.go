package credstore

import "sync"

// memoryTier holds credentials for the process lifetime only. This is the
// sessionStorage analogue: closing the process forgets the login.
type memoryTier struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemoryTier() *memoryTier {
	return &memoryTier{}
}

func (t *memoryTier) name() string { return "memory" }

func (t *memoryTier) load() (map[string][]byte, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.data == nil {
		return nil, false
	}
	out := make(map[string][]byte, len(t.data))
	for k, v := range t.data {
		out[k] = v
	}
	return out, true
}

func (t *memoryTier) store(m map[string][]byte) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.data = make(map[string][]byte, len(m))
	for k, v := range m {
		t.data[k] = v
	}
}

func (t *memoryTier) wipe() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.data = nil
}
