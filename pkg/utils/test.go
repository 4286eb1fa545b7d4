package utils

import "sync"

// MockTransport implements the transport interface for testing.
// It records everything sent for later inspection instead of
// transmitting, and is safe for concurrent use.
type MockTransport struct {
	mu   sync.Mutex
	sent []any
}

// Send stores the data for later inspection instead of transmitting.
func (m *MockTransport) Send(data any) error {
	m.mu.Lock()
	m.sent = append(m.sent, data)
	m.mu.Unlock()
	return nil
}

// Close is a no-op for MockTransport.
func (m *MockTransport) Close() error {
	return nil
}

// Sent returns a copy of everything sent so far.
func (m *MockTransport) Sent() []any {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]any, len(m.sent))
	copy(out, m.sent)
	return out
}

// NaiveMirror reverses the low width bits of v one bit at a time. It is
// the obvious O(width) reference implementation used to cross-check the
// table-driven mirror in tests.
func NaiveMirror(v uint64, width int) uint64 {
	var out uint64
	for i := 0; i < width; i++ {
		if v>>i&1 == 1 {
			out |= uint64(1) << (width - 1 - i)
		}
	}
	return out
}

// NaivePopcount counts set bits in the low width bits of v by shifting,
// as a reference for the math/bits-backed implementation.
func NaivePopcount(v uint64, width int) int {
	count := 0
	for i := 0; i < width; i++ {
		count += int(v >> i & 1)
	}
	return count
}
