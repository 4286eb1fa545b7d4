package utils

import (
	"fmt"
	"testing"
)

func TestMockTransport(t *testing.T) {
	mt := &MockTransport{}

	inputs := []any{"frame-1", 42, []uint64{1, 2, 4}}
	for _, in := range inputs {
		if err := mt.Send(in); err != nil {
			t.Errorf("MockTransport.Send(%v) error = %v", in, err)
		}
	}

	sent := mt.Sent()
	if len(sent) != len(inputs) {
		t.Fatalf("MockTransport recorded %d items, want %d", len(sent), len(inputs))
	}
	if sent[0] != "frame-1" || sent[1] != 42 {
		t.Errorf("MockTransport recorded %v, want inputs in order", sent)
	}

	if err := mt.Close(); err != nil {
		t.Errorf("MockTransport.Close() error = %v", err)
	}
}

func TestNaiveMirror(t *testing.T) {
	tests := []struct {
		v        uint64
		width    int
		expected uint64
	}{
		{0, 8, 0},              // Empty pattern
		{1, 8, 0x80},           // LSB to MSB
		{0x80, 8, 1},           // MSB to LSB
		{0x0F, 8, 0xF0},        // Nibble swap
		{5, 8, 0xA0},           // 00000101 -> 10100000
		{1, 16, 0x8000},        // Wider field
		{1, 64, 1 << 63},       // Full width
		{0xFF, 8, 0xFF},        // Palindrome
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%#x/%d", tt.v, tt.width), func(t *testing.T) {
			result := NaiveMirror(tt.v, tt.width)
			if result != tt.expected {
				t.Errorf("NaiveMirror(%#x, %d) = %#x, want %#x", tt.v, tt.width, result, tt.expected)
			}
		})
	}
}

func TestNaivePopcount(t *testing.T) {
	tests := []struct {
		v        uint64
		width    int
		expected int
	}{
		{0, 8, 0},       // Empty pattern
		{0xFF, 8, 8},    // All set
		{5, 8, 2},       // Two bits
		{0x1FF, 8, 8},   // Bit above width is ignored
		{1 << 63, 64, 1},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%#x/%d", tt.v, tt.width), func(t *testing.T) {
			result := NaivePopcount(tt.v, tt.width)
			if result != tt.expected {
				t.Errorf("NaivePopcount(%#x, %d) = %d, want %d", tt.v, tt.width, result, tt.expected)
			}
		})
	}
}
