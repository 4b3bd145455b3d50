package bitstream

import (
	"errors"
	"testing"
)

func TestReadBitsMSBFirst(t *testing.T) {
	r := NewReader([]byte{0b10110010, 0b01111000})
	cases := []struct {
		width uint
		want  uint64
	}{
		{3, 0b101},
		{4, 0b1001},
		{8, 0b00111100},
		{1, 0},
	}
	for _, tc := range cases {
		got, err := r.ReadBits(tc.width)
		if err != nil {
			t.Fatalf("read %d bits: %v", tc.width, err)
		}
		if got != tc.want {
			t.Fatalf("read %d bits = %b, want %b", tc.width, got, tc.want)
		}
	}
	if r.Offset() != 16 {
		t.Fatalf("offset = %d, want 16", r.Offset())
	}
	if r.Remaining() != 0 {
		t.Fatalf("remaining = %d, want 0", r.Remaining())
	}
}

func TestReadBitsAcrossByteBoundary(t *testing.T) {
	r := NewReader([]byte{0x0F, 0xF0})
	if _, err := r.ReadBits(4); err != nil {
		t.Fatalf("skip nibble: %v", err)
	}
	got, err := r.ReadBits(8)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got != 0xFF {
		t.Fatalf("straddling byte = %#x, want 0xff", got)
	}
}

func TestReadBitsShortReadLeavesCursor(t *testing.T) {
	r := NewReader([]byte{0xAA})
	if _, err := r.ReadBits(5); err != nil {
		t.Fatalf("read: %v", err)
	}
	if _, err := r.ReadBits(4); !errors.Is(err, ErrShortRead) {
		t.Fatalf("err = %v, want ErrShortRead", err)
	}
	if r.Offset() != 5 {
		t.Fatalf("offset after failed read = %d, want 5", r.Offset())
	}
	got, err := r.ReadBits(3)
	if err != nil {
		t.Fatalf("read tail: %v", err)
	}
	if got != 0b010 {
		t.Fatalf("tail = %b, want 010", got)
	}
}

func TestReadBitsRejectsBadWidth(t *testing.T) {
	r := NewReader(make([]byte, 16))
	if _, err := r.ReadBits(0); err == nil {
		t.Fatal("expected error for zero width")
	}
	if _, err := r.ReadBits(65); err == nil {
		t.Fatal("expected error for width > 64")
	}
	if r.Offset() != 0 {
		t.Fatalf("offset = %d, want 0", r.Offset())
	}
}

func TestReadBitsFullWord(t *testing.T) {
	r := NewReader([]byte{0xDE, 0xAD, 0xBE, 0xEF, 0x01, 0x23, 0x45, 0x67})
	got, err := r.ReadBits(64)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got != 0xDEADBEEF01234567 {
		t.Fatalf("word = %#x", got)
	}
}
