package sound

import (
	"encoding/binary"
	"testing"
)

func TestLoopWrapsAround(t *testing.T) {
	var l Loop
	l.Set([]int{1, -2, 3})
	if l.Len() != 6 {
		t.Fatalf("expected 6 bytes, got %d", l.Len())
	}

	buf := make([]byte, 14)
	n, err := l.Read(buf)
	if err != nil || n != len(buf) {
		t.Fatalf("Read() = %d, %v", n, err)
	}
	want := []int16{1, -2, 3, 1, -2, 3, 1}
	for i, w := range want {
		if got := int16(binary.LittleEndian.Uint16(buf[2*i:])); got != w {
			t.Fatalf("sample %d: got %d, want %d", i, got, w)
		}
	}

	// The next read continues after the seventh sample.
	if _, err := l.Read(buf[:2]); err != nil {
		t.Fatal(err)
	}
	if got := int16(binary.LittleEndian.Uint16(buf)); got != -2 {
		t.Fatalf("expected -2 after wrap, got %d", got)
	}
}

func TestEmptyLoopIsSilent(t *testing.T) {
	var l Loop
	buf := []byte{1, 2, 3, 4}
	n, err := l.Read(buf)
	if err != nil || n != 4 {
		t.Fatalf("Read() = %d, %v", n, err)
	}
	for i, b := range buf {
		if b != 0 {
			t.Fatalf("byte %d: expected silence, got %d", i, b)
		}
	}
}

func TestSetKeepsOffsetInRange(t *testing.T) {
	var l Loop
	l.Set([]int{1, 2, 3, 4})
	buf := make([]byte, 6)
	l.Read(buf)
	l.Set([]int{9})
	if _, err := l.Read(buf[:2]); err != nil {
		t.Fatal(err)
	}
	if got := int16(binary.LittleEndian.Uint16(buf)); got != 9 {
		t.Fatalf("expected 9, got %d", got)
	}
}
