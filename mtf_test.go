package lzcore

import "testing"

func TestMTFTable_IdentityInitialOrder(t *testing.T) {
	m := newMTFTable()
	for i := 0; i < 256; i++ {
		if m.order[i] != byte(i) {
			t.Fatalf("order[%d] = %d, want %d", i, m.order[i], i)
		}
	}
}

func TestMTFTable_EncodeDecodeRoundTrip(t *testing.T) {
	enc := newMTFTable()
	dec := newMTFTable()

	seq := []byte{0x10, 0x20, 0x10, 0xFF, 0x20, 0x00, 0x00, 0x10}
	for _, b := range seq {
		rank := enc.encode(b)
		got := dec.decode(rank)
		if got != b {
			t.Fatalf("decode(encode(%#x)) = %#x", b, got)
		}
	}
}

func TestMTFTable_PromotesToFront(t *testing.T) {
	m := newMTFTable()
	rank := m.encode(0x42)
	if rank != 0x42 {
		t.Fatalf("first encode of %#x should report its identity rank, got %d", 0x42, rank)
	}
	if m.order[0] != 0x42 {
		t.Fatalf("order[0] = %#x after encode, want %#x", m.order[0], 0x42)
	}
	rank = m.encode(0x42)
	if rank != 0 {
		t.Fatalf("second encode of %#x should report rank 0, got %d", 0x42, rank)
	}
}

func TestMTFTable_ContextsAreIndependent(t *testing.T) {
	a := newMTFTable()
	b := newMTFTable()
	a.encode(0x55)
	if b.order[0] != 0 {
		t.Fatalf("mutating one context's table affected an independent table")
	}
}
