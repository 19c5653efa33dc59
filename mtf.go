// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/lzo

package lzcore

// mtfTable is one context's move-to-front permutation over the 256
// possible literal byte values. Each of the 256 contexts (keyed by the
// preceding byte) owns its own independent table, so recently seen bytes
// in one context don't reorder another context's ranks.
type mtfTable struct {
	order [256]byte
}

// newMTFTable returns a table initialized to the identity permutation,
// order[i] == i, the starting state for every context at the start of a
// session.
func newMTFTable() *mtfTable {
	t := &mtfTable{}
	for i := range t.order {
		t.order[i] = byte(i)
	}
	return t
}

// encode returns b's current rank (0 = most recently used) and promotes
// it to rank 0.
func (t *mtfTable) encode(b byte) int {
	for i, v := range t.order {
		if v == b {
			t.promote(i)
			return i
		}
	}
	panic("lzcore: mtf byte not found in permutation")
}

// decode returns the byte at the given rank and promotes it to rank 0.
func (t *mtfTable) decode(rank int) byte {
	b := t.order[rank]
	t.promote(rank)
	return b
}

// promote moves the element at index i to the front, shifting the
// intervening elements down by one — the classic MTF update.
func (t *mtfTable) promote(i int) {
	if i == 0 {
		return
	}
	b := t.order[i]
	copy(t.order[1:i+1], t.order[0:i])
	t.order[0] = b
}
