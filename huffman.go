// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/lzo

package lzcore

import (
	"container/heap"

	"golang.org/x/exp/slices"
)

// huffmanTable is a length-limited canonical Huffman code table for one
// alphabet. codeLen[s] is the bit length of symbol s's code, 0 meaning the
// symbol is unused; code[s] is its canonical codeword, valid only when
// codeLen[s] != 0. decodeSym maps "first maxLen bits of the bitstream,
// left-justified" to a symbol for fast table-driven decode.
type huffmanTable struct {
	size    int
	maxLen  uint
	codeLen []uint8
	code    []uint32

	// decodeSym[v] is the symbol whose canonical code is a prefix of the
	// maxLen-bit value v; decodeLen[v] is that code's length. Always built
	// as a direct 2^maxLen-entry table, which stays small for this codec's
	// alphabets (Lmax 15 and 8).
	decodeSym []uint16
	decodeLen []uint8
}

// newHuffmanTable builds a canonical Huffman table for the given symbol
// weights, with code lengths limited to maxLen. A zero weight means the
// symbol does not occur in this block; it gets codeLen 0 and never appears
// on the wire.
//
// Construction: a standard weighted Huffman merge (container/heap) yields
// unlimited-depth code lengths, then a zlib-style "gen_bitlen" pass
// redistributes any lengths exceeding maxLen, preserving the Kraft
// equality sum(2^-len) == 1 exactly. Symbols are then sorted by
// (length, symbol index) and assigned canonical codes as in RFC 1951 §3.2.2.
func newHuffmanTable(weights []uint32, maxLen uint) *huffmanTable {
	size := len(weights)
	t := &huffmanTable{
		size:    size,
		maxLen:  maxLen,
		codeLen: make([]uint8, size),
		code:    make([]uint32, size),
	}

	used := 0
	for _, w := range weights {
		if w > 0 {
			used++
		}
	}
	if used == 0 {
		return t
	}
	if used == 1 {
		// A single-symbol alphabet still needs a 1-bit code so the decode
		// loop has something to consume.
		for s, w := range weights {
			if w > 0 {
				t.codeLen[s] = 1
				t.code[s] = 0
			}
		}
		t.buildDecodeTable()
		return t
	}

	rawLen := huffmanLengths(weights)
	limitLengths(rawLen, maxLen)
	for s, l := range rawLen {
		t.codeLen[s] = l
	}
	assignCanonicalCodes(t.codeLen, t.code)
	t.buildDecodeTable()
	return t
}

// huffmanNode is a heap element used while building the unlimited-depth
// Huffman tree: leaves carry a symbol index, internal nodes carry child
// indices into the same node slice.
type huffmanNode struct {
	weight      uint64
	order       int // tie-break, lower built first, for deterministic trees
	left, right int // -1 for leaves
	symbol      int // valid only when left == -1
}

type huffmanHeap struct {
	nodes []huffmanNode
	idx   []int // heap of indices into nodes
}

func (h *huffmanHeap) Len() int { return len(h.idx) }
func (h *huffmanHeap) Less(i, j int) bool {
	a, b := h.nodes[h.idx[i]], h.nodes[h.idx[j]]
	if a.weight != b.weight {
		return a.weight < b.weight
	}
	return a.order < b.order
}
func (h *huffmanHeap) Swap(i, j int) { h.idx[i], h.idx[j] = h.idx[j], h.idx[i] }
func (h *huffmanHeap) Push(x any)    { h.idx = append(h.idx, x.(int)) }
func (h *huffmanHeap) Pop() any {
	n := len(h.idx)
	v := h.idx[n-1]
	h.idx = h.idx[:n-1]
	return v
}

// huffmanLengths runs the classic Huffman merge and returns, per symbol,
// the depth of its leaf in the resulting tree (its unlimited code length).
// Symbols with zero weight get length 0.
func huffmanLengths(weights []uint32) []uint8 {
	size := len(weights)
	lengths := make([]uint8, size)

	h := &huffmanHeap{}
	order := 0
	for s, w := range weights {
		if w == 0 {
			continue
		}
		h.nodes = append(h.nodes, huffmanNode{weight: uint64(w), order: order, left: -1, right: -1, symbol: s})
		h.idx = append(h.idx, len(h.nodes)-1)
		order++
	}
	heap.Init(h)

	if len(h.idx) == 1 {
		lengths[h.nodes[h.idx[0]].symbol] = 1
		return lengths
	}

	for h.Len() > 1 {
		ai := heap.Pop(h).(int)
		bi := heap.Pop(h).(int)
		a, b := h.nodes[ai], h.nodes[bi]
		merged := huffmanNode{
			weight: a.weight + b.weight,
			order:  order,
			left:   ai,
			right:  bi,
		}
		order++
		h.nodes = append(h.nodes, merged)
		heap.Push(h, len(h.nodes)-1)
	}

	rootIdx := h.idx[0]
	var walk func(idx int, depth uint8)
	walk = func(idx int, depth uint8) {
		n := h.nodes[idx]
		if n.left == -1 {
			lengths[n.symbol] = depth
			return
		}
		walk(n.left, depth+1)
		walk(n.right, depth+1)
	}
	walk(rootIdx, 0)
	return lengths
}

// limitLengths enforces a hard maxLen on a set of Huffman code lengths in
// place, using a fixup in the style of zlib's trees.c gen_bitlen: every leaf
// deeper than maxLen is folded down to maxLen, which leaves the Kraft sum
// sum(count[l] * 2^(maxLen-l)) above 2^maxLen. The fixup loop then
// repeatedly takes one leaf from the deepest available length below maxLen,
// turns it into two leaves one level deeper, and removes one leaf from
// maxLen to compensate. That three-way adjustment (count[l]--,
// count[l+1] += 2, count[maxLen]--) lowers the Kraft sum by exactly one
// unit, and the loop runs until the sum is back at 2^maxLen; folding alone
// (without the count[maxLen]-- term) would leave an over-full, undecodable
// table. With more used symbols than 2^maxLen no prefix code fits: the loop
// then stops once no length below maxLen is left, and the result is not a
// prefix code. Finally lengths are reassigned to symbols in ascending
// original-length order so that the most frequent symbols keep the
// shortest codes.
func limitLengths(lengths []uint8, maxLen uint) {
	size := len(lengths)
	var maxObserved uint8
	for _, l := range lengths {
		if l > maxObserved {
			maxObserved = l
		}
	}
	if maxObserved == 0 || uint(maxObserved) <= maxLen {
		return
	}

	count := make([]int, maxLen+1) // count[l] for l in [1, maxLen]
	for _, l := range lengths {
		if l == 0 {
			continue
		}
		if uint(l) > maxLen {
			count[maxLen]++
		} else {
			count[l]++
		}
	}

	kraft := 0 // sum(count[l] * 2^(maxLen-l)); 2^maxLen for a complete code
	for l := 1; l <= int(maxLen); l++ {
		kraft += count[l] << (int(maxLen) - l)
	}
	for kraft > 1<<maxLen {
		l := int(maxLen) - 1
		for l > 0 && count[l] == 0 {
			l--
		}
		if l == 0 {
			break
		}
		count[l]--
		count[l+1] += 2
		count[maxLen]--
		kraft--
	}

	// Reassign: sort symbols by (original weight-implied order preserved by
	// the caller as ascending length already correlates with weight rank)
	// — here we just need a stable symbol order matching ascending original
	// length, then hand out the fixed-up length histogram shortest-first.
	type symLen struct {
		sym int
		len uint8
	}
	syms := make([]symLen, 0, size)
	for s, l := range lengths {
		if l > 0 {
			syms = append(syms, symLen{sym: s, len: l})
		}
	}
	slices.SortFunc(syms, func(a, b symLen) int {
		if a.len != b.len {
			return int(a.len) - int(b.len)
		}
		return a.sym - b.sym
	})

	newLens := make([]uint8, 0, len(syms))
	for l := 1; l <= int(maxLen); l++ {
		for i := 0; i < count[l]; i++ {
			newLens = append(newLens, uint8(l))
		}
	}
	for len(newLens) < len(syms) {
		newLens = append(newLens, uint8(maxLen))
	}
	for i, sl := range syms {
		lengths[sl.sym] = newLens[i]
	}
}

// assignCanonicalCodes assigns DEFLATE-style canonical codes (RFC 1951
// §3.2.2) given final code lengths: symbols are ordered by (length, symbol
// index) and codes increase by 1 within a length, shifting left when the
// length grows.
func assignCanonicalCodes(lengths []uint8, codes []uint32) {
	var maxLen uint8
	for _, l := range lengths {
		if l > maxLen {
			maxLen = l
		}
	}
	if maxLen == 0 {
		return
	}

	blCount := make([]int, maxLen+1)
	for _, l := range lengths {
		if l > 0 {
			blCount[l]++
		}
	}

	nextCode := make([]uint32, maxLen+2)
	code := uint32(0)
	for bits := uint8(1); bits <= maxLen; bits++ {
		code = (code + uint32(blCount[bits-1])) << 1
		nextCode[bits] = code
	}

	for s, l := range lengths {
		if l == 0 {
			continue
		}
		codes[s] = nextCode[l]
		nextCode[l]++
	}
}

// buildDecodeTable populates t.decodeSym/t.decodeLen for table-driven
// decode: index by the next maxLen bits of the stream, left-justified.
func (t *huffmanTable) buildDecodeTable() {
	n := 1 << t.maxLen
	t.decodeSym = make([]uint16, n)
	t.decodeLen = make([]uint8, n)
	for s := 0; s < t.size; s++ {
		l := t.codeLen[s]
		if l == 0 {
			continue
		}
		shift := t.maxLen - uint(l)
		base := uint32(t.code[s]) << shift
		span := uint32(1) << shift
		for v := base; v < base+span; v++ {
			t.decodeSym[v] = uint16(s)
			t.decodeLen[v] = l
		}
	}
}

// encode appends symbol s's canonical code to q.
func (t *huffmanTable) encode(q *bitQueue, s int) {
	l := t.codeLen[s]
	if l == 0 {
		panic("lzcore: encoding unused huffman symbol")
	}
	q.put(uint(l), uint64(t.code[s]))
}

// peek returns the next maxLen bits of q without consuming them. If fewer
// than maxLen bits are buffered, the low bits are zero-padded: acc's
// unused low bits are invariantly zero, so this is safe without a
// separate branch.
func (t *huffmanTable) peek(q *bitQueue) uint32 {
	return uint32(q.acc >> (64 - t.maxLen))
}

// decode consumes and returns the next symbol from q.
func (t *huffmanTable) decode(q *bitQueue) (int, error) {
	v := t.peek(q)
	l := t.decodeLen[v]
	if l == 0 || uint(l) > q.len() {
		return 0, wrapCorrupt(errBadCodeTable, "huffman: invalid code at %d buffered bits", q.len())
	}
	q.get(uint(l))
	return int(t.decodeSym[v]), nil
}

// packLengths writes the table's code lengths as 4-bit nibbles, two per
// byte, the block header's fixed nibble-table framing. size must be even.
func packLengths(lengths []uint8) []byte {
	out := make([]byte, len(lengths)/2)
	for i := 0; i < len(lengths); i += 2 {
		hi := lengths[i] & 0xF
		lo := uint8(0)
		if i+1 < len(lengths) {
			lo = lengths[i+1] & 0xF
		}
		out[i/2] = hi<<4 | lo
	}
	return out
}

// unpackLengths is packLengths's inverse.
func unpackLengths(packed []byte, size int) []uint8 {
	out := make([]uint8, size)
	for i := 0; i < size; i += 2 {
		b := packed[i/2]
		out[i] = b >> 4
		if i+1 < size {
			out[i+1] = b & 0xF
		}
	}
	return out
}
