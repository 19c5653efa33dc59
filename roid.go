// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/lzo

package lzcore

// Reduced-offset identifier (ROID) table: maps a reduced offset in
// [0, BucketItemSize) to (roid, extraBitCount, extraBits) and back. Built
// once at package init time with an LZMA-style position-slot scheme: the
// first few reduced offsets get their own roid with zero extra bits, and
// every bit-length level above that contributes two roids, each covering
// half of that level's range — the same distance-slot idea LZMA uses to
// compress the offset part of a match, adapted here to the bucket's
// recency rank instead of a raw byte distance. Only the resulting
// roid/extraBitCount/extraBits triples are part of the wire contract; the
// construction that produced them is not.

// roidEntry is one row of the encode-direction table, ROID_ENCODE[r].
type roidEntry struct {
	roid          uint8
	extraBitCount uint8
	extraBits     uint16
}

// roidBase is one row of the decode-direction table, ROID_DECODE[roid].
type roidBase struct {
	base          uint16
	extraBitCount uint8
}

var (
	roidEncode [BucketItemSize]roidEntry
	roidDecode [ROIDSize]roidBase
)

func init() {
	generateROIDTables()
}

// generateROIDTables fills roidEncode and roidDecode. Equivalent in spirit
// to a build.rs-generated include!: it runs once, deterministically, and
// both encoder and decoder read from the same package-level tables.
func generateROIDTables() {
	const direct = 4 // reduced offsets 0..3 map 1:1, zero extra bits

	roid := uint8(0)
	for r := uint16(0); r < direct; r++ {
		roidEncode[r] = roidEntry{roid: roid, extraBitCount: 0, extraBits: 0}
		roidDecode[roid] = roidBase{base: r, extraBitCount: 0}
		roid++
	}

	next := uint16(direct)
	for n := uint(2); next < BucketItemSize && int(roid) < ROIDSize; n++ {
		extraBitCount := uint8(n - 1)
		span := half2(extraBitCount)

		for half := 0; half < 2 && next < BucketItemSize && int(roid) < ROIDSize; half++ {
			base := next
			limit := base + span
			if limit > BucketItemSize {
				limit = BucketItemSize
			}
			roidDecode[roid] = roidBase{base: base, extraBitCount: extraBitCount}
			for r := base; r < limit; r++ {
				roidEncode[r] = roidEntry{
					roid:          roid,
					extraBitCount: extraBitCount,
					extraBits:     r - base,
				}
			}
			next = limit
			roid++
		}
	}

	if int(roid) != ROIDSize {
		panic("lzcore: ROID table construction did not produce exactly ROIDSize slots")
	}
	if next != BucketItemSize {
		panic("lzcore: ROID table construction did not cover BucketItemSize")
	}
}

// half2 returns 2^n.
func half2(n uint8) uint16 {
	return uint16(1) << n
}
