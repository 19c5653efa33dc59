// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/lzo

package lzcore

import "github.com/cespare/xxhash/v2"

// bucketHashSize is the chain-head table size for the internal 3-byte
// prefix hash. Independent of BucketItemSize: it only speeds up candidate
// lookup within a context's recency list, it does not bound the list.
const bucketHashSize = 4096

// bucket is one context's match-finder index: a fixed-capacity ring
// of the most recent BucketItemSize absolute positions seen for this
// context, with a 3-byte-prefix hash chain layered on top so
// findMatchAndUpdate doesn't have to walk the full ring to find candidates
// that share a prefix with the current position. One bucket per preceding
// byte keeps each recency list independent, rather than threading every
// position through one global window.
type bucket struct {
	pos       [BucketItemSize]int32 // absolute source positions, ring buffer
	seq       [BucketItemSize]int64 // total value at time of insertion into this slot
	total     int64                 // number of insertions ever made into this bucket
	hashHead  [bucketHashSize]int32 // ring slot index of the newest insert for a hash bucket, -1 = empty
	chainNext [BucketItemSize]int32 // older ring slot sharing the same hash bucket, -1 = chain end
}

func newBucket() *bucket {
	b := &bucket{}
	for i := range b.hashHead {
		b.hashHead[i] = -1
	}
	for i := range b.chainNext {
		b.chainNext[i] = -1
	}
	return b
}

// hash3 returns a bucketHashSize-bounded hash of up to 3 bytes starting at
// pos, zero-padding past the end of buf so callers never need to special
// case the last few bytes of a block.
func hash3(buf []byte, pos int) uint32 {
	var tmp [3]byte
	copy(tmp[:], buf[min(pos, len(buf)):min(pos+3, len(buf))])
	return uint32(xxhash.Sum64(tmp[:])) & (bucketHashSize - 1)
}

// insert records pos in the bucket, regardless of any match outcome —
// callers never skip this: both findMatchAndUpdate and the decoder's
// matching update() call it for every token's starting position, matched
// or not. Positions inside a match or a lastword token are not inserted.
func (b *bucket) insert(buf []byte, pos int) {
	slot := int(b.total % BucketItemSize)
	b.pos[slot] = int32(pos)
	b.seq[slot] = b.total

	key := hash3(buf, pos)
	b.chainNext[slot] = b.hashHead[key]
	b.hashHead[key] = int32(slot)
	b.total++
}

// rankOf returns the recency rank of the position stored in slot (0 =
// most recently inserted), or -1 if that slot's entry has aged out of the
// BucketItemSize window or was discarded by forward.
func (b *bucket) rankOf(slot int32) int {
	if b.pos[slot] < 0 {
		return -1
	}
	rank := b.total - b.seq[slot] - 1
	if rank < 0 || rank >= BucketItemSize {
		return -1
	}
	return int(rank)
}

// matchLength returns the length of the common prefix of buf starting at
// a and at c, capped at MatchMaxLen and at buf's length.
func matchLength(buf []byte, a, c int) int {
	limit := len(buf) - c
	if m := len(buf) - a; m < limit {
		limit = m
	}
	if limit > MatchMaxLen {
		limit = MatchMaxLen
	}
	n := 0
	for n < limit && buf[a+n] == buf[c+n] {
		n++
	}
	return n
}

// findMatchAndUpdate searches up to depth candidates sharing pos's 3-byte
// prefix for the longest match, then unconditionally inserts pos.
func (b *bucket) findMatchAndUpdate(buf []byte, pos, depth int) (reducedOffset, length int, ok bool) {
	bestLen := 0
	bestRank := -1

	key := hash3(buf, pos)
	node := b.hashHead[key]
	for candidates := 0; node != -1 && candidates < depth; candidates++ {
		rank := b.rankOf(node)
		if rank >= 0 {
			if l := matchLength(buf, int(b.pos[node]), pos); l > bestLen {
				bestLen = l
				bestRank = rank
			}
		}
		node = b.chainNext[node]
	}

	b.insert(buf, pos)

	if bestLen < MatchMinLen {
		return 0, 0, false
	}
	if bestLen > MatchMaxLen {
		bestLen = MatchMaxLen
	}
	return bestRank, bestLen, true
}

// hasLazyMatch reports whether some candidate within depth beats minLen,
// without mutating the bucket.
func (b *bucket) hasLazyMatch(buf []byte, pos, minLen, depth int) bool {
	key := hash3(buf, pos)
	node := b.hashHead[key]
	for candidates := 0; node != -1 && candidates < depth; candidates++ {
		if rank := b.rankOf(node); rank >= 0 {
			if matchLength(buf, int(b.pos[node]), pos) > minLen {
				return true
			}
		}
		node = b.chainNext[node]
	}
	return false
}

// update inserts pos without searching — the decoder's mirror of the
// encoder's post-search insert in findMatchAndUpdate.
func (b *bucket) update(buf []byte, pos int) {
	b.insert(buf, pos)
}

// getMatchPos resolves a reduced offset back to an absolute source
// position. ok is false if the offset doesn't correspond to any entry
// currently held in the recency window — a corrupt-block condition.
//
// Ranks are only stable across the encode/decode boundary because both
// sides insert the current token's own position into this same bucket
// *after* resolving the offset (findMatchAndUpdate searches then inserts;
// the decoder calls update after getMatchPos) — so at resolution time
// both buckets have processed the same number of prior insertions.
func (b *bucket) getMatchPos(reducedOffset int) (int, bool) {
	if reducedOffset < 0 || int64(reducedOffset) >= b.total || reducedOffset >= BucketItemSize {
		return 0, false
	}
	slot := int((b.total - 1 - int64(reducedOffset)) % BucketItemSize)
	if b.pos[slot] < 0 {
		return 0, false
	}
	return int(b.pos[slot]), true
}

// forward shifts every stored position by -delta, discarding (marking
// invalid) any that would become negative. Callers use this when the
// session's buffer is slid forward so stored positions stay relative to
// the new base.
func (b *bucket) forward(delta int) {
	for i := range b.pos {
		if b.pos[i] < 0 {
			continue
		}
		shifted := b.pos[i] - int32(delta)
		if shifted < 0 {
			b.pos[i] = -1
			continue
		}
		b.pos[i] = shifted
	}
}
