// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/lzo

package lzcore

import "encoding/binary"

// Decode reads one block from tbuf and reconstructs it into sbuf starting
// at spos. It returns the advanced source and destination positions, or a
// wrapped ErrCorruptBlock if tbuf does not contain a well-formed block.
func (d *Decoder) Decode(tbuf, sbuf []byte, spos int) (newSpos, tpos int, err error) {
	if len(tbuf) < 4 {
		return 0, 0, wrapCorrupt(errTruncated, "block header: need 4 bytes for token count, have %d", len(tbuf))
	}
	tokenCount := int(binary.BigEndian.Uint32(tbuf))
	tpos = 4

	headerLen := alphabet1Size/2 + alphabet2Size/2
	if len(tbuf)-tpos < headerLen {
		return 0, 0, wrapCorrupt(errTruncated, "block header: need %d bytes for code-length tables, have %d", headerLen, len(tbuf)-tpos)
	}
	lengths1 := unpackLengths(tbuf[tpos:tpos+alphabet1Size/2], alphabet1Size)
	tpos += alphabet1Size / 2
	lengths2 := unpackLengths(tbuf[tpos:tpos+alphabet2Size/2], alphabet2Size)
	tpos += alphabet2Size / 2

	huff1, err := decodeHuffmanTable(lengths1, 15)
	if err != nil {
		return 0, 0, err
	}
	huff2, err := decodeHuffmanTable(lengths2, 8)
	if err != nil {
		return 0, 0, err
	}

	var bits bitQueue
	for i := 0; i < tokenCount; i++ {
		if bits.len() < 32 && tpos < len(tbuf) {
			// The block's last fragment may be 1-3 bytes; read it zero-padded.
			var word [4]byte
			copy(word[:], tbuf[tpos:])
			bits.put(32, uint64(binary.BigEndian.Uint32(word[:])))
			tpos += 4
		}

		leader, decErr := huff1.decode(&bits)
		if decErr != nil {
			return 0, 0, decErr
		}

		ctx := contextByte(sbuf, spos)

		switch {
		case leader < 256:
			sbuf[spos] = d.mtf[ctx].decode(leader)
			d.buckets[ctx].update(sbuf, spos)
			spos++

		case leader == lastWordSymbol:
			w := d.words.get(wordAt(sbuf, spos-1))
			if spos+1 < len(sbuf) {
				sbuf[spos] = byte(w >> 8)
				sbuf[spos+1] = byte(w)
			} else if spos < len(sbuf) {
				sbuf[spos] = byte(w >> 8)
			}
			d.buckets[ctx].update(sbuf, spos)
			spos += 2

		default:
			matchLen := leader - matchSymbolBase
			if matchLen < MatchMinLen || matchLen > MatchMaxLen {
				return 0, 0, wrapCorrupt(errBadMatchLen, "token %d: match length %d out of range", i, matchLen)
			}

			roid, decErr := huff2.decode(&bits)
			if decErr != nil {
				return 0, 0, decErr
			}
			if roid >= ROIDSize {
				return 0, 0, wrapCorrupt(errBadROID, "token %d: roid %d out of range", i, roid)
			}
			base := roidDecode[roid]
			if bits.len() < uint(base.extraBitCount) {
				return 0, 0, wrapCorrupt(errTruncated, "token %d: need %d extra bits, have %d", i, base.extraBitCount, bits.len())
			}
			extra := bits.get(uint(base.extraBitCount))
			reducedOffset := int(base.base) + int(extra)

			matchPos, ok := d.buckets[ctx].getMatchPos(reducedOffset)
			if !ok {
				return 0, 0, wrapCorrupt(errBadCodeTable, "token %d: reduced offset %d references no bucket entry", i, reducedOffset)
			}
			if matchPos < 0 || spos+matchLen > len(sbuf) {
				return 0, 0, wrapCorrupt(errBadCodeTable, "token %d: match copy out of bounds", i)
			}
			copyMatch(sbuf, matchPos, spos, matchLen)
			d.buckets[ctx].update(sbuf, spos)
			spos += matchLen
		}

		d.words.set(wordAt(sbuf, spos-3), wordAt(sbuf, spos-1))

		if spos >= len(sbuf) {
			break
		}
	}

	if spos > len(sbuf) {
		spos = len(sbuf)
	}
	if tpos > len(tbuf) {
		tpos = len(tbuf)
	}
	return spos, tpos, nil
}

// copyMatch performs the overlap-aware forward copy a match token decodes
// to: for k in [0, n), sbuf[dst+k] = sbuf[src+k], evaluated strictly left to
// right, so a short offset (src+k may land inside bytes already written
// by this same copy) expands into a repeating run rather than copying
// stale data.
func copyMatch(sbuf []byte, src, dst, n int) {
	for k := 0; k < n; k++ {
		sbuf[dst+k] = sbuf[src+k]
	}
}

// decodeHuffmanTable builds a decode-ready canonical table from code
// lengths read off the wire, rejecting any length set that doesn't form a
// valid prefix code (Kraft sum must equal exactly 1).
func decodeHuffmanTable(lengths []uint8, maxLen uint) (*huffmanTable, error) {
	var kraftNum, kraftDen uint64 = 0, 1 << maxLen
	used := 0
	for _, l := range lengths {
		if l == 0 {
			continue
		}
		if uint(l) > maxLen {
			return nil, wrapCorrupt(errBadCodeTable, "code length %d exceeds max %d", l, maxLen)
		}
		used++
		kraftNum += uint64(1) << (maxLen - uint(l))
	}

	t := &huffmanTable{
		size:    len(lengths),
		maxLen:  maxLen,
		codeLen: append([]uint8(nil), lengths...),
		code:    make([]uint32, len(lengths)),
	}

	switch used {
	case 0:
		t.buildDecodeTable()
		return t, nil
	case 1:
		// A single used symbol is conventionally given a 1-bit code by the
		// encoder; tolerate it here directly rather than failing the Kraft
		// check (2^-1 != 1, but there is nothing to prefix against).
		assignCanonicalCodes(t.codeLen, t.code)
		t.buildDecodeTable()
		return t, nil
	}

	if kraftNum != kraftDen {
		return nil, wrapCorrupt(errBadCodeTable, "code lengths do not form a valid prefix code (kraft sum %d/%d)", kraftNum, kraftDen)
	}

	assignCanonicalCodes(t.codeLen, t.code)
	t.buildDecodeTable()
	return t, nil
}
