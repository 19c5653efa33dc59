// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/lzo

package lzcore

import "encoding/binary"

// token is one selected block token, staged during selection so the
// Huffman tables can be built from the full block's symbol weights before
// any codeword is emitted — the wire format puts both tables ahead of the
// token payload.
type token struct {
	sym1 int // alphabet-1 symbol: mtf rank, lastWordSymbol, or matchSymbolBase+L

	// Populated only when sym1 >= matchSymbolBase.
	roid          int
	extraBitCount uint8
	extraBits     uint16
}

// MaxBlockSize returns a tbuf size guaranteed sufficient for Encode to
// never overrun, for a block of up to CHUNK_SIZE tokens. Callers size
// tbuf from this; an undersized tbuf is a programmer error and Encode
// panics rather than returning an error, matching the rest of this
// package's treatment of caller-supplied buffer sizing as an invariant,
// not a recoverable data error.
func MaxBlockSize() int {
	const maxBitsPerToken = 15 + 8 + 9 // worst case: alphabet-1 code + alphabet-2 code + extra bits
	header := 4 + alphabet1Size/2 + alphabet2Size/2
	payload := (ChunkSize*maxBitsPerToken+7)/8 + 8 // +8 covers the final flush/pad slack
	return header + payload
}

// Encode writes one block starting at spos, stopping when either sbuf is
// exhausted or CHUNK_SIZE tokens have been emitted. It returns the
// advanced source and destination positions.
func (e *Encoder) Encode(sbuf, tbuf []byte, spos int) (newSpos, tpos int) {
	tokens, weights1, weights2, spos := e.selectTokens(sbuf, spos)

	huff1 := newHuffmanTable(weights1, 15)
	huff2 := newHuffmanTable(weights2, 8)
	tpos = writeBlockHeader(tbuf, len(tokens), huff1, huff2)

	var bits bitQueue
	for _, t := range tokens {
		huff1.encode(&bits, t.sym1)
		if t.sym1 >= matchSymbolBase {
			huff2.encode(&bits, t.roid)
			bits.put(uint(t.extraBitCount), uint64(t.extraBits))
		}
		for bits.len() >= 32 {
			binary.BigEndian.PutUint32(tbuf[tpos:], uint32(bits.get(32)))
			tpos += 4
		}
	}

	if pad := (8 - bits.len()%8) % 8; pad != 0 {
		bits.put(pad, 0)
	}
	for bits.len() > 0 {
		n := bits.len()
		if n > 8 {
			n = 8
		}
		tbuf[tpos] = byte(bits.get(n))
		tpos++
	}

	return spos, tpos
}

// selectTokens runs the match/lastword/literal token-selection loop in
// isolation from serialization, so tests can inspect which tokens and
// symbol weights a given input produces without decoding the bitstream
// back out.
func (e *Encoder) selectTokens(sbuf []byte, spos int) (tokens []token, weights1, weights2 []uint32, newSpos int) {
	tokens = make([]token, 0, ChunkSize)
	weights1 = make([]uint32, alphabet1Size)
	weights2 = make([]uint32, alphabet2Size)

	for spos < len(sbuf) && len(tokens) < ChunkSize {
		ctx := contextByte(sbuf, spos)
		ro, matchLen, found := e.buckets[ctx].findMatchAndUpdate(sbuf, spos, e.cfg.MatchDepth)

		matched := false
		if found {
			wordPrevMatches := e.words.get(wordAt(sbuf, spos-1)) == wordAt(sbuf, spos+1)
			minLen2 := matchLen
			if wordPrevMatches {
				minLen2--
			}
			minLen3 := matchLen + 1
			if wordPrevMatches || e.words.get(wordAt(sbuf, spos)) == wordAt(sbuf, spos+2) {
				minLen3--
			}

			lazy := e.buckets[sbuf[spos]].hasLazyMatch(sbuf, spos+1, matchLen, e.cfg.LazyMatchDepth1) ||
				e.buckets[byteAt(sbuf, spos+1)].hasLazyMatch(sbuf, spos+2, minLen2, e.cfg.LazyMatchDepth2) ||
				e.buckets[byteAt(sbuf, spos+2)].hasLazyMatch(sbuf, spos+3, minLen3, e.cfg.LazyMatchDepth3)

			if !lazy {
				entry := roidEncode[ro]
				tokens = append(tokens, token{
					sym1:          matchSymbolBase + matchLen,
					roid:          int(entry.roid),
					extraBitCount: entry.extraBitCount,
					extraBits:     entry.extraBits,
				})
				weights1[matchSymbolBase+matchLen]++
				weights2[entry.roid]++
				spos += matchLen
				matched = true
			}
		}

		if !matched {
			if e.words.get(wordAt(sbuf, spos-1)) == wordAt(sbuf, spos+1) {
				tokens = append(tokens, token{sym1: lastWordSymbol})
				weights1[lastWordSymbol]++
				spos += 2
			} else {
				sym := e.mtf[ctx].encode(sbuf[spos])
				tokens = append(tokens, token{sym1: sym})
				weights1[sym]++
				spos++
			}
		}

		e.words.set(wordAt(sbuf, spos-3), wordAt(sbuf, spos-1))
	}

	return tokens, weights1, weights2, spos
}

// writeBlockHeader writes the token count followed by both packed
// code-length tables, and returns the position right after the header.
func writeBlockHeader(tbuf []byte, tokenCount int, huff1, huff2 *huffmanTable) int {
	binary.BigEndian.PutUint32(tbuf, uint32(tokenCount))
	tpos := 4

	copy(tbuf[tpos:], packLengths(huff1.codeLen))
	tpos += alphabet1Size / 2
	copy(tbuf[tpos:], packLengths(huff2.codeLen))
	tpos += alphabet2Size / 2
	return tpos
}
