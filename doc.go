// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/lzo

/*
Package lzcore implements the per-block engine of a block-oriented
Lempel-Ziv codec: match finding with a three-level lazy lookahead, a
last-two-byte "word memory" fast path, a context-conditioned move-to-front
literal coder, a reduced-offset identifier scheme, and two adaptive
per-block canonical Huffman codebooks.

The package is symmetric: an Encoder and a Decoder share the same bucket,
MTF and word-memory data model and must agree bit-for-bit on block layout.
Chunking an input stream into blocks, framing blocks on disk, and CLI
concerns are out of scope — callers drive Encoder.Encode / Decoder.Decode
in a loop over their own buffers.

# Encode

	enc := lzcore.NewEncoder(lzcore.DefaultConfig())
	tbuf := make([]byte, lzcore.MaxBlockSize())
	spos, tpos := enc.Encode(sbuf, tbuf, 0)
	// advance: sbuf[spos:], tbuf[:tpos] is the emitted block

# Decode

	dec := lzcore.NewDecoder()
	spos, tpos, err := dec.Decode(tbuf, sbuf, 0)
	// sbuf[:spos] now holds the reconstructed bytes

Between blocks of the same session, when the caller slides its window
forward by delta bytes, it calls Forward(delta) on the session so bucket
positions stay consistent with the (now-shifted) buffer.
*/
package lzcore
