// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/lzo

package lzcore

// Encoder holds one compression session's state: 256 match-finder buckets,
// 256 MTF tables, and the shared word-memory array.
// Create one per independent stream and reuse it across every block of
// that stream; create a fresh Encoder for an unrelated stream rather than
// resetting this one, since resetting in place would need to re-zero all
// 256 buckets' rings and doesn't save anything.
type Encoder struct {
	cfg     *Config
	buckets [256]*bucket
	mtf     [256]*mtfTable
	words   *wordMemory
}

// NewEncoder creates a session ready to encode the first block of a new
// stream. A nil cfg falls back to DefaultConfig().
func NewEncoder(cfg *Config) *Encoder {
	e := &Encoder{cfg: resolveConfig(cfg), words: newWordMemory()}
	for i := range e.buckets {
		e.buckets[i] = newBucket()
		e.mtf[i] = newMTFTable()
	}
	return e
}

// Forward shifts every bucket's stored positions by -delta, so a session
// can keep compressing a stream whose buffer has been slid forward without
// losing recency history. It never touches MTF tables or the word array,
// which are position-independent.
func (e *Encoder) Forward(delta int) {
	for _, b := range e.buckets {
		b.forward(delta)
	}
}

// Decoder is the decode-side mirror of Encoder: symmetric state, no
// config (the block layout fully determines decode behavior).
type Decoder struct {
	buckets [256]*bucket
	mtf     [256]*mtfTable
	words   *wordMemory
}

// NewDecoder creates a session ready to decode the first block of a
// stream previously produced by a matching Encoder.
func NewDecoder() *Decoder {
	d := &Decoder{words: newWordMemory()}
	for i := range d.buckets {
		d.buckets[i] = newBucket()
		d.mtf[i] = newMTFTable()
	}
	return d
}

// Forward mirrors Encoder.Forward for the decode side.
func (d *Decoder) Forward(delta int) {
	for _, b := range d.buckets {
		b.forward(delta)
	}
}
