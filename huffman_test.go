package lzcore

import (
	"math/rand"
	"testing"
)

func TestHuffmanTable_LengthsRespectMaxLen(t *testing.T) {
	weights := make([]uint32, 64)
	// A skewed distribution is what forces length-limiting to kick in: the
	// unlimited lengths reach 7. Lmax 6 is the smallest limit that still
	// has a code for each of the 64 symbols (2^6 = 64).
	for i := range weights {
		weights[i] = 1
	}
	weights[0] = 1000000

	tbl := newHuffmanTable(weights, 6)
	for s, l := range tbl.codeLen {
		if l > 6 {
			t.Fatalf("symbol %d has length %d, exceeds Lmax 6", s, l)
		}
		if weights[s] == 0 && l != 0 {
			t.Fatalf("zero-weight symbol %d got nonzero length %d", s, l)
		}
	}
}

// TestHuffmanTable_LimitLengthsRestoresKraftEquality exercises a weight
// distribution whose unlimited-depth lengths ({1,2,3,4,5,5} for weights
// {16,8,4,2,1,1}) exceed maxLen=3: a naive fixup that only folds overflow
// down to maxLen without separately retiring budget from the maxLen bucket
// leaves the Kraft sum over 1 and produces a table decodeHuffmanTable must
// reject. This checks the fixed-up lengths pass decodeHuffmanTable and
// round-trip real codewords.
func TestHuffmanTable_LimitLengthsRestoresKraftEquality(t *testing.T) {
	weights := []uint32{16, 8, 4, 2, 1, 1}
	const maxLen = 3

	tbl := newHuffmanTable(weights, maxLen)

	var kraftNum, kraftDen uint64 = 0, 1 << maxLen
	for s, l := range tbl.codeLen {
		if l == 0 {
			continue
		}
		if l > maxLen {
			t.Fatalf("symbol %d has length %d, exceeds Lmax %d", s, l, maxLen)
		}
		kraftNum += kraftDen >> uint(l)
	}
	if kraftNum != kraftDen {
		t.Fatalf("kraft sum = %d/%d, want equality (a valid prefix code)", kraftNum, kraftDen)
	}

	decoded, err := decodeHuffmanTable(tbl.codeLen, maxLen)
	if err != nil {
		t.Fatalf("decodeHuffmanTable rejected a table newHuffmanTable produced: %v", err)
	}

	var bits bitQueue
	for s, l := range tbl.codeLen {
		if l == 0 {
			continue
		}
		tbl.encode(&bits, s)
		got, err := decoded.decode(&bits)
		if err != nil {
			t.Fatalf("decode failed for symbol %d: %v", s, err)
		}
		if got != s {
			t.Fatalf("decode() = %d, want %d", got, s)
		}
	}
}

func TestHuffmanTable_EncodeDecodeRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	weights := make([]uint32, alphabet1Size)
	for i := range weights {
		if rng.Intn(3) != 0 {
			weights[i] = uint32(rng.Intn(500) + 1)
		}
	}

	tbl := newHuffmanTable(weights, 15)

	var symbols []int
	for s, w := range weights {
		if w > 0 {
			symbols = append(symbols, s)
		}
	}

	// A single shared queue, draining each symbol immediately after it's
	// pushed: this exercises real canonical codes (unlike one-at-a-time
	// fresh queues) without needing the block codec's 32-bit drain/refill
	// machinery, which is covered separately by the block-level tests.
	var bits bitQueue
	for i := 0; i < 2000; i++ {
		want := symbols[rng.Intn(len(symbols))]
		tbl.encode(&bits, want)
		got, err := tbl.decode(&bits)
		if err != nil {
			t.Fatalf("decode failed: %v", err)
		}
		if got != want {
			t.Fatalf("decode() = %d, want %d", got, want)
		}
	}
}

func TestHuffmanTable_PackUnpackLengths(t *testing.T) {
	lengths := make([]uint8, alphabet2Size)
	for i := range lengths {
		lengths[i] = uint8(i % 9)
	}
	packed := packLengths(lengths)
	if len(packed) != alphabet2Size/2 {
		t.Fatalf("packed length = %d, want %d", len(packed), alphabet2Size/2)
	}
	unpacked := unpackLengths(packed, alphabet2Size)
	for i := range lengths {
		if unpacked[i] != lengths[i] {
			t.Fatalf("unpacked[%d] = %d, want %d", i, unpacked[i], lengths[i])
		}
	}
}

func TestHuffmanTable_SingleSymbolAlphabet(t *testing.T) {
	weights := make([]uint32, 8)
	weights[3] = 42

	tbl := newHuffmanTable(weights, 8)
	var bits bitQueue
	tbl.encode(&bits, 3)
	got, err := tbl.decode(&bits)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if got != 3 {
		t.Fatalf("decode() = %d, want 3", got)
	}
}

func TestDecodeHuffmanTable_RejectsBadKraftSum(t *testing.T) {
	lengths := make([]uint8, 8)
	// Three symbols all claiming length 1 overcommit the Kraft budget.
	lengths[0] = 1
	lengths[1] = 1
	lengths[2] = 1
	if _, err := decodeHuffmanTable(lengths, 8); err == nil {
		t.Fatal("expected an error for an invalid prefix code")
	}
}
