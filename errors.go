// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/lzo

package lzcore

import "github.com/cockroachdb/errors"

// ErrCorruptBlock is the single opaque error every decode-time failure
// satisfies via errors.Is. The wrapped cause (see below) stays attached for
// logging and tests but callers are not meant to branch on it.
var ErrCorruptBlock = errors.New("corrupt block")

// Sentinel causes wrapped under ErrCorruptBlock. Each is constructed with
// errors.Wrapf so errors.Is(err, ErrCorruptBlock) holds while the specific
// cause and position stay in err.Error().
var (
	errBadMatchLen  = errors.New("match length out of range")
	errBadROID      = errors.New("roid out of range")
	errBadCodeTable = errors.New("invalid canonical huffman code table")
	errTruncated    = errors.New("truncated block")
)

func wrapCorrupt(cause error, format string, args ...any) error {
	return errors.Wrapf(errors.Mark(cause, ErrCorruptBlock), format, args...)
}
