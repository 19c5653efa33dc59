// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/lzo

package lzcore

import "golang.org/x/sync/errgroup"

// EncodeJob is one independent block to encode: its own session, its own
// source/destination buffers and starting position. Blocks can only be
// encoded in parallel when each carries fully independent session state —
// an EncodeJob is exactly that unit.
type EncodeJob struct {
	Encoder *Encoder
	SBuf    []byte
	TBuf    []byte
	SPos    int
}

// EncodeResult holds one job's advanced positions.
type EncodeResult struct {
	SPos int
	TPos int
}

// EncodeBlocksParallel runs each job's Encode concurrently. It does not
// decide how to segment a stream into independent jobs — that remains the
// outer driver's responsibility; it only fans out jobs the caller has
// already proven independent.
func EncodeBlocksParallel(jobs []EncodeJob) ([]EncodeResult, error) {
	results := make([]EncodeResult, len(jobs))
	var g errgroup.Group
	for i := range jobs {
		i := i
		g.Go(func() error {
			job := jobs[i]
			spos, tpos := job.Encoder.Encode(job.SBuf, job.TBuf, job.SPos)
			results[i] = EncodeResult{SPos: spos, TPos: tpos}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// DecodeJob mirrors EncodeJob for the decode side.
type DecodeJob struct {
	Decoder *Decoder
	TBuf    []byte
	SBuf    []byte
	SPos    int
}

// DecodeResult holds one job's advanced positions.
type DecodeResult struct {
	SPos int
	TPos int
}

// DecodeBlocksParallel runs each job's Decode concurrently, collecting the
// first error encountered (errgroup.Group's standard fan-out contract).
func DecodeBlocksParallel(jobs []DecodeJob) ([]DecodeResult, error) {
	results := make([]DecodeResult, len(jobs))
	var g errgroup.Group
	for i := range jobs {
		i := i
		g.Go(func() error {
			job := jobs[i]
			spos, tpos, err := job.Decoder.Decode(job.TBuf, job.SBuf, job.SPos)
			if err != nil {
				return err
			}
			results[i] = DecodeResult{SPos: spos, TPos: tpos}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
