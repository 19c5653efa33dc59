// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/lzo

package lzcore

// Config tunes the encoder's match-finding effort. It has no effect on the
// decoder or on wire compatibility — every Config produces a stream any
// other Config's decoder-paired session can read.
type Config struct {
	// MatchDepth bounds how many candidates find_match_and_update probes.
	MatchDepth int
	// LazyMatchDepth1 bounds the has_lazy_match probe at spos+1.
	LazyMatchDepth1 int
	// LazyMatchDepth2 bounds the has_lazy_match probe at spos+2.
	LazyMatchDepth2 int
	// LazyMatchDepth3 bounds the has_lazy_match probe at spos+3.
	LazyMatchDepth3 int
}

// DefaultConfig returns a moderate-effort configuration suitable for general
// use: a few dozen candidates per match, shallower probes for the lazy
// lookaheads since they only need to detect whether a better match exists.
func DefaultConfig() *Config {
	return &Config{
		MatchDepth:      32,
		LazyMatchDepth1: 16,
		LazyMatchDepth2: 16,
		LazyMatchDepth3: 8,
	}
}

// FastConfig trades ratio for speed: shallow probes everywhere.
func FastConfig() *Config {
	return &Config{
		MatchDepth:      8,
		LazyMatchDepth1: 4,
		LazyMatchDepth2: 4,
		LazyMatchDepth3: 2,
	}
}

// BestConfig trades speed for ratio: deep probes everywhere.
func BestConfig() *Config {
	return &Config{
		MatchDepth:      256,
		LazyMatchDepth1: 128,
		LazyMatchDepth2: 128,
		LazyMatchDepth3: 64,
	}
}

func resolveConfig(cfg *Config) *Config {
	if cfg == nil {
		return DefaultConfig()
	}
	return cfg
}
