package util

import "runtime"

// GetOptimalPoolSize returns the pool size used for both the parser pool and
// the conversion worker pool.
//
// Formula: min(max(runtime.NumCPU() * 2, 4), 32)
//
// The two pools MUST stay the same size, otherwise workers block waiting for
// a parser while holding a file.
func GetOptimalPoolSize() int {
	poolSize := runtime.NumCPU() * 2

	if poolSize < 4 {
		poolSize = 4
	}
	if poolSize > 32 {
		poolSize = 32
	}

	return poolSize
}

// GetOptimalPoolSizeWithOverride returns pool size with optional override.
//
// If override > 0, uses override value (for testing/tuning).
// Otherwise, uses GetOptimalPoolSize().
func GetOptimalPoolSizeWithOverride(override int) int {
	if override > 0 {
		return override
	}
	return GetOptimalPoolSize()
}
