//go:build !sqlite3_profiling
// +build !sqlite3_profiling

package utils

const PROFILING_ENABLED = false

func StartProfiling() func() {
	return func() {}
}
