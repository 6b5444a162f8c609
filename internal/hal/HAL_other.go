//go:build !darwin && !linux && !windows

package hal

const (
	defaultCompiler = "cc"
	defaultArchiver = "ar"
)
