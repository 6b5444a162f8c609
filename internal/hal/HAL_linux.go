//go:build linux

package hal

const (
	defaultCompiler = "cc"
	defaultArchiver = "ar"
)
