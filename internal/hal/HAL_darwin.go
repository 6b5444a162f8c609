//go:build darwin

package hal

const (
	defaultCompiler = "clang"
	defaultArchiver = "ar"
)
