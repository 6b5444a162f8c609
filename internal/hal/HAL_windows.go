//go:build windows

package hal

// MinGW toolchain, MSVC does not accept GNU-style arguments
const (
	defaultCompiler = "gcc"
	defaultArchiver = "ar"
)
