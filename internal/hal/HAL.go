package hal

import (
	"os"
	"strings"

	"github.com/poppolopoppo/sqlite3src/internal/base"
	"github.com/poppolopoppo/sqlite3src/internal/hal/generic"
)

var LogHAL = base.NewLogCategory("HAL")

const (
	ENV_CC = "CC"
	ENV_AR = "AR"
)

// NewNativeDriver returns a driver for the host C toolchain, honoring $CC
// and $AR like make does: `CC="ccache gcc"` runs gcc through ccache.
func NewNativeDriver() *generic.GnuCompiler {
	compiler, compilerArgs := splitCommandLine(getEnvOrElse(ENV_CC, defaultCompiler))
	archiver, archiverArgs := splitCommandLine(getEnvOrElse(ENV_AR, defaultArchiver))

	gcc := generic.NewGnuCompiler(compiler, archiver)
	gcc.CompilerArgs = compilerArgs
	gcc.ArchiverArgs = archiverArgs
	base.LogVeryVerbose(LogHAL, "native driver: %v", gcc)
	return gcc
}

func splitCommandLine(in string) (string, base.StringSet) {
	fields := strings.Fields(in)
	return fields[0], base.StringSet(fields[1:])
}

func getEnvOrElse(name, orElse string) string {
	if value, ok := os.LookupEnv(name); ok && len(strings.TrimSpace(value)) > 0 {
		return value
	}
	return orElse
}
