//go:build sqlite3_profiling
// +build sqlite3_profiling

package utils

import (
	"os"
	"runtime"
	"strings"

	"github.com/pkg/profile"

	"github.com/poppolopoppo/sqlite3src/internal/base"
)

const PROFILING_ENABLED = true

const ENV_SQLITE3_PROFILING = "SQLITE3_PROFILING"

var LogProfiling = base.NewLogCategory("Profiling")

/***************************************
 * Profiling Mode
 ***************************************/

type ProfilingMode byte

const (
	PROFILING_BLOCK ProfilingMode = iota
	PROFILING_CPU
	PROFILING_MEMORY
	PROFILING_MUTEX
	PROFILING_TRACE
)

var profilingModes = [...]struct {
	name   string
	option func(*profile.Profile)
}{
	PROFILING_BLOCK:  {"BLOCK", profile.BlockProfile},
	PROFILING_CPU:    {"CPU", profile.CPUProfile},
	PROFILING_MEMORY: {"MEM", profile.MemProfile},
	PROFILING_MUTEX:  {"MUTEX", profile.MutexProfile},
	PROFILING_TRACE:  {"TRACE", profile.TraceProfile},
}

func (x ProfilingMode) String() string { return profilingModes[x].name }
func (x *ProfilingMode) Set(in string) error {
	for i, it := range profilingModes {
		if strings.EqualFold(it.name, in) {
			*x = ProfilingMode(i)
			return nil
		}
	}
	return base.MakeUnexpectedValueError(x, in)
}

/***************************************
 * Profiler
 ***************************************/

// StartProfiling records a profile in the working directory, the mode is read
// from $SQLITE3_PROFILING and defaults to CPU.
func StartProfiling() func() {
	mode := PROFILING_CPU
	if value, ok := os.LookupEnv(ENV_SQLITE3_PROFILING); ok {
		if err := mode.Set(value); err != nil {
			base.LogWarning(LogProfiling, "ignoring $%s: %v", ENV_SQLITE3_PROFILING, err)
		}
	}

	base.LogWarning(LogProfiling, "use %v profiling mode, writing to %q", mode, UFS.Root)
	if mode == PROFILING_CPU {
		runtime.SetCPUProfileRate(300)
	}

	return profile.Start(
		profilingModes[mode].option,
		profile.NoShutdownHook,
		profile.Quiet,
		profile.ProfilePath(UFS.Root.String())).Stop
}
