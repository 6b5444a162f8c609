package sqlite3src

import (
	"context"
	"fmt"
	"io"

	"github.com/poppolopoppo/sqlite3src/compile"
	"github.com/poppolopoppo/sqlite3src/internal/base"
	"github.com/poppolopoppo/sqlite3src/internal/hal"
	"github.com/poppolopoppo/sqlite3src/utils"

	internal_io "github.com/poppolopoppo/sqlite3src/internal/io"
)

var LogSqlite3 = base.NewLogCategory("Sqlite3")

const (
	SQLITE3_LIBNAME     = "sqlite3"
	SQLITE3_CONFIG_FILE = "sqlite3_config.h"
	SQLITE3_LOCK_FILE   = ".sqlite3.lock"
	SQLITE3_STAMP_FILE  = ".sqlite3.stamp"
)

/***************************************
 * Build Options
 ***************************************/

type BuildOptions struct {
	Incremental bool
	Header      bool
	Lock        bool
	LockWait    bool
}

type BuildOptionFunc func(*BuildOptions)

func (x *BuildOptions) Init(options ...BuildOptionFunc) {
	x.Lock = true
	for _, it := range options {
		it(x)
	}
}

func OptionBuildStruct(options *BuildOptions) BuildOptionFunc {
	return func(bo *BuildOptions) {
		*bo = *options
	}
}

// OptionBuildIncremental skips the compiler when the destination holds an
// artifact built from the same definitions and newer than the sources.
func OptionBuildIncremental(enabled bool) BuildOptionFunc {
	return func(bo *BuildOptions) {
		bo.Incremental = enabled
	}
}

// OptionBuildHeader also writes every definition to sqlite3_config.h in the
// destination directory.
func OptionBuildHeader(enabled bool) BuildOptionFunc {
	return func(bo *BuildOptions) {
		bo.Header = enabled
	}
}
func OptionBuildLock(enabled bool) BuildOptionFunc {
	return func(bo *BuildOptions) {
		bo.Lock = enabled
	}
}

// OptionBuildLockWait waits for another process to release the destination
// instead of failing right away.
func OptionBuildLockWait(enabled bool) BuildOptionFunc {
	return func(bo *BuildOptions) {
		bo.LockWait = enabled
	}
}

/***************************************
 * Build Result
 ***************************************/

type BuildResult struct {
	location    Location
	artifact    utils.Filename
	fingerprint base.Fingerprint
	upToDate    bool
}

func (x *BuildResult) Location() Location            { return x.location }
func (x *BuildResult) Artifact() utils.Filename      { return x.artifact }
func (x *BuildResult) Fingerprint() base.Fingerprint { return x.fingerprint }
func (x *BuildResult) UpToDate() bool                { return x.upToDate }
func (x *BuildResult) ConfigHeader() utils.Filename  { return x.location.Dest().File(SQLITE3_CONFIG_FILE) }
func (x *BuildResult) Sources() utils.FileSet {
	// only the amalgamation is compiled, the header is a dependency
	return utils.NewFileSet(x.location.Input())
}

/***************************************
 * Build
 ***************************************/

// Build configures driver with the amalgamation and every definition rendered
// from config, then compiles a library named sqlite3 in the destination.
func Build(ctx context.Context, location Location, config *compile.Config, driver compile.Driver, options ...BuildOptionFunc) (*BuildResult, error) {
	var opts BuildOptions
	opts.Init(options...)

	defer base.LogBenchmark(LogSqlite3, "build %v", location).Close()

	if err := location.Validate(); err != nil {
		return nil, err
	}

	result := &BuildResult{
		location:    location,
		fingerprint: config.Fingerprint(),
	}
	base.LogVerbose(LogSqlite3, "configuration: %s", config.Describe())

	if opts.Lock {
		lock, err := lockDestination(ctx, location.Dest(), opts.LockWait)
		if err != nil {
			return nil, err
		}
		defer lock.Close()
	}

	if opts.Header {
		if err := writeConfigHeader(result.ConfigHeader(), config, result.fingerprint); err != nil {
			return nil, err
		}
	}

	stampFile := location.Dest().File(SQLITE3_STAMP_FILE)
	stampFingerprint := makeStampFingerprint(location, result.fingerprint, driver)
	if opts.Incremental {
		if stamp, err := utils.LoadBuildStamp(stampFile); err == nil && stamp.UpToDate(stampFingerprint, location.Sources()) {
			base.LogVerbose(LogSqlite3, "%q is up-to-date", stamp.Artifact)
			result.artifact = stamp.Artifact
			result.upToDate = true
			return result, nil
		}
	}

	driver.File(location.Input())
	config.ApplyTo(driver)
	driver.Warnings(false)
	driver.OutDir(location.Dest())

	artifact, err := driver.Compile(ctx, SQLITE3_LIBNAME)
	if err != nil {
		return nil, fmt.Errorf("sqlite3: %w", err)
	}
	result.artifact = artifact

	if opts.Incremental {
		if err := utils.MakeBuildStamp(stampFingerprint, artifact).Save(stampFile); err != nil {
			base.LogWarning(LogSqlite3, "failed to save build stamp: %v", err)
		}
	}

	base.LogInfo(LogSqlite3, "built %q", artifact)
	return result, nil
}

// MustBuild compiles with the native toolchain and aborts the process on
// any failure.
func MustBuild(location Location, config *compile.Config, options ...BuildOptionFunc) *BuildResult {
	result, err := Build(context.Background(), location, config, hal.NewNativeDriver(), options...)
	base.LogPanicIfFailed(LogSqlite3, err)
	return result
}

var stampFingerprintSeed = base.StringFingerprint("sqlite3src.BuildStamp")

// makeStampFingerprint also covers the amalgamation path and the toolchain,
// so switching either one invalidates a previous incremental build.
func makeStampFingerprint(location Location, config base.Fingerprint, driver compile.Driver) base.Fingerprint {
	digester := base.NewDigester(stampFingerprintSeed)
	digester.WriteStrings(config.String(), location.Input().String())
	if toolchain, ok := driver.(fmt.Stringer); ok {
		digester.WriteStrings(toolchain.String())
	}
	return digester.Finalize()
}

func lockDestination(ctx context.Context, dest utils.Directory, wait bool) (*utils.DirectoryLock, error) {
	if wait {
		return utils.WaitDirectoryLock(ctx, dest, SQLITE3_LOCK_FILE)
	}
	return utils.LockDirectory(dest, SQLITE3_LOCK_FILE)
}

func writeConfigHeader(dst utils.Filename, config *compile.Config, fingerprint base.Fingerprint) error {
	base.LogVerbose(LogSqlite3, "write config header %q", dst)
	return utils.UFS.CreateBuffered(dst, func(w io.Writer) error {
		return internal_io.WriteConfigHeader(w, config.Definitions(), fingerprint, false)
	})
}
