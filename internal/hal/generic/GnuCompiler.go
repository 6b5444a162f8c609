package generic

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/poppolopoppo/sqlite3src/compile"
	"github.com/poppolopoppo/sqlite3src/internal/base"
	"github.com/poppolopoppo/sqlite3src/utils"

	internal_io "github.com/poppolopoppo/sqlite3src/internal/io"
)

// *************************************
// * GNU-style C compiler (gcc, clang, cc)
// *************************************

type ProcessRunner = func(ctx context.Context, executable utils.Filename, arguments base.StringSet, options ...internal_io.ProcessOptionFunc) error

type Command struct {
	Executable string
	Arguments  base.StringSet
}

func (x Command) String() string {
	return x.Executable + " " + x.Arguments.Join(" ")
}

type GnuCompiler struct {
	Compiler     string
	CompilerArgs base.StringSet
	Archiver     string
	ArchiverArgs base.StringSet
	ExtraOptions base.StringSet
	Runner       ProcessRunner

	source      utils.Filename
	definitions compile.Definitions
	warnings    bool
	output      utils.Directory
}

var _ compile.Driver = (*GnuCompiler)(nil)

func NewGnuCompiler(compiler, archiver string) *GnuCompiler {
	return &GnuCompiler{
		Compiler:     compiler,
		Archiver:     archiver,
		ExtraOptions: base.NewStringSet("-O2", "-fPIC"),
		Runner:       internal_io.RunProcess,
		warnings:     true,
	}
}

// String identifies the toolchain: a different one invalidates previous builds.
func (gcc *GnuCompiler) String() string {
	toolchain := base.NewStringSet(gcc.Compiler)
	toolchain.Append(gcc.CompilerArgs...)
	toolchain.Append(gcc.Archiver)
	toolchain.Append(gcc.ArchiverArgs...)
	toolchain.Append(gcc.ExtraOptions...)
	return toolchain.Join(" ")
}

func (gcc *GnuCompiler) File(source utils.Filename) { gcc.source = source }
func (gcc *GnuCompiler) Warnings(enabled bool)      { gcc.warnings = enabled }
func (gcc *GnuCompiler) OutDir(output utils.Directory) {
	gcc.output = output
}
func (gcc *GnuCompiler) Define(name string, value base.Optional[string]) {
	gcc.definitions.Define(name, value)
}

func (gcc *GnuCompiler) ObjectFile(libname string) utils.Filename {
	return gcc.output.File(libname + ".o")
}
func (gcc *GnuCompiler) StaticLibrary(libname string) utils.Filename {
	return gcc.output.File("lib" + libname + ".a")
}

// Commands returns the compiler then the archiver invocations, definitions
// sorted by name so the command line does not depend on insertion order.
func (gcc *GnuCompiler) Commands(libname string) ([]Command, error) {
	if !gcc.source.Valid() {
		return nil, fmt.Errorf("gnu: no source file given to compile %q", libname)
	}
	if !gcc.output.Valid() {
		return nil, fmt.Errorf("gnu: no output directory given to compile %q", libname)
	}

	object := gcc.ObjectFile(libname)

	cc := Command{Executable: gcc.Compiler}
	cc.Arguments.Append(gcc.CompilerArgs...)
	cc.Arguments.Append("-c", gcc.source.String(), "-o", object.String())
	if !gcc.warnings {
		cc.Arguments.Append("-w")
	}

	definitions := base.CopySlice(gcc.definitions...)
	compile.Definitions(definitions).Sort()
	for _, it := range definitions {
		cc.Arguments.Append("-D" + it.String())
	}
	cc.Arguments.Append(gcc.ExtraOptions...)

	ar := Command{Executable: gcc.Archiver}
	ar.Arguments.Append(gcc.ArchiverArgs...)
	ar.Arguments.Append("crs", gcc.StaticLibrary(libname).String(), object.String())

	return []Command{cc, ar}, nil
}

func (gcc *GnuCompiler) Compile(ctx context.Context, libname string) (utils.Filename, error) {
	commands, err := gcc.Commands(libname)
	if err != nil {
		return utils.Filename{}, err
	}
	if !gcc.source.Exists() {
		return utils.Filename{}, fmt.Errorf("gnu: source file %q does not exist", gcc.source)
	}
	if err := utils.UFS.MkdirEx(gcc.output); err != nil {
		return utils.Filename{}, err
	}

	for _, cmd := range commands {
		executable, err := lookPath(cmd.Executable)
		if err != nil {
			return utils.Filename{}, err
		}

		base.LogVerbose(LogGeneric, "%v", cmd)
		var exitCode int32
		err = gcc.Runner(ctx, executable, cmd.Arguments,
			internal_io.OptionProcessWorkingDir(gcc.output),
			// diagnostics are logged, keep them independent from the user locale
			internal_io.OptionProcessExport("LC_ALL", "C"),
			internal_io.OptionProcessCaptureOutputIf(base.IsLogLevelActive(base.LOG_VERBOSE)),
			internal_io.OptionProcessExitCode(&exitCode),
			internal_io.OptionProcessOutput(func(output string) error {
				base.LogWarning(LogGeneric, "%s: %s", executable.Basename, output)
				return nil
			}))
		if err != nil {
			return utils.Filename{}, fmt.Errorf("gnu: failed to compile %q (exit code %d): %w", libname, exitCode, err)
		}
	}

	artifact := gcc.StaticLibrary(libname)
	base.LogVerbose(LogGeneric, "compiled %q to %q", libname, artifact)
	return artifact, nil
}

func lookPath(name string) (utils.Filename, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return utils.Filename{}, fmt.Errorf("gnu: can not find %q in PATH: %w", name, err)
	}
	return utils.MakeFilename(path), nil
}
