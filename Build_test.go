package sqlite3src

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/poppolopoppo/sqlite3src/compile"
	"github.com/poppolopoppo/sqlite3src/internal/base"
	"github.com/poppolopoppo/sqlite3src/utils"
)

type fakeDriver struct {
	toolchain   string
	source      utils.Filename
	definitions compile.Definitions
	warnings    bool
	output      utils.Directory
	compiled    int
	err         error
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{warnings: true}
}

func (x *fakeDriver) String() string             { return x.toolchain }
func (x *fakeDriver) File(source utils.Filename) { x.source = source }
func (x *fakeDriver) Warnings(enabled bool)      { x.warnings = enabled }
func (x *fakeDriver) OutDir(output utils.Directory) {
	x.output = output
}
func (x *fakeDriver) Define(name string, value base.Optional[string]) {
	x.definitions.Define(name, value)
}
func (x *fakeDriver) Compile(ctx context.Context, libname string) (utils.Filename, error) {
	if x.err != nil {
		return utils.Filename{}, x.err
	}
	x.compiled++
	artifact := x.output.File("lib" + libname + ".a")
	return artifact, utils.UFS.Create(artifact, func(w io.Writer) error {
		_, err := io.WriteString(w, "!<arch>\n")
		return err
	})
}

func newTestLocation(t *testing.T) Location {
	return newTestLocationIn(t, utils.MakeDirectory(t.TempDir()), "sqlite")
}

func newTestLocationIn(t *testing.T, dir utils.Directory, source string) Location {
	location := NewLocationFrom(dir.Folder(source), dir.Folder("out"))
	for _, it := range location.Sources() {
		if err := utils.UFS.Create(it, func(w io.Writer) error {
			_, err := io.WriteString(w, "/* "+it.Basename+" */\n")
			return err
		}); err != nil {
			t.Fatal(err)
		}
	}
	return location
}

func TestBuildConfiguresDriver(t *testing.T) {
	location := newTestLocation(t)
	config := compile.NewDefaultConfig(false)
	driver := newFakeDriver()

	result, err := Build(context.Background(), location, config, driver)
	if err != nil {
		t.Fatal(err)
	}

	if !driver.source.Equals(location.Input()) {
		t.Errorf("unexpected source file: %v", driver.source)
	}
	if !driver.output.Equals(location.Dest()) {
		t.Errorf("unexpected output directory: %v", driver.output)
	}
	if driver.warnings {
		t.Errorf("expected driver warnings to be disabled")
	}

	want := config.Definitions()
	want.Sort()
	driver.definitions.Sort()
	if diff := cmp.Diff(want.StringSet(), driver.definitions.StringSet()); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	if !result.Artifact().Equals(location.Dest().File("libsqlite3.a")) {
		t.Errorf("unexpected artifact: %v", result.Artifact())
	}
	if result.UpToDate() {
		t.Errorf("a fresh build can not be up-to-date")
	}
	if sources := result.Sources(); sources.Len() != 1 || !sources.At(0).Equals(location.Input()) {
		t.Errorf("expected only the amalgamation to be compiled, got %v", result.Sources())
	}
	if result.Location() != location || result.Fingerprint() != config.Fingerprint() {
		t.Errorf("unexpected build result: %+v", result)
	}
	if result.ConfigHeader().Exists() {
		t.Errorf("did not expect a config header without OptionBuildHeader")
	}
}

func TestBuildWritesHeader(t *testing.T) {
	location := newTestLocation(t)

	result, err := Build(context.Background(), location, compile.DefaultConfig(), newFakeDriver(),
		OptionBuildHeader(true))
	if err != nil {
		t.Fatal(err)
	}
	if !result.ConfigHeader().Exists() {
		t.Errorf("expected %q to be written", result.ConfigHeader())
	}
}

func TestBuildIncremental(t *testing.T) {
	location := newTestLocation(t)
	config := compile.NewDefaultConfig(false)
	driver := newFakeDriver()

	for i := 0; i < 2; i++ {
		result, err := Build(context.Background(), location, config, driver, OptionBuildIncremental(true))
		if err != nil {
			t.Fatal(err)
		}
		if result.UpToDate() != (i > 0) {
			t.Errorf("build #%d: unexpected up-to-date status %v", i, result.UpToDate())
		}
	}
	if driver.compiled != 1 {
		t.Errorf("expected a single compilation, got %d", driver.compiled)
	}

	config.Set(compile.MaxExpressionDepth(500))
	result, err := Build(context.Background(), location, config, driver, OptionBuildIncremental(true))
	if err != nil {
		t.Fatal(err)
	}
	if result.UpToDate() || driver.compiled != 2 {
		t.Errorf("a configuration change should trigger a new compilation")
	}
}

func TestBuildIncrementalTracksAmalgamationFolder(t *testing.T) {
	dir := utils.MakeDirectory(t.TempDir())
	second := newTestLocationIn(t, dir, "b")
	first := newTestLocationIn(t, dir, "a")
	config := compile.NewDefaultConfig(false)
	driver := newFakeDriver()

	for _, location := range []Location{first, second} {
		result, err := Build(context.Background(), location, config, driver, OptionBuildIncremental(true))
		if err != nil {
			t.Fatal(err)
		}
		if result.UpToDate() {
			t.Errorf("%v: an artifact built from another folder can not be up-to-date", location)
		}
	}
	if driver.compiled != 2 {
		t.Errorf("expected a compilation per amalgamation folder, got %d", driver.compiled)
	}
}

func TestBuildIncrementalTracksToolchain(t *testing.T) {
	location := newTestLocation(t)
	config := compile.NewDefaultConfig(false)
	driver := newFakeDriver()

	for _, toolchain := range []string{"gcc ar", "clang llvm-ar", "clang llvm-ar"} {
		driver.toolchain = toolchain
		if _, err := Build(context.Background(), location, config, driver, OptionBuildIncremental(true)); err != nil {
			t.Fatal(err)
		}
	}
	if driver.compiled != 2 {
		t.Errorf("expected a compilation per toolchain, got %d", driver.compiled)
	}
}

func TestBuildIncrementalWritesHeader(t *testing.T) {
	location := newTestLocation(t)
	config := compile.NewDefaultConfig(false)
	driver := newFakeDriver()

	if _, err := Build(context.Background(), location, config, driver, OptionBuildIncremental(true)); err != nil {
		t.Fatal(err)
	}
	result, err := Build(context.Background(), location, config, driver,
		OptionBuildIncremental(true), OptionBuildHeader(true))
	if err != nil {
		t.Fatal(err)
	}
	if !result.UpToDate() {
		t.Errorf("expected the artifact to be up-to-date")
	}
	if !result.ConfigHeader().Exists() {
		t.Errorf("expected %q to be written even when up-to-date", result.ConfigHeader())
	}
}

func TestBuildRequiresAmalgamation(t *testing.T) {
	dir := utils.MakeDirectory(t.TempDir())
	location := NewLocationFrom(dir.Folder("empty"), dir.Folder("out"))
	driver := newFakeDriver()

	if _, err := Build(context.Background(), location, compile.NewConfig(), driver); !errors.Is(err, ErrAmalgamationNotFound) {
		t.Errorf("expected ErrAmalgamationNotFound, got %v", err)
	}
	if driver.compiled != 0 {
		t.Errorf("the driver should not run without an amalgamation")
	}
}

func TestBuildForwardsDriverErrors(t *testing.T) {
	location := newTestLocation(t)
	driver := newFakeDriver()
	driver.err = errors.New("compiler crashed")

	if _, err := Build(context.Background(), location, compile.NewConfig(), driver); !errors.Is(err, driver.err) {
		t.Errorf("expected the driver error, got %v", err)
	}
}

func TestBuildFailsWhenLocked(t *testing.T) {
	location := newTestLocation(t)

	lock, err := utils.LockDirectory(location.Dest(), SQLITE3_LOCK_FILE)
	if err != nil {
		t.Fatal(err)
	}
	defer lock.Close()

	if _, err := Build(context.Background(), location, compile.NewConfig(), newFakeDriver()); !errors.Is(err, utils.ErrDirectoryLocked) {
		t.Errorf("expected ErrDirectoryLocked, got %v", err)
	}
	if _, err := Build(context.Background(), location, compile.NewConfig(), newFakeDriver(), OptionBuildLock(false)); err != nil {
		t.Errorf("expected the build to ignore the lock: %v", err)
	}
}
