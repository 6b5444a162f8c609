package sqlite3src

import (
	"errors"
	"fmt"
	"os"

	"github.com/poppolopoppo/sqlite3src/internal/base"
	"github.com/poppolopoppo/sqlite3src/utils"
)

const (
	ENV_SQLITE3_OUT_DIR = "SQLITE3_OUT_DIR"
	ENV_OUT_DIR         = "OUT_DIR"

	SQLITE3_SOURCE_FOLDER = "sqlite"
	SQLITE3_INPUT_FILE    = "sqlite3.c"
	SQLITE3_HEADER_FILE   = "sqlite3.h"
)

var (
	ErrOutDirNotSet         = errors.New("output directory is not set")
	ErrAmalgamationNotFound = errors.New("sqlite3 amalgamation not found")
)

/***************************************
 * Location
 ***************************************/

// Location pairs the directory holding the amalgamation with the directory
// receiving build outputs.
type Location struct {
	src  utils.Directory
	dest utils.Directory
}

// NewLocation uses the amalgamation bundled with this module.
func NewLocation(dest utils.Directory) Location {
	return NewLocationFrom(bundledSourceFolder(), dest)
}
func NewLocationFrom(src, dest utils.Directory) Location {
	return Location{src: src, dest: dest}
}

// DefaultLocation builds into $SQLITE3_OUT_DIR, or $OUT_DIR when running
// under a build tool following that convention.
func DefaultLocation() (Location, error) {
	for _, name := range []string{ENV_SQLITE3_OUT_DIR, ENV_OUT_DIR} {
		if value, ok := os.LookupEnv(name); ok && len(value) > 0 {
			base.LogVeryVerbose(LogSqlite3, "using output directory from $%s: %q", name, value)
			return NewLocation(utils.MakeDirectory(value)), nil
		}
	}
	return Location{}, fmt.Errorf("%w: define $%s or $%s", ErrOutDirNotSet, ENV_SQLITE3_OUT_DIR, ENV_OUT_DIR)
}
func MustDefaultLocation() Location {
	location, err := DefaultLocation()
	base.LogPanicIfFailed(LogSqlite3, err)
	return location
}

func (x Location) Source() utils.Directory { return x.src }
func (x Location) Dest() utils.Directory   { return x.dest }
func (x Location) Input() utils.Filename   { return x.src.File(SQLITE3_INPUT_FILE) }
func (x Location) Header() utils.Filename  { return x.src.File(SQLITE3_HEADER_FILE) }
func (x Location) Sources() utils.FileSet {
	return utils.NewFileSet(x.Input(), x.Header())
}
// Validate checks the amalgamation is present: the bundled folder only ships
// a README, sqlite3.c and sqlite3.h must be dropped there or given with
// NewLocationFrom.
func (x Location) Validate() error {
	for _, it := range x.Sources() {
		if !it.Exists() {
			return fmt.Errorf("%w: missing %q", ErrAmalgamationNotFound, it)
		}
	}
	return nil
}

func (x Location) String() string {
	return fmt.Sprintf("%v -> %v", x.src, x.dest)
}

var bundledSourceFolder = base.Memoize(func() utils.Directory {
	folder, err := utils.UFS.GetCallerFolder(0)
	base.LogPanicIfFailed(LogSqlite3, err)
	return folder.Folder(SQLITE3_SOURCE_FOLDER)
})
