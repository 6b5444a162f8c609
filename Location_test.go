package sqlite3src

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/poppolopoppo/sqlite3src/utils"
)

func TestDefaultLocationFromEnvironment(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(ENV_SQLITE3_OUT_DIR, "")
	t.Setenv(ENV_OUT_DIR, dir)

	location, err := DefaultLocation()
	if err != nil {
		t.Fatal(err)
	}
	if !location.Dest().Equals(utils.MakeDirectory(dir)) {
		t.Errorf("unexpected destination: %v", location.Dest())
	}

	override := t.TempDir()
	t.Setenv(ENV_SQLITE3_OUT_DIR, override)
	if location, err = DefaultLocation(); err != nil || !location.Dest().Equals(utils.MakeDirectory(override)) {
		t.Errorf("expected $%s to win, got %v (%v)", ENV_SQLITE3_OUT_DIR, location.Dest(), err)
	}
}

func TestDefaultLocationRequiresEnvironment(t *testing.T) {
	t.Setenv(ENV_SQLITE3_OUT_DIR, "")
	t.Setenv(ENV_OUT_DIR, "")

	if _, err := DefaultLocation(); !errors.Is(err, ErrOutDirNotSet) {
		t.Errorf("expected ErrOutDirNotSet, got %v", err)
	}
}

func TestBundledLocation(t *testing.T) {
	dest := utils.MakeDirectory(t.TempDir())
	location := NewLocation(dest)

	if location.Source().Basename() != SQLITE3_SOURCE_FOLDER {
		t.Errorf("unexpected source folder: %v", location.Source())
	}
	if !location.Source().File("README.md").Exists() {
		t.Errorf("expected the bundled folder to live next to this package, got %v", location.Source())
	}
	if location.Input().Basename != SQLITE3_INPUT_FILE || location.Header().Basename != SQLITE3_HEADER_FILE {
		t.Errorf("unexpected files: %v %v", location.Input(), location.Header())
	}
	if !location.Header().Dirname.Equals(location.Input().Dirname) {
		t.Errorf("header and amalgamation must share the source folder")
	}
	if err := location.Validate(); err != nil && !errors.Is(err, ErrAmalgamationNotFound) {
		t.Errorf("expected ErrAmalgamationNotFound when the amalgamation is not supplied, got %v", err)
	}
}

func TestLocationValidate(t *testing.T) {
	dir := utils.MakeDirectory(t.TempDir())
	location := NewLocationFrom(dir.Folder("sqlite"), dir.Folder("out"))

	err := location.Validate()
	if !errors.Is(err, ErrAmalgamationNotFound) || !strings.Contains(err.Error(), SQLITE3_INPUT_FILE) {
		t.Errorf("expected the missing amalgamation to be reported, got %v", err)
	}

	for _, it := range location.Sources() {
		if err := utils.UFS.Create(it, func(w io.Writer) error { return nil }); err != nil {
			t.Fatal(err)
		}
	}
	if err := location.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
