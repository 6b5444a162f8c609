package compile

import (
	"context"

	"github.com/poppolopoppo/sqlite3src/utils"
)

// Driver is the native compiler collaborator: it accumulates a translation
// unit, its definitions and an output directory, then produces a linkable
// artifact named after libname.
type Driver interface {
	DefinitionSink
	File(source utils.Filename)
	Warnings(enabled bool)
	OutDir(output utils.Directory)
	Compile(ctx context.Context, libname string) (utils.Filename, error)
}
