package cmd

import (
	"fmt"

	sqlite3src "github.com/poppolopoppo/sqlite3src"
	"github.com/poppolopoppo/sqlite3src/internal/hal"
	"github.com/poppolopoppo/sqlite3src/utils"
)

type BuildCommand struct {
	ConfigFlags
	Incremental bool
	Header      bool
	NoLock      bool
	Wait        bool
}

var CommandBuild = utils.NewCommandable(
	"Compilation",
	"build",
	"compile the amalgamation into a static library",
	func() utils.Commandable { return &BuildCommand{} })

func (x *BuildCommand) Flags(cfv utils.CommandFlagsVisitor) {
	x.ConfigFlags.Flags(cfv)
	cfv.Bool("incremental", "skip compilation when the previous build is still up-to-date", &x.Incremental)
	cfv.Bool("header", "also write sqlite3_config.h in the output directory", &x.Header)
	cfv.Bool("no-lock", "do not lock the output directory", &x.NoLock)
	cfv.Bool("wait", "wait for the output directory to be released by another build", &x.Wait)
}
func (x *BuildCommand) Run(cc utils.CommandContext) error {
	location, err := x.Location()
	if err != nil {
		return err
	}
	config, err := x.Resolve()
	if err != nil {
		return err
	}

	result, err := sqlite3src.Build(cc.Context(), location, config, hal.NewNativeDriver(),
		sqlite3src.OptionBuildIncremental(x.Incremental),
		sqlite3src.OptionBuildHeader(x.Header),
		sqlite3src.OptionBuildLock(!x.NoLock),
		sqlite3src.OptionBuildLockWait(x.Wait))
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cc.Stdout(), result.Artifact())
	return err
}
