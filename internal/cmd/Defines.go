package cmd

import (
	"fmt"

	"github.com/poppolopoppo/sqlite3src/utils"
)

type DefinesCommand struct {
	ConfigFlags
	CompilerFlags bool
}

var CommandDefines = utils.NewCommandable(
	"Configuration",
	"defines",
	"print the preprocessor definitions of the configuration",
	func() utils.Commandable { return &DefinesCommand{} })

func (x *DefinesCommand) Flags(cfv utils.CommandFlagsVisitor) {
	x.ConfigFlags.Flags(cfv)
	cfv.Bool("cflags", "print definitions as -D compiler flags on a single line", &x.CompilerFlags)
}
func (x *DefinesCommand) Run(cc utils.CommandContext) error {
	config, err := x.Resolve()
	if err != nil {
		return err
	}

	definitions := config.Definitions()
	definitions.Sort()

	f := utils.NewStructuredFile(cc.Stdout(), utils.STRUCTUREDFILE_DEFAULT_TAB, false)
	if x.CompilerFlags {
		for i, it := range definitions {
			if i > 0 {
				f.Print_NoIndent(" ")
			}
			f.Print_NoIndent("-D%v", it)
		}
		f.LineBreak()
	} else {
		for _, it := range definitions {
			f.Println("%v", it)
		}
	}
	if err := f.Err(); err != nil {
		return fmt.Errorf("defines: %w", err)
	}
	return nil
}
