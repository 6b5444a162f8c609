package cmd

import (
	"github.com/poppolopoppo/sqlite3src/utils"
)

type HelpCommand struct{}

var CommandHelp = utils.NewCommandable(
	"Misc",
	"help",
	"print available commands",
	func() utils.Commandable { return &HelpCommand{} })

func (x *HelpCommand) Flags(cfv utils.CommandFlagsVisitor) {}
func (x *HelpCommand) Run(cc utils.CommandContext) error {
	utils.PrintCommandHelp(cc.Stdout(), "sqlite3-build")
	return nil
}
