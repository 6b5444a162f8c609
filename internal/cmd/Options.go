package cmd

import (
	"strings"

	"github.com/poppolopoppo/sqlite3src/compile"
	"github.com/poppolopoppo/sqlite3src/utils"
)

type OptionsCommand struct {
	Detailed bool
}

var CommandOptions = utils.NewCommandable(
	"Configuration",
	"options",
	"list every setting with its accepted values",
	func() utils.Commandable { return &OptionsCommand{} })

func (x *OptionsCommand) Flags(cfv utils.CommandFlagsVisitor) {
	cfv.Bool("detailed", "also print the description and the definitions of each setting", &x.Detailed)
}
func (x *OptionsCommand) Run(cc utils.CommandContext) error {
	f := utils.NewStructuredFile(cc.Stdout(), utils.STRUCTUREDFILE_DEFAULT_TAB, false)
	for _, key := range compile.GetSettingKeys() {
		values := strings.Join(key.Kind().Values(), "|")
		if len(values) == 0 {
			values = "<" + key.Kind().String() + ">"
		}
		f.Println("%-40s %s", key, values)
		if x.Detailed {
			f.ScopeIndent(func() {
				f.Println("%s", key.Description())
				f.Println("%s (%v)", strings.Join(key.Symbols(), ", "), key.Encoding())
			})
		}
	}
	return f.Err()
}
