package utils

import (
	"context"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/poppolopoppo/sqlite3src/internal/base"
)

var LogCommand = base.NewLogCategory("Command")

/***************************************
 * Command flags
 ***************************************/

type CommandFlagsVisitor interface {
	Variable(name, usage string, value flag.Value)
	Bool(name, usage string, value *bool)
}

type CommandParsableFlags interface {
	Flags(cfv CommandFlagsVisitor)
}

type commandFlagSet struct {
	*flag.FlagSet
}

func (x commandFlagSet) Variable(name, usage string, value flag.Value) {
	x.FlagSet.Var(value, name, usage)
}
func (x commandFlagSet) Bool(name, usage string, value *bool) {
	x.FlagSet.BoolVar(value, name, *value, usage)
}

/***************************************
 * Command context
 ***************************************/

type CommandContext interface {
	Context() context.Context
	Args() []string
	Stdout() io.Writer
}

type commandContext struct {
	ctx    context.Context
	args   []string
	stdout io.Writer
}

func (x commandContext) Context() context.Context { return x.ctx }
func (x commandContext) Args() []string           { return x.args }
func (x commandContext) Stdout() io.Writer        { return x.stdout }

/***************************************
 * Commandable
 ***************************************/

type Commandable interface {
	CommandParsableFlags
	Run(CommandContext) error
}

type commandablePrepare interface {
	Prepare(CommandContext) error
}

type CommandDetails struct {
	Category, Name string
	Description    string
}

type CommandItem interface {
	Details() CommandDetails
	// New returns a fresh instance, so flags never leak from a previous run.
	New() Commandable
	fmt.Stringer
}

type commandItem struct {
	CommandDetails
	factory func() Commandable
}

func (x *commandItem) Details() CommandDetails { return x.CommandDetails }
func (x *commandItem) New() Commandable        { return x.factory() }
func (x *commandItem) String() string          { return fmt.Sprint(x.Category, "/", x.Name) }

// AllCommands is filled by NewCommandable, usually from package variables.
var AllCommands = struct {
	barrier sync.Mutex
	items   map[string]*commandItem
}{items: make(map[string]*commandItem)}

func NewCommandable(category, name, description string, factory func() Commandable) CommandItem {
	result := &commandItem{
		CommandDetails: CommandDetails{
			Category:    category,
			Name:        name,
			Description: description,
		},
		factory: factory,
	}

	AllCommands.barrier.Lock()
	defer AllCommands.barrier.Unlock()

	key := strings.ToUpper(name)
	if _, ok := AllCommands.items[key]; ok {
		base.LogPanic(LogCommand, "command %q already registered", name)
	}
	AllCommands.items[key] = result
	return result
}

func GetAllCommands() []CommandItem {
	AllCommands.barrier.Lock()
	defer AllCommands.barrier.Unlock()

	cmds := make([]CommandItem, 0, len(AllCommands.items))
	for _, it := range AllCommands.items {
		cmds = append(cmds, it)
	}
	sort.Slice(cmds, func(i, j int) bool {
		a, b := cmds[i].Details(), cmds[j].Details()
		if c := strings.Compare(a.Category, b.Category); c == 0 {
			return strings.Compare(a.Name, b.Name) < 0
		} else {
			return c < 0
		}
	})
	return cmds
}

func FindCommand(name string) (CommandItem, error) {
	AllCommands.barrier.Lock()
	defer AllCommands.barrier.Unlock()

	if cmd, found := AllCommands.items[strings.ToUpper(name)]; found {
		return cmd, nil
	} else {
		return nil, fmt.Errorf("unknown command %q", name)
	}
}

func PrintCommandHelp(w io.Writer, prefix string) {
	f := NewStructuredFile(w, STRUCTUREDFILE_DEFAULT_TAB, false)
	f.Println("usage: %s [command] [flags...]", prefix)
	f.ScopeIndent(func() {
		category := ""
		for _, it := range GetAllCommands() {
			details := it.Details()
			if details.Category != category {
				category = details.Category
				f.Println("%s:", category)
			}
			f.Println("  %-12s %s", details.Name, details.Description)
		}
	})
}

/***************************************
 * RunCommand
 ***************************************/

// RunCommand selects the command named by the first argument, or
// defaultCommand when it starts with a flag, then parses the remaining flags
// along with the global ones.
func RunCommand(ctx context.Context, prefix string, args []string, stdout io.Writer, global CommandParsableFlags, defaultCommand string) error {
	name := defaultCommand
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		name, args = args[0], args[1:]
	}

	item, err := FindCommand(name)
	if err != nil {
		return err
	}
	cmd := item.New()

	flags := commandFlagSet{flag.NewFlagSet(prefix+" "+item.Details().Name, flag.ContinueOnError)}
	flags.SetOutput(stdout)
	if global != nil {
		global.Flags(flags)
	}
	cmd.Flags(flags)

	if err := flags.Parse(args); err != nil {
		return err
	}

	cc := commandContext{ctx: ctx, args: flags.Args(), stdout: stdout}
	if it, ok := global.(commandablePrepare); ok {
		if err := it.Prepare(cc); err != nil {
			return err
		}
	}
	if it, ok := cmd.(commandablePrepare); ok {
		if err := it.Prepare(cc); err != nil {
			return err
		}
	}

	base.LogVeryVerbose(LogCommand, "run command %v with %q", item, cc.args)
	return cmd.Run(cc)
}
