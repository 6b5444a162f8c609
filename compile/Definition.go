package compile

import (
	"sort"
	"strings"

	"github.com/poppolopoppo/sqlite3src/internal/base"
)

/***************************************
 * Definition
 ***************************************/

// Definition is a preprocessor symbol with an optional value, as passed to a
// compiler with -DNAME or -DNAME=VALUE.
type Definition struct {
	Name  string
	Value base.Optional[string]
}

func MakeDefinition(name string) Definition {
	return Definition{Name: name, Value: base.NoneOption[string]()}
}
func MakeValuedDefinition(name, value string) Definition {
	return Definition{Name: name, Value: base.NewOption(value)}
}

func (x Definition) HasValue() bool { return x.Value.Valid() }

func (x Definition) String() string {
	if value, err := x.Value.Get(); err == nil {
		return x.Name + "=" + value
	}
	return x.Name
}
func (x *Definition) Set(in string) error {
	if name, value, ok := strings.Cut(in, "="); ok {
		*x = MakeValuedDefinition(name, value)
	} else {
		*x = MakeDefinition(in)
	}
	if len(x.Name) == 0 {
		return base.MakeError("definition: empty symbol name in %q", in)
	}
	return nil
}
func (x Definition) MarshalText() ([]byte, error) {
	return base.UnsafeBytesFromString(x.String()), nil
}
func (x *Definition) UnmarshalText(data []byte) error {
	return x.Set(string(data))
}

/***************************************
 * DefinitionSink
 ***************************************/

// DefinitionSink receives rendered definitions, one call per symbol.
type DefinitionSink interface {
	Define(name string, value base.Optional[string])
}

type Definitions []Definition

func (x *Definitions) Define(name string, value base.Optional[string]) {
	*x = append(*x, Definition{Name: name, Value: value})
}
func (x Definitions) ApplyTo(sink DefinitionSink) {
	for _, it := range x {
		sink.Define(it.Name, it.Value)
	}
}
func (x Definitions) Len() int { return len(x) }

// Sort orders definitions by symbol name, keeping the relative order of
// duplicates.
func (x Definitions) Sort() {
	sort.SliceStable(x, func(i, j int) bool {
		return x[i].Name < x[j].Name
	})
}
func (x Definitions) Lookup(name string) (Definition, bool) {
	for _, it := range x {
		if it.Name == name {
			return it, true
		}
	}
	return Definition{}, false
}
func (x Definitions) StringSet() base.StringSet {
	result := make(base.StringSet, len(x))
	for i, it := range x {
		result[i] = it.String()
	}
	return result
}
func (x Definitions) String() string {
	return x.StringSet().Join(" ")
}
