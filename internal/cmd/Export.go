package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/poppolopoppo/sqlite3src/compile"
	"github.com/poppolopoppo/sqlite3src/internal/base"
	"github.com/poppolopoppo/sqlite3src/utils"

	internal_io "github.com/poppolopoppo/sqlite3src/internal/io"
)

/***************************************
 * Export Format
 ***************************************/

type ExportFormat byte

const (
	EXPORT_JSON ExportFormat = iota
	EXPORT_HEADER
)

func GetExportFormats() []ExportFormat {
	return []ExportFormat{
		EXPORT_JSON,
		EXPORT_HEADER,
	}
}
func (x ExportFormat) String() string {
	switch x {
	case EXPORT_JSON:
		return "JSON"
	case EXPORT_HEADER:
		return "HEADER"
	default:
		base.UnexpectedValue(x)
		return ""
	}
}
func (x *ExportFormat) Set(in string) (err error) {
	switch strings.ToUpper(in) {
	case EXPORT_JSON.String():
		*x = EXPORT_JSON
	case EXPORT_HEADER.String():
		*x = EXPORT_HEADER
	default:
		err = base.MakeUnexpectedValueError(x, in)
	}
	return err
}

/***************************************
 * Export Command
 ***************************************/

type ExportCommand struct {
	ConfigFlags
	Format ExportFormat
	Output utils.Filename
	Minify bool
}

var CommandExport = utils.NewCommandable(
	"Configuration",
	"export",
	"write the configuration as json or as a C header",
	func() utils.Commandable { return &ExportCommand{} })

func (x *ExportCommand) Flags(cfv utils.CommandFlagsVisitor) {
	x.ConfigFlags.Flags(cfv)
	cfv.Variable("format", "output format, one of JSON or HEADER", &x.Format)
	cfv.Variable("o", "optional output file", &x.Output)
	cfv.Bool("minify", "do not indent json output, omit header comments", &x.Minify)
}
func (x *ExportCommand) Run(cc utils.CommandContext) error {
	config, err := x.Resolve()
	if err != nil {
		return err
	}
	return x.withOutput(cc.Stdout(), func(w io.Writer) error {
		return exportConfig(w, config, x.Format, !x.Minify)
	})
}

func (x *ExportCommand) withOutput(stdout io.Writer, closure func(io.Writer) error) error {
	if x.Output.Valid() {
		base.LogInfo(utils.LogCommand, "export configuration to %q...", x.Output)
		return utils.UFS.CreateBuffered(x.Output, closure)
	} else {
		return closure(stdout)
	}
}

func exportConfig(w io.Writer, config *compile.Config, format ExportFormat, pretty bool) error {
	switch format {
	case EXPORT_JSON:
		return base.JsonSerialize(config, w, base.OptionJsonPrettyPrint(pretty))
	case EXPORT_HEADER:
		return internal_io.WriteConfigHeader(w, config.Definitions(), config.Fingerprint(), !pretty)
	default:
		return fmt.Errorf("export: unsupported format %v", format)
	}
}
