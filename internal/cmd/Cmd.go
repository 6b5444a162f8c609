package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	sqlite3src "github.com/poppolopoppo/sqlite3src"
	"github.com/poppolopoppo/sqlite3src/app"
	"github.com/poppolopoppo/sqlite3src/compile"
	"github.com/poppolopoppo/sqlite3src/internal/base"
	"github.com/poppolopoppo/sqlite3src/utils"
)

/***************************************
 * Launch Command (program entry point)
 ***************************************/

func LaunchCommand(prefix string, args []string) error {
	return app.WithCommandEnv(prefix, func(ctx context.Context) error {
		return utils.RunCommand(ctx, prefix, args, os.Stdout, &GlobalFlags, CommandBuild.Details().Name)
	})
}

/***************************************
 * Global Flags
 ***************************************/

type GlobalFlagsT struct {
	Verbose     bool
	VeryVerbose bool
	Quiet       bool
	Summary     bool
}

var GlobalFlags GlobalFlagsT

func (x *GlobalFlagsT) Flags(cfv utils.CommandFlagsVisitor) {
	cfv.Bool("v", "print verbose messages", &x.Verbose)
	cfv.Bool("vv", "print very verbose messages", &x.VeryVerbose)
	cfv.Bool("q", "only print errors", &x.Quiet)
	cfv.Bool("summary", "print the configuration summary before running", &x.Summary)
}
func (x *GlobalFlagsT) Prepare(cc utils.CommandContext) error {
	switch {
	case x.Quiet:
		base.SetLogVisibleLevel(base.LOG_ERROR)
	case x.VeryVerbose:
		base.SetLogVisibleLevel(base.LOG_VERYVERBOSE)
	case x.Verbose:
		base.SetLogVisibleLevel(base.LOG_VERBOSE)
	}
	return nil
}

/***************************************
 * Setting List
 ***************************************/

// SettingList collects repeated -set NAME=VALUE flags, applied in order.
type SettingList []compile.Setting

func (x SettingList) String() string {
	return base.JoinString(",", x...)
}
func (x *SettingList) Set(in string) error {
	for _, it := range strings.Split(in, ",") {
		var setting compile.Setting
		if err := setting.Set(strings.TrimSpace(it)); err != nil {
			return err
		}
		*x = append(*x, setting)
	}
	return nil
}

/***************************************
 * Config Flags
 ***************************************/

// ConfigFlags selects the amalgamation, the destination and the options
// applied on top of the default configuration.
type ConfigFlags struct {
	Source     utils.Directory
	Dest       utils.Directory
	ConfigFile utils.Filename
	Settings   SettingList
	NoDefaults bool
	Debug      bool
}

func (x *ConfigFlags) Flags(cfv utils.CommandFlagsVisitor) {
	cfv.Variable("src", "directory containing sqlite3.c and sqlite3.h (default: bundled amalgamation)", &x.Source)
	cfv.Variable("dest", "output directory (default: $SQLITE3_OUT_DIR or $OUT_DIR)", &x.Dest)
	cfv.Variable("config", "load settings from a .json or .hcl file", &x.ConfigFile)
	cfv.Variable("set", "override a setting with NAME=VALUE, can be repeated", &x.Settings)
	cfv.Bool("no-defaults", "start from an empty configuration", &x.NoDefaults)
	cfv.Bool("debug", "use the debug defaults", &x.Debug)
}

// Resolve builds the configuration in order: defaults, then the config file,
// then every -set override.
func (x *ConfigFlags) Resolve() (*compile.Config, error) {
	var config *compile.Config
	if x.NoDefaults {
		config = compile.NewConfig()
	} else {
		config = compile.NewDefaultConfig(x.Debug || base.DEBUG_ENABLED)
	}

	if x.ConfigFile.Valid() {
		base.LogVerbose(utils.LogCommand, "load configuration from %q", x.ConfigFile)
		if err := compile.LoadConfigFile(x.ConfigFile, config); err != nil {
			return nil, err
		}
	}

	for _, it := range x.Settings {
		config.Set(it)
	}

	if GlobalFlags.Summary {
		base.LogInfo(utils.LogCommand, "configuration: %s", config.Describe())
	}
	return config, nil
}

func (x *ConfigFlags) Location() (sqlite3src.Location, error) {
	var location sqlite3src.Location
	if x.Dest.Valid() {
		location = sqlite3src.NewLocation(x.Dest)
	} else {
		var err error
		if location, err = sqlite3src.DefaultLocation(); err != nil {
			return location, fmt.Errorf("%w, or use -dest", err)
		}
	}
	if x.Source.Valid() {
		location = sqlite3src.NewLocationFrom(x.Source, location.Dest())
	}
	return location, nil
}
