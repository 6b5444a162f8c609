package compile

import (
	"fmt"
	"io"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/poppolopoppo/sqlite3src/internal/base"
	"github.com/poppolopoppo/sqlite3src/utils"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

/***************************************
 * Configuration files
 ***************************************/

// LoadConfigFile merges the settings found in an .hcl or .json file into
// the given configuration.
func LoadConfigFile(src utils.Filename, into *Config) error {
	defer base.LogBenchmark(LogCompile, "load config file %q", src).Close()

	data, err := utils.UFS.ReadAll(src)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	switch ext := strings.ToLower(src.Ext()); ext {
	case ".hcl":
		return ParseHclConfig(data, src.String(), into)
	case ".json":
		return ParseJsonConfig(data, into)
	default:
		return fmt.Errorf("config: unsupported file extension %q for %q", ext, src)
	}
}

// SaveConfigFile writes the configuration as JSON, which LoadConfigFile
// reads back.
func SaveConfigFile(dst utils.Filename, config *Config) error {
	return utils.UFS.CreateBuffered(dst, func(w io.Writer) error {
		return base.JsonSerialize(config, w, base.OptionJsonPrettyPrint(true))
	})
}

func ParseJsonConfig(data []byte, into *Config) error {
	if err := into.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// ParseHclConfig reads top-level attributes only:
//
//	sync                  = "full"
//	enable_fts3           = true
//	max_expression_depth  = 500
//	double_quoted_strings = { ddl = true, dml = false }
func ParseHclConfig(data []byte, filename string, into *Config) error {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return fmt.Errorf("config: failed to parse HCL file %s: %w", filename, diags)
	}

	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return fmt.Errorf("config: %s: %w", filename, diags)
	}

	for _, name := range base.SortedKeys(map[string]*hcl.Attribute(attrs)) {
		attr := attrs[name]

		value, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return fmt.Errorf("config: %s: %w", attr.NameRange, diags)
		}

		var key SettingKey
		if err := key.Set(name); err != nil {
			return fmt.Errorf("config: %s: %w", attr.NameRange, err)
		}

		setting, err := settingFromCty(key, value)
		if err != nil {
			return fmt.Errorf("config: %s: %w", attr.NameRange, err)
		}

		base.LogVeryVerbose(LogCompile, "%s: %v", attr.NameRange, setting)
		into.Set(setting)
	}
	return nil
}

type ctyDoubleQuotedStrings struct {
	InDDL bool `cty:"ddl"`
	InDML bool `cty:"dml"`
}

func settingFromCty(key SettingKey, value cty.Value) (Setting, error) {
	if value.IsNull() || !value.IsWhollyKnown() {
		return Setting{}, fmt.Errorf("%w: %s can not be null", ErrInvalidSettingValue, key)
	}

	var err error
	switch key.Kind() {
	case SETTINGKIND_BOOL:
		var enabled bool
		if err = gocty.FromCtyValue(value, &enabled); err == nil {
			return MakeSetting(key, enabled)
		}
	case SETTINGKIND_UINT:
		var number uint32
		if err = gocty.FromCtyValue(value, &number); err == nil {
			return MakeSetting(key, number)
		}
	case SETTINGKIND_SYNCHRONOUS, SETTINGKIND_THREADING, SETTINGKIND_TEMPSTORE:
		var str string
		if err = gocty.FromCtyValue(value, &str); err == nil {
			return MakeSetting(key, str)
		}
	case SETTINGKIND_DQS:
		if ty := value.Type(); ty.IsObjectType() || ty.IsMapType() {
			var dqs ctyDoubleQuotedStrings
			if err = gocty.FromCtyValue(value, &dqs); err == nil {
				return MakeSetting(key, DoubleQuotedStrings{InDDL: dqs.InDDL, InDML: dqs.InDML})
			}
		} else {
			var str string
			if err = gocty.FromCtyValue(value, &str); err == nil {
				return MakeSetting(key, str)
			}
		}
	default:
		base.UnexpectedValue(key.Kind())
	}
	return Setting{}, fmt.Errorf("%w: %s expects a %s payload: %v", ErrInvalidSettingValue, key, key.Kind(), err)
}
