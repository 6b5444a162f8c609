package compile

import (
	"bytes"
	"fmt"

	fastJson "github.com/goccy/go-json"
	"github.com/poppolopoppo/sqlite3src/internal/base"
)

/***************************************
 * Config
 ***************************************/

// Config holds at most one Setting per SettingKey: setting an option that is
// already present replaces it.
type Config struct {
	settings map[SettingKey]Setting
}

func NewConfig(settings ...Setting) *Config {
	result := &Config{settings: make(map[SettingKey]Setting, len(settings))}
	for _, it := range settings {
		result.Set(it)
	}
	return result
}

func (x *Config) Len() int { return len(x.settings) }

func (x *Config) Get(key SettingKey) base.Optional[Setting] {
	if setting, ok := x.settings[key]; ok {
		return base.NewOption(setting)
	}
	return base.NoneOption[Setting]()
}
func (x *Config) Has(key SettingKey) bool {
	_, ok := x.settings[key]
	return ok
}
func (x *Config) Set(setting Setting) {
	if x.settings == nil {
		x.settings = make(map[SettingKey]Setting)
	}
	if previous, ok := x.settings[setting.key]; ok && previous != setting {
		base.LogVeryVerbose(LogCompile, "override %v with %v", previous, setting)
	}
	x.settings[setting.key] = setting
}
func (x *Config) Remove(key SettingKey) {
	delete(x.settings, key)
}

// Append merges other configurations into this one, later ones winning.
// Nil configurations are skipped.
func (x *Config) Append(others ...*Config) {
	for _, other := range others {
		if other == nil {
			continue
		}
		for _, it := range other.Settings() {
			x.Set(it)
		}
	}
}
func (x *Config) Clone() *Config {
	return &Config{settings: base.CopyMap(x.settings)}
}
// Equals holds when both configurations carry the same settings, a nil
// configuration only equals another nil one.
func (x *Config) Equals(other *Config) bool {
	if x == nil || other == nil {
		return x == other
	}
	if x.Len() != other.Len() {
		return false
	}
	for key, it := range x.settings {
		if o, ok := other.settings[key]; !ok || o != it {
			return false
		}
	}
	return true
}

func (x *Config) Keys() []SettingKey {
	return base.SortedKeys(x.settings)
}
func (x *Config) Settings() []Setting {
	keys := x.Keys()
	result := make([]Setting, len(keys))
	for i, key := range keys {
		result[i] = x.settings[key]
	}
	return result
}

// ApplyTo forwards every rendered definition of every setting to sink. It
// can be called any number of times and never modifies the configuration.
func (x *Config) ApplyTo(sink DefinitionSink) {
	for _, it := range x.Settings() {
		it.ApplyTo(sink)
	}
}
func (x *Config) Definitions() (result Definitions) {
	result = make(Definitions, 0, x.Len())
	x.ApplyTo(&result)
	return
}

var configFingerprintSeed = base.StringFingerprint("sqlite3src/compile.Config")

// Fingerprint digests the rendered definitions, so two configurations that
// produce the same command line share the same fingerprint.
func (x *Config) Fingerprint() base.Fingerprint {
	definitions := x.Definitions()
	definitions.Sort()

	digester := base.NewDigester(configFingerprintSeed)
	digester.WriteStrings(definitions.StringSet()...)
	return digester.Finalize()
}

func (x *Config) String() string {
	return base.JoinString(" ", x.Settings()...)
}

func (x *Config) MarshalJSON() ([]byte, error) {
	buf := bytes.Buffer{}
	buf.WriteByte('{')
	for i, it := range x.Settings() {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := fastJson.Marshal(it.key.String())
		if err != nil {
			return nil, err
		}
		payload, err := it.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(payload)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON merges the decoded settings into the configuration.
func (x *Config) UnmarshalJSON(data []byte) error {
	var raw map[string]fastJson.RawMessage
	if err := fastJson.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, name := range base.SortedKeys(raw) {
		var key SettingKey
		if err := key.Set(name); err != nil {
			return err
		}
		setting, err := key.ParseJSON(raw[name])
		if err != nil {
			return err
		}
		x.Set(setting)
	}
	return nil
}

/***************************************
 * Default configuration
 ***************************************/

// DefaultConfig returns the baseline configuration for the current build
// mode: building with the sqlite3_debug tag adds the debugging options.
func DefaultConfig() *Config {
	return NewDefaultConfig(base.DEBUG_ENABLED)
}

func NewDefaultConfig(debug bool) *Config {
	result := NewConfig(
		Sync(SYNCHRONOUS_FULL),
		WalSync(SYNCHRONOUS_NORMAL),
		ThreadingMode(THREADING_MULTITHREAD),
		DoubleQuotedStringsMode(DoubleQuotedStrings{InDDL: false, InDML: false}),
		DefaultForeignKeys(true),
		DefaultMemoryStatus(false),
		EnableAlloca(true),
		EnableAuthorization(false),
		EnableAutomaticIndex(true),
		EnableAutomaticInitialize(true),
		EnableAutomaticReset(false),
		EnableBlobIo(false),
		EnableColumnDeclaredType(false),
		EnableDatabasePagesVirtualTable(false),
		EnableDatabaseStatisticsVirtualTable(false),
		EnableDatabaseUri(true),
		EnableDeprecated(false),
		EnableGetTable(false),
		EnableMemoryManagement(true),
		EnableProgressCallback(false),
		EnableSharedCache(false),
		EnableTrace(false),
		EnableUtf16(false),
		EnableVirtualTables(true),
		EnableWriteAheadLog(true),
		LikeOperatorMatchesBlob(false),
		MaxExpressionDepth(0),
	)
	if debug {
		result.Set(EnableApiArmor(true))
		result.Set(Debug(true))
	}
	return result
}

func (x *Config) Describe() string {
	return fmt.Sprintf("%d settings, fingerprint %s", x.Len(), x.Fingerprint().ShortString())
}
