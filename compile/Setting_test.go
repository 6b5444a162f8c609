package compile

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/poppolopoppo/sqlite3src/internal/base"
)

func renderStrings(settings ...Setting) base.StringSet {
	var definitions Definitions
	for _, it := range settings {
		it.ApplyTo(&definitions)
	}
	return definitions.StringSet()
}

func TestSettingRegistryIsComplete(t *testing.T) {
	names := make(map[string]SettingKey)
	symbols := make(map[string]SettingKey)
	for _, key := range GetSettingKeys() {
		if len(key.String()) == 0 {
			t.Errorf("setting #%d has no name", key.Ord())
		}
		if len(key.Description()) == 0 {
			t.Errorf("setting %v has no description", key)
		}
		if len(key.Symbols()) == 0 {
			t.Errorf("setting %v has no symbol", key)
		}
		if other, ok := names[key.String()]; ok {
			t.Errorf("setting %v shares its name with #%d", key, other.Ord())
		}
		names[key.String()] = key
		for _, symbol := range key.Symbols() {
			if other, ok := symbols[symbol]; ok {
				t.Errorf("symbol %q is used by both %v and %v", symbol, other, key)
			}
			symbols[symbol] = key
		}
	}
}

func TestSettingKeySet(t *testing.T) {
	for _, key := range GetSettingKeys() {
		var parsed SettingKey
		if err := parsed.Set(strings.ToUpper(key.String())); err != nil {
			t.Fatal(err)
		}
		if parsed != key {
			t.Errorf("parsed %q as %v", key.String(), parsed)
		}
	}

	var key SettingKey
	if err := key.Set("enable_everything"); !errors.Is(err, ErrUnknownSetting) {
		t.Errorf("expected ErrUnknownSetting, got %v", err)
	}
}

func TestKeyOfIgnoresPayload(t *testing.T) {
	if KeyOf(EnableFts3(true)) != KeyOf(EnableFts3(false)) {
		t.Errorf("key should not depend on the payload")
	}
	if KeyOf(Sync(SYNCHRONOUS_FULL)) == KeyOf(WalSync(SYNCHRONOUS_FULL)) {
		t.Errorf("sync and wal_sync must be distinct settings")
	}
}

func TestRenderPresenceSymbol(t *testing.T) {
	if diff := cmp.Diff(base.StringSet{"SQLITE_ENABLE_API_ARMOR"}, renderStrings(EnableApiArmor(true))); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if got := renderStrings(EnableApiArmor(false)); len(got) != 0 {
		t.Errorf("expected nothing, got %v", got)
	}
}

func TestRenderValuedBoolean(t *testing.T) {
	if diff := cmp.Diff(base.StringSet{"SQLITE_DEFAULT_FOREIGN_KEYS=1"}, renderStrings(DefaultForeignKeys(true))); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(base.StringSet{"SQLITE_DEFAULT_MEMSTATUS=0"}, renderStrings(DefaultMemoryStatus(false))); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderInvertedBoolean(t *testing.T) {
	if diff := cmp.Diff(base.StringSet{"SQLITE_OMIT_DEPRECATED"}, renderStrings(EnableDeprecated(false))); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if got := renderStrings(EnableDeprecated(true)); len(got) != 0 {
		t.Errorf("expected nothing, got %v", got)
	}
	if diff := cmp.Diff(base.StringSet{"SQLITE_LIKE_DOESNT_MATCH_BLOBS"}, renderStrings(LikeOperatorMatchesBlob(false))); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderInteger(t *testing.T) {
	tests := []struct {
		setting Setting
		want    string
	}{
		{MaxExpressionDepth(0), "SQLITE_MAX_EXPR_DEPTH=0"},
		{MaxExpressionDepth(500), "SQLITE_MAX_EXPR_DEPTH=500"},
		{MaxColumns(2000), "SQLITE_MAX_COLUMN=2000"},
		{Sync(SYNCHRONOUS_OFF), "SQLITE_DEFAULT_SYNCHRONOUS=0"},
		{Sync(SYNCHRONOUS_EXTRA), "SQLITE_DEFAULT_SYNCHRONOUS=3"},
		{WalSync(SYNCHRONOUS_NORMAL), "SQLITE_DEFAULT_WAL_SYNCHRONOUS=1"},
		{ThreadingMode(THREADING_SINGLETHREAD), "SQLITE_THREADSAFE=0"},
		{ThreadingMode(THREADING_MULTITHREAD), "SQLITE_THREADSAFE=1"},
		{ThreadingMode(THREADING_SERIALIZED), "SQLITE_THREADSAFE=2"},
		{TemporaryStorageMode(TEMPSTORE_ALWAYS_MEMORY), "SQLITE_TEMP_STORE=3"},
	}
	for _, test := range tests {
		if diff := cmp.Diff(base.StringSet{test.want}, renderStrings(test.setting)); diff != "" {
			t.Errorf("%v: mismatch (-want +got):\n%s", test.setting, diff)
		}
	}
}

func TestRenderDoubleQuotedStrings(t *testing.T) {
	tests := []struct {
		ddl, dml bool
		want     string
	}{
		{false, false, "SQLITE_DQS=0"},
		{false, true, "SQLITE_DQS=1"},
		{true, false, "SQLITE_DQS=2"},
		{true, true, "SQLITE_DQS=3"},
	}
	for _, test := range tests {
		setting := DoubleQuotedStringsMode(DoubleQuotedStrings{InDDL: test.ddl, InDML: test.dml})
		if diff := cmp.Diff(base.StringSet{test.want}, renderStrings(setting)); diff != "" {
			t.Errorf("ddl=%v dml=%v: mismatch (-want +got):\n%s", test.ddl, test.dml, diff)
		}
		if got := setting.DoubleQuotedStrings(); got.InDDL != test.ddl || got.InDML != test.dml {
			t.Errorf("ddl=%v dml=%v: unpacked as %+v", test.ddl, test.dml, got)
		}
	}
}

func TestRenderFanOut(t *testing.T) {
	want := base.StringSet{"SQLITE_ENABLE_FTS3", "SQLITE_ENABLE_FTS3_PARENTHESIS"}
	if diff := cmp.Diff(want, renderStrings(EnableFts3(true))); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if got := renderStrings(EnableFts3(false)); len(got) != 0 {
		t.Errorf("expected nothing, got %v", got)
	}
}

func TestRenderNeverDuplicates(t *testing.T) {
	for _, key := range GetSettingKeys() {
		for _, payload := range []string{"true", "false", "0", "7", "FULL", "SERIALIZED", "ALWAYS_MEMORY", "DDL|DML"} {
			setting, err := MakeSetting(key, payload)
			if err != nil {
				continue
			}
			seen := make(map[string]bool)
			for _, it := range setting.Render() {
				if seen[it.Name] {
					t.Errorf("%v rendered %q twice", setting, it.Name)
				}
				seen[it.Name] = true
			}
		}
	}
}

func TestMakeSetting(t *testing.T) {
	tests := []struct {
		key   SettingKey
		value any
		want  Setting
	}{
		{SETTING_ENABLE_FTS5, true, EnableFts5(true)},
		{SETTING_ENABLE_FTS5, "false", EnableFts5(false)},
		{SETTING_MAX_VARIABLES, 32766, MaxVariables(32766)},
		{SETTING_MAX_VARIABLES, float64(999), MaxVariables(999)},
		{SETTING_MAX_VARIABLES, "250000", MaxVariables(250000)},
		{SETTING_SYNC, "normal", Sync(SYNCHRONOUS_NORMAL)},
		{SETTING_SYNC, SYNCHRONOUS_EXTRA, Sync(SYNCHRONOUS_EXTRA)},
		{SETTING_THREADING, "Serialized", ThreadingMode(THREADING_SERIALIZED)},
		{SETTING_TEMPORARY_STORAGE, "default_memory", TemporaryStorageMode(TEMPSTORE_DEFAULT_MEMORY)},
		{SETTING_DOUBLE_QUOTED_STRINGS, "ddl", DoubleQuotedStringsMode(DoubleQuotedStrings{InDDL: true})},
		{SETTING_DOUBLE_QUOTED_STRINGS, "none", DoubleQuotedStringsMode(DoubleQuotedStrings{})},
	}
	for _, test := range tests {
		got, err := MakeSetting(test.key, test.value)
		if err != nil {
			t.Errorf("%v <%T> %v: %v", test.key, test.value, test.value, err)
			continue
		}
		if got != test.want {
			t.Errorf("%v <%T> %v: got %v, want %v", test.key, test.value, test.value, got, test.want)
		}
	}
}

func TestMakeSettingErrors(t *testing.T) {
	tests := []struct {
		key   SettingKey
		value any
	}{
		{SETTING_ENABLE_FTS5, 1},
		{SETTING_ENABLE_FTS5, "maybe"},
		{SETTING_MAX_VARIABLES, -1},
		{SETTING_MAX_VARIABLES, 1.5},
		{SETTING_MAX_VARIABLES, uint64(1) << 40},
		{SETTING_MAX_VARIABLES, true},
		{SETTING_SYNC, "sometimes"},
		{SETTING_SYNC, THREADING_SERIALIZED},
		{SETTING_ENABLE_FTS5, EnableFts3(true)},
	}
	for _, test := range tests {
		if _, err := MakeSetting(test.key, test.value); !errors.Is(err, ErrInvalidSettingValue) {
			t.Errorf("%v <%T> %v: expected ErrInvalidSettingValue, got %v", test.key, test.value, test.value, err)
		}
	}
}

func TestSettingSetAndString(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"max_expression_depth=500", "max_expression_depth=500"},
		{"SYNC=full", "sync=FULL"},
		{"enable_fts3 = true", "enable_fts3=true"},
		{"double_quoted_strings=DML|DDL", "double_quoted_strings=DDL|DML"},
	}
	for _, test := range tests {
		var setting Setting
		if err := setting.Set(test.in); err != nil {
			t.Errorf("%q: %v", test.in, err)
			continue
		}
		if got := setting.String(); got != test.want {
			t.Errorf("%q: got %q, want %q", test.in, got, test.want)
		}
	}

	var setting Setting
	if err := setting.Set("enable_fts3"); !errors.Is(err, ErrInvalidSettingValue) {
		t.Errorf("expected ErrInvalidSettingValue, got %v", err)
	}
	if err := setting.Set("enable_nothing=true"); !errors.Is(err, ErrUnknownSetting) {
		t.Errorf("expected ErrUnknownSetting, got %v", err)
	}
}

func TestSettingValue(t *testing.T) {
	if got, ok := MaxJsonDepth(64).Value().(uint32); !ok || got != 64 {
		t.Errorf("unexpected value: %v", MaxJsonDepth(64).Value())
	}
	if got, ok := EnableRtree(true).Value().(bool); !ok || !got {
		t.Errorf("unexpected value: %v", EnableRtree(true).Value())
	}
	if got, ok := WalSync(SYNCHRONOUS_OFF).Value().(Synchronous); !ok || got != SYNCHRONOUS_OFF {
		t.Errorf("unexpected value: %v", WalSync(SYNCHRONOUS_OFF).Value())
	}
}

func TestSettingJson(t *testing.T) {
	for _, setting := range []Setting{
		EnableSession(true),
		MaxAttachedDatabases(10),
		Sync(SYNCHRONOUS_EXTRA),
		TemporaryStorageMode(TEMPSTORE_DEFAULT_FILESYSTEM),
		DoubleQuotedStringsMode(DoubleQuotedStrings{InDDL: true, InDML: false}),
	} {
		data, err := setting.MarshalJSON()
		if err != nil {
			t.Fatal(err)
		}
		parsed, err := setting.Key().ParseJSON(data)
		if err != nil {
			t.Errorf("%v: %s: %v", setting, data, err)
			continue
		}
		if parsed != setting {
			t.Errorf("%s: parsed %v, want %v", data, parsed, setting)
		}
	}

	if _, err := SETTING_DOUBLE_QUOTED_STRINGS.ParseJSON([]byte(`{"ddl":true,"sql":true}`)); !errors.Is(err, ErrInvalidSettingValue) {
		t.Errorf("expected ErrInvalidSettingValue, got %v", err)
	}
}
