package compile

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	fastJson "github.com/goccy/go-json"
	"github.com/poppolopoppo/sqlite3src/internal/base"
)

var LogCompile = base.NewLogCategory("Compile")

var ErrUnknownSetting = errors.New("unknown setting")
var ErrInvalidSettingValue = errors.New("invalid setting value")

/***************************************
 * SettingKey
 ***************************************/

// SettingKey is the stable discriminant of a Setting: two settings with the
// same key override each other in a Config, regardless of their payload.
type SettingKey byte

const (
	SETTING_DOUBLE_QUOTED_STRINGS SettingKey = iota
	SETTING_THREADING
	SETTING_DEBUG
	SETTING_SYNC
	SETTING_WAL_SYNC
	SETTING_DEFAULT_AUTOMATIC_INDEX
	SETTING_DEFAULT_AUTOMATIC_VACUUM
	SETTING_DEFAULT_FOREIGN_KEYS
	SETTING_DEFAULT_MEMORY_STATUS
	SETTING_ENABLE_ALLOCA
	SETTING_ENABLE_API_ARMOR
	SETTING_ENABLE_AUTHORIZATION
	SETTING_ENABLE_AUTOMATIC_INDEX
	SETTING_ENABLE_AUTOMATIC_INITIALIZE
	SETTING_ENABLE_AUTOMATIC_RESET
	SETTING_ENABLE_BLOB_IO
	SETTING_ENABLE_COLUMN_DECLARED_TYPE
	SETTING_ENABLE_COLUMN_METADATA
	SETTING_ENABLE_DATABASE_PAGES_VTAB
	SETTING_ENABLE_DATABASE_STATISTICS_VTAB
	SETTING_ENABLE_DATABASE_URI
	SETTING_ENABLE_DEPRECATED
	SETTING_ENABLE_FTS3
	SETTING_ENABLE_FTS5
	SETTING_ENABLE_GEOPOLY
	SETTING_ENABLE_GET_TABLE
	SETTING_ENABLE_JSON
	SETTING_ENABLE_LOAD_EXTENSION
	SETTING_ENABLE_MEMORY_MANAGEMENT
	SETTING_ENABLE_NORMALIZE_SQL
	SETTING_ENABLE_PREUPDATE_HOOK
	SETTING_ENABLE_PROGRESS_CALLBACK
	SETTING_ENABLE_RTREE
	SETTING_ENABLE_SERIALIZE
	SETTING_ENABLE_SESSION
	SETTING_ENABLE_SHARED_CACHE
	SETTING_ENABLE_SNAPSHOT
	SETTING_ENABLE_SOUNDEX
	SETTING_ENABLE_STAT4
	SETTING_ENABLE_TCL_VARIABLES
	SETTING_ENABLE_TEMPORARY_DATABASE
	SETTING_ENABLE_TRACE
	SETTING_ENABLE_UTF16
	SETTING_ENABLE_VIRTUAL_TABLES
	SETTING_ENABLE_WRITE_AHEAD_LOG
	SETTING_LIKE_OPERATOR_CASE_SENSITIVE
	SETTING_LIKE_OPERATOR_MATCHES_BLOB
	SETTING_MAX_ATTACHED_DATABASES
	SETTING_MAX_COLUMNS
	SETTING_MAX_EXPRESSION_DEPTH
	SETTING_MAX_JSON_DEPTH
	SETTING_MAX_VARIABLES
	SETTING_SECURE_DELETE
	SETTING_TEMPORARY_STORAGE
	SETTING_TRUSTED_SCHEMA

	numSettingKeys int = iota
)

type settingInfo struct {
	Name        string
	Kind        SettingKind
	Encoding    SettingEncoding
	Symbols     []string
	Description string
}

var settingRegistry = [numSettingKeys]settingInfo{
	SETTING_DOUBLE_QUOTED_STRINGS: {"double_quoted_strings", SETTINGKIND_DQS, ENCODING_INTEGER,
		[]string{"SQLITE_DQS"},
		"accept double-quoted string literals in DDL and/or DML statements"},
	SETTING_THREADING: {"threading", SETTINGKIND_THREADING, ENCODING_INTEGER,
		[]string{"SQLITE_THREADSAFE"},
		"default threading mode of the library"},
	SETTING_DEBUG: {"debug", SETTINGKIND_BOOL, ENCODING_DEFINE,
		[]string{"SQLITE_DEBUG"},
		"compile internal assertions and debugging logic"},
	SETTING_SYNC: {"sync", SETTINGKIND_SYNCHRONOUS, ENCODING_INTEGER,
		[]string{"SQLITE_DEFAULT_SYNCHRONOUS"},
		"default synchronous mode for rollback journal databases"},
	SETTING_WAL_SYNC: {"wal_sync", SETTINGKIND_SYNCHRONOUS, ENCODING_INTEGER,
		[]string{"SQLITE_DEFAULT_WAL_SYNCHRONOUS"},
		"default synchronous mode for write-ahead log databases"},
	SETTING_DEFAULT_AUTOMATIC_INDEX: {"default_automatic_index", SETTINGKIND_BOOL, ENCODING_BOOLEAN,
		[]string{"SQLITE_DEFAULT_AUTOMATIC_INDEX"},
		"initial value of PRAGMA automatic_index"},
	SETTING_DEFAULT_AUTOMATIC_VACUUM: {"default_automatic_vacuum", SETTINGKIND_BOOL, ENCODING_BOOLEAN,
		[]string{"SQLITE_DEFAULT_AUTOVACUUM"},
		"initial value of PRAGMA auto_vacuum for new databases"},
	SETTING_DEFAULT_FOREIGN_KEYS: {"default_foreign_keys", SETTINGKIND_BOOL, ENCODING_BOOLEAN,
		[]string{"SQLITE_DEFAULT_FOREIGN_KEYS"},
		"enforce foreign key constraints by default"},
	SETTING_DEFAULT_MEMORY_STATUS: {"default_memory_status", SETTINGKIND_BOOL, ENCODING_BOOLEAN,
		[]string{"SQLITE_DEFAULT_MEMSTATUS"},
		"track memory usage statistics by default"},
	SETTING_ENABLE_ALLOCA: {"enable_alloca", SETTINGKIND_BOOL, ENCODING_DEFINE,
		[]string{"SQLITE_USE_ALLOCA"},
		"use alloca() for some temporary allocations"},
	SETTING_ENABLE_API_ARMOR: {"enable_api_armor", SETTINGKIND_BOOL, ENCODING_DEFINE,
		[]string{"SQLITE_ENABLE_API_ARMOR"},
		"check public API arguments for misuse"},
	SETTING_ENABLE_AUTHORIZATION: {"enable_authorization", SETTINGKIND_BOOL, ENCODING_OMIT,
		[]string{"SQLITE_OMIT_AUTHORIZATION"},
		"keep the sqlite3_set_authorizer() interface"},
	SETTING_ENABLE_AUTOMATIC_INDEX: {"enable_automatic_index", SETTINGKIND_BOOL, ENCODING_OMIT,
		[]string{"SQLITE_OMIT_AUTOMATIC_INDEX"},
		"keep support for automatic indexes"},
	SETTING_ENABLE_AUTOMATIC_INITIALIZE: {"enable_automatic_initialize", SETTINGKIND_BOOL, ENCODING_OMIT,
		[]string{"SQLITE_OMIT_AUTOINIT"},
		"initialize the library automatically on first use"},
	SETTING_ENABLE_AUTOMATIC_RESET: {"enable_automatic_reset", SETTINGKIND_BOOL, ENCODING_OMIT,
		[]string{"SQLITE_OMIT_AUTORESET"},
		"reset statements automatically after SQLITE_DONE"},
	SETTING_ENABLE_BLOB_IO: {"enable_blob_io", SETTINGKIND_BOOL, ENCODING_OMIT,
		[]string{"SQLITE_OMIT_INCRBLOB"},
		"keep incremental blob I/O"},
	SETTING_ENABLE_COLUMN_DECLARED_TYPE: {"enable_column_declared_type", SETTINGKIND_BOOL, ENCODING_OMIT,
		[]string{"SQLITE_OMIT_DECLTYPE"},
		"keep sqlite3_column_decltype()"},
	SETTING_ENABLE_COLUMN_METADATA: {"enable_column_metadata", SETTINGKIND_BOOL, ENCODING_DEFINE,
		[]string{"SQLITE_ENABLE_COLUMN_METADATA"},
		"expose column origin metadata APIs"},
	SETTING_ENABLE_DATABASE_PAGES_VTAB: {"enable_database_pages_vtab", SETTINGKIND_BOOL, ENCODING_DEFINE,
		[]string{"SQLITE_ENABLE_DBPAGE_VTAB"},
		"compile the sqlite_dbpage virtual table"},
	SETTING_ENABLE_DATABASE_STATISTICS_VTAB: {"enable_database_statistics_vtab", SETTINGKIND_BOOL, ENCODING_DEFINE,
		[]string{"SQLITE_ENABLE_DBSTAT_VTAB"},
		"compile the dbstat virtual table"},
	SETTING_ENABLE_DATABASE_URI: {"enable_database_uri", SETTINGKIND_BOOL, ENCODING_BOOLEAN,
		[]string{"SQLITE_USE_URI"},
		"interpret filenames as URIs by default"},
	SETTING_ENABLE_DEPRECATED: {"enable_deprecated", SETTINGKIND_BOOL, ENCODING_OMIT,
		[]string{"SQLITE_OMIT_DEPRECATED"},
		"keep deprecated interfaces"},
	SETTING_ENABLE_FTS3: {"enable_fts3", SETTINGKIND_BOOL, ENCODING_DEFINE,
		[]string{"SQLITE_ENABLE_FTS3", "SQLITE_ENABLE_FTS3_PARENTHESIS"},
		"compile full-text search version 3 with the enhanced query syntax"},
	SETTING_ENABLE_FTS5: {"enable_fts5", SETTINGKIND_BOOL, ENCODING_DEFINE,
		[]string{"SQLITE_ENABLE_FTS5"},
		"compile full-text search version 5"},
	SETTING_ENABLE_GEOPOLY: {"enable_geopoly", SETTINGKIND_BOOL, ENCODING_DEFINE,
		[]string{"SQLITE_ENABLE_GEOPOLY"},
		"compile the geopoly extension"},
	SETTING_ENABLE_GET_TABLE: {"enable_get_table", SETTINGKIND_BOOL, ENCODING_OMIT,
		[]string{"SQLITE_OMIT_GET_TABLE"},
		"keep sqlite3_get_table()"},
	SETTING_ENABLE_JSON: {"enable_json", SETTINGKIND_BOOL, ENCODING_OMIT,
		[]string{"SQLITE_OMIT_JSON"},
		"keep the built-in JSON functions"},
	SETTING_ENABLE_LOAD_EXTENSION: {"enable_load_extension", SETTINGKIND_BOOL, ENCODING_OMIT,
		[]string{"SQLITE_OMIT_LOAD_EXTENSION"},
		"keep run-time loadable extensions"},
	SETTING_ENABLE_MEMORY_MANAGEMENT: {"enable_memory_management", SETTINGKIND_BOOL, ENCODING_DEFINE,
		[]string{"SQLITE_ENABLE_MEMORY_MANAGEMENT"},
		"allow releasing unused memory on demand"},
	SETTING_ENABLE_NORMALIZE_SQL: {"enable_normalize_sql", SETTINGKIND_BOOL, ENCODING_DEFINE,
		[]string{"SQLITE_ENABLE_NORMALIZE"},
		"expose sqlite3_normalized_sql()"},
	SETTING_ENABLE_PREUPDATE_HOOK: {"enable_preupdate_hook", SETTINGKIND_BOOL, ENCODING_DEFINE,
		[]string{"SQLITE_ENABLE_PREUPDATE_HOOK"},
		"expose the pre-update hook"},
	SETTING_ENABLE_PROGRESS_CALLBACK: {"enable_progress_callback", SETTINGKIND_BOOL, ENCODING_OMIT,
		[]string{"SQLITE_OMIT_PROGRESS_CALLBACK"},
		"keep sqlite3_progress_handler()"},
	SETTING_ENABLE_RTREE: {"enable_rtree", SETTINGKIND_BOOL, ENCODING_DEFINE,
		[]string{"SQLITE_ENABLE_RTREE"},
		"compile the R*Tree index extension"},
	SETTING_ENABLE_SERIALIZE: {"enable_serialize", SETTINGKIND_BOOL, ENCODING_OMIT,
		[]string{"SQLITE_OMIT_DESERIALIZE"},
		"keep sqlite3_serialize() and sqlite3_deserialize()"},
	SETTING_ENABLE_SESSION: {"enable_session", SETTINGKIND_BOOL, ENCODING_DEFINE,
		[]string{"SQLITE_ENABLE_SESSION"},
		"compile the session extension"},
	SETTING_ENABLE_SHARED_CACHE: {"enable_shared_cache", SETTINGKIND_BOOL, ENCODING_OMIT,
		[]string{"SQLITE_OMIT_SHARED_CACHE"},
		"keep shared-cache mode"},
	SETTING_ENABLE_SNAPSHOT: {"enable_snapshot", SETTINGKIND_BOOL, ENCODING_DEFINE,
		[]string{"SQLITE_ENABLE_SNAPSHOT"},
		"expose the snapshot interfaces"},
	SETTING_ENABLE_SOUNDEX: {"enable_soundex", SETTINGKIND_BOOL, ENCODING_DEFINE,
		[]string{"SQLITE_SOUNDEX"},
		"compile the soundex() SQL function"},
	SETTING_ENABLE_STAT4: {"enable_stat4", SETTINGKIND_BOOL, ENCODING_DEFINE,
		[]string{"SQLITE_ENABLE_STAT4"},
		"collect sample-based statistics in ANALYZE"},
	SETTING_ENABLE_TCL_VARIABLES: {"enable_tcl_variables", SETTINGKIND_BOOL, ENCODING_OMIT,
		[]string{"SQLITE_OMIT_TCL_VARIABLE"},
		"keep TCL-style $variable parameter syntax"},
	SETTING_ENABLE_TEMPORARY_DATABASE: {"enable_temporary_database", SETTINGKIND_BOOL, ENCODING_OMIT,
		[]string{"SQLITE_OMIT_TEMPDB"},
		"keep the temp database"},
	SETTING_ENABLE_TRACE: {"enable_trace", SETTINGKIND_BOOL, ENCODING_OMIT,
		[]string{"SQLITE_OMIT_TRACE"},
		"keep the tracing and profiling interfaces"},
	SETTING_ENABLE_UTF16: {"enable_utf16", SETTINGKIND_BOOL, ENCODING_OMIT,
		[]string{"SQLITE_OMIT_UTF16"},
		"keep the UTF-16 interfaces"},
	SETTING_ENABLE_VIRTUAL_TABLES: {"enable_virtual_tables", SETTINGKIND_BOOL, ENCODING_OMIT,
		[]string{"SQLITE_OMIT_VIRTUALTABLE"},
		"keep virtual table support"},
	SETTING_ENABLE_WRITE_AHEAD_LOG: {"enable_write_ahead_log", SETTINGKIND_BOOL, ENCODING_OMIT,
		[]string{"SQLITE_OMIT_WAL"},
		"keep write-ahead log journaling"},
	SETTING_LIKE_OPERATOR_CASE_SENSITIVE: {"like_operator_case_sensitive", SETTINGKIND_BOOL, ENCODING_DEFINE,
		[]string{"SQLITE_CASE_SENSITIVE_LIKE"},
		"make the LIKE operator case sensitive"},
	SETTING_LIKE_OPERATOR_MATCHES_BLOB: {"like_operator_matches_blob", SETTINGKIND_BOOL, ENCODING_OMIT,
		[]string{"SQLITE_LIKE_DOESNT_MATCH_BLOBS"},
		"let LIKE and GLOB match BLOB operands"},
	SETTING_MAX_ATTACHED_DATABASES: {"max_attached_databases", SETTINGKIND_UINT, ENCODING_INTEGER,
		[]string{"SQLITE_MAX_ATTACHED"},
		"maximum number of attached databases"},
	SETTING_MAX_COLUMNS: {"max_columns", SETTINGKIND_UINT, ENCODING_INTEGER,
		[]string{"SQLITE_MAX_COLUMN"},
		"maximum number of columns in a table, index or view"},
	SETTING_MAX_EXPRESSION_DEPTH: {"max_expression_depth", SETTINGKIND_UINT, ENCODING_INTEGER,
		[]string{"SQLITE_MAX_EXPR_DEPTH"},
		"maximum depth of an expression tree, 0 for unlimited"},
	SETTING_MAX_JSON_DEPTH: {"max_json_depth", SETTINGKIND_UINT, ENCODING_INTEGER,
		[]string{"SQLITE_JSON_MAX_DEPTH"},
		"maximum nesting depth of JSON values"},
	SETTING_MAX_VARIABLES: {"max_variables", SETTINGKIND_UINT, ENCODING_INTEGER,
		[]string{"SQLITE_MAX_VARIABLE_NUMBER"},
		"largest host parameter number"},
	SETTING_SECURE_DELETE: {"secure_delete", SETTINGKIND_BOOL, ENCODING_DEFINE,
		[]string{"SQLITE_SECURE_DELETE"},
		"overwrite deleted content with zeros by default"},
	SETTING_TEMPORARY_STORAGE: {"temporary_storage", SETTINGKIND_TEMPSTORE, ENCODING_INTEGER,
		[]string{"SQLITE_TEMP_STORE"},
		"where temporary tables and indices are stored"},
	SETTING_TRUSTED_SCHEMA: {"trusted_schema", SETTINGKIND_BOOL, ENCODING_BOOLEAN,
		[]string{"SQLITE_TRUSTED_SCHEMA"},
		"initial value of PRAGMA trusted_schema"},
}

var getSettingKeysByName = base.Memoize(func() map[string]SettingKey {
	result := make(map[string]SettingKey, numSettingKeys)
	for _, key := range GetSettingKeys() {
		result[key.String()] = key
	}
	return result
})

func GetSettingKeys() []SettingKey {
	result := make([]SettingKey, numSettingKeys)
	for i := range result {
		result[i] = SettingKey(i)
	}
	return result
}

func (x SettingKey) info() *settingInfo {
	if int(x) < numSettingKeys {
		return &settingRegistry[x]
	}
	base.UnexpectedValue(x)
	return nil
}

func (x SettingKey) Ord() int32                { return int32(x) }
func (x SettingKey) Kind() SettingKind         { return x.info().Kind }
func (x SettingKey) Encoding() SettingEncoding { return x.info().Encoding }
func (x SettingKey) Description() string       { return x.info().Description }
func (x SettingKey) Symbols() []string         { return base.CopySlice(x.info().Symbols...) }
func (x SettingKey) String() string            { return x.info().Name }

func (x *SettingKey) Set(in string) error {
	if key, ok := getSettingKeysByName()[strings.ToLower(strings.TrimSpace(in))]; ok {
		*x = key
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownSetting, in)
}
func (x SettingKey) MarshalText() ([]byte, error) {
	return base.UnsafeBytesFromString(x.String()), nil
}
func (x *SettingKey) UnmarshalText(data []byte) error {
	return x.Set(base.UnsafeStringFromBytes(data))
}

/***************************************
 * Setting
 ***************************************/

// Setting is one named compile-time option with its typed payload.
// Enum and bool payloads are stored as their ordinal.
type Setting struct {
	key   SettingKey
	value uint64
}

func makeBoolSetting(key SettingKey, enabled bool) Setting {
	base.Assert(func() bool { return key.Kind() == SETTINGKIND_BOOL })
	if enabled {
		return Setting{key: key, value: 1}
	}
	return Setting{key: key}
}
func makeUintSetting(key SettingKey, value uint32) Setting {
	base.Assert(func() bool { return key.Kind() == SETTINGKIND_UINT })
	return Setting{key: key, value: uint64(value)}
}

func DoubleQuotedStringsMode(value DoubleQuotedStrings) Setting {
	return Setting{key: SETTING_DOUBLE_QUOTED_STRINGS, value: uint64(value.Ord())}
}
func ThreadingMode(value Threading) Setting {
	return Setting{key: SETTING_THREADING, value: uint64(value.Ord())}
}
func Sync(value Synchronous) Setting {
	return Setting{key: SETTING_SYNC, value: uint64(value.Ord())}
}
func WalSync(value Synchronous) Setting {
	return Setting{key: SETTING_WAL_SYNC, value: uint64(value.Ord())}
}
func TemporaryStorageMode(value TemporaryStorage) Setting {
	return Setting{key: SETTING_TEMPORARY_STORAGE, value: uint64(value.Ord())}
}

func Debug(enabled bool) Setting { return makeBoolSetting(SETTING_DEBUG, enabled) }
func DefaultAutomaticIndex(enabled bool) Setting {
	return makeBoolSetting(SETTING_DEFAULT_AUTOMATIC_INDEX, enabled)
}
func DefaultAutomaticVacuum(enabled bool) Setting {
	return makeBoolSetting(SETTING_DEFAULT_AUTOMATIC_VACUUM, enabled)
}
func DefaultForeignKeys(enabled bool) Setting {
	return makeBoolSetting(SETTING_DEFAULT_FOREIGN_KEYS, enabled)
}
func DefaultMemoryStatus(enabled bool) Setting {
	return makeBoolSetting(SETTING_DEFAULT_MEMORY_STATUS, enabled)
}
func EnableAlloca(enabled bool) Setting   { return makeBoolSetting(SETTING_ENABLE_ALLOCA, enabled) }
func EnableApiArmor(enabled bool) Setting { return makeBoolSetting(SETTING_ENABLE_API_ARMOR, enabled) }
func EnableAuthorization(enabled bool) Setting {
	return makeBoolSetting(SETTING_ENABLE_AUTHORIZATION, enabled)
}
func EnableAutomaticIndex(enabled bool) Setting {
	return makeBoolSetting(SETTING_ENABLE_AUTOMATIC_INDEX, enabled)
}
func EnableAutomaticInitialize(enabled bool) Setting {
	return makeBoolSetting(SETTING_ENABLE_AUTOMATIC_INITIALIZE, enabled)
}
func EnableAutomaticReset(enabled bool) Setting {
	return makeBoolSetting(SETTING_ENABLE_AUTOMATIC_RESET, enabled)
}
func EnableBlobIo(enabled bool) Setting { return makeBoolSetting(SETTING_ENABLE_BLOB_IO, enabled) }
func EnableColumnDeclaredType(enabled bool) Setting {
	return makeBoolSetting(SETTING_ENABLE_COLUMN_DECLARED_TYPE, enabled)
}
func EnableColumnMetadata(enabled bool) Setting {
	return makeBoolSetting(SETTING_ENABLE_COLUMN_METADATA, enabled)
}
func EnableDatabasePagesVirtualTable(enabled bool) Setting {
	return makeBoolSetting(SETTING_ENABLE_DATABASE_PAGES_VTAB, enabled)
}
func EnableDatabaseStatisticsVirtualTable(enabled bool) Setting {
	return makeBoolSetting(SETTING_ENABLE_DATABASE_STATISTICS_VTAB, enabled)
}
func EnableDatabaseUri(enabled bool) Setting {
	return makeBoolSetting(SETTING_ENABLE_DATABASE_URI, enabled)
}
func EnableDeprecated(enabled bool) Setting {
	return makeBoolSetting(SETTING_ENABLE_DEPRECATED, enabled)
}
func EnableFts3(enabled bool) Setting    { return makeBoolSetting(SETTING_ENABLE_FTS3, enabled) }
func EnableFts5(enabled bool) Setting    { return makeBoolSetting(SETTING_ENABLE_FTS5, enabled) }
func EnableGeopoly(enabled bool) Setting { return makeBoolSetting(SETTING_ENABLE_GEOPOLY, enabled) }
func EnableGetTable(enabled bool) Setting {
	return makeBoolSetting(SETTING_ENABLE_GET_TABLE, enabled)
}
func EnableJson(enabled bool) Setting { return makeBoolSetting(SETTING_ENABLE_JSON, enabled) }
func EnableLoadExtension(enabled bool) Setting {
	return makeBoolSetting(SETTING_ENABLE_LOAD_EXTENSION, enabled)
}
func EnableMemoryManagement(enabled bool) Setting {
	return makeBoolSetting(SETTING_ENABLE_MEMORY_MANAGEMENT, enabled)
}
func EnableNormalizeSql(enabled bool) Setting {
	return makeBoolSetting(SETTING_ENABLE_NORMALIZE_SQL, enabled)
}
func EnablePreupdateHook(enabled bool) Setting {
	return makeBoolSetting(SETTING_ENABLE_PREUPDATE_HOOK, enabled)
}
func EnableProgressCallback(enabled bool) Setting {
	return makeBoolSetting(SETTING_ENABLE_PROGRESS_CALLBACK, enabled)
}
func EnableRtree(enabled bool) Setting { return makeBoolSetting(SETTING_ENABLE_RTREE, enabled) }
func EnableSerialize(enabled bool) Setting {
	return makeBoolSetting(SETTING_ENABLE_SERIALIZE, enabled)
}
func EnableSession(enabled bool) Setting { return makeBoolSetting(SETTING_ENABLE_SESSION, enabled) }
func EnableSharedCache(enabled bool) Setting {
	return makeBoolSetting(SETTING_ENABLE_SHARED_CACHE, enabled)
}
func EnableSnapshot(enabled bool) Setting { return makeBoolSetting(SETTING_ENABLE_SNAPSHOT, enabled) }
func EnableSoundex(enabled bool) Setting  { return makeBoolSetting(SETTING_ENABLE_SOUNDEX, enabled) }
func EnableStat4(enabled bool) Setting    { return makeBoolSetting(SETTING_ENABLE_STAT4, enabled) }
func EnableTclVariables(enabled bool) Setting {
	return makeBoolSetting(SETTING_ENABLE_TCL_VARIABLES, enabled)
}
func EnableTemporaryDatabase(enabled bool) Setting {
	return makeBoolSetting(SETTING_ENABLE_TEMPORARY_DATABASE, enabled)
}
func EnableTrace(enabled bool) Setting { return makeBoolSetting(SETTING_ENABLE_TRACE, enabled) }
func EnableUtf16(enabled bool) Setting { return makeBoolSetting(SETTING_ENABLE_UTF16, enabled) }
func EnableVirtualTables(enabled bool) Setting {
	return makeBoolSetting(SETTING_ENABLE_VIRTUAL_TABLES, enabled)
}
func EnableWriteAheadLog(enabled bool) Setting {
	return makeBoolSetting(SETTING_ENABLE_WRITE_AHEAD_LOG, enabled)
}
func LikeOperatorCaseSensitive(enabled bool) Setting {
	return makeBoolSetting(SETTING_LIKE_OPERATOR_CASE_SENSITIVE, enabled)
}
func LikeOperatorMatchesBlob(enabled bool) Setting {
	return makeBoolSetting(SETTING_LIKE_OPERATOR_MATCHES_BLOB, enabled)
}
func SecureDelete(enabled bool) Setting { return makeBoolSetting(SETTING_SECURE_DELETE, enabled) }
func TrustedSchema(enabled bool) Setting {
	return makeBoolSetting(SETTING_TRUSTED_SCHEMA, enabled)
}

func MaxAttachedDatabases(value uint32) Setting {
	return makeUintSetting(SETTING_MAX_ATTACHED_DATABASES, value)
}
func MaxColumns(value uint32) Setting { return makeUintSetting(SETTING_MAX_COLUMNS, value) }
func MaxExpressionDepth(value uint32) Setting {
	return makeUintSetting(SETTING_MAX_EXPRESSION_DEPTH, value)
}
func MaxJsonDepth(value uint32) Setting { return makeUintSetting(SETTING_MAX_JSON_DEPTH, value) }
func MaxVariables(value uint32) Setting { return makeUintSetting(SETTING_MAX_VARIABLES, value) }

// MakeSetting builds a setting from a loosely typed payload, as found in
// configuration files or on the command line. Strings are parsed according
// to the kind of the key.
func MakeSetting(key SettingKey, value any) (Setting, error) {
	kind := key.Kind()
	mismatch := func() (Setting, error) {
		return Setting{}, fmt.Errorf("%w: %s expects a %s payload, got <%T> %v", ErrInvalidSettingValue, key, kind, value, value)
	}

	switch it := value.(type) {
	case Setting:
		if it.key != key {
			return mismatch()
		}
		return it, nil
	case string:
		return parseSetting(key, it)
	case bool:
		if kind == SETTINGKIND_BOOL {
			return makeBoolSetting(key, it), nil
		}
	case uint:
		return makeUintSettingChecked(key, uint64(it))
	case uint8:
		return makeUintSettingChecked(key, uint64(it))
	case uint16:
		return makeUintSettingChecked(key, uint64(it))
	case uint32:
		return makeUintSettingChecked(key, uint64(it))
	case uint64:
		return makeUintSettingChecked(key, it)
	case int:
		return makeSignedSettingChecked(key, int64(it))
	case int32:
		return makeSignedSettingChecked(key, int64(it))
	case int64:
		return makeSignedSettingChecked(key, it)
	case float64:
		if it >= 0 && it == math.Trunc(it) {
			if it > math.MaxUint32 && kind == SETTINGKIND_UINT {
				return Setting{}, fmt.Errorf("%w: %s out of range: %v", ErrInvalidSettingValue, key, it)
			}
			return makeUintSettingChecked(key, uint64(it))
		}
	case Synchronous:
		if kind == SETTINGKIND_SYNCHRONOUS {
			return Setting{key: key, value: uint64(it.Ord())}, nil
		}
	case Threading:
		if kind == SETTINGKIND_THREADING {
			return Setting{key: key, value: uint64(it.Ord())}, nil
		}
	case TemporaryStorage:
		if kind == SETTINGKIND_TEMPSTORE {
			return Setting{key: key, value: uint64(it.Ord())}, nil
		}
	case DoubleQuotedStrings:
		if kind == SETTINGKIND_DQS {
			return Setting{key: key, value: uint64(it.Ord())}, nil
		}
	}
	return mismatch()
}

func makeUintSettingChecked(key SettingKey, value uint64) (Setting, error) {
	if key.Kind() != SETTINGKIND_UINT {
		return Setting{}, fmt.Errorf("%w: %s expects a %s payload, got %d", ErrInvalidSettingValue, key, key.Kind(), value)
	}
	if value > math.MaxUint32 {
		return Setting{}, fmt.Errorf("%w: %s out of range: %d", ErrInvalidSettingValue, key, value)
	}
	return Setting{key: key, value: value}, nil
}
func makeSignedSettingChecked(key SettingKey, value int64) (Setting, error) {
	if value < 0 {
		return Setting{}, fmt.Errorf("%w: %s can not be negative: %d", ErrInvalidSettingValue, key, value)
	}
	return makeUintSettingChecked(key, uint64(value))
}

func parseSetting(key SettingKey, in string) (Setting, error) {
	in = strings.TrimSpace(in)
	var err error
	switch key.Kind() {
	case SETTINGKIND_BOOL:
		var enabled bool
		if enabled, err = strconv.ParseBool(in); err == nil {
			return makeBoolSetting(key, enabled), nil
		}
	case SETTINGKIND_UINT:
		var value uint32
		if value, err = base.ParseUnsigned[uint32](in, 32); err == nil {
			return Setting{key: key, value: uint64(value)}, nil
		}
	case SETTINGKIND_SYNCHRONOUS:
		var value Synchronous
		if err = value.Set(in); err == nil {
			return Setting{key: key, value: uint64(value.Ord())}, nil
		}
	case SETTINGKIND_THREADING:
		var value Threading
		if err = value.Set(in); err == nil {
			return Setting{key: key, value: uint64(value.Ord())}, nil
		}
	case SETTINGKIND_TEMPSTORE:
		var value TemporaryStorage
		if err = value.Set(in); err == nil {
			return Setting{key: key, value: uint64(value.Ord())}, nil
		}
	case SETTINGKIND_DQS:
		var value DoubleQuotedStrings
		if err = value.Set(in); err == nil {
			return Setting{key: key, value: uint64(value.Ord())}, nil
		}
	default:
		base.UnexpectedValue(key.Kind())
	}
	return Setting{}, fmt.Errorf("%w: %s=%q: %v", ErrInvalidSettingValue, key, in, err)
}

func KeyOf(setting Setting) SettingKey { return setting.key }

func (x Setting) Key() SettingKey { return x.key }

func (x Setting) Bool() bool {
	base.Assert(func() bool { return x.key.Kind() == SETTINGKIND_BOOL })
	return x.value != 0
}
func (x Setting) Uint() uint32 {
	base.Assert(func() bool { return x.key.Kind() == SETTINGKIND_UINT })
	return uint32(x.value)
}
func (x Setting) Synchronous() Synchronous {
	base.Assert(func() bool { return x.key.Kind() == SETTINGKIND_SYNCHRONOUS })
	return Synchronous(x.value)
}
func (x Setting) Threading() Threading {
	base.Assert(func() bool { return x.key.Kind() == SETTINGKIND_THREADING })
	return Threading(x.value)
}
func (x Setting) TemporaryStorage() TemporaryStorage {
	base.Assert(func() bool { return x.key.Kind() == SETTINGKIND_TEMPSTORE })
	return TemporaryStorage(x.value)
}
func (x Setting) DoubleQuotedStrings() DoubleQuotedStrings {
	base.Assert(func() bool { return x.key.Kind() == SETTINGKIND_DQS })
	return MakeDoubleQuotedStrings(int32(x.value))
}

// Value returns the payload with its Go type: bool, uint32 or one of the enums.
func (x Setting) Value() any {
	switch x.key.Kind() {
	case SETTINGKIND_BOOL:
		return x.Bool()
	case SETTINGKIND_UINT:
		return x.Uint()
	case SETTINGKIND_SYNCHRONOUS:
		return x.Synchronous()
	case SETTINGKIND_THREADING:
		return x.Threading()
	case SETTINGKIND_TEMPSTORE:
		return x.TemporaryStorage()
	case SETTINGKIND_DQS:
		return x.DoubleQuotedStrings()
	default:
		base.UnexpectedValue(x.key.Kind())
		return nil
	}
}

// Render translates the setting into the preprocessor definitions expected
// by the amalgamation. It never fails and never returns duplicate symbols.
func (x Setting) Render() (result Definitions) {
	info := x.key.info()
	result = make(Definitions, 0, len(info.Symbols))

	switch info.Encoding {
	case ENCODING_DEFINE:
		if x.value != 0 {
			for _, symbol := range info.Symbols {
				result = append(result, MakeDefinition(symbol))
			}
		}
	case ENCODING_BOOLEAN:
		value := "0"
		if x.value != 0 {
			value = "1"
		}
		for _, symbol := range info.Symbols {
			result = append(result, MakeValuedDefinition(symbol, value))
		}
	case ENCODING_OMIT:
		if x.value == 0 {
			for _, symbol := range info.Symbols {
				result = append(result, MakeDefinition(symbol))
			}
		}
	case ENCODING_INTEGER:
		value := base.FormatUnsigned(x.value)
		for _, symbol := range info.Symbols {
			result = append(result, MakeValuedDefinition(symbol, value))
		}
	default:
		base.UnexpectedValue(info.Encoding)
	}
	return
}

// ApplyTo forwards every rendered definition to sink.
func (x Setting) ApplyTo(sink DefinitionSink) {
	for _, it := range x.Render() {
		sink.Define(it.Name, it.Value)
	}
}

func (x Setting) payloadString() string {
	switch x.key.Kind() {
	case SETTINGKIND_BOOL:
		return strconv.FormatBool(x.Bool())
	case SETTINGKIND_UINT:
		return base.FormatUnsigned(x.value)
	default:
		return fmt.Sprint(x.Value())
	}
}

func (x Setting) String() string {
	return fmt.Sprint(x.key, "=", x.payloadString())
}

// Set parses "name=value", as accepted by the -set command line flag.
func (x *Setting) Set(in string) error {
	name, value, ok := strings.Cut(in, "=")
	if !ok {
		return fmt.Errorf("%w: expected name=value, got %q", ErrInvalidSettingValue, in)
	}
	var key SettingKey
	if err := key.Set(name); err != nil {
		return err
	}
	setting, err := parseSetting(key, value)
	if err == nil {
		*x = setting
	}
	return err
}

func (x Setting) MarshalJSON() ([]byte, error) {
	switch x.key.Kind() {
	case SETTINGKIND_BOOL:
		return fastJson.Marshal(x.Bool())
	case SETTINGKIND_UINT:
		return fastJson.Marshal(x.value)
	case SETTINGKIND_DQS:
		return fastJson.Marshal(x.DoubleQuotedStrings())
	default:
		return fastJson.Marshal(x.payloadString())
	}
}

// ParseJSON decodes a payload written by Setting.MarshalJSON for this key.
func (x SettingKey) ParseJSON(data []byte) (Setting, error) {
	var payload any
	switch x.Kind() {
	case SETTINGKIND_DQS:
		if trimmed := strings.TrimSpace(base.UnsafeStringFromBytes(data)); strings.HasPrefix(trimmed, "{") {
			var dqs DoubleQuotedStrings
			decoder := fastJson.NewDecoder(strings.NewReader(trimmed))
			decoder.DisallowUnknownFields()
			if err := decoder.Decode(&dqs); err != nil {
				return Setting{}, fmt.Errorf("%w: %s: %v", ErrInvalidSettingValue, x, err)
			}
			return DoubleQuotedStringsMode(dqs), nil
		}
	}
	if err := fastJson.Unmarshal(data, &payload); err != nil {
		return Setting{}, fmt.Errorf("%w: %s: %v", ErrInvalidSettingValue, x, err)
	}
	return MakeSetting(x, payload)
}
