package compile

import (
	"fmt"
	"strings"

	"github.com/poppolopoppo/sqlite3src/internal/base"
)

/***************************************
 * Synchronous
 ***************************************/

// Synchronous values are ranked: the ordinal is the value SQLite expects.
type Synchronous byte

const (
	SYNCHRONOUS_OFF Synchronous = iota
	SYNCHRONOUS_NORMAL
	SYNCHRONOUS_FULL
	SYNCHRONOUS_EXTRA
)

func GetSynchronousModes() []Synchronous {
	return []Synchronous{
		SYNCHRONOUS_OFF,
		SYNCHRONOUS_NORMAL,
		SYNCHRONOUS_FULL,
		SYNCHRONOUS_EXTRA,
	}
}
func (x Synchronous) Ord() int32 { return int32(x) }
func (x Synchronous) Description() string {
	switch x {
	case SYNCHRONOUS_OFF:
		return "hand data to the operating system and continue without syncing"
	case SYNCHRONOUS_NORMAL:
		return "sync at the most critical moments, less often than FULL"
	case SYNCHRONOUS_FULL:
		return "sync before every critical write to guarantee durability"
	case SYNCHRONOUS_EXTRA:
		return "like FULL, and also sync the directory after unlinking a rollback journal"
	default:
		base.UnexpectedValue(x)
		return ""
	}
}
func (x Synchronous) String() string {
	switch x {
	case SYNCHRONOUS_OFF:
		return "OFF"
	case SYNCHRONOUS_NORMAL:
		return "NORMAL"
	case SYNCHRONOUS_FULL:
		return "FULL"
	case SYNCHRONOUS_EXTRA:
		return "EXTRA"
	default:
		base.UnexpectedValue(x)
		return ""
	}
}
func (x *Synchronous) Set(in string) (err error) {
	switch strings.ToUpper(in) {
	case SYNCHRONOUS_OFF.String():
		*x = SYNCHRONOUS_OFF
	case SYNCHRONOUS_NORMAL.String():
		*x = SYNCHRONOUS_NORMAL
	case SYNCHRONOUS_FULL.String():
		*x = SYNCHRONOUS_FULL
	case SYNCHRONOUS_EXTRA.String():
		*x = SYNCHRONOUS_EXTRA
	default:
		err = base.MakeUnexpectedValueError(x, in)
	}
	return err
}
func (x Synchronous) MarshalText() ([]byte, error) {
	return base.UnsafeBytesFromString(x.String()), nil
}
func (x *Synchronous) UnmarshalText(data []byte) error {
	return x.Set(base.UnsafeStringFromBytes(data))
}

/***************************************
 * Threading
 ***************************************/

type Threading byte

const (
	THREADING_SINGLETHREAD Threading = iota
	THREADING_MULTITHREAD
	THREADING_SERIALIZED
)

func GetThreadingModes() []Threading {
	return []Threading{
		THREADING_SINGLETHREAD,
		THREADING_MULTITHREAD,
		THREADING_SERIALIZED,
	}
}
func (x Threading) Ord() int32 { return int32(x) }
func (x Threading) Description() string {
	switch x {
	case THREADING_SINGLETHREAD:
		return "all mutexes are omitted, unsafe to use from more than one thread"
	case THREADING_MULTITHREAD:
		return "safe from several threads as long as no connection is shared between them"
	case THREADING_SERIALIZED:
		return "safe from several threads without restriction"
	default:
		base.UnexpectedValue(x)
		return ""
	}
}
func (x Threading) String() string {
	switch x {
	case THREADING_SINGLETHREAD:
		return "SINGLETHREAD"
	case THREADING_MULTITHREAD:
		return "MULTITHREAD"
	case THREADING_SERIALIZED:
		return "SERIALIZED"
	default:
		base.UnexpectedValue(x)
		return ""
	}
}
func (x *Threading) Set(in string) (err error) {
	switch strings.ToUpper(in) {
	case THREADING_SINGLETHREAD.String():
		*x = THREADING_SINGLETHREAD
	case THREADING_MULTITHREAD.String():
		*x = THREADING_MULTITHREAD
	case THREADING_SERIALIZED.String():
		*x = THREADING_SERIALIZED
	default:
		err = base.MakeUnexpectedValueError(x, in)
	}
	return err
}
func (x Threading) MarshalText() ([]byte, error) {
	return base.UnsafeBytesFromString(x.String()), nil
}
func (x *Threading) UnmarshalText(data []byte) error {
	return x.Set(base.UnsafeStringFromBytes(data))
}

/***************************************
 * TemporaryStorage
 ***************************************/

type TemporaryStorage byte

const (
	TEMPSTORE_ALWAYS_FILESYSTEM TemporaryStorage = iota
	TEMPSTORE_DEFAULT_FILESYSTEM
	TEMPSTORE_DEFAULT_MEMORY
	TEMPSTORE_ALWAYS_MEMORY
)

func GetTemporaryStorageModes() []TemporaryStorage {
	return []TemporaryStorage{
		TEMPSTORE_ALWAYS_FILESYSTEM,
		TEMPSTORE_DEFAULT_FILESYSTEM,
		TEMPSTORE_DEFAULT_MEMORY,
		TEMPSTORE_ALWAYS_MEMORY,
	}
}
func (x TemporaryStorage) Ord() int32 { return int32(x) }
func (x TemporaryStorage) Description() string {
	switch x {
	case TEMPSTORE_ALWAYS_FILESYSTEM:
		return "temporary tables always live in files"
	case TEMPSTORE_DEFAULT_FILESYSTEM:
		return "files by default, PRAGMA temp_store can override"
	case TEMPSTORE_DEFAULT_MEMORY:
		return "memory by default, PRAGMA temp_store can override"
	case TEMPSTORE_ALWAYS_MEMORY:
		return "temporary tables always live in memory"
	default:
		base.UnexpectedValue(x)
		return ""
	}
}
func (x TemporaryStorage) String() string {
	switch x {
	case TEMPSTORE_ALWAYS_FILESYSTEM:
		return "ALWAYS_FILESYSTEM"
	case TEMPSTORE_DEFAULT_FILESYSTEM:
		return "DEFAULT_FILESYSTEM"
	case TEMPSTORE_DEFAULT_MEMORY:
		return "DEFAULT_MEMORY"
	case TEMPSTORE_ALWAYS_MEMORY:
		return "ALWAYS_MEMORY"
	default:
		base.UnexpectedValue(x)
		return ""
	}
}
func (x *TemporaryStorage) Set(in string) (err error) {
	switch strings.ToUpper(in) {
	case TEMPSTORE_ALWAYS_FILESYSTEM.String():
		*x = TEMPSTORE_ALWAYS_FILESYSTEM
	case TEMPSTORE_DEFAULT_FILESYSTEM.String():
		*x = TEMPSTORE_DEFAULT_FILESYSTEM
	case TEMPSTORE_DEFAULT_MEMORY.String():
		*x = TEMPSTORE_DEFAULT_MEMORY
	case TEMPSTORE_ALWAYS_MEMORY.String():
		*x = TEMPSTORE_ALWAYS_MEMORY
	default:
		err = base.MakeUnexpectedValueError(x, in)
	}
	return err
}
func (x TemporaryStorage) MarshalText() ([]byte, error) {
	return base.UnsafeBytesFromString(x.String()), nil
}
func (x *TemporaryStorage) UnmarshalText(data []byte) error {
	return x.Set(base.UnsafeStringFromBytes(data))
}

/***************************************
 * DoubleQuotedStrings
 ***************************************/

// DoubleQuotedStrings selects whether double-quoted string literals are
// accepted in DDL statements, DML statements, or both.
type DoubleQuotedStrings struct {
	InDDL bool `json:"ddl"`
	InDML bool `json:"dml"`
}

// Ord packs the two flags into SQLITE_DQS: bit 1 is DDL, bit 0 is DML.
func (x DoubleQuotedStrings) Ord() int32 {
	switch {
	case x.InDDL && x.InDML:
		return 3
	case x.InDDL && !x.InDML:
		return 2
	case !x.InDDL && x.InDML:
		return 1
	default:
		return 0
	}
}
func MakeDoubleQuotedStrings(ord int32) DoubleQuotedStrings {
	base.Assert(func() bool { return ord >= 0 && ord <= 3 })
	return DoubleQuotedStrings{
		InDDL: (ord & 2) != 0,
		InDML: (ord & 1) != 0,
	}
}
func (x DoubleQuotedStrings) String() string {
	switch {
	case x.InDDL && x.InDML:
		return "DDL|DML"
	case x.InDDL:
		return "DDL"
	case x.InDML:
		return "DML"
	default:
		return "NONE"
	}
}
func (x *DoubleQuotedStrings) Set(in string) error {
	*x = DoubleQuotedStrings{}
	for _, it := range strings.Split(in, "|") {
		switch strings.ToUpper(strings.TrimSpace(it)) {
		case "DDL":
			x.InDDL = true
		case "DML":
			x.InDML = true
		case "NONE":
		default:
			return base.MakeUnexpectedValueError(x, in)
		}
	}
	return nil
}

/***************************************
 * SettingKind
 ***************************************/

// SettingKind is the payload carried by a Setting.
type SettingKind byte

const (
	SETTINGKIND_BOOL SettingKind = iota
	SETTINGKIND_UINT
	SETTINGKIND_SYNCHRONOUS
	SETTINGKIND_THREADING
	SETTINGKIND_TEMPSTORE
	SETTINGKIND_DQS
)

func GetSettingKinds() []SettingKind {
	return []SettingKind{
		SETTINGKIND_BOOL,
		SETTINGKIND_UINT,
		SETTINGKIND_SYNCHRONOUS,
		SETTINGKIND_THREADING,
		SETTINGKIND_TEMPSTORE,
		SETTINGKIND_DQS,
	}
}
func (x SettingKind) String() string {
	switch x {
	case SETTINGKIND_BOOL:
		return "bool"
	case SETTINGKIND_UINT:
		return "uint"
	case SETTINGKIND_SYNCHRONOUS:
		return "synchronous"
	case SETTINGKIND_THREADING:
		return "threading"
	case SETTINGKIND_TEMPSTORE:
		return "temporary_storage"
	case SETTINGKIND_DQS:
		return "double_quoted_strings"
	default:
		base.UnexpectedValue(x)
		return ""
	}
}

// Values lists the accepted spellings for enum kinds, nil otherwise.
func (x SettingKind) Values() []string {
	switch x {
	case SETTINGKIND_BOOL:
		return []string{"true", "false"}
	case SETTINGKIND_UINT:
		return nil
	case SETTINGKIND_SYNCHRONOUS:
		return stringsOf(GetSynchronousModes()...)
	case SETTINGKIND_THREADING:
		return stringsOf(GetThreadingModes()...)
	case SETTINGKIND_TEMPSTORE:
		return stringsOf(GetTemporaryStorageModes()...)
	case SETTINGKIND_DQS:
		return []string{"NONE", "DDL", "DML", "DDL|DML"}
	default:
		base.UnexpectedValue(x)
		return nil
	}
}

func stringsOf[T fmt.Stringer](in ...T) []string {
	result := make([]string, len(in))
	for i, it := range in {
		result[i] = it.String()
	}
	return result
}

/***************************************
 * SettingEncoding
 ***************************************/

// SettingEncoding is how a payload turns into preprocessor definitions.
type SettingEncoding byte

const (
	// true defines every symbol without a value, false defines nothing
	ENCODING_DEFINE SettingEncoding = iota
	// always defines the symbol to "1" or "0"
	ENCODING_BOOLEAN
	// false defines the symbol without a value, true defines nothing
	ENCODING_OMIT
	// always defines the symbol to the decimal ordinal of the payload
	ENCODING_INTEGER
)

func (x SettingEncoding) String() string {
	switch x {
	case ENCODING_DEFINE:
		return "define"
	case ENCODING_BOOLEAN:
		return "boolean"
	case ENCODING_OMIT:
		return "omit"
	case ENCODING_INTEGER:
		return "integer"
	default:
		base.UnexpectedValue(x)
		return ""
	}
}
