package io

import (
	"fmt"
	"io"
	"strings"

	"github.com/poppolopoppo/sqlite3src/compile"
	"github.com/poppolopoppo/sqlite3src/internal/base"

	//lint:ignore ST1001 ignore dot imports warning
	. "github.com/poppolopoppo/sqlite3src/utils"
)

type CppFile struct {
	*StructuredFile
}

func NewCppFile(dst io.Writer, minify bool) *CppFile {
	return &CppFile{
		StructuredFile: NewStructuredFile(dst, STRUCTUREDFILE_DEFAULT_TAB, minify),
	}
}

func (cpp *CppFile) Comment(format string, args ...interface{}) {
	if !cpp.Minify() {
		cpp.Println("// "+format, args...)
	}
}

func (cpp *CppFile) Pragma(format string, args ...interface{}) {
	cpp.Println("#pragma "+format, args...)
}
func (cpp *CppFile) Define(name string, value base.Optional[string]) {
	if it, err := value.Get(); err == nil {
		cpp.Println("#define %s %s", name, it)
	} else {
		cpp.Println("#define %s", name)
	}
}
func (cpp *CppFile) IfMacro(test string, inner func()) {
	cpp.LineBreak()
	cpp.Println_NoIndent("#if " + test)
	inner()
	cpp.Println_NoIndent("#endif")
}
func (cpp *CppFile) IfnDef(symbol string, inner func()) {
	if len(symbol) > 0 {
		cpp.IfMacro("!defined("+symbol+")", inner)
	} else {
		inner()
	}
}

/***************************************
 * Configuration header
 ***************************************/

const ConfigHeaderGuard = "SQLITE3_CONFIG_H"

// WriteConfigHeader writes every definition as a #define, guarded so that a
// symbol given on the command line wins over the header. Minify drops the
// comments.
func WriteConfigHeader(dst io.Writer, definitions compile.Definitions, fingerprint base.Fingerprint, minify bool) error {
	cpp := NewCppFile(dst, minify)

	cpp.Comment("Generated by sqlite3-build, do not edit")
	cpp.Comment("fingerprint: %s", fingerprint)

	cpp.Pragma("once")
	cpp.IfnDef(ConfigHeaderGuard, func() {
		cpp.Println("#define %s", ConfigHeaderGuard)
		for _, it := range definitions {
			if strings.ContainsAny(it.Name, " \t\r\n") {
				base.LogWarning(LogProcess, "skipping malformed definition %q", it.Name)
				continue
			}
			cpp.IfnDef(it.Name, func() {
				cpp.Define(it.Name, it.Value)
			})
		}
	})

	if err := cpp.Err(); err != nil {
		return fmt.Errorf("config header: %w", err)
	}
	return nil
}
