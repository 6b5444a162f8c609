package io

import (
	"bytes"
	"strings"
	"testing"

	"github.com/poppolopoppo/sqlite3src/compile"
	"github.com/poppolopoppo/sqlite3src/internal/base"
)

func TestWriteConfigHeader(t *testing.T) {
	definitions := compile.Definitions{
		compile.MakeValuedDefinition("SQLITE_DQS", "0"),
		compile.MakeDefinition("SQLITE_OMIT_DEPRECATED"),
	}
	fingerprint := base.StringFingerprint("header")

	buf := bytes.Buffer{}
	if err := WriteConfigHeader(&buf, definitions, fingerprint, false); err != nil {
		t.Fatal(err)
	}
	header := buf.String()

	for _, expected := range []string{
		"// fingerprint: " + fingerprint.String() + "\n",
		"#pragma once\n",
		"#if !defined(SQLITE3_CONFIG_H)\n#define SQLITE3_CONFIG_H\n",
		"#if !defined(SQLITE_DQS)\n#define SQLITE_DQS 0\n#endif\n",
		"#if !defined(SQLITE_OMIT_DEPRECATED)\n#define SQLITE_OMIT_DEPRECATED\n#endif\n",
	} {
		if !strings.Contains(header, expected) {
			t.Errorf("expected header to contain %q, got:\n%s", expected, header)
		}
	}
	if !strings.HasSuffix(header, "#endif\n#endif\n") {
		t.Errorf("expected the header guard to be closed, got:\n%s", header)
	}
}

func TestWriteConfigHeaderIsDeterministic(t *testing.T) {
	config := compile.NewDefaultConfig(false)

	a, b := bytes.Buffer{}, bytes.Buffer{}
	if err := WriteConfigHeader(&a, config.Definitions(), config.Fingerprint(), false); err != nil {
		t.Fatal(err)
	}
	if err := WriteConfigHeader(&b, config.Definitions(), config.Fingerprint(), false); err != nil {
		t.Fatal(err)
	}
	if a.String() != b.String() {
		t.Errorf("header output should be reproducible")
	}
}

func TestCppFileMinifySkipsComments(t *testing.T) {
	buf := bytes.Buffer{}
	cpp := NewCppFile(&buf, true)
	cpp.Comment("hidden")
	cpp.Define("A", base.NewOption("1"))
	if buf.String() != "#define A 1\n" {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestWriteConfigHeaderMinify(t *testing.T) {
	definitions := compile.Definitions{compile.MakeDefinition("SQLITE_OMIT_DEPRECATED")}

	buf := bytes.Buffer{}
	if err := WriteConfigHeader(&buf, definitions, base.StringFingerprint("header"), true); err != nil {
		t.Fatal(err)
	}

	want := "#pragma once\n" +
		"#if !defined(SQLITE3_CONFIG_H)\n#define SQLITE3_CONFIG_H\n" +
		"#if !defined(SQLITE_OMIT_DEPRECATED)\n#define SQLITE_OMIT_DEPRECATED\n#endif\n" +
		"#endif\n"
	if got := buf.String(); got != want {
		t.Errorf("unexpected minified header:\n%s", got)
	}
}
