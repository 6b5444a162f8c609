package utils

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

type testCommand struct {
	Name     Filename
	Verbose  bool
	prepared bool
	args     []string
}

func (x *testCommand) Flags(cfv CommandFlagsVisitor) {
	cfv.Variable("name", "a file name", &x.Name)
	cfv.Bool("verbose", "print more", &x.Verbose)
}
func (x *testCommand) Prepare(cc CommandContext) error {
	x.prepared = true
	return nil
}
func (x *testCommand) Run(cc CommandContext) error {
	x.args = cc.Args()
	_, err := cc.Stdout().Write([]byte("ran\n"))
	return err
}

type testGlobalFlags struct {
	Quiet bool
}

func (x *testGlobalFlags) Flags(cfv CommandFlagsVisitor) {
	cfv.Bool("q", "quiet", &x.Quiet)
}

// last instance created by the factory
var testCommandInstance *testCommand

var _ = NewCommandable("Test", "utils-test", "command used by tests", func() Commandable {
	testCommandInstance = &testCommand{}
	return testCommandInstance
})

func TestRunCommand(t *testing.T) {
	global := &testGlobalFlags{}
	stdout := bytes.Buffer{}

	err := RunCommand(context.Background(), "test", []string{"utils-test", "-q", "-verbose", "-name", "sqlite3.c", "extra"}, &stdout, global, "help")
	if err != nil {
		t.Fatal(err)
	}
	if !global.Quiet || !testCommandInstance.Verbose || !testCommandInstance.prepared {
		t.Errorf("flags were not parsed: %+v %+v", global, testCommandInstance)
	}
	if testCommandInstance.Name.Basename != "sqlite3.c" {
		t.Errorf("unexpected name: %v", testCommandInstance.Name)
	}
	if len(testCommandInstance.args) != 1 || testCommandInstance.args[0] != "extra" {
		t.Errorf("unexpected arguments: %q", testCommandInstance.args)
	}
	if stdout.String() != "ran\n" {
		t.Errorf("unexpected output: %q", stdout.String())
	}
}

func TestRunCommandDefault(t *testing.T) {
	stdout := bytes.Buffer{}
	if err := RunCommand(context.Background(), "test", []string{"-verbose"}, &stdout, nil, "utils-test"); err != nil {
		t.Fatal(err)
	}
}

func TestRunCommandUnknown(t *testing.T) {
	if err := RunCommand(context.Background(), "test", []string{"frobnicate"}, &bytes.Buffer{}, nil, "utils-test"); err == nil {
		t.Errorf("expected an error for an unknown command")
	}
	if err := RunCommand(context.Background(), "test", []string{"utils-test", "-nope"}, &bytes.Buffer{}, nil, "utils-test"); err == nil {
		t.Errorf("expected an error for an unknown flag")
	}
}

func TestPrintCommandHelp(t *testing.T) {
	stdout := bytes.Buffer{}
	PrintCommandHelp(&stdout, "test")
	if !strings.Contains(stdout.String(), "utils-test") || !strings.Contains(stdout.String(), "Test:") {
		t.Errorf("unexpected help:\n%s", stdout.String())
	}
}
