package io

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/poppolopoppo/sqlite3src/internal/base"
	"github.com/poppolopoppo/sqlite3src/utils"
)

var LogProcess = base.NewLogCategory("Process")

/***************************************
 * Process Options
 ***************************************/

type ProcessOutputFunc = func(line string) error

type ProcessOptions struct {
	Environment   base.StringSet
	OnOutput      ProcessOutputFunc
	WorkingDir    utils.Directory
	CaptureOutput bool
	ExitCodeRef   *int32
}

type ProcessOptionFunc func(*ProcessOptions)

func (x *ProcessOptions) Init(options ...ProcessOptionFunc) {
	for _, it := range options {
		it(x)
	}
}

func OptionProcessExitCode(exitCodeRef *int32) ProcessOptionFunc {
	return func(po *ProcessOptions) {
		po.ExitCodeRef = exitCodeRef
	}
}

// OptionProcessExport sets an environment variable on top of the current
// process environment.
func OptionProcessExport(name, value string) ProcessOptionFunc {
	return func(po *ProcessOptions) {
		po.Environment.Append(name + "=" + value)
	}
}
func OptionProcessOutput(onOutput ProcessOutputFunc) ProcessOptionFunc {
	return func(po *ProcessOptions) {
		po.OnOutput = onOutput
	}
}
func OptionProcessWorkingDir(value utils.Directory) ProcessOptionFunc {
	return func(po *ProcessOptions) {
		po.WorkingDir = value
	}
}
func OptionProcessCaptureOutputIf(enabled bool) ProcessOptionFunc {
	return func(po *ProcessOptions) {
		po.CaptureOutput = enabled
	}
}

/***************************************
 * RunProcess
 ***************************************/

type ProcessError struct {
	Executable utils.Filename
	Arguments  base.StringSet
	Output     string
	Err        error
}

func (x ProcessError) Error() string {
	return fmt.Sprintf("process %q failed: %v", x.Executable.Basename, x.Err)
}
func (x ProcessError) Unwrap() error { return x.Err }

// processMaxLineSize bounds a single captured line, longer lines fail the run.
var processMaxLineSize = 1 << 20

// RunProcess runs executable until it exits or ctx is done. Output is
// forwarded line by line when capturing, otherwise it is only reported if
// the process fails.
func RunProcess(ctx context.Context, executable utils.Filename, arguments base.StringSet, userOptions ...ProcessOptionFunc) (err error) {
	var options ProcessOptions
	options.Init(userOptions...)

	defer base.LogBenchmark(LogProcess, "Run(%q, %q)", executable, arguments.Join(" ")).Close()

	cmd := exec.CommandContext(ctx, executable.String(), arguments...)
	if len(options.Environment) > 0 {
		cmd.Env = append(os.Environ(), options.Environment...)
	}
	if options.WorkingDir.Valid() {
		cmd.Dir = options.WorkingDir.String()
	}

	base.LogTrace(LogProcess, "run %v:\n%#v", cmd, []any{cmd.Dir, executable, arguments, options})

	if options.CaptureOutput {
		var stdout io.ReadCloser
		if stdout, err = cmd.StdoutPipe(); err != nil {
			return err
		}
		cmd.Stderr = cmd.Stdout

		if err = cmd.Start(); err != nil {
			return err
		}

		scanner := bufio.NewScanner(stdout)
		scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), processMaxLineSize)
		for scanner.Scan() {
			if line := scanner.Text(); len(line) > 0 {
				if options.OnOutput != nil {
					if er := options.OnOutput(line); er != nil {
						_ = cmd.Process.Kill()
						_ = cmd.Wait()
						return er
					}
				} else {
					base.LogForwardln(line)
				}
			}
		}

		if er := scanner.Err(); er != nil {
			_ = cmd.Process.Kill()
			_ = cmd.Wait()
			return fmt.Errorf("process %q: reading output: %w", executable.Basename, er)
		}

		err = cmd.Wait()
		if err != nil {
			err = ProcessError{Executable: executable, Arguments: arguments, Err: err}
		}

	} else {
		outputForError := bytes.Buffer{}
		cmd.Stderr = &outputForError
		cmd.Stdout = &outputForError

		if err = cmd.Run(); err != nil {
			// print output if the command failed
			output := outputForError.String()
			if options.OnOutput != nil {
				if er := options.OnOutput(output); er != nil {
					return er
				}
			} else {
				base.LogForward(output)
			}
			err = ProcessError{Executable: executable, Arguments: arguments, Output: output, Err: err}
		}
	}

	if exitCodeErr, ok := err.(ProcessError); ok && options.ExitCodeRef != nil {
		if exitErr, ok := exitCodeErr.Err.(*exec.ExitError); ok {
			*options.ExitCodeRef = int32(exitErr.ExitCode())
		}
	}
	return
}
