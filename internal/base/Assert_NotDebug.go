//go:build !sqlite3_debug
// +build !sqlite3_debug

package base

const DEBUG_ENABLED = false

var LogAssert = NewLogCategory("Assert")

func EnableDiagnostics() bool { return false }

func Assert(func() bool) {}

func UnexpectedValue(x interface{}) { LogPanic(LogAssert, "unexpected value: <%T> %v", x, x) }

func LogDebug(*LogCategory, string, ...interface{}) {}
func LogTrace(*LogCategory, string, ...interface{}) {}
