//go:build sqlite3_debug
// +build sqlite3_debug

package base

const DEBUG_ENABLED = true

func EnableDiagnostics() bool { return true }

/***************************************
 * Assertions
 ***************************************/

func Assert(pred func() bool) {
	if success := pred(); !success {
		Panicf("failed assertion")
	}
}

func UnexpectedValue(x interface{}) {
	Panicf("unexpected value: <%T> %#v", x, x)
}

/***************************************
 * Logger
 ***************************************/

func LogDebug(category *LogCategory, msg string, args ...interface{}) {
	gLogger.Log(category, LOG_DEBUG, msg, args...)
}
func LogTrace(category *LogCategory, msg string, args ...interface{}) {
	gLogger.Log(category, LOG_TRACE, msg, args...)
}
