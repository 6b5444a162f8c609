package base

import (
	"fmt"
	"hash/fnv"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

/***************************************
 * Logger API
 ***************************************/

var LogGlobal = NewLogCategory("Global")

var gLogger Logger = NewLogger()

//// LogDebug/LogTrace ARE DEFINED INSIDE Assert_Debug/Assert_NotDebug TO COMPILE OUT DEBUG/TRACE MESSAGES

func LogVeryVerbose(category *LogCategory, msg string, args ...interface{}) {
	gLogger.Log(category, LOG_VERYVERBOSE, msg, args...)
}
func LogVerbose(category *LogCategory, msg string, args ...interface{}) {
	gLogger.Log(category, LOG_VERBOSE, msg, args...)
}
func LogInfo(category *LogCategory, msg string, args ...interface{}) {
	gLogger.Log(category, LOG_INFO, msg, args...)
}
func LogWarning(category *LogCategory, msg string, args ...interface{}) {
	gLogger.Log(category, LOG_WARNING, msg, args...)
}
func LogError(category *LogCategory, msg string, args ...interface{}) {
	gLogger.Log(category, LOG_ERROR, msg, args...)
}

func LogPanic(category *LogCategory, msg string, args ...interface{}) {
	LogPanicErr(category, fmt.Errorf(msg, args...))
}
func LogPanicErr(category *LogCategory, err error) {
	LogError(category, "panic: caught error %v", err)
	FlushLog()
	Panic(err)
}
func LogPanicIfFailed(category *LogCategory, err error) {
	if err != nil {
		LogPanicErr(category, err)
	}
}

func LogForward(msg ...string) {
	gLogger.Forward(msg...)
}
func LogForwardln(msg ...string) {
	gLogger.Forwardln(msg...)
}

func IsLogLevelActive(level LogLevel) bool {
	return gLogger.IsVisible(level)
}
func FlushLog() {
	gLogger.Flush()
}

func SetLogVisibleLevel(level LogLevel) LogLevel {
	return gLogger.SetLevel(level)
}

/***************************************
 * Log benchmark
 ***************************************/

type LogBenchmarkScope struct {
	category  *LogCategory
	message   string
	startedAt time.Time
}

func LogBenchmark(category *LogCategory, msg string, args ...interface{}) LogBenchmarkScope {
	return LogBenchmarkScope{
		category:  category,
		message:   fmt.Sprintf(msg, args...),
		startedAt: time.Now(),
	}
}
func (x LogBenchmarkScope) Close() error {
	LogVerbose(x.category, "%s took %v", x.message, time.Since(x.startedAt))
	return nil
}

/***************************************
 * Logger interface
 ***************************************/

type LogCategory struct {
	Name  string
	Level LogLevel
	Hash  uint64
}

type LogWriter interface {
	io.Writer
	io.StringWriter
}

type Logger interface {
	IsVisible(LogLevel) bool

	SetLevel(LogLevel) LogLevel

	Forward(msg ...string)
	Forwardln(msg ...string)

	Log(category *LogCategory, level LogLevel, msg string, args ...interface{})

	Flush()
}

/***************************************
 * Errors
 ***************************************/

func MakeError(msg string, args ...interface{}) error {
	return fmt.Errorf(msg, args...)
}

func MakeUnexpectedValueError(dst interface{}, any interface{}) error {
	return MakeError("unexpected <%T> value: %#v", dst, any)
}

/***************************************
 * Log Manager
 ***************************************/

type LogManager struct {
	barrierRW  sync.RWMutex
	categories map[string]*LogCategory
}

var gLogManager = LogManager{
	categories: make(map[string]*LogCategory, 16),
}

func (x *LogManager) FindCategory(name string) *LogCategory {
	x.barrierRW.RLock()
	defer x.barrierRW.RUnlock()
	return x.categories[name]
}
func (x *LogManager) FindOrAddCategory(name string) (result *LogCategory) {
	if result = x.FindCategory(name); result == nil {
		x.barrierRW.Lock()
		defer x.barrierRW.Unlock()
		if result = x.categories[name]; result == nil {
			category := MakeLogCategory(name)
			result = &category
			x.categories[name] = result
		}
	}
	return
}

/***************************************
 * Log Category
 ***************************************/

func MakeLogCategory(name string) LogCategory {
	sum64a := fnv.New64a()
	sum64a.Write([]byte(name))
	return LogCategory{
		Name:  name,
		Level: LOG_FATAL,
		Hash:  sum64a.Sum64(),
	}
}

func NewLogCategory(name string) *LogCategory {
	return gLogManager.FindOrAddCategory(name)
}

/***************************************
 * Log level
 ***************************************/

type LogLevel int32

const (
	LOG_ALL LogLevel = iota
	LOG_DEBUG
	LOG_TRACE
	LOG_VERYVERBOSE
	LOG_VERBOSE
	LOG_INFO
	LOG_WARNING
	LOG_ERROR
	LOG_FATAL
)

func (x LogLevel) IsVisible(level LogLevel) bool {
	return (int32(level) >= int32(x))
}
func (x LogLevel) Header() string {
	switch x {
	case LOG_ALL:
		return "[ALL]"
	case LOG_DEBUG:
		return "[DBG]"
	case LOG_TRACE:
		return "[TRC]"
	case LOG_VERYVERBOSE:
		return "[VVB]"
	case LOG_VERBOSE:
		return "[VRB]"
	case LOG_INFO:
		return "[NFO]"
	case LOG_WARNING:
		return "[WRN]"
	case LOG_ERROR:
		return "[ERR]"
	case LOG_FATAL:
		return "[FTL]"
	default:
		UnexpectedValue(x)
		return ""
	}
}
func (x LogLevel) String() string {
	switch x {
	case LOG_ALL:
		return "ALL"
	case LOG_DEBUG:
		return "DEBUG"
	case LOG_TRACE:
		return "TRACE"
	case LOG_VERYVERBOSE:
		return "VERYVERBOSE"
	case LOG_VERBOSE:
		return "VERBOSE"
	case LOG_INFO:
		return "INFO"
	case LOG_WARNING:
		return "WARNING"
	case LOG_ERROR:
		return "ERROR"
	case LOG_FATAL:
		return "FATAL"
	default:
		UnexpectedValue(x)
		return ""
	}
}

/***************************************
 * Basic Logger
 ***************************************/

type basicLogger struct {
	MinimumLevel LogLevel
	Writer       LogWriter

	barrier sync.Mutex
}

func NewLogger() Logger {
	level := LOG_INFO
	if EnableDiagnostics() {
		level = LOG_ALL
	}
	return &basicLogger{
		MinimumLevel: level,
		Writer:       os.Stderr,
	}
}

func (x *basicLogger) IsVisible(level LogLevel) bool {
	return x.MinimumLevel.IsVisible(level)
}

func (x *basicLogger) SetLevel(level LogLevel) LogLevel {
	previous := x.MinimumLevel
	if level < LOG_FATAL {
		x.MinimumLevel = level
	} else {
		x.MinimumLevel = LOG_FATAL
	}
	return previous
}
func (x *basicLogger) Forward(msg ...string) {
	x.barrier.Lock()
	defer x.barrier.Unlock()
	for _, it := range msg {
		x.Writer.WriteString(it)
	}
}
func (x *basicLogger) Forwardln(msg ...string) {
	if len(msg) == 0 {
		return
	}
	x.barrier.Lock()
	defer x.barrier.Unlock()
	for _, it := range msg {
		x.Writer.WriteString(it)
	}
	if !strings.HasSuffix(msg[len(msg)-1], "\n") {
		x.Writer.WriteString("\n")
	}
}
func (x *basicLogger) Log(category *LogCategory, level LogLevel, msg string, args ...interface{}) {
	// log level visible?
	if !x.IsVisible(level) && !category.Level.IsVisible(level) {
		return
	}

	x.barrier.Lock()
	defer x.barrier.Unlock()

	x.Writer.WriteString(level.Header())
	fmt.Fprintf(x.Writer, " %s: ", category.Name)
	fmt.Fprintf(x.Writer, msg, args...)
	x.Writer.WriteString("\n")
}

func (x *basicLogger) Flush() {
	x.barrier.Lock()
	defer x.barrier.Unlock()
	if f, ok := x.Writer.(interface{ Sync() error }); ok {
		f.Sync()
	}
}
