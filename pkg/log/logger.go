package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/op/go-logging"
)

// Level is a logging verbosity, from most to least verbose.
type Level int

const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
)

var levelNames = map[Level]string{
	Debug:   "debug",
	Info:    "info",
	Notice:  "notice",
	Warning: "warning",
	Error:   "error",
}

var backendLevels = map[Level]logging.Level{
	Debug:   logging.DEBUG,
	Info:    logging.INFO,
	Notice:  logging.NOTICE,
	Warning: logging.WARNING,
	Error:   logging.ERROR,
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("level(%d)", int(l))
}

// ParseLevel converts a level name such as "info" or "WARNING" into a Level.
func ParseLevel(name string) (Level, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for level, levelName := range levelNames {
		if levelName == name {
			return level, nil
		}
	}
	return Notice, fmt.Errorf("unknown log level %q (want debug, info, notice, warning or error)", name)
}

var format = logging.MustStringFormatter(
	`%{color}[%{time:15:04:05.000}] [%{module}] [%{level}]%{color:reset} %{message}`,
)

var (
	mu      sync.Mutex
	backend logging.LeveledBackend
	current = Notice
)

// Logger is a named, leveled logger.
type Logger interface {
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})

	Notice(v ...interface{})
	Noticef(format string, v ...interface{})

	Info(v ...interface{})
	Infof(format string, v ...interface{})

	Warning(v ...interface{})
	Warningf(format string, v ...interface{})

	Error(v ...interface{})
	Errorf(format string, v ...interface{})
}

// New returns the logger for a module. Loggers share one sink and one level.
func New(module string) Logger {
	return logging.MustGetLogger(module)
}

// SetSink redirects all loggers to sink, keeping the current level.
func SetSink(sink io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	formatted := logging.NewBackendFormatter(logging.NewLogBackend(sink, "", 0), format)
	backend = logging.AddModuleLevel(formatted)
	backend.SetLevel(backendLevels[current], "")
	logging.SetBackend(backend)
}

// SetLevel sets the verbosity of every module.
func SetLevel(level Level) {
	mu.Lock()
	defer mu.Unlock()

	if _, ok := backendLevels[level]; !ok {
		return
	}
	current = level
	backend.SetLevel(backendLevels[level], "")
}

// CurrentLevel reports the verbosity set by SetLevel.
func CurrentLevel() Level {
	mu.Lock()
	defer mu.Unlock()
	return current
}

// Printer adapts a leveled logger to the Printf-style logger used by the
// rendering packages. Messages are emitted at info level.
type Printer struct {
	Logger Logger
}

func (p Printer) Printf(format string, args ...interface{}) {
	p.Logger.Infof(format, args...)
}

func init() {
	SetSink(os.Stdout)
}
