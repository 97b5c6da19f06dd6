// Package lol (log of location) is a small levelled logger that prints a timestamp, a
// coloured level tag and the source location of every line, so that tracing where a value
// was rejected or an error was first seen needs no debugger.
package lol

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
)

const (
	Off = iota
	Fatal
	Error
	Warn
	Info
	Debug
	Trace
)

// LevelNames are the names accepted by GetLogLevel and SetLogLevel, indexed by level.
var LevelNames = []string{
	"off",
	"fatal",
	"error",
	"warn",
	"info",
	"debug",
	"trace",
}

type (
	// Ln prints its operands separated by spaces.
	Ln func(a ...any)
	// F prints like fmt.Printf.
	F func(format string, a ...any)
	// S prints a spew.Sdump of its operands.
	S func(a ...any)
	// C accepts a closure so that building the message is skipped when the level is
	// filtered out.
	C func(closure func() string)
	// Chk prints the error if it is not nil and reports whether it was.
	Chk func(e error) bool
	// Err constructs an error with fmt.Errorf, logs it and returns it.
	Err func(format string, a ...any) error

	// LevelPrinter is the set of printers for one level.
	LevelPrinter struct {
		Ln
		F
		S
		C
		Chk
		Err
	}

	// LevelSpec is the id, tag and colouring function of a level.
	LevelSpec struct {
		ID        int
		Name      string
		Colorizer func(a ...any) string
	}
)

var (
	// LevelSpecs is indexed by level.
	LevelSpecs = []LevelSpec{
		{Off, "", NoSprint},
		{Fatal, "FTL", color.New(color.BgRed, color.FgHiWhite).Sprint},
		{Error, "ERR", color.New(color.FgHiRed).Sprint},
		{Warn, "WRN", color.New(color.FgHiYellow).Sprint},
		{Info, "INF", color.New(color.FgHiGreen).Sprint},
		{Debug, "DBG", color.New(color.FgHiBlue).Sprint},
		{Trace, "TRC", color.New(color.FgHiMagenta).Sprint},
	}
	// NoTimeStamp suppresses the timestamp prefix, mostly for Example tests.
	NoTimeStamp atomic.Bool

	msgCol = color.New(color.FgBlue).Sprint
)

// NoSprint returns nothing no matter what is given to it.
func NoSprint(a ...any) string { return "" }

// Log is a set of printers for every level.
type Log struct {
	F, E, W, I, D, T LevelPrinter
}

// Check is the set of error checkers for every level.
type Check struct {
	F, E, W, I, D, T Chk
}

// Errorf is the set of error constructors for every level.
type Errorf struct {
	F, E, W, I, D, T Err
}

// Logger bundles the printers, checkers and error constructors sharing one writer.
type Logger struct {
	*Log
	*Check
	*Errorf
}

// Level is the most verbose level that is printed.
var Level atomic.Int32

// Main is the process wide logger.
var Main = &Logger{}

func init() {
	Main.Log, Main.Check, Main.Errorf = New(os.Stderr)
	SetLoggers(Info)
}

// SetLoggers sets the level of the Main logger.
func SetLoggers(level int) {
	if level < Off || level > Trace {
		level = Info
	}
	Level.Store(int32(level))
	Main.Log.T.F("log level %s", LevelSpecs[level].Colorizer(LevelNames[level]))
}

// GetLogLevel returns the level number of a level name, defaulting to Info.
func GetLogLevel(level string) (i int) {
	for i = range LevelNames {
		if level == LevelNames[i] {
			return i
		}
	}
	return Info
}

// SetLogLevel sets the level by name, unknown names are ignored.
func SetLogLevel(level string) {
	for i := range LevelNames {
		if level == LevelNames[i] {
			SetLoggers(i)
			return
		}
	}
}

// JoinStrings joins anything into a string with a space between the items.
func JoinStrings(a ...any) (s string) {
	for i := range a {
		s += fmt.Sprint(a[i])
		if i < len(a)-1 {
			s += " "
		}
	}
	return
}

// lineWriter serialises writes so lines from concurrent goroutines do not interleave.
type lineWriter struct {
	sync.Mutex
	w io.Writer
}

func (lw *lineWriter) line(l int32, msg string) {
	lw.Lock()
	defer lw.Unlock()
	_, _ = fmt.Fprintf(lw.w,
		"%s%s %s %s\n",
		msgCol(TimeStamper()),
		LevelSpecs[l].Colorizer(LevelSpecs[l].Name),
		msg,
		msgCol(GetLoc(3)),
	)
}

func enabled(l int32) bool { return Level.Load() >= l }

// GetPrinter returns the printers for level l writing to writer.
func GetPrinter(l int32, writer io.Writer) LevelPrinter {
	return printer(l, &lineWriter{w: writer})
}

func printer(l int32, lw *lineWriter) LevelPrinter {
	return LevelPrinter{
		Ln: func(a ...any) {
			if enabled(l) {
				lw.line(l, JoinStrings(a...))
			}
		},
		F: func(format string, a ...any) {
			if enabled(l) {
				lw.line(l, fmt.Sprintf(format, a...))
			}
		},
		S: func(a ...any) {
			if enabled(l) {
				lw.line(l, spew.Sdump(a...))
			}
		},
		C: func(closure func() string) {
			if enabled(l) {
				lw.line(l, closure())
			}
		},
		Chk: func(e error) bool {
			if e == nil {
				return false
			}
			if enabled(l) {
				lw.line(l, e.Error())
			}
			return true
		},
		Err: func(format string, a ...any) error {
			err := fmt.Errorf(format, a...)
			if enabled(l) {
				lw.line(l, err.Error())
			}
			return err
		},
	}
}

// GetNullPrinter is a printer that never prints.
func GetNullPrinter() LevelPrinter {
	return LevelPrinter{
		Ln:  func(a ...any) {},
		F:   func(format string, a ...any) {},
		S:   func(a ...any) {},
		C:   func(closure func() string) {},
		Chk: func(e error) bool { return e != nil },
		Err: func(format string, a ...any) error { return fmt.Errorf(format, a...) },
	}
}

// New creates printers, checkers and error constructors for all levels on one writer.
func New(writer io.Writer) (l *Log, c *Check, errorf *Errorf) {
	lw := &lineWriter{w: writer}
	l = &Log{
		T: printer(Trace, lw),
		D: printer(Debug, lw),
		I: printer(Info, lw),
		W: printer(Warn, lw),
		E: printer(Error, lw),
		F: printer(Fatal, lw),
	}
	c = &Check{
		F: l.F.Chk,
		E: l.E.Chk,
		W: l.W.Chk,
		I: l.I.Chk,
		D: l.D.Chk,
		T: l.T.Chk,
	}
	errorf = &Errorf{
		F: l.F.Err,
		E: l.E.Err,
		W: l.W.Err,
		I: l.I.Err,
		D: l.D.Err,
		T: l.T.Err,
	}
	return
}

// TimeStamper generates the timestamp for log lines.
func TimeStamper() (s string) {
	if NoTimeStamp.Load() {
		return
	}
	return time.Now().Format("2006-01-02T15:04:05.000Z07:00 ")
}

// GetLoc returns the file:line of the caller skip frames up.
func GetLoc(skip int) (output string) {
	_, file, line, _ := runtime.Caller(skip)
	return fmt.Sprintf("%s:%d", file, line)
}
