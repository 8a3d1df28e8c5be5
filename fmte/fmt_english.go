package fmte

import (
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var p *message.Printer

var mx sync.Mutex // Shared mutex across stdout and stderr to ensure ordering across

var normalPrint = true

var verbosePrint = false

var out io.Writer = os.Stdout

var errOut io.Writer = os.Stderr

var (
	dirColor  = color.New(color.FgBlue, color.Bold)
	warnColor = color.New(color.FgYellow)
	errColor  = color.New(color.FgRed)
)

func init() {
	p = message.NewPrinter(language.English)
	setColors(isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()))
}

func setColors(on bool) {
	for _, c := range []*color.Color{dirColor, warnColor, errColor} {
		if on {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
}

// SetOutput redirects normal and error output. Colors are turned off, as the
// writers are no terminals.
func SetOutput(stdout, stderr io.Writer) {
	mx.Lock()
	out, errOut = stdout, stderr
	setColors(false)
	mx.Unlock()
}

// Off function turns off print functions within fmte package
func Off() {
	normalPrint = false
}

// VerboseOn turns on verbose print functions within fmte package
func VerboseOn() {
	verbosePrint = true
}

// PrintfV is goroutine-safe fmt.Printf for English (Verbose mode)
func PrintfV(format string, a ...any) {
	if normalPrint && verbosePrint {
		mx.Lock()
		_, _ = p.Fprintf(out, format, a...)
		mx.Unlock()
	}
}

// PrintMatch prints one search result per line, directories highlighted.
// Results are printed even when normal printing is off.
func PrintMatch(path string, isDir bool) {
	mx.Lock()
	if isDir {
		_, _ = dirColor.Fprintln(out, path)
	} else {
		_, _ = io.WriteString(out, path+"\n")
	}
	mx.Unlock()
}

// PrintfWarn is goroutine-safe fmt.Printf to StdErr for English, in yellow
func PrintfWarn(format string, a ...any) {
	mx.Lock()
	_, _ = warnColor.Fprint(errOut, p.Sprintf(format, a...))
	mx.Unlock()
}

// PrintfErr is goroutine-safe fmt.Printf to StdErr for English, in red
func PrintfErr(format string, a ...any) {
	mx.Lock()
	_, _ = errColor.Fprint(errOut, p.Sprintf(format, a...))
	mx.Unlock()
}

// Sprintf is fmt.Sprintf for English
func Sprintf(format string, a ...any) string {
	return p.Sprintf(format, a...)
}
