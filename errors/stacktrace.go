package errors

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/pkg/errors"
)

type stackTracer interface {
	error
	StackTrace() errors.StackTrace
}

// stackTrace returns the first found stack trace frame carried by given error
// or any wrapped error. It returns nil if no stack trace is found.
func stackTrace(err error) errors.StackTrace {
	for {
		if st, ok := err.(stackTracer); ok {
			return st.StackTrace()
		}

		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return nil
		}
	}
}

// Format implements fmt.Formatter. The %+v verb prints the full stack trace
// of where the error was created, %v appends a compact [file:line] reference.
func (e *wrappedError) Format(s fmt.State, verb rune) {
	if verb != 'v' {
		fmt.Fprint(s, e.Error())
		return
	}

	stack := trimInternal(stackTrace(e))
	if s.Flag('+') {
		fmt.Fprintf(s, "%+v\n", stack)
		fmt.Fprint(s, e.Error())
		return
	}
	fmt.Fprint(s, e.Error())
	if len(stack) > 0 {
		writeSimpleFrame(s, stack[0])
	}
}

// trimInternal removes the wrapping helpers from the top and the runtime
// frames from the bottom of the stack.
func trimInternal(st errors.StackTrace) errors.StackTrace {
	for len(st) > 0 && isWrapFunc(funcName(st[0])) {
		st = st[1:]
	}
	for len(st) > 0 && strings.HasPrefix(funcName(st[len(st)-1]), "runtime.") {
		st = st[:len(st)-1]
	}
	return st
}

func isWrapFunc(name string) bool {
	const pkg = "github.com/iov-one/multisend/errors."
	if !strings.HasPrefix(name, pkg) {
		return false
	}
	switch strings.TrimPrefix(name, pkg) {
	case "Wrap", "Wrapf", "Field", "Recover", "(*Error).New", "(*Error).Newf":
		return true
	}
	return false
}

func funcName(f errors.Frame) string {
	fn := runtime.FuncForPC(uintptr(f) - 1)
	if fn == nil {
		return ""
	}
	return fn.Name()
}

func writeSimpleFrame(w io.Writer, f errors.Frame) {
	file, line := fileLine(f)
	// Cut the path to the last two elements, ie. the package directory
	// and the file name.
	chunks := strings.Split(file, "/")
	if n := len(chunks); n > 2 {
		file = strings.Join(chunks[n-2:], "/")
	}
	fmt.Fprintf(w, " [%s:%d]", file, line)
}

func fileLine(f errors.Frame) (string, int) {
	fn := runtime.FuncForPC(uintptr(f) - 1)
	if fn == nil {
		return "unknown", 0
	}
	return fn.FileLine(uintptr(f) - 1)
}
