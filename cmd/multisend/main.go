package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/iov-one/multisend"
	"github.com/iov-one/multisend/errors"
)

// commands is a register of all available commands that can be executed by
// this program. The name is used to match with the first argument given.
//
// When a cmd function is called it is given stdin, stdout and command line
// arguments except the program name and this command name. It is the
// responsibility of the command function to parse the arguments. Logs are
// written to os.Stderr.
//
// A command function is expected to read and write only to provided input and
// output. In a special case of an invalid argument a message to os.Stderr and
// os.Exit(2) call are allowed.
//
// Commands can be combined into a pipeline. For example, to build a cascade
// and inspect what was built:
//
//   $ multisend build -remainder 0x... < payouts.json \
//       | multisend view
//
var commands = map[string]func(input io.Reader, output io.Writer, args []string) error{
	"build":   cmdBuild,
	"convert": cmdConvert,
	"verify":  cmdVerify,
	"version": cmdVersion,
	"view":    cmdView,
}

func main() {
	if len(os.Args) == 1 {
		fmt.Fprintf(os.Stderr, "%s builds self funding payout distribution transactions.\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Usage: %s <command> [<flags>]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nAvailable commands are:\n\t%s\n", strings.Join(availableCmds(), "\n\t"))
		fmt.Fprintf(os.Stderr, "Run '%s <command> -help' to learn more about each command.\n", os.Args[0])
		os.Exit(2)
	}
	run, ok := commands[os.Args[1]]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command %q\n", os.Args[1])
		fmt.Fprintf(os.Stderr, "\nAvailable commands are:\n\t%s\n", strings.Join(availableCmds(), "\n\t"))
		os.Exit(2)
	}

	// Skip two first arguments. Second argument is the command name that
	// we just consumed.
	if err := run(os.Stdin, os.Stdout, os.Args[2:]); err != nil {
		os.Exit(reportError(os.Stderr, err, env(envDebug, "") != ""))
	}
}

// reportError writes a description of given error and returns the exit code
// the program should terminate with. Stack traces and messages of
// unclassified errors are written only in debug mode.
func reportError(w io.Writer, err error, debug bool) int {
	code, msg := errors.Describe(err, debug)
	if debug {
		fmt.Fprintf(w, "error %d: %s\n", code, msg)
	} else {
		fmt.Fprintln(w, msg)
	}
	return errors.ExitCode(err)
}

func availableCmds() []string {
	available := make([]string, 0, len(commands))
	for name := range commands {
		available = append(available, name)
	}
	sort.Strings(available)
	return available
}

func cmdVersion(in io.Reader, out io.Writer, args []string) error {
	fmt.Fprintln(out, multisend.Version())
	return nil
}
