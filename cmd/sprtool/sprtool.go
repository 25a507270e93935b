// Command sprtool inspects, exports and builds GoldSrc sprites.
//
//	sprtool info FILE...
//	sprtool export -out DIR [-gif] FILE
//	sprtool build -o OUT MANIFEST
//	sprtool radius [-n] FILE
//	sprtool dupes FILE
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"badc0de.net/pkg/flagutil/v1"
	"github.com/common-nighthawk/go-figure"
	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// errUsage is returned for bad command lines; the usage has been printed.
var errUsage = errors.New("usage error")

type command struct {
	name, args, help string
	run              func(args []string, stdout io.Writer) error
}

var commands []command

func init() {
	commands = []command{
		{"info", "FILE...", "print header and frame geometry of each sprite", runInfo},
		{"export", "-out DIR [-gif] FILE", "write frames as PNG plus a manifest to rebuild the sprite", runExport},
		{"build", "-o OUT MANIFEST", "build a sprite from a manifest", runBuild},
		{"radius", "[-n] FILE", "recompute and store the bounding radius", runRadius},
		{"dupes", "FILE", "list frames with identical pixels", runDupes},
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, figure.NewFigure("sprtool", "standard", true).String())
	fmt.Fprintf(w, "usage: sprtool [flags] COMMAND [args]\n\ncommands:\n")
	for _, c := range commands {
		fmt.Fprintf(w, "  %s %s\n    \t%s\n", c.name, c.args, c.help)
	}
	fmt.Fprintf(w, "\nflags:\n")
	flag.CommandLine.SetOutput(w)
	flag.PrintDefaults()
}

// newFlagSet returns a flag set for a subcommand that reports bad flags as
// errUsage.
func newFlagSet(name, args string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: sprtool %s %s\n", name, args)
		fs.PrintDefaults()
	}
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	return nil
}

func run(args []string, stdout io.Writer) error {
	if len(args) == 0 {
		usage(os.Stderr)
		return errUsage
	}
	for _, c := range commands {
		if c.name == args[0] {
			return c.run(args[1:], stdout)
		}
	}
	fmt.Fprintf(os.Stderr, "unknown command %q\n\n", args[0])
	usage(os.Stderr)
	return errUsage
}

func main() {
	flag.Usage = func() { usage(os.Stderr) }
	flagutil.Parse()
	flag.Set("logtostderr", "true")

	if err := run(flag.Args(), os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		glog.Errorf("sprtool: %v", err)
		os.Exit(1)
	}
}
