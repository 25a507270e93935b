package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"badc0de.net/pkg/go-goldsrc/convert"
)

func runDupes(args []string, stdout io.Writer) error {
	fs := newFlagSet("dupes", "FILE", os.Stderr)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errUsage
	}

	s, err := loadSprite(fs.Arg(0))
	if err != nil {
		return err
	}
	groups := convert.DuplicateFrames(s)
	if len(groups) == 0 {
		fmt.Fprintf(stdout, "%s: no duplicate frames\n", fs.Arg(0))
		return nil
	}
	for _, g := range groups {
		idx := make([]string, len(g))
		for i, n := range g {
			idx[i] = strconv.Itoa(n)
		}
		fmt.Fprintf(stdout, "%s: frames %s are identical\n", fs.Arg(0), strings.Join(idx, ", "))
	}
	return nil
}
