// Command sprprint prints the frames of a GoldSrc sprite on the terminal.
package main

import (
	"flag"
	"fmt"
	"os"

	"badc0de.net/pkg/flagutil/v1"
	"github.com/golang/glog"

	"badc0de.net/pkg/go-goldsrc/paths"
	"badc0de.net/pkg/go-goldsrc/spr"
)

var (
	frame    = flag.Int("frame", 0, "frame to print")
	all      = flag.Bool("all", false, "whether to print all frames instead of just -frame")
	col      = flag.Bool("col", true, "whether to use colors at all")
	col256   = flag.Bool("col256", false, "whether to use 256 col instead of 24 bit")
	iterm    = flag.Bool("iterm", false, "whether to print with iterm escape code instead of 24 bit")
	rasterm  = flag.Bool("rasterm", false, "whether to print with kitty, iterm or sixel escapes, whichever the terminal supports")
	blanks   = flag.Bool("blanks", true, "whether to just use colored blanks instead of some bad ascii art")
	downsize = flag.Bool("downsize", false, "whether to shrink frames to fit the terminal")

	sprPath string
)

func main() {
	paths.SetupFilePathFlag("640hud1.spr", "spr", &sprPath)
	flagutil.Parse()
	flag.Set("logtostderr", "true")

	if flag.NArg() > 0 {
		sprPath = flag.Arg(0)
	}
	if sprPath == "" {
		glog.Errorf("no sprite given; pass -spr or a path")
		os.Exit(2)
	}

	f, err := paths.Open(sprPath)
	if err != nil {
		glog.Errorf("error opening spr: %v", err)
		os.Exit(1)
	}
	s, err := spr.Decode(f)
	f.Close()
	if err != nil {
		glog.Errorf("error decoding spr: %v", err)
		os.Exit(1)
	}

	if !*all {
		if err := out(s, *frame); err != nil {
			glog.Errorf("error printing frame %d: %v", *frame, err)
			os.Exit(1)
		}
		return
	}
	for i := range s.Frames {
		fmt.Printf("frame %d (group %d, origin %d,%d)\n", i, s.Frames[i].Group, s.Frames[i].OriginX, s.Frames[i].OriginY)
		if err := out(s, i); err != nil {
			glog.Errorf("error printing frame %d: %v", i, err)
			os.Exit(1)
		}
	}
}
