//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris

package main

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strconv"

	"github.com/golang/glog"
	"golang.org/x/crypto/ssh/terminal"
	"golang.org/x/sys/unix"
)

// TermSize is the size of the controlling terminal, in cells and, where
// the terminal reports it, in pixels.
type TermSize struct {
	Cols, Rows     uint
	XPixel, YPixel uint
}

// kittyReply is the answer to CSI 14 t: <ESC>[4;<height>;<width>t
var kittyReply = regexp.MustCompile(`\[4;(\d+);(\d+)t`)

// kittyPixels asks the terminal on tty for its size in pixels. It blocks
// until the terminal replies.
//
// https://sw.kovidgoyal.net/kitty/graphics-protocol/#getting-the-window-size
func kittyPixels(tty *os.File) (w, h int, ok bool) {
	state, err := terminal.MakeRaw(int(tty.Fd()))
	if err != nil {
		glog.V(1).Infof("could not switch terminal to raw mode: %v", err)
		return 0, 0, false
	}
	defer terminal.Restore(int(tty.Fd()), state)

	if _, err := fmt.Fprint(tty, "\033[14t"); err != nil {
		return 0, 0, false
	}
	reply, err := bufio.NewReader(tty).ReadString('t')
	if err != nil {
		glog.V(1).Infof("no reply to pixel size query: %v", err)
		return 0, 0, false
	}
	m := kittyReply.FindStringSubmatch(reply)
	if m == nil {
		return 0, 0, false
	}
	h, errH := strconv.Atoi(m[1])
	w, errW := strconv.Atoi(m[2])
	return w, h, errH == nil && errW == nil
}

// GetTermSize queries the terminal size, preferring /dev/tty and falling
// back to standard input.
func GetTermSize() (TermSize, error) {
	tty, err := os.OpenFile("/dev/tty", unix.O_NOCTTY|unix.O_CLOEXEC|unix.O_RDWR, 0666)
	if err == nil {
		defer tty.Close()
		sz, err := unix.IoctlGetWinsize(int(tty.Fd()), unix.TIOCGWINSZ)
		if err == nil {
			ts := TermSize{Cols: uint(sz.Col), Rows: uint(sz.Row), XPixel: uint(sz.Xpixel), YPixel: uint(sz.Ypixel)}
			if ts.XPixel == 0 && ts.YPixel == 0 && os.Getenv("TERM") == "xterm-kitty" {
				if w, h, ok := kittyPixels(tty); ok {
					ts.XPixel, ts.YPixel = uint(w), uint(h)
				}
			}
			return ts, nil
		}
		glog.V(1).Infof("TIOCGWINSZ on /dev/tty: %v", err)
	}

	w, h, err := terminal.GetSize(int(os.Stdin.Fd()))
	if err != nil {
		return TermSize{}, err
	}
	return TermSize{Cols: uint(w), Rows: uint(h)}, nil
}
