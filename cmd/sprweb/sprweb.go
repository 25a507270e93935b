// Command sprweb serves the sprites in a directory over HTTP.
package main

import (
	"flag"
	"net/http"
	"os"

	"badc0de.net/pkg/flagutil/v1"

	"badc0de.net/pkg/go-goldsrc/paths"
	"badc0de.net/pkg/go-goldsrc/web"

	"github.com/golang/glog"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

var (
	listenAddress = flag.String("listen_address", ":8080", "http listen address for sprweb")
	dir           = flag.String("dir", "", "directory holding the sprites to serve; found via GOLDSRC_SPRITE_PATH and GOLDSRC_DIR if empty")
	gifDelay      = flag.Int("gif_delay", web.GIFDelay, "delay between animation frames, in 100ths of a second")
	accessLog     = flag.Bool("access_log", true, "whether to log requests to stderr")
)

func main() {
	flagutil.Parse()

	if *dir == "" {
		*dir = paths.FindDir()
	}
	web.GIFDelay = *gifDelay

	r := mux.NewRouter()
	web.NewHandler(*dir).RegisterRoutes(r)

	var h http.Handler = handlers.CompressHandler(r)
	if *accessLog {
		h = handlers.LoggingHandler(os.Stderr, h)
	}

	glog.Infof("serving sprites from %s on %s", *dir, *listenAddress)
	glog.Fatal(http.ListenAndServe(*listenAddress, h))
}
