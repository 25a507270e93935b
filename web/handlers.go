// Package web serves the sprites in a directory over HTTP: an index page,
// per-sprite JSON summaries, frames as PNG and animations as GIF.
package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang/glog"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/vincent-petithory/dataurl"

	"badc0de.net/pkg/go-goldsrc/convert"
	"badc0de.net/pkg/go-goldsrc/spr"
)

// errBadName is returned for sprite names that would escape the served
// directory.
var errBadName = errors.New("web: bad sprite name")

// GIFDelay is the per-frame delay of served animations, in 100ths of a
// second.
var GIFDelay = 10

type cacheEntry struct {
	modTime time.Time
	size    int64
	s       *spr.Sprite
}

// Handler serves the sprites stored in one directory.
type Handler struct {
	dir string

	cacheLock sync.Mutex
	cache     map[string]*cacheEntry
}

// NewHandler constructs a web handler for the .spr files in dir.
func NewHandler(dir string) *Handler {
	return &Handler{
		dir:   dir,
		cache: make(map[string]*cacheEntry),
	}
}

func (h *Handler) path(name string) (string, error) {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", errors.Wrapf(errBadName, "%q", name)
	}
	return filepath.Join(h.dir, name), nil
}

// sprite returns the decoded sprite stored under name, decoding it again
// only when the file changed since it was last seen. Returned sprites are
// shared and must not be modified.
func (h *Handler) sprite(name string) (*spr.Sprite, os.FileInfo, error) {
	path, err := h.path(name)
	if err != nil {
		return nil, nil, err
	}
	fi, err := os.Stat(path)
	if err != nil {
		return nil, nil, err
	}

	h.cacheLock.Lock()
	defer h.cacheLock.Unlock()
	if e, ok := h.cache[name]; ok && e.modTime.Equal(fi.ModTime()) && e.size == fi.Size() {
		return e.s, fi, nil
	}
	s, err := spr.Load(path)
	if err != nil {
		delete(h.cache, name)
		return nil, nil, err
	}
	glog.V(1).Infof("decoded %s: %d frames", path, len(s.Frames))
	h.cache[name] = &cacheEntry{modTime: fi.ModTime(), size: fi.Size(), s: s}
	return s, fi, nil
}

// spriteOrError looks up the sprite named in the request, reporting any
// failure to the client. It returns nil when the request was already
// answered.
func (h *Handler) spriteOrError(w http.ResponseWriter, r *http.Request) (*spr.Sprite, os.FileInfo) {
	name := mux.Vars(r)["name"]
	s, fi, err := h.sprite(name)
	switch {
	case err == nil:
		return s, fi
	case errors.Is(err, errBadName):
		http.Error(w, "bad sprite name", http.StatusBadRequest)
	case errors.Is(err, os.ErrNotExist):
		http.Error(w, "no such sprite", http.StatusNotFound)
	default:
		http.Error(w, "failed to decode spr", http.StatusInternalServerError)
		glog.Errorf("error decoding spr %q: %v", name, err)
	}
	return nil, nil
}

// notModified sets caching headers and, if the client already has the
// resource, answers the request.
func notModified(w http.ResponseWriter, r *http.Request, fi os.FileInfo, etag string) bool {
	w.Header().Set("Cache-Control", "public; max-age=3600")
	w.Header().Set("ETag", etag)
	w.Header().Set("Last-Modified", fi.ModTime().UTC().Format(http.TimeFormat))
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return true
	}
	return false
}

func etag(kind string, fi os.FileInfo, extra ...interface{}) string {
	generation := 1 // bump if the way we generate it changes
	return fmt.Sprintf(`W/"%s:%d:%s:%x:%d:%v"`, kind, generation, fi.Name(), fi.ModTime().UnixNano(), fi.Size(), extra)
}

type frameInfo struct {
	Group   int32 `json:"group"`
	OriginX int32 `json:"origin_x"`
	OriginY int32 `json:"origin_y"`
	Width   int32 `json:"width"`
	Height  int32 `json:"height"`
}

type spriteInfo struct {
	Name            string              `json:"name"`
	Type            spr.Orientation     `json:"type"`
	TextureFormat   spr.TextureFormat   `json:"texture_format"`
	Synchronization spr.Synchronization `json:"synchronization"`
	BoundingRadius  float32             `json:"bounding_radius"`
	BeamLength      float32             `json:"beam_length"`
	MaxWidth        int32               `json:"max_width"`
	MaxHeight       int32               `json:"max_height"`
	PaletteSize     int                 `json:"palette_size"`
	Frames          []frameInfo         `json:"frames"`
}

func (h *Handler) infoHandler(w http.ResponseWriter, r *http.Request) {
	s, fi := h.spriteOrError(w, r)
	if s == nil {
		return
	}
	info := spriteInfo{
		Name:            fi.Name(),
		Type:            s.Type,
		TextureFormat:   s.TextureFormat,
		Synchronization: s.Synchronization,
		BoundingRadius:  s.BoundingRadius,
		BeamLength:      s.BeamLength,
		MaxWidth:        s.MaxWidth(),
		MaxHeight:       s.MaxHeight(),
		PaletteSize:     len(s.Palette),
		Frames:          make([]frameInfo, 0, len(s.Frames)),
	}
	for _, f := range s.Frames {
		info.Frames = append(info.Frames, frameInfo{
			Group:   f.Group,
			OriginX: f.OriginX,
			OriginY: f.OriginY,
			Width:   f.Width(),
			Height:  f.Height(),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(&info); err != nil {
		glog.Errorf("error writing sprite info: %v", err)
	}
}

func (h *Handler) frameHandler(w http.ResponseWriter, r *http.Request) {
	idx, err := strconv.Atoi(mux.Vars(r)["frame"])
	if err != nil {
		http.Error(w, "frame not a number", http.StatusBadRequest)
		return
	}
	s, fi := h.spriteOrError(w, r)
	if s == nil {
		return
	}
	if idx >= len(s.Frames) {
		http.Error(w, "no such frame", http.StatusNotFound)
		return
	}

	mime := "image/png"
	if notModified(w, r, fi, etag("frame", fi, idx, mime)) {
		return
	}
	buf := &bytes.Buffer{}
	if err := convert.WritePNG(buf, s, idx); err != nil {
		http.Error(w, "failed to encode frame", http.StatusInternalServerError)
		glog.Errorf("error encoding frame %d of %s: %v", idx, fi.Name(), err)
		return
	}
	w.Header().Set("Content-Type", mime)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func (h *Handler) gifHandler(w http.ResponseWriter, r *http.Request) {
	s, fi := h.spriteOrError(w, r)
	if s == nil {
		return
	}

	mime := "image/gif"
	if notModified(w, r, fi, etag("gif", fi, GIFDelay, mime)) {
		return
	}
	buf := &bytes.Buffer{}
	if err := convert.WriteGIF(buf, s, GIFDelay); err != nil {
		if errors.Is(err, convert.ErrNoFrames) {
			http.Error(w, "sprite has nothing to animate", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to encode animation", http.StatusInternalServerError)
		glog.Errorf("error encoding animation of %s: %v", fi.Name(), err)
		return
	}
	w.Header().Set("Content-Type", mime)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

type indexEntry struct {
	Name      string
	Frames    int
	Thumbnail template.URL
	Error     string
}

func (h *Handler) thumbnail(s *spr.Sprite) (template.URL, error) {
	if len(s.Frames) == 0 {
		return "", nil
	}
	buf := &bytes.Buffer{}
	if err := convert.WritePNG(buf, s, 0); err != nil {
		return "", err
	}
	return template.URL(dataurl.New(buf.Bytes(), "image/png").String()), nil
}

func (h *Handler) indexHandler(w http.ResponseWriter, r *http.Request) {
	des, err := os.ReadDir(h.dir)
	if err != nil {
		http.Error(w, "failed to list sprites", http.StatusInternalServerError)
		glog.Errorf("error listing %s: %v", h.dir, err)
		return
	}

	var entries []indexEntry
	for _, de := range des {
		if de.IsDir() || !strings.EqualFold(filepath.Ext(de.Name()), ".spr") {
			continue
		}
		e := indexEntry{Name: de.Name()}
		s, _, err := h.sprite(de.Name())
		if err == nil {
			e.Frames = len(s.Frames)
			e.Thumbnail, err = h.thumbnail(s)
		}
		if err != nil {
			e.Error = err.Error()
		}
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })

	buf := &bytes.Buffer{}
	if err := indexTemplate.Execute(buf, struct {
		Dir     string
		Sprites []indexEntry
	}{h.dir, entries}); err != nil {
		http.Error(w, "failed to render index", http.StatusInternalServerError)
		glog.Errorf("error rendering index: %v", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// RegisterRoutes adds the sprite routes to r.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/", h.indexHandler).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/spr/{name}/{frame:[0-9]+}.png", h.frameHandler).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/spr/{name}.gif", h.gifHandler).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/spr/{name}", h.infoHandler).Methods(http.MethodGet, http.MethodHead)
}
