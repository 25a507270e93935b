package paths

import (
	"bytes"
	"io"
	"net/http"
	"os"
	"sync"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

var (
	// HTTPClient is used to fetch URLs passed to Open and NoFindOpen.
	HTTPClient = http.DefaultClient

	cache     = map[string][]byte{}
	cacheLock sync.Mutex
)

type bytesReaderWithDummyClose struct {
	*bytes.Reader
}

func (bytesReaderWithDummyClose) Close() error {
	return nil
}

// openHTTP fetches url into memory so that the result can be seeked. Bodies
// are cached for the lifetime of the process.
func openHTTP(url string) (io.ReadSeekCloser, error) {
	cacheLock.Lock()
	buf, ok := cache[url]
	cacheLock.Unlock()
	if ok {
		glog.V(2).Infof("paths: %q served from cache", url)
		return bytesReaderWithDummyClose{bytes.NewReader(buf)}, nil
	}

	glog.V(1).Infof("paths: fetching %q", url)
	response, err := HTTPClient.Get(url)
	if err != nil {
		return nil, errors.Wrapf(err, "paths: fetching %q", url)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		e := os.ErrInvalid
		if response.StatusCode == http.StatusNotFound {
			e = os.ErrNotExist
		}
		return nil, errors.Wrapf(e, "paths: fetching %q: http response.StatusCode=%v, want 200", url, response.StatusCode)
	}

	b, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, errors.Wrap(err, "copying response to seekable buffer")
	}

	cacheLock.Lock()
	cache[url] = b
	cacheLock.Unlock()
	return bytesReaderWithDummyClose{bytes.NewReader(b)}, nil
}
