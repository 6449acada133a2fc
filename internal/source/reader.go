package source

import (
	"io/ioutil"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	fetchTimeout = 10 * time.Second
)

// Reader obtains raw workspace JSON from a local path or an http(s) URL.
type Reader struct {
	client *http.Client
}

func NewReader() *Reader {
	return &Reader{
		client: &http.Client{Timeout: fetchTimeout},
	}
}

func (r *Reader) Read(source string) ([]byte, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return r.fetchURL(source)
	}

	return r.readFile(source)
}

func (r *Reader) readFile(path string) ([]byte, error) {
	log.Debugf("reading structurizr workspace from %s", path)

	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "unable to read structurizr workspace file")
	}

	return data, nil
}

func (r *Reader) fetchURL(url string) ([]byte, error) {
	log.Debugf("fetching structurizr workspace from %s", url)

	resp, err := r.client.Get(url)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch structurizr workspace from url")
	}

	defer func() {
		closeErr := resp.Body.Close()
		if closeErr != nil {
			log.Warn(closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("got status %d fetching structurizr workspace from %s", resp.StatusCode, url)
	}

	data, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "unable to read structurizr workspace response")
	}

	return data, nil
}
