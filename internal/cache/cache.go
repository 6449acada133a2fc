package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"io/ioutil"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	keyLength = 16

	cacheFileExt = ".json"
)

// Key derives a cache key from the config path and the workspace source,
// so two configs pointing at different sources never share an entry.
func Key(configPath, source string) string {
	sum := sha256.Sum256([]byte(configPath + "\n" + source))

	return hex.EncodeToString(sum[:])[:keyLength]
}

// Store is a file backed cache of raw workspace exports.
type Store struct {
	dir string
	ttl time.Duration
}

func New(dir string, ttl time.Duration) *Store {
	return &Store{
		dir: dir,
		ttl: ttl,
	}
}

// Get returns the cached bytes for key, or false on a miss or an
// expired entry.
func (s *Store) Get(key string) ([]byte, bool) {
	path := s.entryPath(key)

	info, err := os.Stat(path)
	if err != nil {
		return nil, false
	}

	if s.ttl > 0 && time.Since(info.ModTime()) > s.ttl {
		log.Debugf("cache entry %s expired", key)

		return nil, false
	}

	data, err := ioutil.ReadFile(path)
	if err != nil {
		log.Warn(err)

		return nil, false
	}

	log.Debugf("cache hit for %s", key)

	return data, true
}

func (s *Store) Put(key string, data []byte) error {
	err := os.MkdirAll(s.dir, 0o755)
	if err != nil {
		return errors.Wrap(err, "unable to create workspace cache dir")
	}

	err = ioutil.WriteFile(s.entryPath(key), data, 0o644)
	if err != nil {
		return errors.Wrap(err, "unable to write workspace cache entry")
	}

	return nil
}

func (s *Store) entryPath(key string) string {
	return filepath.Join(s.dir, key+cacheFileExt)
}
