package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("component", "cache")

// Store memoizes external-call results on disk, content-addressed by a hash
// of the call name and a stable serialization of its arguments.
type Store struct {
	dir string
}

func New(dir string) *Store { return &Store{dir: dir} }

// Do returns the cached result for (name, args) if present, otherwise calls
// fn, caches its result, and returns it. Errors from fn are never cached.
func Do[T any](s *Store, name string, args []any, fn func() (T, error)) (T, error) {
	var zero T
	path, err := s.path(name, args)
	if err != nil {
		return zero, err
	}
	if data, err := os.ReadFile(path); err == nil {
		log.WithField("file", path).Debug("cache hit")
		var out T
		if err := json.Unmarshal(data, &out); err == nil {
			return out, nil
		}
		// Unreadable entry behaves like a miss.
		log.WithField("file", path).Warn("discarding corrupt cache entry")
	}

	log.WithField("file", path).Debug("cache miss, making new request")
	out, err := fn()
	if err != nil {
		return zero, err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return zero, err
	}
	data, err := json.Marshal(out)
	if err != nil {
		return zero, err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return zero, err
	}
	return out, nil
}

// Invalidate removes the cached entry for (name, args), if any.
func (s *Store) Invalidate(name string, args ...any) error {
	path, err := s.path(name, args)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *Store) path(name string, args []any) (string, error) {
	key, err := Key(name, args...)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.dir, fmt.Sprintf("%s_%s.json", name, key)), nil
}

// Key hashes the call name and its arguments into a stable hex digest.
func Key(name string, args ...any) (string, error) {
	h := sha256.New()
	h.Write([]byte(name))
	for _, a := range args {
		b, err := json.Marshal(a)
		if err != nil {
			return "", fmt.Errorf("cache key for %s: %w", name, err)
		}
		h.Write([]byte{'-'})
		h.Write(b)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
