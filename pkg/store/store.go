// Package store is an explicit, caller-owned snapshot cache. The calculation
// engine never reads it; it exists so a caller re-running analyses over the
// same input files can skip re-parsing. Entries are keyed by a content hash
// of the raw file bytes, so an edited file misses naturally; a TTL bounds
// staleness beyond that.
package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/allegro/bigcache/v3"
	"github.com/sirupsen/logrus"
)

type Snapshots struct {
	cache  *bigcache.BigCache
	logger *logrus.Logger
}

func New(ttl time.Duration, logger *logrus.Logger) (*Snapshots, error) {
	if logger == nil {
		logger = logrus.New()
	}
	cfg := bigcache.DefaultConfig(ttl)
	cfg.CleanWindow = time.Minute

	cache, err := bigcache.New(context.Background(), cfg)
	if err != nil {
		return nil, fmt.Errorf("initializing snapshot cache: %w", err)
	}
	return &Snapshots{cache: cache, logger: logger}, nil
}

// Key derives the cache key for a snapshot kind and the raw bytes of its
// source file.
func Key(kind string, raw []byte) string {
	sum := sha256.Sum256(raw)
	return kind + ":" + hex.EncodeToString(sum[:])
}

// Save stores a parsed snapshot under the content hash of its source bytes.
func (s *Snapshots) Save(kind string, raw []byte, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding %s snapshot: %w", kind, err)
	}
	return s.cache.Set(Key(kind, raw), data)
}

// Load fetches a snapshot into out, reporting whether it was present.
func (s *Snapshots) Load(kind string, raw []byte, out any) (bool, error) {
	data, err := s.cache.Get(Key(kind, raw))
	if err != nil {
		if err == bigcache.ErrEntryNotFound {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("decoding %s snapshot: %w", kind, err)
	}
	return true, nil
}

// Invalidate drops every cached snapshot.
func (s *Snapshots) Invalidate() error {
	s.logger.Debug("Invalidating snapshot cache")
	return s.cache.Reset()
}

func (s *Snapshots) Close() error {
	return s.cache.Close()
}
