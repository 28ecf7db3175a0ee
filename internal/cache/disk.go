package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// diskCache persists cache entries as one JSON file per key. Every
// operation is best-effort: an unreadable, stale, or corrupt file is a
// miss, and write failures only warn.
type diskCache struct {
	dir string
	ttl time.Duration
}

// envelope wraps stored records with their fetch time for TTL checks.
type envelope struct {
	FetchedAt time.Time       `json:"fetched_at"`
	Records   json.RawMessage `json:"records"`
}

func newDiskCache(dir string, ttl time.Duration) (*diskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &diskCache{dir: dir, ttl: ttl}, nil
}

// path maps a key to its file. Colons are swapped out so the names stay
// portable.
func (d *diskCache) path(key Key) string {
	name := strings.ReplaceAll(key.String(), ":", "_") + ".json"
	return filepath.Join(d.dir, name)
}

// load reads a key's records into dest. Returns false on any miss: absent,
// stale, or undecodable.
func (d *diskCache) load(key Key, dest any) bool {
	data, err := os.ReadFile(d.path(key))
	if err != nil {
		return false
	}
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return false
	}
	if time.Since(env.FetchedAt) > d.ttl {
		return false
	}
	return json.Unmarshal(env.Records, dest) == nil
}

// save writes a key's records. Failures are logged and swallowed.
func (d *diskCache) save(key Key, records any) {
	raw, err := json.Marshal(records)
	if err != nil {
		log.Warn().Err(err).Str("key", key.String()).Msg("disk cache encode failed")
		return
	}
	data, err := json.Marshal(envelope{FetchedAt: time.Now(), Records: raw})
	if err != nil {
		log.Warn().Err(err).Str("key", key.String()).Msg("disk cache encode failed")
		return
	}
	if err := os.WriteFile(d.path(key), data, 0o644); err != nil {
		log.Warn().Err(err).Str("key", key.String()).Msg("disk cache write failed")
	}
}

// prune removes stale and undecodable entries, returning the count removed.
func (d *diskCache) prune() int {
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		return 0
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(d.dir, entry.Name())
		if d.fresh(path) {
			continue
		}
		if err := os.Remove(path); err == nil {
			removed++
		}
	}
	return removed
}

func (d *diskCache) fresh(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return false
	}
	return time.Since(env.FetchedAt) <= d.ttl
}
