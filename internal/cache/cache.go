// Package cache keeps fetched data for the lifetime of a session so
// repeated requests for the same symbol cost no provider calls. Entries
// hold the provider's full reporting depth; the service layer truncates to
// the requested year count on every read. An optional disk layer survives
// process restarts and seeds the session store on first access.
package cache

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/finsheet/finsheet/pkg/models"
)

// datasetPrice is the dataset name for year-end closing prices.
const datasetPrice = "price"

// DefaultDiskTTL is how long a disk entry stays fresh.
const DefaultDiskTTL = 24 * time.Hour

// Key identifies one cached dataset. Statements use the statement type as
// the dataset; prices use "price".
type Key struct {
	Symbol  string
	Report  models.ReportType
	Dataset string
}

func (k Key) String() string {
	return fmt.Sprintf("%s:%s:%s", k.Symbol, k.Report, k.Dataset)
}

// StatementKey builds the cache key for one statement type.
func StatementKey(symbol string, report models.ReportType, st models.StatementType) Key {
	return Key{Symbol: symbol, Report: report, Dataset: string(st)}
}

// PriceKey builds the cache key for year-end prices.
func PriceKey(symbol string, report models.ReportType) Key {
	return Key{Symbol: symbol, Report: report, Dataset: datasetPrice}
}

// Options configures a Store.
type Options struct {
	DiskDir string        // empty disables the disk layer
	DiskTTL time.Duration // zero means DefaultDiskTTL
}

// Store is the session cache. Writes replace whole values; entries never
// expire within a session. Callers must not modify returned slices.
type Store struct {
	mu         sync.RWMutex
	statements map[Key][]models.StatementRecord
	prices     map[Key][]models.PriceRecord
	disk       *diskCache
}

// NewStore creates a session store. A disk dir that cannot be created
// degrades to memory-only with a warning; the cache is an optimization,
// never a reason to fail.
func NewStore(opts Options) *Store {
	s := &Store{
		statements: make(map[Key][]models.StatementRecord),
		prices:     make(map[Key][]models.PriceRecord),
	}
	if opts.DiskDir != "" {
		ttl := opts.DiskTTL
		if ttl <= 0 {
			ttl = DefaultDiskTTL
		}
		disk, err := newDiskCache(opts.DiskDir, ttl)
		if err != nil {
			log.Warn().Err(err).Str("dir", opts.DiskDir).Msg("disk cache disabled")
		} else {
			s.disk = disk
		}
	}
	return s
}

// GetStatements returns the cached records for a key, consulting the disk
// layer on a session miss.
func (s *Store) GetStatements(key Key) ([]models.StatementRecord, bool) {
	s.mu.RLock()
	recs, ok := s.statements[key]
	s.mu.RUnlock()
	if ok {
		return recs, true
	}
	if s.disk == nil {
		return nil, false
	}

	var fromDisk []models.StatementRecord
	if !s.disk.load(key, &fromDisk) {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	// Another goroutine may have filled the entry while we read the file.
	if cur, ok := s.statements[key]; ok {
		return cur, true
	}
	s.statements[key] = fromDisk
	return fromDisk, true
}

// PutStatements replaces the cached records for a key.
func (s *Store) PutStatements(key Key, records []models.StatementRecord) {
	s.mu.Lock()
	s.statements[key] = records
	s.mu.Unlock()
	if s.disk != nil {
		s.disk.save(key, records)
	}
}

// GetPrices returns the cached price records for a key, consulting the
// disk layer on a session miss.
func (s *Store) GetPrices(key Key) ([]models.PriceRecord, bool) {
	s.mu.RLock()
	recs, ok := s.prices[key]
	s.mu.RUnlock()
	if ok {
		return recs, true
	}
	if s.disk == nil {
		return nil, false
	}

	var fromDisk []models.PriceRecord
	if !s.disk.load(key, &fromDisk) {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if cur, ok := s.prices[key]; ok {
		return cur, true
	}
	s.prices[key] = fromDisk
	return fromDisk, true
}

// PutPrices replaces the cached price records for a key.
func (s *Store) PutPrices(key Key, records []models.PriceRecord) {
	s.mu.Lock()
	s.prices[key] = records
	s.mu.Unlock()
	if s.disk != nil {
		s.disk.save(key, records)
	}
}

// PruneDisk removes stale and unreadable disk entries. Returns how many
// files were removed.
func (s *Store) PruneDisk() int {
	if s.disk == nil {
		return 0
	}
	return s.disk.prune()
}
