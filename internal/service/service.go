// Package service orchestrates fetching: cache consultation, collapsing of
// identical in-flight requests, and the concurrent assembly of export
// bundles.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/finsheet/finsheet/internal/cache"
	"github.com/finsheet/finsheet/internal/provider"
	"github.com/finsheet/finsheet/pkg/models"
)

// Service coordinates the statement and price sources behind the session
// cache. Identical concurrent fetches collapse into one provider call.
type Service struct {
	statements provider.StatementSource
	prices     provider.PriceSource
	store      *cache.Store
	flight     singleflight.Group
}

// New creates a Service.
func New(statements provider.StatementSource, prices provider.PriceSource, store *cache.Store) *Service {
	return &Service{statements: statements, prices: prices, store: store}
}

// Statements returns up to req.Years records of one statement type, newest
// first. The cache keeps the provider's full depth and truncation happens
// on every read, so one deep fetch serves later shallower requests. Failed
// fetches are never cached.
func (s *Service) Statements(ctx context.Context, req models.FetchRequest, st models.StatementType) ([]models.StatementRecord, error) {
	key := cache.StatementKey(req.Symbol, req.Report, st)
	if records, ok := s.store.GetStatements(key); ok {
		return truncate(records, req.Years), nil
	}

	v, err, _ := s.flight.Do(key.String(), func() (any, error) {
		// A concurrent flight may have landed while we queued.
		if records, ok := s.store.GetStatements(key); ok {
			return records, nil
		}
		records, err := s.statements.FetchStatement(ctx, req.Symbol, st, req.Report)
		if err != nil {
			return nil, err
		}
		s.store.PutStatements(key, records)
		return records, nil
	})
	if err != nil {
		return nil, err
	}
	return truncate(v.([]models.StatementRecord), req.Years), nil
}

// Prices returns up to req.Years year-end closes, newest first.
func (s *Service) Prices(ctx context.Context, req models.FetchRequest) ([]models.PriceRecord, error) {
	key := cache.PriceKey(req.Symbol, req.Report)
	if records, ok := s.store.GetPrices(key); ok {
		return truncatePrices(records, req.Years), nil
	}

	v, err, _ := s.flight.Do(key.String(), func() (any, error) {
		if records, ok := s.store.GetPrices(key); ok {
			return records, nil
		}
		records, err := s.prices.FetchPrices(ctx, req.Symbol)
		if err != nil {
			return nil, err
		}
		s.store.PutPrices(key, records)
		return records, nil
	})
	if err != nil {
		return nil, err
	}
	return truncatePrices(v.([]models.PriceRecord), req.Years), nil
}

// Bundle assembles everything one export needs: the three statements plus
// year-end prices, fetched concurrently. A failed dataset is logged and
// left empty; Bundle errors only when every dataset failed.
func (s *Service) Bundle(ctx context.Context, req models.FetchRequest) (*models.ExportBundle, error) {
	bundle := &models.ExportBundle{
		Symbol:     req.Symbol,
		Report:     req.Report,
		Statements: make(map[models.StatementType][]models.StatementRecord, len(models.AllStatementTypes())),
	}
	datasets := len(models.AllStatementTypes()) + 1

	var mu sync.Mutex
	var errs []error

	g, gctx := errgroup.WithContext(ctx)

	for _, st := range models.AllStatementTypes() {
		st := st
		g.Go(func() error {
			records, err := s.Statements(gctx, req, st)
			if err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", st, err))
				mu.Unlock()
				log.Warn().
					Str("symbol", req.Symbol).
					Str("statement", string(st)).
					Err(err).
					Msg("statement fetch failed")
				return nil // non-fatal
			}
			mu.Lock()
			bundle.Statements[st] = records
			mu.Unlock()
			return nil
		})
	}

	g.Go(func() error {
		records, err := s.Prices(gctx, req)
		if err != nil {
			mu.Lock()
			errs = append(errs, fmt.Errorf("prices: %w", err))
			mu.Unlock()
			log.Warn().Str("symbol", req.Symbol).Err(err).Msg("price fetch failed")
			return nil
		}
		mu.Lock()
		bundle.Prices = records
		mu.Unlock()
		return nil
	})

	if err := g.Wait(); err != nil {
		return bundle, err
	}

	// If any dataset arrived, the bundle is usable.
	if len(errs) == datasets {
		return nil, fmt.Errorf("all sources failed for %s: %w", req.Symbol, errors.Join(errs...))
	}
	return bundle, nil
}

// truncate caps records to the newest n.
func truncate(records []models.StatementRecord, n int) []models.StatementRecord {
	if len(records) > n {
		return records[:n]
	}
	return records
}

func truncatePrices(records []models.PriceRecord, n int) []models.PriceRecord {
	if len(records) > n {
		return records[:n]
	}
	return records
}
