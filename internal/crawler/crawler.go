package crawler

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/samber/lo"
	"github.com/samvad-hq/cryptonews-reader/internal/domain"
	"github.com/samvad-hq/cryptonews-reader/internal/logger"
	"github.com/samvad-hq/cryptonews-reader/pkg/providers"
)

// Service collects one article list across the configured providers.
type Service struct {
	registry providers.FetcherRegistry
	scraper  ArticleScraper
	log      logger.Logger
}

// NewService wires a collector with the provider fetcher registry. A nil
// scraper disables enrichment.
func NewService(reg providers.FetcherRegistry, scraper ArticleScraper, log logger.Logger) *Service {
	if log == nil {
		log = &logger.NopLogger{}
	}
	return &Service{
		registry: reg,
		scraper:  scraper,
		log:      log,
	}
}

// Collect fetches every provider in order and merges the results: duplicate
// ids keep their first occurrence, the list is ordered most recent first and
// capped at providers.MaxArticles.
//
// Cancellation wins over everything and yields domain.ErrCancelled. When no
// provider produced articles the joined provider errors are returned, or
// domain.ErrEmptyResult if all of them succeeded with nothing.
func (s *Service) Collect(ctx context.Context, cfgs []providers.Provider) ([]domain.Article, error) {
	if s == nil || s.registry == nil {
		return nil, fmt.Errorf("crawler service is not initialized")
	}
	if len(cfgs) == 0 {
		return nil, fmt.Errorf("no providers configured for collection")
	}

	var (
		collected []domain.Article
		errs      []error
	)
	for _, cfg := range cfgs {
		articles, err := s.runProvider(ctx, cfg)
		if errors.Is(err, domain.ErrCancelled) || errors.Is(ctx.Err(), context.Canceled) {
			return nil, domain.ErrCancelled
		}
		if err != nil {
			errs = append(errs, err)
			s.log.ErrorObj("provider fetch failed", "provider_error", map[string]any{
				"provider_id": cfg.ID,
				"error":       err.Error(),
			})
			continue
		}
		collected = append(collected, articles...)
	}

	if len(collected) == 0 {
		if len(errs) > 0 {
			return nil, errors.Join(errs...)
		}
		return nil, domain.ErrEmptyResult
	}
	if len(errs) > 0 {
		s.log.WarnObj("partial collection", "collect_meta", map[string]any{
			"failed_providers": len(errs),
			"articles":         len(collected),
		})
	}
	return merge(collected), nil
}

func (s *Service) runProvider(ctx context.Context, cfg providers.Provider) ([]domain.Article, error) {
	fetcher, err := s.registry.FetcherFor(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve fetcher for provider %s: %w", cfg.ID, err)
	}

	articles, err := fetcher.Fetch(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("fetch provider %s: %w", cfg.ID, err)
	}

	if s.scraper != nil && len(articles) > 0 {
		articles = s.scraper.Enrich(ctx, cfg, articles)
	}

	s.log.InfoObj("provider fetch completed", "provider_result", map[string]any{
		"provider_id":        cfg.ID,
		"articles_collected": len(articles),
	})
	return articles, nil
}

func merge(articles []domain.Article) []domain.Article {
	out := lo.UniqBy(articles, func(a domain.Article) int64 { return a.ID })
	slices.SortStableFunc(out, func(a, b domain.Article) int {
		return b.PublishedAt.Compare(a.PublishedAt)
	})
	if len(out) > providers.MaxArticles {
		out = out[:providers.MaxArticles]
	}
	return out
}
