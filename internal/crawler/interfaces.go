package crawler

import (
	"context"

	"github.com/samvad-hq/cryptonews-reader/internal/domain"
	"github.com/samvad-hq/cryptonews-reader/pkg/providers"
)

// ArticleScraper fills in metadata the news API left empty (e.g., OG images).
type ArticleScraper interface {
	Enrich(ctx context.Context, cfg providers.Provider, articles []domain.Article) []domain.Article
}
