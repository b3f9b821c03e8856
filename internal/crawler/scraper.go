package crawler

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/samvad-hq/cryptonews-reader/internal/domain"
	"github.com/samvad-hq/cryptonews-reader/internal/logger"
	"github.com/samvad-hq/cryptonews-reader/pkg/httpclient"
	"github.com/samvad-hq/cryptonews-reader/pkg/providers"
)

const (
	maxHTMLBodyBytes = 1 << 20 // 1 MiB
)

// Scraper fetches article pages and fills a missing image (and a placeholder
// description) from OG tags.
type Scraper struct {
	client httpclient.Client
	log    logger.Logger
}

// NewScraper constructs a scraper with the provided HTTP client (or default).
func NewScraper(client httpclient.Client, log logger.Logger) *Scraper {
	if client == nil {
		client = providers.DefaultHTTPClient(httpclient.DefaultTimeout)
	}
	if log == nil {
		log = &logger.NopLogger{}
	}
	return &Scraper{client: client, log: log}
}

func needsEnrichment(a domain.Article) bool {
	return strings.TrimSpace(a.Metadata.Image) == "" || a.Metadata.Description == providers.FallbackDescription
}

// Enrich visits the pages of articles that need it, throttled by the
// provider's request delay. On cancellation the remaining articles are
// returned untouched.
func (s *Scraper) Enrich(ctx context.Context, cfg providers.Provider, articles []domain.Article) []domain.Article {
	delay := cfg.RequestDelay()
	out := append([]domain.Article(nil), articles...)

	visited := 0
	for i, art := range articles {
		if !needsEnrichment(art) {
			continue
		}

		if visited > 0 && delay > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return out
			case <-timer.C:
			}
		}
		select {
		case <-ctx.Done():
			return out
		default:
		}
		visited++

		enriched, err := s.fetchAndParse(ctx, cfg, art)
		if err != nil {
			s.log.WarnObj("article metadata scrape failed", "metadata_error", map[string]any{
				"provider_id": cfg.ID,
				"url":         art.URL,
				"error":       err.Error(),
			})
			continue
		}
		out[i] = enriched
	}

	return out
}

func (s *Scraper) fetchAndParse(ctx context.Context, cfg providers.Provider, art domain.Article) (domain.Article, error) {
	headers := providers.Headers(cfg)
	headers["Accept"] = "text/html,application/xhtml+xml"
	delete(headers, "Authorization")

	resp, err := s.client.Get(ctx, httpclient.Request{URL: art.URL, Headers: headers, BodyLimit: maxHTMLBodyBytes})
	if err != nil {
		return art, fmt.Errorf("http fetch: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		snippet := strings.TrimSpace(string(resp.Body()))
		if len(snippet) > 1024 {
			snippet = snippet[:1024]
		}
		return art, fmt.Errorf("status %d body: %s", resp.StatusCode(), snippet)
	}

	meta, err := parseMeta(resp.Body())
	if err != nil {
		return art, err
	}

	updated := art
	if strings.TrimSpace(updated.Metadata.Image) == "" && meta.ImageURL != "" {
		updated.Metadata.Image = resolveURL(meta.ImageURL, art.URL)
	}
	if updated.Metadata.Description == providers.FallbackDescription && meta.Description != "" {
		updated.Metadata.Description = meta.Description
		updated.Metadata.ReadingTime = providers.ReadingTime(meta.Description)
	}
	return updated, nil
}

func parseMeta(body []byte) (pageMeta, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return pageMeta{}, fmt.Errorf("parse html: %w", err)
	}

	extract := func(sel string) string {
		if node := doc.Find(sel).First(); node.Length() > 0 {
			if val, ok := node.Attr("content"); ok {
				return strings.TrimSpace(val)
			}
		}
		return ""
	}

	return pageMeta{
		Description: firstNonEmpty(
			extract(`meta[property="og:description"]`),
			extract(`meta[name="description"]`),
		),
		ImageURL: firstNonEmpty(
			extract(`meta[property="og:image"]`),
			extract(`meta[name="twitter:image"]`),
		),
	}, nil
}

type pageMeta struct {
	Description string
	ImageURL    string
}

// resolveURL makes ref absolute against the page url. Unparseable input yields "".
func resolveURL(ref, pageURL string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return r.String()
	}
	return base.ResolveReference(r).String()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
