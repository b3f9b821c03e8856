package crawler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/samvad-hq/cryptonews-reader/internal/domain"
	"github.com/samvad-hq/cryptonews-reader/pkg/providers"
)

// fakeFetcher returns preset articles or an error.
type fakeFetcher struct {
	id       string
	articles []domain.Article
	err      error
}

func (f *fakeFetcher) ID() string { return f.id }
func (f *fakeFetcher) Fetch(_ context.Context, _ providers.Provider) ([]domain.Article, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.articles, nil
}

// fakeRegistry maps provider id to a fetcher.
type fakeRegistry struct {
	fetchers map[string]providers.Fetcher
}

func (f *fakeRegistry) FetcherFor(cfg providers.Provider) (providers.Fetcher, error) {
	fetcher, ok := f.fetchers[cfg.ID]
	if !ok {
		return nil, errors.New("missing fetcher")
	}
	return fetcher, nil
}

// fakeScraper prefixes titles.
type fakeScraper struct {
	prefix string
}

func (f fakeScraper) Enrich(_ context.Context, _ providers.Provider, articles []domain.Article) []domain.Article {
	out := make([]domain.Article, len(articles))
	for i, a := range articles {
		a.Title = f.prefix + a.Title
		out[i] = a
	}
	return out
}

var base = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func art(id int64, ageMinutes int) domain.Article {
	return domain.Article{
		ID:          id,
		Title:       "title",
		PublishedAt: base.Add(-time.Duration(ageMinutes) * time.Minute),
	}
}

func registryOf(fetchers ...*fakeFetcher) *fakeRegistry {
	reg := &fakeRegistry{fetchers: map[string]providers.Fetcher{}}
	for _, f := range fetchers {
		reg.fetchers[f.id] = f
	}
	return reg
}

func cfgs(ids ...string) []providers.Provider {
	out := make([]providers.Provider, 0, len(ids))
	for _, id := range ids {
		out = append(out, providers.Provider{ID: id, Type: "fake"})
	}
	return out
}

func ids(articles []domain.Article) []int64 {
	out := make([]int64, 0, len(articles))
	for _, a := range articles {
		out = append(out, a.ID)
	}
	return out
}

func TestCollectMergesDedupesAndSorts(t *testing.T) {
	first := &fakeFetcher{id: "a", articles: []domain.Article{art(1, 10), art(2, 30)}}
	second := &fakeFetcher{id: "b", articles: []domain.Article{art(2, 0), art(3, 20)}}
	svc := NewService(registryOf(first, second), nil, nil)

	got, err := svc.Collect(context.Background(), cfgs("a", "b"))
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	want := []int64{1, 3, 2}
	if g := ids(got); len(g) != len(want) || g[0] != want[0] || g[1] != want[1] || g[2] != want[2] {
		t.Fatalf("ids = %v, want %v", g, want)
	}
	// first occurrence of id 2 wins, so it keeps the older timestamp
	if !got[2].PublishedAt.Equal(base.Add(-30 * time.Minute)) {
		t.Fatalf("duplicate resolved to the later record: %v", got[2].PublishedAt)
	}
}

func TestCollectCapsAtMaxArticles(t *testing.T) {
	var many []domain.Article
	for i := 0; i < providers.MaxArticles+7; i++ {
		many = append(many, art(int64(i+1), i))
	}
	svc := NewService(registryOf(&fakeFetcher{id: "a", articles: many}), nil, nil)

	got, err := svc.Collect(context.Background(), cfgs("a"))
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(got) != providers.MaxArticles {
		t.Fatalf("len = %d, want %d", len(got), providers.MaxArticles)
	}
}

func TestCollectPartialFailureKeepsSuccessfulResults(t *testing.T) {
	bad := &fakeFetcher{id: "bad", err: domain.NewFetchError("HTTP 500", nil)}
	good := &fakeFetcher{id: "good", articles: []domain.Article{art(7, 1)}}
	svc := NewService(registryOf(bad, good), nil, nil)

	got, err := svc.Collect(context.Background(), cfgs("bad", "good"))
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(got) != 1 || got[0].ID != 7 {
		t.Fatalf("unexpected articles %v", ids(got))
	}
}

func TestCollectAllFailedReturnsJoinedErrors(t *testing.T) {
	bad := &fakeFetcher{id: "bad", err: domain.NewFetchError("HTTP 503", nil)}
	svc := NewService(registryOf(bad), nil, nil)

	_, err := svc.Collect(context.Background(), cfgs("bad", "unknown"))
	if err == nil {
		t.Fatal("expected error")
	}
	if got := domain.Reason(err); got != "HTTP 503" {
		t.Fatalf("Reason = %q", got)
	}
}

func TestCollectEmptyResult(t *testing.T) {
	svc := NewService(registryOf(&fakeFetcher{id: "a"}), nil, nil)

	_, err := svc.Collect(context.Background(), cfgs("a"))
	if !errors.Is(err, domain.ErrEmptyResult) {
		t.Fatalf("err = %v, want ErrEmptyResult", err)
	}
}

func TestCollectCancelledWins(t *testing.T) {
	cancelled := &fakeFetcher{id: "a", err: domain.ErrCancelled}
	good := &fakeFetcher{id: "b", articles: []domain.Article{art(1, 0)}}
	svc := NewService(registryOf(good, cancelled), nil, nil)

	_, err := svc.Collect(context.Background(), cfgs("b", "a"))
	if !errors.Is(err, domain.ErrCancelled) {
		t.Fatalf("err = %v, want ErrCancelled", err)
	}
}

func TestCollectAppliesScraper(t *testing.T) {
	f := &fakeFetcher{id: "a", articles: []domain.Article{art(1, 0)}}
	svc := NewService(registryOf(f), fakeScraper{prefix: "x-"}, nil)

	got, err := svc.Collect(context.Background(), cfgs("a"))
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if got[0].Title != "x-title" {
		t.Fatalf("title = %q", got[0].Title)
	}
}

func TestCollectRequiresProviders(t *testing.T) {
	svc := NewService(registryOf(), nil, nil)
	if _, err := svc.Collect(context.Background(), nil); err == nil {
		t.Fatal("expected error for empty provider list")
	}
}
