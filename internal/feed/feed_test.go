package feed

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/samvad-hq/cryptonews-reader/internal/domain"
)

var base = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func article(id int64, title string, minutesAgo int, positive int, opts ...func(*domain.Article)) domain.Article {
	a := domain.Article{
		ID:          id,
		Title:       title,
		PublishedAt: base.Add(-time.Duration(minutesAgo) * time.Minute),
		Votes:       domain.Votes{Positive: positive},
		Metadata:    domain.Metadata{Description: "plain text"},
	}
	for _, o := range opts {
		o(&a)
	}
	return a
}

func withCurrencies(codes ...string) func(*domain.Article) {
	return func(a *domain.Article) {
		for _, c := range codes {
			a.Currencies = append(a.Currencies, domain.Currency{Code: c, Title: c, Slug: c})
		}
	}
}

func withCurrency(code, title string) func(*domain.Article) {
	return func(a *domain.Article) {
		a.Currencies = append(a.Currencies, domain.Currency{Code: code, Title: title, Slug: code})
	}
}

func withTags(tags ...string) func(*domain.Article) {
	return func(a *domain.Article) { a.Metadata.Tags = tags }
}

func withDescription(d string) func(*domain.Article) {
	return func(a *domain.Article) { a.Metadata.Description = d }
}

func ids(articles []domain.Article) []int64 {
	out := make([]int64, 0, len(articles))
	for _, a := range articles {
		out = append(out, a.ID)
	}
	return out
}

func TestSelectHotOrdersByVotesThenRecency(t *testing.T) {
	first := article(1, "first", 30, 5)
	second := article(2, "second", 20, 20)
	third := article(3, "third", 10, 20)

	got := Select([]domain.Article{first, second, third}, domain.FilterHot, "", domain.NewSavedIDs())
	if diff := cmp.Diff([]int64{3, 2, 1}, ids(got)); diff != "" {
		t.Fatalf("hot order mismatch (-want +got):\n%s", diff)
	}
}

func TestSelectRecencyForOtherModes(t *testing.T) {
	all := []domain.Article{
		article(1, "old", 60, 100),
		article(2, "new", 1, 0),
		article(3, "mid", 30, 50),
	}
	for _, mode := range []domain.FilterMode{domain.FilterRising, domain.FilterBullish, domain.FilterBearish} {
		got := Select(all, mode, "", domain.NewSavedIDs())
		if diff := cmp.Diff([]int64{2, 3, 1}, ids(got)); diff != "" {
			t.Fatalf("%s order mismatch (-want +got):\n%s", mode, diff)
		}
	}
}

func TestSelectDoesNotMutateInput(t *testing.T) {
	all := []domain.Article{
		article(1, "a", 60, 1),
		article(2, "b", 1, 9),
	}
	before := ids(all)
	_ = Select(all, domain.FilterHot, "", domain.NewSavedIDs())
	_ = Select(all, domain.FilterRising, "", domain.NewSavedIDs())
	if diff := cmp.Diff(before, ids(all)); diff != "" {
		t.Fatalf("input mutated (-want +got):\n%s", diff)
	}
}

func TestSelectIsIdempotentSubsetWithoutDuplicates(t *testing.T) {
	all := []domain.Article{
		article(1, "Bitcoin surges", 5, 3, withCurrencies("BTC")),
		article(2, "Ethereum drops", 15, 8, withCurrencies("ETH")),
		article(3, "SEC weighs ETF", 25, 8),
		article(4, "Quiet", 35, 0),
	}
	saved := domain.NewSavedIDs(2, 4)

	for _, mode := range domain.AllFilterModes() {
		for _, q := range []string{"", "eth", "  SEC ", "zzz"} {
			a := Select(all, mode, q, saved)
			b := Select(all, mode, q, saved)
			if diff := cmp.Diff(a, b); diff != "" {
				t.Fatalf("%s/%q not idempotent:\n%s", mode, q, diff)
			}
			seen := map[int64]bool{}
			for _, art := range a {
				if seen[art.ID] {
					t.Fatalf("%s/%q duplicate id %d", mode, q, art.ID)
				}
				seen[art.ID] = true
				if _, ok := Find(all, art.ID); !ok {
					t.Fatalf("%s/%q fabricated id %d", mode, q, art.ID)
				}
			}
		}
	}
}

func TestSelectTextSearch(t *testing.T) {
	all := []domain.Article{
		article(1, "Layer two fees fall", 1, 0, withCurrency("ETH", "Ethereum")),
		article(2, "Miners rejoice", 2, 0, withTags("Hashrate", "Mining")),
		article(3, "Nothing here", 3, 0),
		article(4, "ETH staking grows", 4, 0),
	}

	tests := []struct {
		query string
		want  []int64
	}{
		{query: "eth", want: []int64{1, 4}},
		{query: "ethereum", want: []int64{1}},
		{query: "  HASH ", want: []int64{2}},
		{query: "", want: []int64{1, 2, 3, 4}},
		{query: "   ", want: []int64{1, 2, 3, 4}},
		{query: "solana", want: []int64{}},
	}
	for _, tt := range tests {
		got := Select(all, domain.FilterRising, tt.query, domain.NewSavedIDs())
		if diff := cmp.Diff(tt.want, ids(got)); diff != "" {
			t.Errorf("query %q mismatch (-want +got):\n%s", tt.query, diff)
		}
	}
}

func TestSelectSentimentFallsBackWhenNothingMatches(t *testing.T) {
	all := []domain.Article{
		article(1, "Markets flat", 10, 0),
		article(2, "Protocol news", 5, 0),
	}
	rising := Select(all, domain.FilterRising, "", domain.NewSavedIDs())
	for _, mode := range []domain.FilterMode{domain.FilterBullish, domain.FilterBearish} {
		got := Select(all, mode, "", domain.NewSavedIDs())
		if len(got) == 0 {
			t.Fatalf("%s emptied a non-empty list", mode)
		}
		if diff := cmp.Diff(ids(rising), ids(got)); diff != "" {
			t.Errorf("%s fallback mismatch (-rising +got):\n%s", mode, diff)
		}
	}
}

func TestSelectSentimentKeywords(t *testing.T) {
	all := []domain.Article{
		article(1, "Bitcoin Rally continues", 1, 0),
		article(2, "Altcoins Plunge", 2, 0),
		article(3, "Neutral headline", 3, 0, withDescription("Analysts expect a sell-off")),
		article(4, "Neutral once more", 4, 0),
	}

	bull := Select(all, domain.FilterBullish, "", domain.NewSavedIDs())
	if diff := cmp.Diff([]int64{1}, ids(bull)); diff != "" {
		t.Errorf("bullish mismatch (-want +got):\n%s", diff)
	}
	bear := Select(all, domain.FilterBearish, "", domain.NewSavedIDs())
	if diff := cmp.Diff([]int64{2, 3}, ids(bear)); diff != "" {
		t.Errorf("bearish mismatch (-want +got):\n%s", diff)
	}
}

func TestSelectImportant(t *testing.T) {
	all := []domain.Article{
		article(1, "Bitcoin news", 1, 0, withCurrencies("BTC")),
		article(2, "Ether news", 2, 0, withCurrencies("ETH")),
		article(3, "SEC sues exchange", 3, 0),
		article(4, "New spot ETF filed", 4, 0),
		article(5, "Regulators meet", 5, 0),
		article(6, "Dogecoin memes", 6, 0, withCurrencies("DOGE")),
	}
	got := Select(all, domain.FilterImportant, "", domain.NewSavedIDs())
	if diff := cmp.Diff([]int64{1, 2, 3, 4, 5}, ids(got)); diff != "" {
		t.Fatalf("important mismatch (-want +got):\n%s", diff)
	}
}

func TestSelectSaved(t *testing.T) {
	all := []domain.Article{
		article(1, "one", 3, 0),
		article(2, "two", 2, 0),
		article(3, "three", 1, 0),
	}
	saved := domain.NewSavedIDs(1, 3, 99)
	got := Select(all, domain.FilterSaved, "", saved)
	if diff := cmp.Diff([]int64{3, 1}, ids(got)); diff != "" {
		t.Fatalf("saved mismatch (-want +got):\n%s", diff)
	}

	toggled := saved.Toggle(2).Toggle(2)
	again := Select(all, domain.FilterSaved, "", toggled)
	if diff := cmp.Diff(ids(got), ids(again)); diff != "" {
		t.Fatalf("double toggle changed selection:\n%s", diff)
	}

	if got := Select(all, domain.FilterSaved, "", domain.NewSavedIDs()); len(got) != 0 {
		t.Fatalf("expected empty saved view, got %v", ids(got))
	}
}
