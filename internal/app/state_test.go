package app

import (
	"errors"
	"testing"
	"time"

	"github.com/samvad-hq/cryptonews-reader/internal/domain"
)

var fixedNow = time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC)

func TestInitialState(t *testing.T) {
	st := InitialState(SampleArticles(fixedNow), domain.NewSavedIDs())
	if !st.Loading || st.Filter != domain.FilterHot || len(st.Articles) != 4 {
		t.Fatalf("unexpected initial state %#v", st)
	}
	if st.Banner != "" || st.DarkMode {
		t.Fatalf("banner/theme should start empty: %#v", st)
	}
}

func TestSampleArticlesTimestamps(t *testing.T) {
	samples := SampleArticles(fixedNow)
	for i, a := range samples {
		want := fixedNow.Add(-time.Duration(i) * time.Hour)
		if !a.PublishedAt.Equal(want) {
			t.Fatalf("sample %d published %v, want %v", a.ID, a.PublishedAt, want)
		}
	}
	if !samples[3].HasCurrency("BTC") || !samples[3].HasCurrency("ETH") {
		t.Fatalf("regulatory sample should carry BTC and ETH: %#v", samples[3].Currencies)
	}
}

func TestFetchTransitions(t *testing.T) {
	samples := SampleArticles(fixedNow)
	live := []domain.Article{{ID: 100, Title: "Live", PublishedAt: fixedNow}}
	base := InitialState(samples, domain.NewSavedIDs()).WithFilter(domain.FilterBullish).WithQuery("btc")

	tests := []struct {
		name       string
		apply      func(State) State
		wantIDs    []int64
		wantBanner string
	}{
		{
			name:    "success installs live articles",
			apply:   func(s State) State { return s.FetchSucceeded(live, samples) },
			wantIDs: []int64{100},
		},
		{
			name:       "empty success falls back",
			apply:      func(s State) State { return s.FetchSucceeded(nil, samples) },
			wantIDs:    []int64{1, 2, 3, 4},
			wantBanner: BannerEmptyResult,
		},
		{
			name:       "fetch error falls back with reason",
			apply:      func(s State) State { return s.FetchFailed(domain.NewFetchError("HTTP 500", nil), samples) },
			wantIDs:    []int64{1, 2, 3, 4},
			wantBanner: "Live news unavailable (HTTP 500). Showing sample articles.",
		},
		{
			name:       "empty result error",
			apply:      func(s State) State { return s.FetchFailed(domain.ErrEmptyResult, samples) },
			wantIDs:    []int64{1, 2, 3, 4},
			wantBanner: BannerEmptyResult,
		},
		{
			name:       "unknown error",
			apply:      func(s State) State { return s.FetchFailed(errors.New(""), samples) },
			wantIDs:    []int64{1, 2, 3, 4},
			wantBanner: "Live news unavailable (Unknown error). Showing sample articles.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.apply(base.FetchStarted())
			if got.Loading {
				t.Fatal("loading should be cleared")
			}
			if got.Banner != tt.wantBanner {
				t.Fatalf("banner = %q, want %q", got.Banner, tt.wantBanner)
			}
			if got.Filter != domain.FilterBullish || got.Query != "btc" {
				t.Fatalf("filter/query changed: %q %q", got.Filter, got.Query)
			}
			if len(got.Articles) != len(tt.wantIDs) {
				t.Fatalf("articles = %d, want %d", len(got.Articles), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if got.Articles[i].ID != id {
					t.Fatalf("article[%d] = %d, want %d", i, got.Articles[i].ID, id)
				}
			}
		})
	}
}

func TestFetchCancelledOnlyClearsLoading(t *testing.T) {
	live := []domain.Article{{ID: 100, Title: "Live", PublishedAt: fixedNow}}
	st := InitialState(SampleArticles(fixedNow), domain.NewSavedIDs()).FetchSucceeded(live, nil)
	st.Banner = "previous"
	st = st.FetchStarted()
	st.Banner = "kept"

	got := st.FetchFailed(domain.ErrCancelled, SampleArticles(fixedNow))
	if got.Loading || got.Banner != "kept" || len(got.Articles) != 1 || got.Articles[0].ID != 100 {
		t.Fatalf("cancelled fetch changed state: %#v", got)
	}
}

func TestFetchStartedClearsBanner(t *testing.T) {
	st := InitialState(nil, domain.NewSavedIDs()).FetchFailed(domain.ErrEmptyResult, nil)
	if st.Banner == "" {
		t.Fatal("expected banner")
	}
	if got := st.FetchStarted(); got.Banner != "" || !got.Loading {
		t.Fatalf("FetchStarted = %#v", got)
	}
}

func TestTransitionsDoNotMutateReceiver(t *testing.T) {
	st := InitialState(SampleArticles(fixedNow), domain.NewSavedIDs())
	_ = st.ToggleSaved(2).ToggleTheme().WithFilter(domain.FilterSaved).WithQuery("eth")
	if st.Saved.Has(2) || st.DarkMode || st.Filter != domain.FilterHot || st.Query != "" {
		t.Fatalf("receiver mutated: %#v", st)
	}
}

func TestVisibleSavedFilter(t *testing.T) {
	st := InitialState(SampleArticles(fixedNow), domain.NewSavedIDs()).
		ToggleSaved(3).
		ToggleSaved(1).
		WithFilter(domain.FilterSaved)

	got := st.Visible()
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 3 {
		t.Fatalf("visible saved = %#v", got)
	}

	if dismissed := st.FetchFailed(domain.ErrEmptyResult, nil).DismissBanner(); dismissed.Banner != "" {
		t.Fatalf("banner not dismissed: %q", dismissed.Banner)
	}
}
