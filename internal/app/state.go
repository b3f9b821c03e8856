package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samvad-hq/cryptonews-reader/internal/domain"
	"github.com/samvad-hq/cryptonews-reader/internal/feed"
)

// BannerEmptyResult is shown when the live source answered with nothing usable.
const BannerEmptyResult = "Live news API returned no articles. Showing sample articles."

// FailureBanner is the banner text for a failed live fetch.
func FailureBanner(reason string) string {
	return fmt.Sprintf("Live news unavailable (%s). Showing sample articles.", reason)
}

// State is the reader's view model. Transitions return a new State and never
// modify the receiver; Articles is shared and treated as read-only.
type State struct {
	Articles []domain.Article  `json:"-"`
	Filter   domain.FilterMode `json:"filter"`
	Query    string            `json:"query"`
	Saved    domain.SavedIDs   `json:"-"`
	Loading  bool              `json:"loading"`
	Banner   string            `json:"banner,omitempty"`
	DarkMode bool              `json:"dark_mode"`
}

// InitialState shows the bundled samples under the hot filter while the first
// fetch is pending.
func InitialState(samples []domain.Article, saved domain.SavedIDs) State {
	return State{
		Articles: samples,
		Filter:   domain.FilterHot,
		Saved:    saved,
		Loading:  true,
	}
}

func (s State) WithFilter(mode domain.FilterMode) State {
	s.Filter = mode
	return s
}

func (s State) WithQuery(q string) State {
	s.Query = q
	return s
}

func (s State) ToggleSaved(id int64) State {
	s.Saved = s.Saved.Toggle(id)
	return s
}

func (s State) ToggleTheme() State {
	s.DarkMode = !s.DarkMode
	return s
}

func (s State) DismissBanner() State {
	s.Banner = ""
	return s
}

// FetchStarted marks a fetch in flight and clears any previous banner.
func (s State) FetchStarted() State {
	s.Loading = true
	s.Banner = ""
	return s
}

// FetchSucceeded installs live articles. An empty list falls back like
// domain.ErrEmptyResult.
func (s State) FetchSucceeded(articles []domain.Article, fallback []domain.Article) State {
	if len(articles) == 0 {
		return s.FetchFailed(domain.ErrEmptyResult, fallback)
	}
	s.Articles = articles
	s.Loading = false
	s.Banner = ""
	return s
}

// FetchFailed substitutes fallback and explains why. A cancelled fetch only
// clears the loading flag.
func (s State) FetchFailed(err error, fallback []domain.Article) State {
	if errors.Is(err, domain.ErrCancelled) {
		return s.FetchAbandoned()
	}
	s.Articles = fallback
	s.Loading = false
	if errors.Is(err, domain.ErrEmptyResult) {
		s.Banner = BannerEmptyResult
	} else {
		s.Banner = FailureBanner(bannerReason(err))
	}
	return s
}

// FetchAbandoned clears loading and leaves everything else as it was.
func (s State) FetchAbandoned() State {
	s.Loading = false
	return s
}

// Visible is the filtered, sorted list for the current filter and query.
func (s State) Visible() []domain.Article {
	return feed.Select(s.Articles, s.Filter, s.Query, s.Saved)
}

func bannerReason(err error) string {
	reason, _, _ := strings.Cut(domain.Reason(err), "\n")
	if reason = strings.TrimSpace(reason); reason == "" {
		return "Unknown error"
	}
	return reason
}
