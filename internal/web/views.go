package web

import (
	"html/template"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/samvad-hq/cryptonews-reader/internal/app"
	"github.com/samvad-hq/cryptonews-reader/internal/domain"
	"github.com/samvad-hq/cryptonews-reader/internal/feed"
)

const excerptRunes = 150

type filterTab struct {
	Mode   domain.FilterMode
	Label  string
	Active bool
}

type card struct {
	domain.Article
	Saved bool
}

type listPage struct {
	State    app.State
	ReturnTo string
	Cards    []card
	Tabs     []filterTab
	Trending []feed.Mention
}

type detailPage struct {
	State    app.State
	ReturnTo string
	Article  domain.Article
	Saved    bool
	Related  []domain.Article
}

type notFoundPage struct {
	State    app.State
	ReturnTo string
}

func newListPage(st app.State, returnTo string) listPage {
	visible := st.Visible()
	cards := make([]card, 0, len(visible))
	for _, a := range visible {
		cards = append(cards, card{Article: a, Saved: st.Saved.Has(a.ID)})
	}

	modes := domain.AllFilterModes()
	tabs := make([]filterTab, 0, len(modes))
	for _, m := range modes {
		tabs = append(tabs, filterTab{Mode: m, Label: m.Label(), Active: m == st.Filter})
	}

	return listPage{
		State:    st,
		ReturnTo: returnTo,
		Cards:    cards,
		Tabs:     tabs,
		Trending: feed.Trending(visible, feed.TrendingLimit),
	}
}

func templateFuncs(now func() time.Time) template.FuncMap {
	return template.FuncMap{
		"ago": func(t time.Time) string {
			return humanize.RelTime(t, now(), "ago", "from now")
		},
		"excerpt":    excerpt,
		"paragraphs": paragraphs,
	}
}

// excerpt cuts the description to the card preview length.
func excerpt(s string) string {
	if utf8.RuneCountInString(s) <= excerptRunes {
		return s + "..."
	}
	return string([]rune(s)[:excerptRunes]) + "..."
}

func paragraphs(s string) []string {
	parts := strings.Split(s, "\n\n")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
