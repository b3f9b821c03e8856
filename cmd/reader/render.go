package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
	"github.com/samvad-hq/cryptonews-reader/internal/app"
	"github.com/samvad-hq/cryptonews-reader/internal/domain"
)

var (
	colorPrimary = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}
	colorDim     = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#626262"}
	colorAccent  = lipgloss.AdaptiveColor{Light: "#F25D94", Dark: "#F25D94"}
	colorWarn    = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#FCD34D"}
	colorGreen   = lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#25D366"}

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	titleStyle  = lipgloss.NewStyle().Bold(true)
	tickerStyle = lipgloss.NewStyle().Foreground(colorGreen)
	dimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	savedStyle  = lipgloss.NewStyle().Foreground(colorAccent)
	bannerStyle = lipgloss.NewStyle().
			Foreground(colorWarn).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorWarn).
			Padding(0, 1)
)

func renderList(w io.Writer, st app.State, articles []domain.Article, now time.Time) {
	if st.Banner != "" {
		fmt.Fprintln(w, bannerStyle.Render(st.Banner))
	}

	header := fmt.Sprintf("Crypto News · %s", st.Filter.Label())
	if st.Query != "" {
		header += fmt.Sprintf(" · %q", st.Query)
	}
	fmt.Fprintln(w, headerStyle.Render(header))

	if len(articles) == 0 {
		fmt.Fprintln(w, dimStyle.Render("No articles found matching your criteria"))
		return
	}

	for _, a := range articles {
		mark := " "
		if st.Saved.Has(a.ID) {
			mark = savedStyle.Render("★")
		}
		fmt.Fprintf(w, "%s %s %s\n", mark, titleStyle.Render(a.Title), tickers(a))
		fmt.Fprintf(w, "    %s\n", dimStyle.Render(fmt.Sprintf("#%d · %s · +%d/-%d · %s",
			a.ID, a.Domain, a.Votes.Positive, a.Votes.Negative, humanize.RelTime(a.PublishedAt, now, "ago", "from now"))))
	}
}

func renderDetail(w io.Writer, a domain.Article, related []domain.Article, saved bool, now time.Time) {
	fmt.Fprintln(w, headerStyle.Render(a.Title))
	if t := tickers(a); t != "" {
		fmt.Fprintln(w, t)
	}

	meta := lo.Filter([]string{
		a.Metadata.Author,
		humanize.RelTime(a.PublishedAt, now, "ago", "from now"),
		a.Metadata.ReadingTime,
	}, func(s string, _ int) bool { return s != "" })
	fmt.Fprintln(w, dimStyle.Render(strings.Join(meta, " · ")))
	fmt.Fprintln(w)

	for _, p := range strings.Split(a.Metadata.Description, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			fmt.Fprintln(w, p)
			fmt.Fprintln(w)
		}
	}

	if len(a.Metadata.Tags) > 0 {
		fmt.Fprintln(w, dimStyle.Render("Tags: "+strings.Join(a.Metadata.Tags, ", ")))
	}
	fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("+%d  -%d  %d comments  %d saves",
		a.Votes.Positive, a.Votes.Negative, a.Votes.Comments, a.Votes.Saved)))
	if saved {
		fmt.Fprintln(w, savedStyle.Render("★ saved"))
	}
	fmt.Fprintln(w, "Read original: "+a.URL)

	if len(related) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, headerStyle.Render("Related Articles"))
		for _, r := range related {
			fmt.Fprintf(w, "  #%d %s\n", r.ID, r.Title)
		}
	}
}

func renderToggle(w io.Writer, id int64, saved bool) {
	if saved {
		fmt.Fprintln(w, savedStyle.Render(fmt.Sprintf("★ article %d saved", id)))
		return
	}
	fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("article %d removed from saved", id)))
}

func renderSaved(w io.Writer, ids []int64) {
	if len(ids) == 0 {
		fmt.Fprintln(w, dimStyle.Render("No saved articles"))
		return
	}
	for _, id := range ids {
		fmt.Fprintln(w, id)
	}
}

func tickers(a domain.Article) string {
	codes := lo.Map(a.Currencies, func(c domain.Currency, _ int) string { return c.Code })
	if len(codes) == 0 {
		return ""
	}
	return tickerStyle.Render("[" + strings.Join(codes, " ") + "]")
}
