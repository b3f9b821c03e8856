// Package feed selects, orders and relates articles for display. Every
// function here is pure: inputs are never mutated and the same arguments
// always produce the same order.
package feed

import (
	"slices"
	"strings"

	"github.com/samber/lo"
	"github.com/samvad-hq/cryptonews-reader/internal/domain"
)

var (
	bullishKeywords = []string{"surge", "rally", "breakout", "soar", "gain", "bull", "up", "higher", "records", "ath"}
	bearishKeywords = []string{"drop", "plunge", "sell-off", "crash", "dump", "bear", "down", "lower", "loss", "slump"}

	importantTickers       = []string{"BTC", "ETH"}
	importantTitleKeywords = []string{"sec", "etf", "regulat"}
)

// Select returns the visible subset of all for the given mode, search query
// and saved set.
func Select(all []domain.Article, mode domain.FilterMode, query string, saved domain.SavedIDs) []domain.Article {
	q := strings.ToLower(strings.TrimSpace(query))
	matched := lo.Filter(all, func(a domain.Article, _ int) bool {
		return matchesQuery(a, q)
	})

	var visible []domain.Article
	switch mode {
	case domain.FilterSaved:
		visible = lo.Filter(matched, func(a domain.Article, _ int) bool { return saved.Has(a.ID) })
	case domain.FilterBullish:
		visible = bySentiment(matched, bullishKeywords)
	case domain.FilterBearish:
		visible = bySentiment(matched, bearishKeywords)
	case domain.FilterImportant:
		visible = lo.Filter(matched, func(a domain.Article, _ int) bool { return important(a) })
	default:
		visible = matched
	}

	if mode == domain.FilterHot {
		slices.SortStableFunc(visible, byVotesThenRecency)
	} else {
		slices.SortStableFunc(visible, byRecency)
	}
	return visible
}

func matchesQuery(a domain.Article, q string) bool {
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(a.Title), q) {
		return true
	}
	if lo.ContainsBy(a.Metadata.Tags, func(t string) bool { return strings.Contains(strings.ToLower(t), q) }) {
		return true
	}
	return lo.ContainsBy(a.Currencies, func(c domain.Currency) bool {
		return strings.Contains(strings.ToLower(c.Code), q) || strings.Contains(strings.ToLower(c.Title), q)
	})
}

// bySentiment keeps articles mentioning any keyword. An empty outcome falls
// back to the unfiltered input so sentiment alone never empties the page.
func bySentiment(articles []domain.Article, keywords []string) []domain.Article {
	hits := lo.Filter(articles, func(a domain.Article, _ int) bool {
		return includesAny(a.Title+"\n"+a.Metadata.Description, keywords)
	})
	if len(hits) == 0 {
		return articles
	}
	return hits
}

func important(a domain.Article) bool {
	for _, code := range importantTickers {
		if a.HasCurrency(code) {
			return true
		}
	}
	return includesAny(a.Title, importantTitleKeywords)
}

func includesAny(text string, needles []string) bool {
	hay := strings.ToLower(text)
	return lo.ContainsBy(needles, func(n string) bool { return strings.Contains(hay, n) })
}

func byRecency(a, b domain.Article) int {
	return b.PublishedAt.Compare(a.PublishedAt)
}

func byVotesThenRecency(a, b domain.Article) int {
	if a.Votes.Positive != b.Votes.Positive {
		return b.Votes.Positive - a.Votes.Positive
	}
	return byRecency(a, b)
}
