package feed

import (
	"slices"

	"github.com/samber/lo"
	"github.com/samvad-hq/cryptonews-reader/internal/domain"
)

// RelatedLimit is how many related articles the detail view shows.
const RelatedLimit = 3

// TrendingLimit is how many tickers the trending panel shows.
const TrendingLimit = 10

// Find looks an article up by id.
func Find(all []domain.Article, id int64) (domain.Article, bool) {
	return lo.Find(all, func(a domain.Article) bool { return a.ID == id })
}

// Related returns up to limit other articles sharing a currency code or a tag
// with article, in list order.
func Related(all []domain.Article, article domain.Article, limit int) []domain.Article {
	codes := lo.Map(article.Currencies, func(c domain.Currency, _ int) string { return c.Code })

	out := make([]domain.Article, 0, limit)
	for _, a := range all {
		if len(out) >= limit {
			break
		}
		if a.ID == article.ID {
			continue
		}
		sharedCurrency := lo.ContainsBy(a.Currencies, func(c domain.Currency) bool { return lo.Contains(codes, c.Code) })
		sharedTag := lo.ContainsBy(article.Metadata.Tags, func(t string) bool { return lo.Contains(a.Metadata.Tags, t) })
		if sharedCurrency || sharedTag {
			out = append(out, a)
		}
	}
	return out
}

// Mention is a ticker with the number of articles mentioning it.
type Mention struct {
	Code  string `json:"code"`
	Count int    `json:"count"`
}

// Trending counts currency mentions across articles, most mentioned first.
// Ties keep the order of first appearance.
func Trending(articles []domain.Article, limit int) []Mention {
	var order []string
	counts := make(map[string]int)
	for _, a := range articles {
		for _, c := range a.Currencies {
			if _, ok := counts[c.Code]; !ok {
				order = append(order, c.Code)
			}
			counts[c.Code]++
		}
	}

	mentions := lo.Map(order, func(code string, _ int) Mention { return Mention{Code: code, Count: counts[code]} })
	slices.SortStableFunc(mentions, func(a, b Mention) int { return b.Count - a.Count })
	if len(mentions) > limit {
		mentions = mentions[:limit]
	}
	return mentions
}
