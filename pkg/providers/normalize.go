package providers

import (
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/samvad-hq/cryptonews-reader/internal/domain"
)

const (
	// MaxArticles caps a single fetch result.
	MaxArticles = 50

	// FallbackDescription is used when a record carries neither body nor title text.
	FallbackDescription = "No description available."

	maxCurrencies  = 5
	maxTags        = 12
	wordsPerMinute = 200
)

// categoryStoplist holds generic category names that look like tickers but are not.
var categoryStoplist = map[string]struct{}{
	"MARKET":         {},
	"TRADING":        {},
	"CRYPTOCURRENCY": {},
	"BLOCKCHAIN":     {},
	"REGULATION":     {},
	"POLITICS":       {},
	"TECHNOLOGY":     {},
	"BUSINESS":       {},
	"NFT":            {},
	"DEFI":           {},
	"MINING":         {},
	"EXCHANGE":       {},
	"ALTCOIN":        {},
	"STABLECOIN":     {},
	"SECURITY":       {},
	"ANALYSIS":       {},
}

var (
	categoryTickerRe = regexp.MustCompile(`^[A-Z0-9]{2,8}$`)
	bareTickerRe     = regexp.MustCompile(`\b[A-Z]{2,5}\b`)
	nonSlugRe        = regexp.MustCompile(`[^a-z0-9]+`)
	tagSplitRe       = regexp.MustCompile(`[|,]`)
)

func stoplisted(token string) bool {
	_, ok := categoryStoplist[token]
	return ok
}

// Slugify lowercases title, collapses runs of non-alphanumerics into one hyphen
// and trims hyphens at both ends.
func Slugify(title string) string {
	s := nonSlugRe.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(s, "-")
}

// Hostname returns the host part of rawURL, or "" when it cannot be parsed.
func Hostname(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}
	return u.Hostname()
}

// ReadingTime estimates "<n> min read" at 200 words a minute, at least one
// minute. It returns "" for text without words.
func ReadingTime(text string) string {
	words := len(strings.Fields(text))
	if words == 0 {
		return ""
	}
	minutes := int(math.Max(1, math.Round(float64(words)/wordsPerMinute)))
	return fmt.Sprintf("%d min read", minutes)
}

// ParseTags splits a pipe or comma separated tag field. Nil means no tags.
func ParseTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := lo.FilterMap(tagSplitRe.Split(raw, -1), func(t string, _ int) (string, bool) {
		t = strings.TrimSpace(t)
		return t, t != ""
	})
	tags := lo.Uniq(parts)
	if len(tags) == 0 {
		return nil
	}
	if len(tags) > maxTags {
		tags = tags[:maxTags]
	}
	return tags
}

// ExtractCurrencies derives up to five ticker codes, first from the category
// field and, when that yields nothing, from bare uppercase words in the text.
func ExtractCurrencies(categories, title, body string) []domain.Currency {
	var codes []string

	for _, c := range strings.Split(categories, "|") {
		c = strings.TrimSpace(c)
		if c == "" || !categoryTickerRe.MatchString(c) || stoplisted(c) {
			continue
		}
		codes = append(codes, c)
	}
	codes = lo.Uniq(codes)

	if len(codes) == 0 {
		for _, m := range bareTickerRe.FindAllString(title+" "+body, -1) {
			if stoplisted(m) || lo.Contains(codes, m) {
				continue
			}
			codes = append(codes, m)
			if len(codes) >= maxCurrencies {
				break
			}
		}
	}

	if len(codes) > maxCurrencies {
		codes = codes[:maxCurrencies]
	}
	return lo.Map(codes, func(code string, _ int) domain.Currency {
		return domain.Currency{Code: code, Title: code, Slug: code}
	})
}

// Describe picks the article description: body, then title, then a fixed text.
func Describe(body, title string) string {
	if d := strings.TrimSpace(body); d != "" {
		return d
	}
	if d := strings.TrimSpace(title); d != "" {
		return d
	}
	return FallbackDescription
}

func epochTime(seconds int64) time.Time {
	return time.Unix(seconds, 0).UTC()
}
