package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/samvad-hq/cryptonews-reader/internal/domain"
	"github.com/samvad-hq/cryptonews-reader/pkg/httpclient"
)

// cryptoCompareFetcher implements Fetcher for the CryptoCompare news listing.
type cryptoCompareFetcher struct {
	client HTTPClient
}

// NewCryptoCompareFetcher builds a fetcher for CryptoCompare-shaped news endpoints.
func NewCryptoCompareFetcher(client HTTPClient) Fetcher {
	if client == nil {
		client = DefaultHTTPClient(httpclient.DefaultTimeout)
	}
	return &cryptoCompareFetcher{client: client}
}

func (f *cryptoCompareFetcher) ID() string {
	return ProviderTypeCryptoCompare
}

// Fetch downloads the listing and normalizes its records. A cancelled ctx
// yields domain.ErrCancelled; every other failure is a *domain.FetchError.
func (f *cryptoCompareFetcher) Fetch(ctx context.Context, cfg Provider) ([]domain.Article, error) {
	if !strings.EqualFold(cfg.Type, ProviderTypeCryptoCompare) {
		return nil, fmt.Errorf("cryptocompare fetcher received incompatible provider type %q", cfg.Type)
	}
	if strings.TrimSpace(cfg.SourceURL) == "" {
		return nil, fmt.Errorf("provider %q source_url is empty", cfg.ID)
	}

	resp, err := f.client.Get(ctx, httpclient.Request{
		URL:     cfg.SourceURL,
		Query:   map[string]string{"lang": ConfigString(cfg, ConfigLangKey, "EN")},
		Headers: Headers(cfg),
	})
	if cancelled(ctx) {
		return nil, domain.ErrCancelled
	}
	if err != nil {
		return nil, domain.NewFetchError(transportReason(err), err)
	}

	body := resp.Body()
	if resp.StatusCode() != http.StatusOK {
		reason := fmt.Sprintf("HTTP %d", resp.StatusCode())
		if msg := providerMessage(body); msg != "" {
			reason = msg
		}
		return nil, domain.NewFetchError(reason,
			fmt.Errorf("%s news returned status %d body: %s", cfg.ID, resp.StatusCode(), responseSnippet(body)))
	}

	return decodeNews(body)
}

func cancelled(ctx context.Context) bool {
	return errors.Is(ctx.Err(), context.Canceled)
}

func transportReason(err error) string {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return "request timed out"
	}
	return err.Error()
}

// newsEnvelope is the top-level response shape, success or error.
type newsEnvelope struct {
	Response string          `json:"Response"`
	Message  string          `json:"Message"`
	Data     json.RawMessage `json:"Data"`
}

type newsRecord struct {
	ID          flexInt `json:"id"`
	PublishedOn flexInt `json:"published_on"`
	ImageURL    string  `json:"imageurl"`
	Title       string  `json:"title"`
	URL         string  `json:"url"`
	Body        string  `json:"body"`
	Tags        string  `json:"tags"`
	Upvotes     flexInt `json:"upvotes"`
	Downvotes   flexInt `json:"downvotes"`
	Categories  string  `json:"categories"`
	SourceInfo  struct {
		Name string `json:"name"`
	} `json:"source_info"`
}

// flexInt accepts a JSON integer or a string holding one. Anything else
// leaves Valid false without failing the surrounding decode.
type flexInt struct {
	Value int64
	Valid bool
}

func (f *flexInt) UnmarshalJSON(b []byte) error {
	*f = flexInt{}
	s := strings.TrimSpace(string(b))
	if s == "null" || s == "" {
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return nil
		}
		s = strings.TrimSpace(str)
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil
	}
	f.Value, f.Valid = v, true
	return nil
}

func providerMessage(body []byte) string {
	var env newsEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return ""
	}
	return strings.TrimSpace(env.Message)
}

// decodeNews turns a response body into articles. Records are decoded one by
// one so a malformed record is dropped without failing the whole response.
func decodeNews(body []byte) ([]domain.Article, error) {
	var env newsEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, domain.NewFetchError("decode response", fmt.Errorf("decode news envelope: %w", err))
	}
	if strings.EqualFold(env.Response, "Error") {
		msg := strings.TrimSpace(env.Message)
		if msg == "" {
			msg = "API returned an error"
		}
		return nil, domain.NewFetchError(msg, nil)
	}

	var raw []json.RawMessage
	if data := bytes.TrimSpace(env.Data); len(data) > 0 && data[0] == '[' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, domain.NewFetchError("decode response", fmt.Errorf("decode news data: %w", err))
		}
	}

	articles := make([]domain.Article, 0, len(raw))
	for _, r := range raw {
		var rec newsRecord
		if err := json.Unmarshal(r, &rec); err != nil {
			continue
		}
		art, ok := toArticle(rec)
		if !ok {
			continue
		}
		articles = append(articles, art)
		if len(articles) == MaxArticles {
			break
		}
	}
	return articles, nil
}

// toArticle maps a record to the canonical shape. Records without a numeric
// id, a title, a url or a publish time are rejected.
func toArticle(rec newsRecord) (domain.Article, bool) {
	title := strings.TrimSpace(rec.Title)
	link := strings.TrimSpace(rec.URL)
	if !rec.ID.Valid || title == "" || link == "" || !rec.PublishedOn.Valid {
		return domain.Article{}, false
	}

	description := Describe(rec.Body, title)
	return domain.Article{
		ID:          rec.ID.Value,
		Title:       title,
		Slug:        Slugify(title),
		PublishedAt: epochTime(rec.PublishedOn.Value),
		URL:         link,
		Currencies:  ExtractCurrencies(rec.Categories, title, rec.Body),
		Domain:      Hostname(link),
		Votes: domain.Votes{
			Positive: int(rec.Upvotes.Value),
			Negative: int(rec.Downvotes.Value),
		}.Clamp(),
		Metadata: domain.Metadata{
			Description: description,
			Image:       strings.TrimSpace(rec.ImageURL),
			Author:      strings.TrimSpace(rec.SourceInfo.Name),
			ReadingTime: ReadingTime(description),
			Tags:        ParseTags(rec.Tags),
		},
	}, true
}
