package domain

import "time"

// Domain contains core models and interfaces.

// Article is a single normalized news item.
type Article struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	PublishedAt time.Time  `json:"published_at"`
	URL         string     `json:"url"`
	Currencies  []Currency `json:"currencies"`
	Domain      string     `json:"domain"`
	Votes       Votes      `json:"votes"`
	Metadata    Metadata   `json:"metadata"`
}

// Metadata carries the presentational fields of an article. Empty Author and
// ReadingTime and a nil Tags slice mean the value is absent.
type Metadata struct {
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Author      string   `json:"author,omitempty"`
	ReadingTime string   `json:"reading_time,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// Currency is a ticker-like token associated with an article.
type Currency struct {
	Code  string `json:"code"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
	URL   string `json:"url"`
}

// Votes holds the named vote counters of an article.
type Votes struct {
	Positive  int `json:"positive"`
	Negative  int `json:"negative"`
	Important int `json:"important"`
	Liked     int `json:"liked"`
	Disliked  int `json:"disliked"`
	Funny     int `json:"funny"`
	Toxic     int `json:"toxic"`
	Saved     int `json:"saved"`
	Comments  int `json:"comments"`
}

// Clamp returns v with every negative counter raised to zero.
func (v Votes) Clamp() Votes {
	for _, c := range []*int{
		&v.Positive, &v.Negative, &v.Important, &v.Liked, &v.Disliked,
		&v.Funny, &v.Toxic, &v.Saved, &v.Comments,
	} {
		if *c < 0 {
			*c = 0
		}
	}
	return v
}

// HasCurrency reports whether the article mentions the given ticker code.
func (a Article) HasCurrency(code string) bool {
	for _, c := range a.Currencies {
		if c.Code == code {
			return true
		}
	}
	return false
}
