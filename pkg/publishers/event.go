package publishers

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/samvad-hq/cryptonews-reader/internal/domain"
)

// EventSavedToggled is emitted whenever a reader saves or unsaves an article.
const EventSavedToggled = "saved.toggled"

// Event represents the payload published downstream.
type Event struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	ArticleID  int64           `json:"article_id"`
	Saved      bool            `json:"saved"`
	Article    *domain.Article `json:"article,omitempty"`
	SavedCount int             `json:"saved_count"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// NewSavedToggledEvent constructs the event for a saved-state flip. article
// may be nil when the id is not part of the loaded list.
func NewSavedToggledEvent(articleID int64, saved bool, article *domain.Article, savedCount int) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       EventSavedToggled,
		ArticleID:  articleID,
		Saved:      saved,
		Article:    article,
		SavedCount: savedCount,
		OccurredAt: time.Now().UTC(),
	}
}

// attributes are the routing attributes attached by queue and topic sinks.
func (e Event) attributes() map[string]string {
	return map[string]string{
		"event_type": e.Type,
		"article_id": strconv.FormatInt(e.ArticleID, 10),
		"saved":      strconv.FormatBool(e.Saved),
	}
}
