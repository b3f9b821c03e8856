package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samvad-hq/cryptonews-reader/internal/app"
	"github.com/samvad-hq/cryptonews-reader/internal/domain"
	"github.com/samvad-hq/cryptonews-reader/internal/feed"
	"github.com/samvad-hq/cryptonews-reader/internal/logger"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Reader is the runtime surface the HTTP layer drives.
type Reader interface {
	Refresh(ctx context.Context) error
	ToggleSaved(ctx context.Context, id int64) (bool, error)
	SetFilter(mode domain.FilterMode)
	SetQuery(q string)
	ToggleTheme() bool
	DismissBanner()
	Snapshot() app.State
	Article(id int64) (domain.Article, []domain.Article, bool)
}

// Options tune the router. Zero values disable the proxy and use time.Now.
type Options struct {
	ProxyUpstream string
	Now           func() time.Time
}

type handlers struct {
	reader Reader
	log    logger.Logger
}

// NewRouter builds the gin engine serving the HTML pages, the JSON API and the
// same-origin news proxy.
func NewRouter(reader Reader, opts Options, log logger.Logger) (*gin.Engine, error) {
	if reader == nil {
		return nil, fmt.Errorf("reader must not be nil")
	}
	if log == nil {
		log = &logger.NopLogger{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	tmpl, err := template.New("").Funcs(templateFuncs(opts.Now)).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(log))
	r.SetHTMLTemplate(tmpl)

	h := &handlers{reader: reader, log: log}

	r.GET("/", h.index)
	r.GET("/news/:id", h.detail)
	r.POST("/refresh", h.refresh)
	r.POST("/banner/dismiss", h.dismissBanner)
	r.POST("/saved/:id", h.toggleSaved)
	r.POST("/theme", h.toggleTheme)

	api := r.Group("/api")
	api.GET("/news", h.apiNews)
	api.GET("/news/:id", h.apiArticle)
	api.POST("/refresh", h.apiRefresh)
	api.GET("/saved", h.apiSaved)
	api.POST("/saved/:id", h.apiToggleSaved)
	api.GET("/state", h.apiState)

	if strings.TrimSpace(opts.ProxyUpstream) != "" {
		proxy, err := newNewsProxy(opts.ProxyUpstream, log)
		if err != nil {
			return nil, err
		}
		r.Any("/cc/*path", proxy.handle)
	}

	return r, nil
}

func requestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.DebugObj("http request", "http_request", map[string]any{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"elapsed_ms": time.Since(start).Milliseconds(),
		})
	}
}

func (h *handlers) index(c *gin.Context) {
	if q, ok := c.GetQuery("q"); ok {
		h.reader.SetQuery(q)
	}
	if raw, ok := c.GetQuery("filter"); ok && raw != "" {
		if mode, err := domain.ParseFilterMode(raw); err == nil {
			h.reader.SetFilter(mode)
		}
	}
	c.HTML(http.StatusOK, "index.html", newListPage(h.reader.Snapshot(), c.Request.URL.RequestURI()))
}

func (h *handlers) detail(c *gin.Context) {
	st := h.reader.Snapshot()
	id, ok := parseID(c.Param("id"))
	if !ok {
		c.HTML(http.StatusNotFound, "notfound.html", notFoundPage{State: st, ReturnTo: "/"})
		return
	}
	article, related, found := h.reader.Article(id)
	if !found {
		c.HTML(http.StatusNotFound, "notfound.html", notFoundPage{State: st, ReturnTo: "/"})
		return
	}
	c.HTML(http.StatusOK, "detail.html", detailPage{
		State:    st,
		ReturnTo: c.Request.URL.RequestURI(),
		Article:  article,
		Saved:    st.Saved.Has(id),
		Related:  related,
	})
}

func (h *handlers) refresh(c *gin.Context) {
	h.runRefresh(c.Request.Context())
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *handlers) dismissBanner(c *gin.Context) {
	h.reader.DismissBanner()
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *handlers) toggleSaved(c *gin.Context) {
	if id, ok := parseID(c.Param("id")); ok {
		if _, err := h.reader.ToggleSaved(c.Request.Context(), id); err != nil {
			h.log.ErrorObj("toggle saved failed", "error", err)
		}
	}
	c.Redirect(http.StatusSeeOther, returnTo(c))
}

func (h *handlers) toggleTheme(c *gin.Context) {
	h.reader.ToggleTheme()
	c.Redirect(http.StatusSeeOther, returnTo(c))
}

// runRefresh treats fetch failures as state (the banner), not as request errors.
func (h *handlers) runRefresh(ctx context.Context) {
	err := h.reader.Refresh(ctx)
	switch {
	case err == nil, errors.Is(err, domain.ErrCancelled):
	default:
		h.log.WarnObj("refresh fell back to samples", "reason", domain.Reason(err))
	}
}

type newsResponse struct {
	Filter   domain.FilterMode `json:"filter"`
	Query    string            `json:"query"`
	Loading  bool              `json:"loading"`
	Banner   string            `json:"banner,omitempty"`
	Articles []domain.Article  `json:"articles"`
	Trending []feed.Mention    `json:"trending"`
}

// apiNews selects from the loaded list without touching the view state. The
// filter and q parameters default to the current state.
func (h *handlers) apiNews(c *gin.Context) {
	st := h.reader.Snapshot()
	mode := st.Filter
	if raw := c.Query("filter"); raw != "" {
		parsed, err := domain.ParseFilterMode(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		mode = parsed
	}
	query := st.Query
	if q, ok := c.GetQuery("q"); ok {
		query = q
	}

	articles := feed.Select(st.Articles, mode, query, st.Saved)
	c.JSON(http.StatusOK, newsResponse{
		Filter:   mode,
		Query:    query,
		Loading:  st.Loading,
		Banner:   st.Banner,
		Articles: articles,
		Trending: feed.Trending(articles, feed.TrendingLimit),
	})
}

func (h *handlers) apiArticle(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}
	article, related, found := h.reader.Article(id)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"article": article, "related": related})
}

func (h *handlers) apiRefresh(c *gin.Context) {
	h.runRefresh(c.Request.Context())
	c.JSON(http.StatusOK, newStateResponse(h.reader.Snapshot()))
}

func (h *handlers) apiSaved(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ids": h.reader.Snapshot().Saved.IDs()})
}

func (h *handlers) apiToggleSaved(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid article id"})
		return
	}
	saved, err := h.reader.ToggleSaved(c.Request.Context(), id)
	if err != nil {
		h.log.ErrorObj("toggle saved failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "id": id, "saved": saved})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "saved": saved})
}

type stateResponse struct {
	Filter       domain.FilterMode `json:"filter"`
	Query        string            `json:"query"`
	Loading      bool              `json:"loading"`
	Banner       string            `json:"banner,omitempty"`
	DarkMode     bool              `json:"dark_mode"`
	SavedIDs     []int64           `json:"saved_ids"`
	ArticleCount int               `json:"article_count"`
}

func newStateResponse(st app.State) stateResponse {
	return stateResponse{
		Filter:       st.Filter,
		Query:        st.Query,
		Loading:      st.Loading,
		Banner:       st.Banner,
		DarkMode:     st.DarkMode,
		SavedIDs:     st.Saved.IDs(),
		ArticleCount: len(st.Articles),
	}
}

func (h *handlers) apiState(c *gin.Context) {
	c.JSON(http.StatusOK, newStateResponse(h.reader.Snapshot()))
}

func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// returnTo reads the local redirect target posted by the page forms.
func returnTo(c *gin.Context) string {
	target := c.PostForm("return_to")
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return "/"
	}
	return target
}
