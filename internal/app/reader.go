package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/samvad-hq/cryptonews-reader/internal/config"
	"github.com/samvad-hq/cryptonews-reader/internal/crawler"
	"github.com/samvad-hq/cryptonews-reader/internal/domain"
	"github.com/samvad-hq/cryptonews-reader/internal/feed"
	"github.com/samvad-hq/cryptonews-reader/internal/logger"
	"github.com/samvad-hq/cryptonews-reader/internal/storage"
	"github.com/samvad-hq/cryptonews-reader/pkg/providers"
	"github.com/samvad-hq/cryptonews-reader/pkg/publishers"
)

// Collector gathers the live article list.
type Collector interface {
	Collect(ctx context.Context, cfgs []providers.Provider) ([]domain.Article, error)
}

// EventPublisher delivers saved-state events downstream.
type EventPublisher interface {
	Publish(ctx context.Context, evt publishers.Event) (int, error)
	Size() int
	Close() error
}

// Reader represents the news reader runtime. It owns the view state, runs
// fetches against the providers, persists saved ids and emits events when
// they change.
type Reader struct {
	mu     sync.Mutex
	state  State
	gen    uint64
	cancel context.CancelFunc

	providers []providers.Provider
	collector Collector
	store     storage.Store
	events    EventPublisher
	timeout   time.Duration
	now       func() time.Time
	log       logger.Logger
}

// NewReader builds a reader runtime from config files.
func NewReader(ctx context.Context, cfg *config.Config, log logger.Logger) (*Reader, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = &logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	providerReg, err := providers.LoadRegistry(cfg.ProvidersFile)
	if err != nil {
		return nil, fmt.Errorf("load providers registry: %w", err)
	}
	providerList := providerReg.All()
	providerIDs := make([]string, 0, len(providerList))
	for _, p := range providerList {
		providerIDs = append(providerIDs, p.ID)
	}
	log.InfoObj("providers registry loaded", "providers_meta", map[string]any{
		"count": len(providerIDs),
		"ids":   providerIDs,
	})

	publisherReg, err := publishers.LoadRegistry(cfg.PublishersFile)
	if err != nil {
		return nil, fmt.Errorf("load publishers registry: %w", err)
	}
	enabledPublishers := publisherReg.Enabled()
	pubClients, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), enabledPublishers, log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}
	fanout := publishers.NewFanout(pubClients)
	publisherSummaries := make([]map[string]string, 0, len(enabledPublishers))
	for _, pubCfg := range enabledPublishers {
		publisherSummaries = append(publisherSummaries, map[string]string{
			"id":   pubCfg.ID,
			"type": pubCfg.Type,
		})
	}
	log.InfoObj("publishers registry loaded", "publishers_meta", map[string]any{
		"count":      len(publisherSummaries),
		"publishers": publisherSummaries,
	})

	store, err := storage.NewStore(cfg.StorageType, cfg.BBoltPath)
	if err != nil {
		_ = fanout.Close()
		return nil, fmt.Errorf("init storage: %w", err)
	}
	log.InfoObj("storage initialized", "storage_config", map[string]any{
		"type": cfg.StorageType,
		"path": cfg.BBoltPath,
	})

	httpClient := providers.DefaultHTTPClient(cfg.FetchTimeout)
	var scraper crawler.ArticleScraper
	if cfg.EnrichImages {
		scraper = crawler.NewScraper(httpClient, log)
	}
	collector := crawler.NewService(providers.DefaultFetcherRegistry(httpClient), scraper, log)

	return newReader(readerDeps{
		providers: providerList,
		collector: collector,
		store:     store,
		events:    fanout,
		timeout:   cfg.FetchTimeout,
		log:       log,
	}), nil
}

type readerDeps struct {
	providers []providers.Provider
	collector Collector
	store     storage.Store
	events    EventPublisher
	timeout   time.Duration
	now       func() time.Time
	log       logger.Logger
}

func newReader(d readerDeps) *Reader {
	if d.log == nil {
		d.log = &logger.NopLogger{}
	}
	if d.now == nil {
		d.now = time.Now
	}
	if d.events == nil {
		d.events = publishers.NewFanout(nil)
	}
	if d.store == nil {
		d.store, _ = storage.NewStore(storage.TypeNone, "")
	}

	saved, err := d.store.LoadSaved()
	if err != nil {
		d.log.WarnObj("saved ids unavailable; starting empty", "error", err)
		saved = domain.NewSavedIDs()
	}

	return &Reader{
		state:     InitialState(SampleArticles(d.now()), saved),
		providers: d.providers,
		collector: d.collector,
		store:     d.store,
		events:    d.events,
		timeout:   d.timeout,
		now:       d.now,
		log:       d.log,
	}
}

// Refresh fetches the live list and applies the outcome. It supersedes any
// fetch already in flight; a superseded fetch leaves the state alone and
// returns domain.ErrCancelled.
func (r *Reader) Refresh(ctx context.Context) error {
	if r == nil || r.collector == nil {
		return fmt.Errorf("reader is not initialized")
	}

	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
	}
	r.gen++
	gen := r.gen
	fetchCtx, cancel := r.fetchContext(ctx)
	r.cancel = cancel
	r.state = r.state.FetchStarted()
	r.mu.Unlock()
	defer cancel()

	start := r.now()
	r.log.InfoObj("fetch started", "fetch_meta", map[string]any{
		"generation":      gen,
		"providers_count": len(r.providers),
	})
	articles, err := r.collector.Collect(fetchCtx, r.providers)

	r.mu.Lock()
	defer r.mu.Unlock()

	if gen != r.gen {
		r.log.DebugObj("fetch superseded", "fetch_meta", map[string]any{"generation": gen})
		return domain.ErrCancelled
	}
	r.cancel = nil

	switch {
	case errors.Is(err, domain.ErrCancelled) || errors.Is(err, context.Canceled):
		r.state = r.state.FetchAbandoned()
		r.log.InfoObj("fetch cancelled", "fetch_meta", map[string]any{"generation": gen})
		return domain.ErrCancelled
	case err != nil:
		r.state = r.state.FetchFailed(err, SampleArticles(r.now()))
		r.log.WarnObj("fetch failed; showing samples", "fetch_error", map[string]any{
			"generation": gen,
			"reason":     domain.Reason(err),
		})
		return err
	}

	r.state = r.state.FetchSucceeded(articles, SampleArticles(r.now()))
	r.log.InfoObj("fetch completed", "fetch_meta", map[string]any{
		"generation": gen,
		"articles":   len(articles),
		"elapsed_ms": r.now().Sub(start).Milliseconds(),
	})
	return nil
}

func (r *Reader) fetchContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout > 0 {
		return context.WithTimeout(ctx, r.timeout)
	}
	return context.WithCancel(ctx)
}

// ToggleSaved flips the saved state of id, persists the whole set and emits
// a saved.toggled event. It reports whether id is saved afterwards. Event
// delivery failures are logged only.
func (r *Reader) ToggleSaved(ctx context.Context, id int64) (bool, error) {
	r.mu.Lock()
	r.state = r.state.ToggleSaved(id)
	saved := r.state.Saved
	var article *domain.Article
	if a, ok := feed.Find(r.state.Articles, id); ok {
		article = &a
	}
	persistErr := r.store.SaveSaved(saved)
	r.mu.Unlock()

	isSaved := saved.Has(id)
	if persistErr != nil {
		r.log.ErrorObj("persist saved ids failed", "error", persistErr)
	}

	if r.events.Size() > 0 {
		evt := publishers.NewSavedToggledEvent(id, isSaved, article, saved.Len())
		if n, err := r.events.Publish(ctx, evt); err != nil {
			r.log.WarnObj("saved event delivery incomplete", "publish_error", map[string]any{
				"event_id":  evt.ID,
				"delivered": n,
				"error":     err.Error(),
			})
		}
	}

	if persistErr != nil {
		return isSaved, fmt.Errorf("persist saved ids: %w", persistErr)
	}
	return isSaved, nil
}

// SetFilter switches the active filter mode.
func (r *Reader) SetFilter(mode domain.FilterMode) {
	r.mu.Lock()
	r.state = r.state.WithFilter(mode)
	r.mu.Unlock()
}

// SetQuery replaces the search text.
func (r *Reader) SetQuery(q string) {
	r.mu.Lock()
	r.state = r.state.WithQuery(q)
	r.mu.Unlock()
}

// ToggleTheme flips dark mode and returns the new value.
func (r *Reader) ToggleTheme() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = r.state.ToggleTheme()
	return r.state.DarkMode
}

func (r *Reader) DismissBanner() {
	r.mu.Lock()
	r.state = r.state.DismissBanner()
	r.mu.Unlock()
}

// Snapshot returns the current state.
func (r *Reader) Snapshot() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Visible returns the filtered list for the current state.
func (r *Reader) Visible() []domain.Article {
	return r.Snapshot().Visible()
}

// Article looks up id in the loaded list along with its related articles.
func (r *Reader) Article(id int64) (domain.Article, []domain.Article, bool) {
	st := r.Snapshot()
	a, ok := feed.Find(st.Articles, id)
	if !ok {
		return domain.Article{}, nil, false
	}
	return a, feed.Related(st.Articles, a, feed.RelatedLimit), true
}

// Close cancels any in-flight fetch and releases the store and publishers.
func (r *Reader) Close() error {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.mu.Unlock()

	var errs []error
	if err := r.events.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close publishers: %w", err))
	}
	if err := r.store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close storage: %w", err))
	}
	return errors.Join(errs...)
}
