package tcgdex

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sethvargo/go-retry"

	"github.com/SergioXp/holostack/internal/core/domain"
	"github.com/SergioXp/holostack/internal/core/ports/driven"
	"github.com/SergioXp/holostack/internal/logger"
)

const (
	// DefaultBaseURL is the public TCGdex API root.
	DefaultBaseURL = "https://api.tcgdex.net/v2"

	// DefaultLanguage is the catalog locale.
	DefaultLanguage = "en"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// MaxRetries is the default number of retries for transient errors.
	MaxRetries = 3

	// RetryDelay is the initial delay between retries.
	RetryDelay = time.Second

	// maxErrorBody bounds how much of an error response is kept.
	maxErrorBody = 512
)

// Ensure Client implements the interface.
var _ driven.CatalogClient = (*Client)(nil)

// Config configures a Client. Zero values fall back to defaults, except
// MaxRetries and CacheSize where zero disables the feature.
type Config struct {
	BaseURL           string
	Language          string
	RequestsPerSecond float64
	Timeout           time.Duration
	MaxRetries        int
	RetryDelay        time.Duration

	// CacheSize is the number of sets and of cards kept in memory.
	CacheSize int

	// HTTPClient overrides the default client. Timeout is ignored when set.
	HTTPClient *http.Client
}

// ConfigFromSettings builds a Config from application settings.
func ConfigFromSettings(s domain.CatalogSettings) Config {
	return Config{
		BaseURL:           s.BaseURL,
		Language:          s.Language,
		RequestsPerSecond: s.RequestsPerSecond,
		Timeout:           s.Timeout,
		MaxRetries:        s.MaxRetries,
		CacheSize:         s.CacheSize,
	}
}

// Client is a TCGdex REST client.
type Client struct {
	http        *http.Client
	baseURL     string
	rateLimiter *RateLimiter
	maxRetries  int
	retryDelay  time.Duration

	sets  *lru.TwoQueueCache[string, domain.Set]
	cards *lru.TwoQueueCache[string, domain.Card]
}

// NewClient creates a new TCGdex client.
func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, fmt.Errorf("%w: catalog base url %q", domain.ErrInvalidInput, cfg.BaseURL)
	}
	lang := strings.TrimSpace(cfg.Language)
	if lang == "" {
		lang = DefaultLanguage
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	retryDelay := cfg.RetryDelay
	if retryDelay <= 0 {
		retryDelay = RetryDelay
	}

	c := &Client{
		http:        httpClient,
		baseURL:     base + "/" + url.PathEscape(lang),
		rateLimiter: NewRateLimiter(cfg.RequestsPerSecond),
		maxRetries:  maxRetries,
		retryDelay:  retryDelay,
	}

	if cfg.CacheSize > 0 {
		sets, err := lru.New2Q[string, domain.Set](cfg.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("creating set cache: %w", err)
		}
		cards, err := lru.New2Q[string, domain.Card](cfg.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("creating card cache: %w", err)
		}
		c.sets = sets
		c.cards = cards
	}

	return c, nil
}

// RateLimiter returns the client's rate limiter.
func (c *Client) RateLimiter() *RateLimiter {
	return c.rateLimiter
}

// FetchSet returns one set with its brief card listing embedded.
func (c *Client) FetchSet(ctx context.Context, id string) (*domain.Set, error) {
	if c.sets != nil {
		if set, ok := c.sets.Get(id); ok {
			set.Cards = append([]domain.CardBrief(nil), set.Cards...)
			return &set, nil
		}
	}

	var payload setJSON
	if err := c.getJSON(ctx, "/sets/"+url.PathEscape(id), nil, &payload); err != nil {
		return nil, c.wrapError(ctx, err, "fetch set "+id)
	}

	set := payload.toDomain()
	if c.sets != nil {
		c.sets.Add(id, set)
	}
	return &set, nil
}

// FetchSets returns every set with its series name, walking the series
// listing. Card listings are embedded only when includeCards is true,
// at the cost of one request per set.
func (c *Client) FetchSets(ctx context.Context, includeCards bool) ([]domain.Set, error) {
	var series []serieRefJSON
	if err := c.getJSON(ctx, "/series", nil, &series); err != nil {
		return nil, c.wrapError(ctx, err, "list series")
	}

	var sets []domain.Set
	for _, ref := range series {
		var detail serieJSON
		if err := c.getJSON(ctx, "/series/"+url.PathEscape(ref.ID), nil, &detail); err != nil {
			return nil, c.wrapError(ctx, err, "fetch series "+ref.ID)
		}

		name := detail.Name
		if name == "" {
			name = ref.Name
		}
		for _, brief := range detail.Sets {
			set := brief.toDomain(name)
			if includeCards {
				full, err := c.FetchSet(ctx, brief.ID)
				if err != nil {
					return nil, err
				}
				set.Cards = full.Cards
				set.ReleaseDate = full.ReleaseDate
			}
			sets = append(sets, set)
		}
	}

	logger.Debug("tcgdex: listed %d sets across %d series", len(sets), len(series))
	return sets, nil
}

// FetchCards returns full detail for the given card ids, in input order.
// Ids the catalog does not know are omitted.
func (c *Client) FetchCards(ctx context.Context, ids []string) ([]domain.Card, error) {
	cards := make([]domain.Card, 0, len(ids))
	for _, id := range ids {
		if c.cards != nil {
			if card, ok := c.cards.Get(id); ok {
				cards = append(cards, card)
				continue
			}
		}

		var payload cardJSON
		if err := c.getJSON(ctx, "/cards/"+url.PathEscape(id), nil, &payload); err != nil {
			if IsNotFound(err) {
				logger.Warn("tcgdex: card %s not found, skipping", id)
				continue
			}
			return nil, c.wrapError(ctx, err, "fetch card "+id)
		}

		card := payload.toDomain()
		if c.cards != nil {
			c.cards.Add(id, card)
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// SearchByName returns briefs whose name contains name.
func (c *Client) SearchByName(ctx context.Context, name string) ([]domain.CardBrief, error) {
	return c.search(ctx, "name", name)
}

// SearchByRarity returns briefs filtered server-side by rarity.
func (c *Client) SearchByRarity(ctx context.Context, rarity string) ([]domain.CardBrief, error) {
	return c.search(ctx, "rarity", rarity)
}

// SearchByCategory returns briefs filtered server-side by category.
func (c *Client) SearchByCategory(ctx context.Context, category string) ([]domain.CardBrief, error) {
	return c.search(ctx, "category", category)
}

func (c *Client) search(ctx context.Context, field, value string) ([]domain.CardBrief, error) {
	var payload []cardBriefJSON
	query := url.Values{field: []string{value}}
	if err := c.getJSON(ctx, "/cards", query, &payload); err != nil {
		return nil, c.wrapError(ctx, err, fmt.Sprintf("search cards by %s %q", field, value))
	}
	return briefsToDomain(payload), nil
}

// getJSON performs a rate-limited GET with retries and decodes the body into out.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	backoff := retry.WithMaxRetries(uint64(c.maxRetries), retry.NewExponential(c.retryDelay))
	attempt := 0

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		if attempt > 1 {
			logger.Debug("tcgdex: retry %d for %s", attempt-1, endpoint)
		}

		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit wait: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return fmt.Errorf("building request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()

		if rlErr := c.rateLimiter.CheckRateLimit(resp); rlErr != nil {
			logger.Warn("tcgdex: rate limited on %s", endpoint)
			return retry.RetryableError(rlErr)
		}

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
			apiErr := &APIError{
				StatusCode: resp.StatusCode,
				Message:    strings.TrimSpace(string(body)),
				URL:        endpoint,
			}
			if isTransient(resp.StatusCode) {
				return retry.RetryableError(apiErr)
			}
			return apiErr
		}

		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding %s: %w", path, err)
		}
		return nil
	})
}

// wrapError marks catalog failures with domain.ErrUpstream.
// Context cancellation passes through unchanged.
func (c *Client) wrapError(ctx context.Context, err error, operation string) error {
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", domain.ErrUpstream, operation, err)
}
