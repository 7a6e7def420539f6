package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"wish-archive/core/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// TimeLayout is the layout of record timestamps.
const TimeLayout = "2006-01-02 15:04:05"

// ErrUnexpectedStatus is returned for non-2xx responses.
var ErrUnexpectedStatus = errors.New("unexpected status code")

// PageRequest selects one page of one query type.
type PageRequest struct {
	// QueryType is sent as gacha_type.
	QueryType int
	// EndID is the id of the oldest record already seen; 0 requests the newest page.
	EndID int64
	// Size is the number of records requested.
	Size int
	// AuthQuery is the account's auth query string, or a full URL carrying it.
	AuthQuery string
}

// Item is one record of a page.
type Item struct {
	ID        int64
	UID       string
	GachaType int
	Time      time.Time
	Name      string
	ItemType  string
	RankType  int
}

// Page is one API reply, newest record first.
type Page struct {
	Items []Item
	// Size is the page size the page was requested with.
	Size int
}

// IsLast reports whether the page is shorter than requested.
func (p *Page) IsLast() bool {
	return len(p.Items) < p.Size
}

// Client fetches gacha log pages.
// A nil page with a nil error means the auth query is no longer accepted.
type Client interface {
	FetchPage(ctx context.Context, req PageRequest) (*Page, error)
}

// HTTPClient fetches pages over HTTP with Fiber's client.
type HTTPClient struct {
	endpoint string
	lang     string
	timeout  time.Duration
	loc      *time.Location
	logger   *zap.Logger
}

// NewHTTPClient creates a client from the configuration.
func NewHTTPClient(cfg Config, logger *zap.Logger) (*HTTPClient, error) {
	endpoint := cfg.ResolveEndpoint()
	if endpoint == "" {
		return nil, fmt.Errorf("unknown fetch region %q and no endpoint configured", cfg.Region)
	}
	if !cfg.IsValidLang() {
		return nil, fmt.Errorf("unsupported fetch language %q", cfg.Lang)
	}

	return &HTTPClient{
		endpoint: endpoint,
		lang:     cfg.Lang,
		timeout:  cfg.Timeout(),
		loc:      cfg.Location(),
		logger:   logger,
	}, nil
}

// FetchPage requests one page.
func (c *HTTPClient) FetchPage(ctx context.Context, req PageRequest) (*Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	query, err := c.buildQuery(req)
	if err != nil {
		return nil, err
	}

	agent := fiber.Get(c.endpoint)
	agent.QueryString(query)
	agent.Timeout(c.timeout)

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return nil, fmt.Errorf("failed to fetch gacha log page: %w", errors.Join(errs...))
	}
	if code < 200 || code > 299 {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, code)
	}

	var resp response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode gacha log page: %w", err)
	}

	// Expired or invalid auth keys come back without data
	if resp.Data == nil {
		c.logger.Warn("Gacha log API returned no data",
			zap.Int("retcode", resp.Retcode),
			zap.String("message", resp.Message),
			zap.Int("query_type", req.QueryType))
		return nil, nil
	}

	page := &Page{Size: req.Size, Items: make([]Item, 0, len(resp.Data.List))}
	for _, raw := range resp.Data.List {
		item, err := c.convert(raw)
		if err != nil {
			return nil, err
		}
		page.Items = append(page.Items, item)
	}

	return page, nil
}

func (c *HTTPClient) buildQuery(req PageRequest) (string, error) {
	raw := req.AuthQuery
	if i := strings.IndexByte(raw, '?'); i >= 0 {
		raw = raw[i+1:]
	}
	if i := strings.IndexByte(raw, '#'); i >= 0 {
		raw = raw[:i]
	}

	values, err := url.ParseQuery(raw)
	if err != nil {
		return "", fmt.Errorf("invalid auth query: %w", err)
	}
	if values.Get("authkey") == "" {
		return "", errors.New("invalid auth query: missing authkey")
	}

	// Item type tags are localized; only the configured language is understood
	values.Set("lang", c.lang)
	values.Set("gacha_type", strconv.Itoa(req.QueryType))
	values.Set("size", strconv.Itoa(req.Size))
	values.Set("end_id", strconv.FormatInt(req.EndID, 10))
	values.Del("page")

	return values.Encode(), nil
}

func (c *HTTPClient) convert(raw itemData) (Item, error) {
	t, err := time.ParseInLocation(TimeLayout, raw.Time, c.loc)
	if err != nil {
		return Item{}, fmt.Errorf("invalid time %q on record %s: %w", raw.Time, raw.ID, err)
	}

	id := utils.ToInt64(raw.ID)
	if id <= 0 {
		return Item{}, fmt.Errorf("invalid record id %q", raw.ID)
	}

	return Item{
		ID:        id,
		UID:       raw.UID,
		GachaType: utils.ToInt(raw.GachaType),
		Time:      t,
		Name:      raw.Name,
		ItemType:  raw.ItemType,
		RankType:  utils.ToInt(raw.RankType),
	}, nil
}
