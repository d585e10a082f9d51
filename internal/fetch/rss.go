package fetch

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
	"github.com/mmcdole/gofeed"

	"github.com/savelyev/oddsfeed/internal/pkg/config"
	"github.com/savelyev/oddsfeed/internal/pkg/models"
)

// userAgents is the per-attempt rotation for the feed request. The source
// sits behind a WAF that intermittently blocks generic clients; which agent
// passes changes over time, so browser strings come first and plain tool
// strings after.
var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"curl/7.68.0",
	"Wget/1.20.3",
	"RSS-Reader/1.0",
	"FeedReader/1.0",
}

// minFeedBytes separates real feed bodies from WAF challenge stubs.
const minFeedBytes = 100

const defaultFeedTimeout = 10 * time.Second

// FeedItem is one article reference pulled from the RSS channel.
type FeedItem struct {
	Title     string
	Link      string
	PubDate   string
	Category  string
	Published time.Time
}

// RSSClient fetches and parses the article feed.
type RSSClient struct {
	cfg        config.FeedConfig
	timeout    time.Duration
	httpClient *http.Client
	logger     *slog.Logger
}

func NewRSSClient(cfg config.FeedConfig, timeout time.Duration, logger *slog.Logger) *RSSClient {
	if timeout <= 0 {
		timeout = defaultFeedTimeout
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DisableCompression = true // we send Accept-Encoding and decode in readBodyDecode

	return &RSSClient{
		cfg:        cfg,
		timeout:    timeout,
		httpClient: &http.Client{Timeout: timeout, Transport: transport},
		logger:     logger,
	}
}

// FetchChannel downloads the feed and returns channel metadata plus the item
// list, deduplicated by link, newest-first as published, filtered by the
// configured age window and item cap.
func (c *RSSClient) FetchChannel(ctx context.Context) (models.ChannelMeta, []FeedItem, error) {
	body, err := c.fetchFeedBody(ctx)
	if err != nil {
		return models.ChannelMeta{}, nil, err
	}

	feed, err := gofeed.NewParser().ParseString(string(body))
	if err != nil {
		return models.ChannelMeta{}, nil, fmt.Errorf("parsing feed: %w", err)
	}

	meta := models.ChannelMeta{
		Title:       feed.Title,
		Description: feed.Description,
		Link:        feed.Link,
	}
	return meta, c.filterItems(feed.Items), nil
}

// fetchFeedBody walks the User-Agent rotation with a random 1-3s pause
// between attempts, then falls back to a warmed cookie session.
func (c *RSSClient) fetchFeedBody(ctx context.Context) ([]byte, error) {
	for i, ua := range userAgents {
		body, err := c.tryFeed(ctx, c.httpClient, ua)
		if err == nil {
			c.logger.Info("feed fetched", "attempt", i+1, "user_agent", ua, "bytes", len(body))
			return body, nil
		}
		c.logger.Debug("feed attempt failed", "attempt", i+1, "user_agent", ua, "error", err)

		if err := sleepRandom(ctx); err != nil {
			return nil, err
		}
	}
	return c.fetchWithSession(ctx)
}

func (c *RSSClient) tryFeed(ctx context.Context, client *http.Client, ua string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.RSSURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	setFeedHeaders(req, ua)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := readBodyDecode(resp)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK || len(body) <= minFeedBytes {
		preview := string(body)
		if len(preview) > 200 {
			preview = preview[:200] + "..."
		}
		return nil, fmt.Errorf("blocked response: status %d, %d bytes: %s",
			resp.StatusCode, len(body), preview)
	}
	return body, nil
}

// fetchWithSession is the last resort: some WAF rules pass clients that
// visited the site root first and carry its cookies into the feed request.
func (c *RSSClient) fetchWithSession(ctx context.Context) ([]byte, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DisableCompression = true
	session := &http.Client{Timeout: c.timeout, Jar: jar, Transport: transport}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.SiteURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	setFeedHeaders(req, userAgents[0])

	resp, err := session.Do(req)
	if err != nil {
		return nil, fmt.Errorf("visit site root: %w", err)
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	c.logger.Debug("session warmed", "status", resp.StatusCode)

	body, err := c.tryFeed(ctx, session, userAgents[0])
	if err != nil {
		return nil, fmt.Errorf("feed blocked for every user agent and for the session fallback: %w", err)
	}
	c.logger.Info("feed fetched via session fallback", "bytes", len(body))
	return body, nil
}

func setFeedHeaders(req *http.Request, ua string) {
	req.Header.Set("User-Agent", ua)
	req.Header.Set("Accept", "application/rss+xml, application/xml, text/xml, */*")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Accept-Encoding", "gzip, deflate, br, zstd")
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")
}

func sleepRandom(ctx context.Context) error {
	d := time.Second + time.Duration(rand.Int63n(int64(2*time.Second)))
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// filterItems drops duplicate links and stale items, keeping feed order, and
// applies the per-run item cap.
func (c *RSSClient) filterItems(items []*gofeed.Item) []FeedItem {
	var cutoff time.Time
	if c.cfg.MaxAge > 0 {
		cutoff = time.Now().Add(-c.cfg.MaxAge)
	}

	seen := make(map[string]bool)
	var out []FeedItem
	for _, item := range items {
		if item == nil || item.Link == "" || seen[item.Link] {
			continue
		}

		var published time.Time
		if item.PublishedParsed != nil {
			published = *item.PublishedParsed
		}
		if !cutoff.IsZero() && !published.IsZero() && published.Before(cutoff) {
			continue
		}

		var category string
		if len(item.Categories) > 0 {
			category = item.Categories[0]
		}

		seen[item.Link] = true
		out = append(out, FeedItem{
			Title:     item.Title,
			Link:      item.Link,
			PubDate:   item.Published,
			Category:  category,
			Published: published,
		})
		if c.cfg.MaxItems > 0 && len(out) >= c.cfg.MaxItems {
			break
		}
	}
	return out
}

// readBodyDecode reads the response body and decompresses it based on
// Content-Encoding (gzip, br, zstd).
func readBodyDecode(resp *http.Response) ([]byte, error) {
	enc := strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding")))
	switch {
	case strings.Contains(enc, "br"):
		r := brotli.NewReader(resp.Body)
		return io.ReadAll(r)
	case strings.Contains(enc, "zstd"):
		r, err := zstd.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("zstd reader: %w", err)
		}
		defer r.Close()
		return io.ReadAll(r)
	case strings.Contains(enc, "gzip"):
		r, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("gzip reader: %w", err)
		}
		defer r.Close()
		return io.ReadAll(r)
	default:
		return io.ReadAll(resp.Body)
	}
}
