package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/savelyev/oddsfeed/internal/pkg/config"
)

const defaultPageTimeout = 30 * time.Second

// BrowserFetcher loads article pages through headless Chrome. The site
// assembles its odds tables client-side, so plain GET bodies miss most of
// the content the pipeline needs.
type BrowserFetcher struct {
	cfg    config.FetcherConfig
	logger *slog.Logger
}

func NewBrowserFetcher(cfg config.FetcherConfig, logger *slog.Logger) *BrowserFetcher {
	return &BrowserFetcher{cfg: cfg, logger: logger}
}

// FetchPages renders each URL sequentially in one shared browser and returns
// body HTML keyed by URL. A page that fails to load is logged and left out;
// the rest of the run continues.
func (f *BrowserFetcher) FetchPages(ctx context.Context, urls []string) (map[string]string, error) {
	pages := make(map[string]string, len(urls))
	if len(urls) == 0 {
		return pages, nil
	}

	chromeDir, err := os.MkdirTemp("", "oddsfeed_chrome_")
	if err != nil {
		return nil, fmt.Errorf("create chrome temp dir: %w", err)
	}
	defer os.RemoveAll(chromeDir)

	ua := f.cfg.UserAgent
	if ua == "" {
		ua = userAgents[0]
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.UserDataDir(chromeDir),
		chromedp.UserAgent(ua),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	timeout := f.cfg.PageTimeout
	if timeout <= 0 {
		timeout = defaultPageTimeout
	}

	for _, u := range urls {
		html, err := fetchPage(browserCtx, u, timeout)
		if err != nil {
			f.logger.Warn("page fetch failed", "url", u, "error", err)
			continue
		}
		f.logger.Debug("page fetched", "url", u, "bytes", len(html))
		pages[u] = html
	}
	return pages, nil
}

func fetchPage(browserCtx context.Context, url string, timeout time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var html string
	err := chromedp.Run(ctx,
		chromedp.Navigate(url),
		chromedp.Sleep(2*time.Second), // let client-side tables render
		chromedp.OuterHTML("body", &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("chromedp navigation: %w", err)
	}
	return html, nil
}
