package fetch

import (
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
	"github.com/mmcdole/gofeed"

	"github.com/savelyev/oddsfeed/internal/pkg/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel>
<title>Odds Shark Articles</title>
<link>https://www.oddsshark.com</link>
<description>Latest betting articles</description>
<item><title>Lakers vs Warriors - NBA Game Tonight</title><link>https://www.oddsshark.com/nba/lakers-warriors</link><pubDate>Mon, 13 Jan 2025 18:00:00 GMT</pubDate><category>NBA</category></item>
<item><title>Duplicate link</title><link>https://www.oddsshark.com/nba/lakers-warriors</link></item>
<item><title>Chiefs at Bills Preview</title><link>https://www.oddsshark.com/nfl/chiefs-bills</link><pubDate>Mon, 13 Jan 2025 12:00:00 GMT</pubDate></item>
</channel></rss>`

func TestFetchChannel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Accept") != "application/rss+xml, application/xml, text/xml, */*" {
			t.Errorf("Accept header = %q", r.Header.Get("Accept"))
		}
		io.WriteString(w, sampleRSS)
	}))
	defer srv.Close()

	c := NewRSSClient(config.FeedConfig{RSSURL: srv.URL}, 5*time.Second, discardLogger())

	meta, items, err := c.FetchChannel(context.Background())
	if err != nil {
		t.Fatalf("FetchChannel() error = %v", err)
	}
	if meta.Title != "Odds Shark Articles" || meta.Link != "https://www.oddsshark.com" {
		t.Errorf("FetchChannel meta = %+v", meta)
	}
	if len(items) != 2 {
		t.Fatalf("FetchChannel items = %d, want 2 after link dedup", len(items))
	}
	if items[0].Title != "Lakers vs Warriors - NBA Game Tonight" || items[0].Category != "NBA" {
		t.Errorf("FetchChannel first item = %+v", items[0])
	}
	if items[0].PubDate != "Mon, 13 Jan 2025 18:00:00 GMT" {
		t.Errorf("FetchChannel pub date = %q", items[0].PubDate)
	}
}

func TestTryFeedBlocked(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.Header.Get("User-Agent"), "curl/") {
			http.Error(w, "access denied", http.StatusForbidden)
			return
		}
		io.WriteString(w, sampleRSS)
	}))
	defer srv.Close()

	c := NewRSSClient(config.FeedConfig{RSSURL: srv.URL}, 5*time.Second, discardLogger())

	if _, err := c.tryFeed(context.Background(), c.httpClient, "curl/7.68.0"); err == nil {
		t.Error("tryFeed with blocked agent: expected error, got nil")
	}
	if _, err := c.tryFeed(context.Background(), c.httpClient, userAgents[0]); err != nil {
		t.Errorf("tryFeed with browser agent: %v", err)
	}
}

func TestTryFeedRejectsStubBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "<html>blocked</html>") // 200 but far under the size floor
	}))
	defer srv.Close()

	c := NewRSSClient(config.FeedConfig{RSSURL: srv.URL}, 5*time.Second, discardLogger())
	if _, err := c.tryFeed(context.Background(), c.httpClient, userAgents[0]); err == nil {
		t.Error("tryFeed with stub body: expected error, got nil")
	}
}

func TestFilterItems(t *testing.T) {
	fresh := time.Now().Add(-1 * time.Hour)
	stale := time.Now().Add(-48 * time.Hour)

	items := []*gofeed.Item{
		{Title: "Fresh", Link: "https://x/a", Published: "a", PublishedParsed: &fresh, Categories: []string{"NBA"}},
		{Title: "Same link", Link: "https://x/a", PublishedParsed: &fresh},
		{Title: "Stale", Link: "https://x/b", PublishedParsed: &stale},
		{Title: "Undated", Link: "https://x/c"},
		{Title: "No link"},
	}

	c := &RSSClient{cfg: config.FeedConfig{MaxAge: 24 * time.Hour}, logger: discardLogger()}
	got := c.filterItems(items)

	if len(got) != 2 {
		t.Fatalf("filterItems() = %d items, want 2", len(got))
	}
	if got[0].Title != "Fresh" || got[0].Category != "NBA" {
		t.Errorf("filterItems first = %+v", got[0])
	}
	// Items without a parseable date pass the age filter.
	if got[1].Title != "Undated" {
		t.Errorf("filterItems second = %+v, want the undated item", got[1])
	}
}

func TestFilterItemsCap(t *testing.T) {
	items := []*gofeed.Item{
		{Title: "1", Link: "https://x/1"},
		{Title: "2", Link: "https://x/2"},
		{Title: "3", Link: "https://x/3"},
	}

	c := &RSSClient{cfg: config.FeedConfig{MaxItems: 2}, logger: discardLogger()}
	if got := c.filterItems(items); len(got) != 2 {
		t.Errorf("filterItems() = %d items, want cap 2", len(got))
	}
}

func TestReadBodyDecode(t *testing.T) {
	payload := `<?xml version="1.0"?><rss version="2.0"></rss>`

	var gzBuf bytes.Buffer
	gzw := gzip.NewWriter(&gzBuf)
	gzw.Write([]byte(payload))
	gzw.Close()

	var brBuf bytes.Buffer
	brw := brotli.NewWriter(&brBuf)
	brw.Write([]byte(payload))
	brw.Close()

	var zsBuf bytes.Buffer
	zsw, err := zstd.NewWriter(&zsBuf)
	if err != nil {
		t.Fatalf("zstd writer: %v", err)
	}
	zsw.Write([]byte(payload))
	zsw.Close()

	tests := []struct {
		name     string
		encoding string
		body     []byte
	}{
		{"identity", "", []byte(payload)},
		{"gzip", "gzip", gzBuf.Bytes()},
		{"brotli", "br", brBuf.Bytes()},
		{"zstd", "zstd", zsBuf.Bytes()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := &http.Response{
				Header: http.Header{},
				Body:   io.NopCloser(bytes.NewReader(tt.body)),
			}
			if tt.encoding != "" {
				resp.Header.Set("Content-Encoding", tt.encoding)
			}

			got, err := readBodyDecode(resp)
			if err != nil {
				t.Fatalf("readBodyDecode(%s) error = %v", tt.name, err)
			}
			if string(got) != payload {
				t.Errorf("readBodyDecode(%s) = %q, want %q", tt.name, got, payload)
			}
		})
	}
}
