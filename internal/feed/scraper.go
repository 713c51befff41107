// Package feed provides text-source providers for the analysis pipeline:
// a live scraper over a Nitter-style mirror and a static in-memory source
// for dry runs.
package feed

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	"sentiment-trading-bot/internal/api"
	"sentiment-trading-bot/internal/interfaces"
	"sentiment-trading-bot/internal/logger"
	"sentiment-trading-bot/internal/types"
)

// Scraper fetches recent posts from a Nitter-style Twitter mirror.
type Scraper struct {
	mirror  string
	timeout time.Duration
}

var _ interfaces.Source = (*Scraper)(nil)

// NewScraper creates a scraper against the given mirror base URL,
// e.g. "https://nitter.net".
func NewScraper(mirror string, timeout time.Duration) *Scraper {
	return &Scraper{
		mirror:  strings.TrimRight(mirror, "/"),
		timeout: timeout,
	}
}

// Fetch searches the mirror for recent posts matching query and returns up
// to limit of them, newest first as the mirror serves them.
func (s *Scraper) Fetch(ctx context.Context, query string, limit int) ([]types.Post, error) {
	logger.Info(ctx, "Starting feed scrape", "query", query, "mirror", s.mirror, "limit", limit)

	posts := []types.Post{}

	c := colly.NewCollector(
		colly.AllowedDomains(getDomain(s.mirror)),
		colly.MaxDepth(1),
		colly.Async(false),
	)
	c.SetRequestTimeout(s.timeout)

	// Browser headers to avoid being blocked
	c.OnRequest(func(r *colly.Request) {
		for key, value := range api.BrowserHeaders() {
			r.Headers.Set(key, value)
		}
	})

	c.OnHTML("div.timeline-item", func(e *colly.HTMLElement) {
		if limit > 0 && len(posts) >= limit {
			return
		}

		text := strings.TrimSpace(e.ChildText("div.tweet-content"))
		if text == "" {
			return
		}

		post := types.Post{
			ID:        postIDFromLink(e.ChildAttr("a.tweet-link", "href")),
			Text:      text,
			Author:    strings.TrimPrefix(strings.TrimSpace(e.ChildText("a.username")), "@"),
			CreatedAt: e.ChildAttr("span.tweet-date a", "title"),
			Source:    "twitter",
			Metrics:   parseStats(e.DOM),
		}
		if post.ID == "" {
			post.ID = fmt.Sprintf("post_%d", len(posts))
		}

		posts = append(posts, post)
	})

	c.OnError(func(r *colly.Response, err error) {
		logger.ErrorWithErr(ctx, "Feed scraping error", err, "url", r.Request.URL.String())
	})

	searchURL := fmt.Sprintf("%s/search?f=tweets&q=%s", s.mirror, url.QueryEscape(query))
	if err := c.Visit(searchURL); err != nil {
		return nil, fmt.Errorf("failed to visit %s: %w", searchURL, err)
	}
	c.Wait()

	logger.Info(ctx, "Feed scrape completed", "query", query, "posts", len(posts))
	return posts, nil
}

// parseStats reads the engagement counters from a timeline item. Mirrors
// render them as icon spans followed by a formatted count.
func parseStats(sel *goquery.Selection) types.Metrics {
	var m types.Metrics
	sel.Find("div.tweet-stats span.tweet-stat").Each(func(_ int, stat *goquery.Selection) {
		count := parseCount(stat.Text())
		switch {
		case stat.Find("span.icon-retweet").Length() > 0:
			m.Retweets = count
		case stat.Find("span.icon-comment").Length() > 0:
			m.Replies = count
		case stat.Find("span.icon-heart").Length() > 0:
			m.Likes = count
		case stat.Find("span.icon-quote").Length() > 0:
			m.Quotes = count
		}
	})
	return m
}

// parseCount handles "1,234" style counters; anything unparsable counts
// as zero.
func parseCount(raw string) int {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	n, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0
	}
	return n
}

// postIDFromLink extracts the numeric status ID from a "/user/status/123"
// style link.
func postIDFromLink(href string) string {
	idx := strings.LastIndex(href, "/status/")
	if idx < 0 {
		return ""
	}
	id := href[idx+len("/status/"):]
	if cut := strings.IndexAny(id, "#?"); cut >= 0 {
		id = id[:cut]
	}
	return id
}

// getDomain extracts domain from URL
func getDomain(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
