// Package scraper fetches the configured external results page and extracts
// per-game results from its board markup.
package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	app_errors "satta-board/internal/errors"
	"satta-board/internal/types"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/sirupsen/logrus"
)

// bracketedResult matches the "[ 45 ]" result notation used on the boards.
var bracketedResult = regexp.MustCompile(`\[\s*(\d{1,2})\s*\]`)

// ScrapedResult is one game's result extracted from the source page.
type ScrapedResult struct {
	GameName string `json:"game_name"`
	Result   int    `json:"result"`
}

// Scraper fetches and parses the configured results source.
type Scraper struct {
	configManager types.ConfigManager
	clientManager *StealthClientManager
}

// NewScraper creates a Scraper.
func NewScraper(configManager types.ConfigManager) *Scraper {
	cfg := configManager.GetScrapeConfig()
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	return &Scraper{
		configManager: configManager,
		clientManager: NewStealthClientManager(timeout),
	}
}

// FetchResults downloads the source page and extracts all game results it
// can find. Returns ErrUpstreamFetch when no source is configured or the
// fetch fails.
func (s *Scraper) FetchResults(ctx context.Context) ([]ScrapedResult, error) {
	cfg := s.configManager.GetScrapeConfig()
	if cfg.SourceURL == "" {
		return nil, app_errors.NewAPIError(app_errors.ErrUpstreamFetch, "no scrape source configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.SourceURL, nil)
	if err != nil {
		return nil, app_errors.NewAPIError(app_errors.ErrUpstreamFetch, err.Error())
	}
	applyBrowserHeaders(req)

	client := s.clientManager.GetClient(cfg.ProxyURL)
	resp, err := client.Do(req)
	if err != nil {
		logrus.WithError(err).WithField("url", cfg.SourceURL).Warn("Scrape fetch failed")
		return nil, app_errors.ErrUpstreamFetch
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logrus.WithFields(logrus.Fields{
			"url":    cfg.SourceURL,
			"status": resp.StatusCode,
		}).Warn("Scrape source returned non-200")
		return nil, app_errors.NewAPIError(app_errors.ErrUpstreamFetch, fmt.Sprintf("source returned %d", resp.StatusCode))
	}

	body, err := decodeBody(resp)
	if err != nil {
		return nil, app_errors.NewAPIError(app_errors.ErrUpstreamFetch, err.Error())
	}
	defer body.Close()

	results, err := ParseBoard(body)
	if err != nil {
		return nil, app_errors.NewAPIError(app_errors.ErrUpstreamFetch, err.Error())
	}
	return results, nil
}

// decodeBody unwraps the response body per its Content-Encoding. The stealth
// transport does not decompress transparently.
func decodeBody(resp *http.Response) (io.ReadCloser, error) {
	switch strings.ToLower(resp.Header.Get("Content-Encoding")) {
	case "gzip":
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("gzip decode: %w", err)
		}
		return gz, nil
	case "br":
		return io.NopCloser(brotli.NewReader(resp.Body)), nil
	default:
		return io.NopCloser(resp.Body), nil
	}
}

// ParseBoard extracts game results from board HTML. Each .gboardfull or
// .gboardhalf block carries a game title and its result in "[ NN ]" form.
// Blocks without a published result yet are skipped.
func ParseBoard(r io.Reader) ([]ScrapedResult, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse board html: %w", err)
	}

	var results []ScrapedResult
	doc.Find(".gboardfull, .gboardhalf").Each(func(_ int, sel *goquery.Selection) {
		text := sel.Text()

		match := bracketedResult.FindStringSubmatch(text)
		if match == nil {
			return
		}
		value, err := strconv.Atoi(match[1])
		if err != nil || value < 0 || value > 99 {
			return
		}

		name := extractGameName(text)
		if name == "" {
			return
		}

		results = append(results, ScrapedResult{GameName: name, Result: value})
	})

	return results, nil
}

// extractGameName takes the block text before the bracketed result and
// collapses it to a single-line title.
func extractGameName(text string) string {
	if idx := strings.Index(text, "["); idx >= 0 {
		text = text[:idx]
	}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			return line
		}
	}
	return ""
}
