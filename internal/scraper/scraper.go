package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pfrederiksen/mma-picks/internal/card"
	"github.com/pfrederiksen/mma-picks/internal/config"
	"github.com/pfrederiksen/mma-picks/internal/logger"
)

var (
	ErrInvalidURL        = errors.New("invalid Wikipedia URL")
	ErrFightCardNotFound = errors.New("fight card section not found")
	ErrNoCardHTML        = errors.New("unable to fetch fight card HTML")
	ErrNoFights          = errors.New("no fights found in fight card")
	ErrEventNotFound     = errors.New("no scheduled event found")
)

// Scraper handles fetching and parsing fight cards
type Scraper struct {
	client    *resty.Client
	wikipedia config.WikipediaConfig
	tapology  config.TapologyConfig
}

// New creates a new Scraper from the http, wikipedia and tapology settings
func New(cfg config.Config) *Scraper {
	client := resty.New().
		SetTimeout(cfg.HTTP.Timeout).
		SetHeader("User-Agent", cfg.HTTP.UserAgent).
		SetHeader("Accept", "text/html,application/xhtml+xml,application/json")

	return &Scraper{
		client:    client,
		wikipedia: cfg.Wikipedia,
		tapology:  cfg.Tapology,
	}
}

// get fetches url and returns the body, recording per-source metrics
func (s *Scraper) get(ctx context.Context, source card.Source, url string, query map[string]string) ([]byte, error) {
	metric := "scraper." + string(source) + ".fetch"
	start := time.Now()
	defer func() { logger.RecordTiming(metric, time.Since(start)) }()
	logger.IncrCounter(metric)

	req := s.client.R().SetContext(ctx)
	if len(query) > 0 {
		req.SetQueryParams(query)
	}

	logger.Debug("Fetching page", logger.Fields{"source": source, "url": url})
	res, err := req.Get(url)
	if err != nil {
		logger.IncrCounter(metric + ".errors")
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	if res.StatusCode() != http.StatusOK {
		logger.IncrCounter(metric + ".errors")
		return nil, fmt.Errorf("unexpected status code: %d", res.StatusCode())
	}

	return res.Body(), nil
}

// Load fetches a card from source and summarizes the outcome in one status line.
// For Wikipedia an empty pageURL loads the latest scheduled event. The returned
// card is never nil; on failure it has no fights.
func (s *Scraper) Load(ctx context.Context, source card.Source, pageURL string) (*card.Card, string) {
	var (
		c   *card.Card
		err error
	)

	switch source {
	case card.SourceWikipedia:
		if pageURL == "" {
			pageURL, err = s.LatestEventURL(ctx)
			if err != nil {
				logger.Warn("No scheduled event", logger.Fields{"error": err.Error()})
				return card.New(source, "", "", nil), "Please paste a Wikipedia event URL to load."
			}
		}
		c, err = s.FetchWikipedia(ctx, pageURL)
	case card.SourceTapology:
		c, err = s.FetchTapology(ctx)
	default:
		err = fmt.Errorf("unknown source %q", source)
	}

	if c == nil {
		c = card.New(source, pageURL, "", nil)
	}
	if err != nil {
		logger.Error("Card load failed", logger.Fields{"source": source}, err)
		return c, StatusLine(source, 0, err)
	}

	logger.Info("Card loaded", logger.Fields{
		"source": source,
		"title":  c.Title,
		"fights": len(c.Fights),
	})
	logger.SetGauge("scraper."+string(source)+".fights", float64(len(c.Fights)))
	return c, StatusLine(source, len(c.Fights), nil)
}

// StatusLine formats the result of a card load
func StatusLine(source card.Source, fights int, err error) string {
	if err != nil {
		return fmt.Sprintf("Failed to load: %v", err)
	}
	return fmt.Sprintf("Loaded %d fights from %s.", fights, source.DisplayName())
}
