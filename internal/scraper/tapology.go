package scraper

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/mma-picks/internal/card"
)

// FiveRoundMarker is the round format Tapology shows for five-round bouts
const FiveRoundMarker = "5 x 5"

// proxied prefixes target with the configured proxy, if any
func (s *Scraper) proxied(target string) string {
	return s.tapology.ProxyURL + target
}

// FetchTapology loads the first upcoming event from the Tapology fight center.
// Bouts keep page order. On failure the returned card is empty rather than nil.
func (s *Scraper) FetchTapology(ctx context.Context) (*card.Card, error) {
	empty := card.New(card.SourceTapology, "", "", nil)

	listing := strings.TrimRight(s.tapology.BaseURL, "/") + s.tapology.FightCenterPath
	body, err := s.get(ctx, card.SourceTapology, s.proxied(listing), nil)
	if err != nil {
		return empty, err
	}

	eventURL, err := firstEventURL(body, s.tapology.BaseURL)
	if err != nil {
		return empty, err
	}
	empty.URL = eventURL

	body, err = s.get(ctx, card.SourceTapology, s.proxied(eventURL), nil)
	if err != nil {
		return empty, err
	}

	bouts, title, err := parseEventBouts(body)
	if err != nil {
		return empty, err
	}

	return card.New(card.SourceTapology, eventURL, title, bouts), nil
}

func firstEventURL(body []byte, baseURL string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	href, ok := doc.Find(".fightcenterEvents a").First().Attr("href")
	if !ok {
		return "", ErrEventNotFound
	}
	return resolve(baseURL, href)
}

// parseEventBouts reads the bout list of an event page. Items missing either
// fighter name are skipped.
func parseEventBouts(body []byte) ([]card.Bout, string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, "", fmt.Errorf("parsing HTML: %w", err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())

	list := doc.Find(`ul[data-event-view-toggle-target="list"]`).First()
	if list.Length() == 0 {
		return nil, title, nil
	}

	bouts := make([]card.Bout, 0)
	list.Find("li").Each(func(_ int, li *goquery.Selection) {
		entry := li.Find("[data-bout-wrapper]").First().Children().First()
		parts := entry.Children()

		one := strings.TrimSpace(parts.Eq(0).Find(".link-primary-red").First().Text())
		rounds := strings.TrimSpace(parts.Eq(1).Find("div.text-xs11").First().Text())
		two := strings.TrimSpace(parts.Eq(2).Find(".link-primary-red").First().Text())
		if one == "" || two == "" {
			return
		}

		bouts = append(bouts, card.NewBout(one, two, rounds == FiveRoundMarker))
	})

	return bouts, title, nil
}
