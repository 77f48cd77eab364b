package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/mma-picks/internal/card"
)

var (
	wikiTitlePattern = regexp.MustCompile(`/wiki/([^#?]+)`)
	citationPattern  = regexp.MustCompile(`\[[0-9]+\]`)
	spacePattern     = regexp.MustCompile(`[\s\p{Zs}]+`) // includes U+00A0 from &nbsp;

	// Capitalized words of two or more, allowing accents, apostrophes, dots and hyphens
	fighterName = "[A-Z][A-Za-zÀ-ÖØ-öø-ÿ'`.-]+(?: [A-Z][A-Za-zÀ-ÖØ-öø-ÿ'`.-]+)+"
	vsPattern   = regexp.MustCompile("(" + fighterName + `)[\s\p{Zs}]+vs\.[\s\p{Zs}]+(` + fighterName + ")")

	// Headings and table labels that the text scan picks up as names
	stopWords = []string{
		"Weight",
		"weight",
		"Main card",
		"Preliminary",
		"Method",
		"Round",
		"Time",
		"Notes",
		"Ultimate Championship",
		"Retrieved",
	}
)

// parseResponse is the subset of a MediaWiki action=parse reply we read
type parseResponse struct {
	Parse struct {
		Title    string `json:"title"`
		Sections []struct {
			Index string `json:"index"`
			Line  string `json:"line"`
		} `json:"sections"`
		Text map[string]string `json:"text"`
	} `json:"parse"`
}

func (p parseResponse) html() string {
	return p.Parse.Text["*"]
}

func (s *Scraper) parse(ctx context.Context, query map[string]string) (*parseResponse, error) {
	query["action"] = "parse"
	query["format"] = "json"

	body, err := s.get(ctx, card.SourceWikipedia, s.wikipedia.APIURL, query)
	if err != nil {
		return nil, err
	}

	var resp parseResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decoding parse response: %w", err)
	}
	return &resp, nil
}

// PageTitle extracts the decoded page title from a /wiki/ URL
func PageTitle(pageURL string) (string, error) {
	m := wikiTitlePattern.FindStringSubmatch(pageURL)
	if m == nil {
		return "", ErrInvalidURL
	}
	title, err := url.PathUnescape(m[1])
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	return title, nil
}

// DisplayTitle turns a page title such as UFC_on_ESPN_70 into UFC on ESPN 70
func DisplayTitle(title string) string {
	return strings.TrimSpace(strings.ReplaceAll(title, "_", " "))
}

// LatestEventURL returns the absolute URL of the last scheduled UFC event
func (s *Scraper) LatestEventURL(ctx context.Context) (string, error) {
	resp, err := s.parse(ctx, map[string]string{
		"page": s.wikipedia.EventsPage,
		"prop": "text",
	})
	if err != nil {
		return "", err
	}
	if resp.html() == "" {
		return "", ErrEventNotFound
	}

	return latestScheduledEvent(resp.html(), s.wikipedia.BaseURL)
}

func latestScheduledEvent(html, baseURL string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	rows := doc.Find("table#Scheduled_events").First().Find("tbody tr")
	if rows.Length() == 0 {
		return "", ErrEventNotFound
	}

	href, ok := rows.Last().Find("a[href]").First().Attr("href")
	if !ok {
		return "", ErrEventNotFound
	}

	return resolve(baseURL, href)
}

// FetchWikipedia loads the fight card section of a Wikipedia event page. Bouts are
// preloaded: prelims first and the main event last, set to five rounds.
func (s *Scraper) FetchWikipedia(ctx context.Context, pageURL string) (*card.Card, error) {
	title, err := PageTitle(pageURL)
	if err != nil {
		return nil, err
	}

	sections, err := s.parse(ctx, map[string]string{
		"page": title,
		"prop": "sections",
	})
	if err != nil {
		return nil, err
	}

	index := ""
	for _, sec := range sections.Parse.Sections {
		if strings.EqualFold(sec.Line, "fight card") {
			index = sec.Index
			break
		}
	}
	if index == "" {
		return nil, ErrFightCardNotFound
	}

	text, err := s.parse(ctx, map[string]string{
		"page":    title,
		"prop":    "text",
		"section": index,
	})
	if err != nil {
		return nil, err
	}
	if text.html() == "" {
		return nil, ErrNoCardHTML
	}

	pairs, err := parseFightCard(text.html())
	if err != nil {
		return nil, err
	}
	if len(pairs) == 0 {
		return nil, ErrNoFights
	}

	return card.New(card.SourceWikipedia, pageURL, DisplayTitle(title), card.Preload(pairs)), nil
}

// parseFightCard reads fighter pairs from the result tables of a fight card
// section, falling back to a text scan when no table rows qualify
func parseFightCard(html string) ([]card.Pair, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	seen := make(map[string]bool)
	pairs := make([]card.Pair, 0)
	add := func(a, b string) {
		key := a + "__" + b
		if seen[key] {
			return
		}
		seen[key] = true
		pairs = append(pairs, card.Pair{a, b})
	}

	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		table.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
			if tr.Find("th").Length() > 0 {
				return
			}

			var names []string
			tr.Find("td").Each(func(i int, td *goquery.Selection) {
				if i != 1 && i != 3 {
					return
				}
				if name := strings.TrimSpace(td.Text()); name != "" {
					names = append(names, name)
				}
			})
			if len(names) >= 2 {
				add(names[0], names[1])
			}
		})
	})

	if len(pairs) > 0 {
		return pairs, nil
	}

	text := citationPattern.ReplaceAllString(doc.Text(), " ")
	text = strings.TrimSpace(spacePattern.ReplaceAllString(text, " "))

	for _, m := range vsPattern.FindAllStringSubmatch(text, -1) {
		a := strings.TrimSpace(m[1])
		b := strings.TrimSpace(m[2])
		if containsStopWord(a) || containsStopWord(b) {
			continue
		}
		if len(strings.Split(a, " ")) < 2 || len(strings.Split(b, " ")) < 2 {
			continue
		}
		add(a, b)
	}

	return pairs, nil
}

func containsStopWord(name string) bool {
	for _, w := range stopWords {
		if strings.Contains(name, w) {
			return true
		}
	}
	return false
}

func resolve(baseURL, href string) (string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parsing base URL: %w", err)
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", fmt.Errorf("parsing link %q: %w", href, err)
	}
	return base.ResolveReference(ref).String(), nil
}
