package scraper

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/pfrederiksen/mma-picks/internal/card"
	"github.com/pfrederiksen/mma-picks/internal/config"
	"github.com/pfrederiksen/mma-picks/internal/logger"
)

const testUserAgent = "mma-picks-test/1.0"

func TestMain(m *testing.M) {
	logger.SetDefault(logger.New(logger.LevelError, io.Discard))
	os.Exit(m.Run())
}

func testConfig(serverURL string) config.Config {
	cfg := config.Default()
	cfg.HTTP.UserAgent = testUserAgent
	cfg.HTTP.Timeout = 5 * time.Second
	cfg.Wikipedia.APIURL = serverURL + "/w/api.php"
	cfg.Wikipedia.BaseURL = serverURL
	cfg.Tapology.BaseURL = serverURL
	return cfg
}

func writeParse(t *testing.T, w http.ResponseWriter, parse map[string]interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]interface{}{"parse": parse}); err != nil {
		t.Errorf("encoding response: %v", err)
	}
}

func TestPageTitle(t *testing.T) {
	tests := []struct {
		url     string
		want    string
		wantErr bool
	}{
		{url: "https://en.wikipedia.org/wiki/UFC_on_ESPN:_Dolidze_vs._Hernandez", want: "UFC_on_ESPN:_Dolidze_vs._Hernandez"},
		{url: "https://en.wikipedia.org/wiki/UFC_324#Fight_card", want: "UFC_324"},
		{url: "https://en.wikipedia.org/wiki/UFC_Fight_Night:_Aldo_vs._Jos%C3%A9?x=1", want: "UFC_Fight_Night:_Aldo_vs._José"},
		{url: "https://example.com/events/ufc-324", wantErr: true},
		{url: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			got, err := PageTitle(tt.url)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidURL) {
					t.Errorf("PageTitle() error = %v, want ErrInvalidURL", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("PageTitle() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("PageTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}

const fightCardHTML = `
<div class="mw-parser-output">
<h2>Fight card</h2>
<table class="toccolours"><tbody>
<tr><th colspan="8">Main card</th></tr>
<tr><th>Weight class</th><th></th><th></th><th></th><th>Method</th></tr>
<tr><td>Light Heavyweight</td><td>Alex Pereira</td><td>vs.</td><td>Magomed Ankalaev</td><td></td></tr>
<tr><td>Featherweight</td><td> Ilia Topuria </td><td>vs.</td><td>Max Holloway</td><td></td></tr>
<tr><td>Light Heavyweight</td><td>Alex Pereira</td><td>vs.</td><td>Magomed Ankalaev</td><td></td></tr>
<tr><th colspan="8">Preliminary card</th></tr>
<tr><td>Middleweight</td><td>Sean Strickland</td><td>vs.</td><td>Paulo Costa</td><td></td></tr>
<tr><td>Flyweight</td><td>Kai Kara-France</td></tr>
<tr><td>Bantamweight</td><td></td><td>vs.</td><td>Umar Nurmagomedov</td><td></td></tr>
</tbody></table>
</div>`

func TestParseFightCard_Tables(t *testing.T) {
	pairs, err := parseFightCard(fightCardHTML)
	if err != nil {
		t.Fatalf("parseFightCard() error: %v", err)
	}

	want := []card.Pair{
		{"Alex Pereira", "Magomed Ankalaev"},
		{"Ilia Topuria", "Max Holloway"},
		{"Sean Strickland", "Paulo Costa"},
	}
	if len(pairs) != len(want) {
		t.Fatalf("got %d pairs %v, want %d", len(pairs), pairs, len(want))
	}
	for i := range want {
		if pairs[i] != want[i] {
			t.Errorf("pairs[%d] = %v, want %v", i, pairs[i], want[i])
		}
	}
}

func TestParseFightCard_TextFallback(t *testing.T) {
	html := "<div><p>Ilia Topuria vs. Max Holloway (title bout)</p>\n" +
		"<p>Weight class Main card</p>\n" +
		"<p>Sean O'Malley vs. Merab Dvalishvili, rematch[12]</p>\n" +
		"<p>Preliminary Card vs. Early Prelims</p>\n" +
		"<p>Poirier vs. Gaethje</p></div>"

	pairs, err := parseFightCard(html)
	if err != nil {
		t.Fatalf("parseFightCard() error: %v", err)
	}

	want := []card.Pair{
		{"Ilia Topuria", "Max Holloway"},
		{"Sean O'Malley", "Merab Dvalishvili"},
	}
	if len(pairs) != len(want) {
		t.Fatalf("got %d pairs %v, want %d", len(pairs), pairs, len(want))
	}
	for i := range want {
		if pairs[i] != want[i] {
			t.Errorf("pairs[%d] = %v, want %v", i, pairs[i], want[i])
		}
	}
}

func TestParseFightCard_NonBreakingSpaces(t *testing.T) {
	html := "<p>Main card: Jon Jones&nbsp;vs. Stipe Miocic (heavyweight title)</p>\n" +
		"<p>and Alex Pereira vs.&nbsp;Magomed Ankalaev (light heavyweight)</p>"

	pairs, err := parseFightCard(html)
	if err != nil {
		t.Fatalf("parseFightCard() error: %v", err)
	}

	want := []card.Pair{
		{"Jon Jones", "Stipe Miocic"},
		{"Alex Pereira", "Magomed Ankalaev"},
	}
	if len(pairs) != len(want) {
		t.Fatalf("got %d pairs %v, want %d", len(pairs), pairs, len(want))
	}
	for i := range want {
		if pairs[i] != want[i] {
			t.Errorf("pairs[%d] = %q, want %q", i, pairs[i], want[i])
		}
	}
}

func TestDisplayTitle(t *testing.T) {
	tests := map[string]string{
		"UFC_on_ESPN_70":                       "UFC on ESPN 70",
		"UFC_Fight_Night:_Oliveira_vs._Gamrot": "UFC Fight Night: Oliveira vs. Gamrot",
		"UFC 320":                              "UFC 320",
	}
	for in, want := range tests {
		if got := DisplayTitle(in); got != want {
			t.Errorf("DisplayTitle(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLatestScheduledEvent(t *testing.T) {
	html := `
<table id="Past_events"><tbody>
<tr><td><a href="/wiki/UFC_319">UFC 319</a></td></tr>
</tbody></table>
<table id="Scheduled_events"><tbody>
<tr><th>Event</th><th>Date</th></tr>
<tr><td><a href="/wiki/UFC_320">UFC 320</a></td><td>Oct 4</td></tr>
<tr><td><a href="/wiki/UFC_Fight_Night:_Oliveira_vs._Gamrot">UFC Fight Night</a></td><td>Oct 11</td></tr>
</tbody></table>`

	got, err := latestScheduledEvent(html, "https://en.wikipedia.org")
	if err != nil {
		t.Fatalf("latestScheduledEvent() error: %v", err)
	}
	want := "https://en.wikipedia.org/wiki/UFC_Fight_Night:_Oliveira_vs._Gamrot"
	if got != want {
		t.Errorf("latestScheduledEvent() = %q, want %q", got, want)
	}

	if _, err := latestScheduledEvent(`<table id="Past_events"></table>`, "https://en.wikipedia.org"); !errors.Is(err, ErrEventNotFound) {
		t.Errorf("missing table error = %v, want ErrEventNotFound", err)
	}
}

type wikiFixture struct {
	sections []map[string]string
	cardHTML string
	events   string
	status   int
}

func newWikiServer(t *testing.T, fx wikiFixture) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != testUserAgent {
			t.Errorf("User-Agent = %q, want %q", ua, testUserAgent)
		}
		if r.URL.Path != "/w/api.php" {
			http.NotFound(w, r)
			return
		}
		if fx.status != 0 {
			w.WriteHeader(fx.status)
			return
		}

		q := r.URL.Query()
		if q.Get("action") != "parse" || q.Get("format") != "json" {
			t.Errorf("unexpected query %q", r.URL.RawQuery)
		}

		switch {
		case q.Get("page") == "List_of_UFC_events":
			writeParse(t, w, map[string]interface{}{"text": map[string]string{"*": fx.events}})
		case q.Get("prop") == "sections":
			writeParse(t, w, map[string]interface{}{"sections": fx.sections})
		case q.Get("prop") == "text" && q.Get("section") == "3":
			writeParse(t, w, map[string]interface{}{"text": map[string]string{"*": fx.cardHTML}})
		default:
			t.Errorf("unexpected query %q", r.URL.RawQuery)
			http.NotFound(w, r)
		}
	}))
}

var defaultSections = []map[string]string{
	{"index": "1", "line": "Background"},
	{"index": "2", "line": "Results"},
	{"index": "3", "line": "Fight Card"},
}

func TestFetchWikipedia(t *testing.T) {
	server := newWikiServer(t, wikiFixture{sections: defaultSections, cardHTML: fightCardHTML})
	defer server.Close()

	s := New(testConfig(server.URL))
	c, err := s.FetchWikipedia(context.Background(), "https://en.wikipedia.org/wiki/UFC_320")
	if err != nil {
		t.Fatalf("FetchWikipedia() error: %v", err)
	}

	if c.Source != card.SourceWikipedia || c.Title != "UFC 320" {
		t.Errorf("card source/title = %s/%s", c.Source, c.Title)
	}
	if len(c.Fights) != 3 {
		t.Fatalf("got %d fights, want 3", len(c.Fights))
	}

	// preloaded: prelims first, main event last with five rounds
	if c.Fights[0].Fighters.One != "Sean Strickland" {
		t.Errorf("first fight = %s, want Sean Strickland first", c.Fights[0])
	}
	last := c.Fights[2]
	if last.Fighters.One != "Alex Pereira" || !last.FiveRounds {
		t.Errorf("last fight = %+v, want five-round main event", last)
	}
	if c.Fights[0].FiveRounds || c.Fights[1].FiveRounds {
		t.Error("only the main event should be five rounds")
	}
}

func TestFetchWikipedia_Errors(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		fixture wikiFixture
		wantErr error
	}{
		{
			name:    "invalid url",
			url:     "https://example.com/ufc-320",
			fixture: wikiFixture{sections: defaultSections, cardHTML: fightCardHTML},
			wantErr: ErrInvalidURL,
		},
		{
			name:    "no fight card section",
			url:     "https://en.wikipedia.org/wiki/UFC_320",
			fixture: wikiFixture{sections: defaultSections[:2]},
			wantErr: ErrFightCardNotFound,
		},
		{
			name:    "empty section html",
			url:     "https://en.wikipedia.org/wiki/UFC_320",
			fixture: wikiFixture{sections: defaultSections, cardHTML: ""},
			wantErr: ErrNoCardHTML,
		},
		{
			name:    "no fights",
			url:     "https://en.wikipedia.org/wiki/UFC_320",
			fixture: wikiFixture{sections: defaultSections, cardHTML: "<p>To be announced.</p>"},
			wantErr: ErrNoFights,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newWikiServer(t, tt.fixture)
			defer server.Close()

			_, err := New(testConfig(server.URL)).FetchWikipedia(context.Background(), tt.url)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("FetchWikipedia() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestFetchWikipedia_HTTPError(t *testing.T) {
	server := newWikiServer(t, wikiFixture{status: http.StatusServiceUnavailable})
	defer server.Close()

	_, err := New(testConfig(server.URL)).FetchWikipedia(context.Background(), "https://en.wikipedia.org/wiki/UFC_320")
	if err == nil || !strings.Contains(err.Error(), "503") {
		t.Errorf("FetchWikipedia() error = %v, want status 503", err)
	}
}

func TestLoad_WikipediaLatestEvent(t *testing.T) {
	events := `<table id="Scheduled_events"><tbody>
<tr><td><a href="/wiki/UFC_319">UFC 319</a></td></tr>
<tr><td><a href="/wiki/UFC_320">UFC 320</a></td></tr>
</tbody></table>`
	server := newWikiServer(t, wikiFixture{sections: defaultSections, cardHTML: fightCardHTML, events: events})
	defer server.Close()

	c, status := New(testConfig(server.URL)).Load(context.Background(), card.SourceWikipedia, "")
	if status != "Loaded 3 fights from Wikipedia." {
		t.Errorf("status = %q", status)
	}
	if c.URL != server.URL+"/wiki/UFC_320" {
		t.Errorf("card URL = %q, want latest scheduled event", c.URL)
	}
}

func TestLoad_WikipediaNoScheduledEvent(t *testing.T) {
	server := newWikiServer(t, wikiFixture{events: "<p>No events</p>"})
	defer server.Close()

	c, status := New(testConfig(server.URL)).Load(context.Background(), card.SourceWikipedia, "")
	if status != "Please paste a Wikipedia event URL to load." {
		t.Errorf("status = %q", status)
	}
	if c == nil || len(c.Fights) != 0 {
		t.Errorf("card = %+v, want empty card", c)
	}
}

func TestLoad_Failure(t *testing.T) {
	server := newWikiServer(t, wikiFixture{sections: defaultSections[:1]})
	defer server.Close()

	c, status := New(testConfig(server.URL)).Load(context.Background(), card.SourceWikipedia, "https://en.wikipedia.org/wiki/UFC_320")
	if status != "Failed to load: "+ErrFightCardNotFound.Error() {
		t.Errorf("status = %q", status)
	}
	if c == nil {
		t.Fatal("Load() returned nil card")
	}
}

func TestStatusLine(t *testing.T) {
	if got := StatusLine(card.SourceTapology, 12, nil); got != "Loaded 12 fights from Tapology." {
		t.Errorf("StatusLine() = %q", got)
	}
	if got := StatusLine(card.SourceWikipedia, 0, ErrNoFights); got != "Failed to load: no fights found in fight card" {
		t.Errorf("StatusLine() = %q", got)
	}
}
