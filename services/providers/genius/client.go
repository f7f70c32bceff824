package genius

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"lyrical-api/logcolors"
	"lyrical-api/services/providers"

	"github.com/PuerkitoBio/goquery"
	"github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"
)

const (
	// DefaultBaseURL is the public Genius REST API root
	DefaultBaseURL = "https://api.genius.com"

	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

	// Classed container used by the classic lyrics page markup
	classicLyricsSelector = "div.lyrics"
	// Containers used by the current lyrics page markup
	lyricsContainerSelector = `div[data-lyrics-container="true"]`
)

// ClientConfig holds the settings for a Client
type ClientConfig struct {
	BaseURL     string
	AccessToken string
	UserAgent   string
	Timeout     time.Duration
}

// Client talks to the Genius search/song API and the lyrics web pages
type Client struct {
	baseURL     string
	accessToken string
	userAgent   string
	httpClient  *http.Client
}

// NewClient creates a Client, filling in defaults for empty settings
func NewClient(cfg ClientConfig) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		accessToken: cfg.AccessToken,
		userAgent:   cfg.UserAgent,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// getJSON issues an authenticated GET against the API and decodes the body into v.
// The status code is returned alongside so callers can inspect error payloads.
func (c *Client) getJSON(ctx context.Context, requestURL string, v interface{}) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return 0, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("error reading response: %w", err)
	}

	if err := json.Unmarshal(body, v); err != nil {
		return resp.StatusCode, fmt.Errorf("error parsing response (status %d): %w", resp.StatusCode, err)
	}

	return resp.StatusCode, nil
}

// Search queries the search endpoint and returns the hits in provider order
func (c *Client) Search(ctx context.Context, query string) (hits []Hit, err error) {
	span := sentry.StartSpan(ctx, "genius.search")
	defer func() {
		if err != nil {
			span.Status = sentry.SpanStatusInternalError
		} else {
				}
		span.Finish()
	}()
	ctx = span.Context()

	searchURL := c.baseURL + "/search?" + url.Values{"q": {query}}.Encode()

	log.Debugf("%s GET %s", logcolors.LogHTTP, searchURL)

	var searchResp SearchResponse
	status, err := c.getJSON(ctx, searchURL, &searchResp)
	if err != nil {
		return nil, providers.NewProviderError(ProviderName, "search request failed", err)
	}

	if searchResp.Error != "" {
		return nil, providers.NewProviderError(ProviderName,
			fmt.Sprintf("%s | %s", searchResp.Error, searchResp.ErrorDescription), nil)
	}

	if status != http.StatusOK {
		message := fmt.Sprintf("search returned status %d", status)
		if searchResp.Meta != nil && searchResp.Meta.Message != "" {
			message += ": " + searchResp.Meta.Message
		}
		return nil, providers.NewProviderError(ProviderName, message, nil)
	}

	return searchResp.hits()
}

// EmbedContent fetches the song metadata at apiPath and returns its embed preview
func (c *Client) EmbedContent(ctx context.Context, apiPath string) (string, error) {
	if apiPath == "" {
		return "", &providers.MalformedResponseError{Endpoint: "search", Field: "result.api_path"}
	}

	songURL := c.baseURL + apiPath

	log.Debugf("%s GET %s", logcolors.LogHTTP, songURL)

	var songResp SongResponse
	status, err := c.getJSON(ctx, songURL, &songResp)
	if err != nil {
		return "", providers.NewProviderError(ProviderName, "song request failed", err)
	}

	if status != http.StatusOK {
		return "", providers.NewProviderError(ProviderName, fmt.Sprintf("song returned status %d", status), nil)
	}

	return songResp.embedContent()
}

// LyricsPage downloads the lyrics web page and extracts the lyrics text.
// The classic classed container is tried first, then the current markup.
func (c *Client) LyricsPage(ctx context.Context, pageURL string) (string, error) {
	if pageURL == "" {
		return "", &providers.MalformedResponseError{Endpoint: "search", Field: "result.url"}
	}

	span := sentry.StartSpan(ctx, "genius.lyrics_page")
	defer span.Finish()

	req, err := http.NewRequestWithContext(span.Context(), http.MethodGet, pageURL, nil)
	if err != nil {
		span.Status = sentry.SpanStatusInvalidArgument
		return "", &providers.FetchError{URL: pageURL, Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	log.Debugf("%s GET %s", logcolors.LogHTTP, pageURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.Status = sentry.SpanStatusInternalError
		return "", &providers.FetchError{URL: pageURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		span.Status = sentry.HTTPtoSpanStatus(resp.StatusCode)
		return "", &providers.FetchError{URL: pageURL, StatusCode: resp.StatusCode}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		span.Status = sentry.SpanStatusInternalError
		return "", &providers.FetchError{URL: pageURL, Err: fmt.Errorf("failed to parse HTML: %w", err)}
	}
	span.Status = sentry.SpanStatusOK

	return extractLyrics(doc)
}

// extractLyrics pulls the lyrics text out of a parsed lyrics page
func extractLyrics(doc *goquery.Document) (string, error) {
	if classic := doc.Find(classicLyricsSelector).First(); classic.Length() > 0 {
		return strings.TrimSpace(classic.Text()), nil
	}

	containers := doc.Find(lyricsContainerSelector)
	if containers.Length() == 0 {
		return "", providers.ErrLyricsNotFound
	}

	var sb strings.Builder
	containers.Each(func(i int, s *goquery.Selection) {
		s.Find("br").ReplaceWithHtml("\n")
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(s.Text())
	})

	return strings.TrimSpace(sb.String()), nil
}
