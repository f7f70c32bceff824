package main

import (
	"context"
	"encoding/json"
	"errors"
	"lyrical-api/config"
	"lyrical-api/services/nlp"
	"lyrical-api/services/providers"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// stubProvider answers FetchLyrics from a table keyed by track name
type stubProvider struct {
	mu      sync.Mutex
	lyrics  map[string]providers.LyricsResult
	errs    map[string]error
	calls   []string
	preview []bool
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) FetchLyrics(ctx context.Context, query providers.TrackQuery, opts providers.FetchOptions) (*providers.LyricsResult, error) {
	s.mu.Lock()
	s.calls = append(s.calls, query.Name)
	s.preview = append(s.preview, opts.AllowPreview)
	s.mu.Unlock()

	if len(query.Artists) == 0 {
		return nil, providers.ErrNoArtist
	}
	if err, ok := s.errs[query.Name]; ok {
		return nil, err
	}
	if result, ok := s.lyrics[query.Name]; ok {
		return &result, nil
	}
	return nil, providers.ErrNoMatch
}

func testConfig() config.Config {
	var conf config.Config
	conf.Server.CORSAllowedOrigins = []string{"*"}
	conf.Wordcloud.Workers = 2
	conf.Wordcloud.MaxWords = nlp.DefaultMaxWords
	return conf
}

func newTestHandler(p *stubProvider) http.Handler {
	return newHandler(testConfig(), p)
}

func doRequest(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRootHandler(t *testing.T) {
	rec := doRequest(newTestHandler(&stubProvider{}), "GET", "/", "")

	if rec.Code != http.StatusOK {
		t.Errorf("Status = %d, want %d", rec.Code, http.StatusOK)
	}
	if rec.Body.String() != "Web root for Lyrical API" {
		t.Errorf("Body = %q, want banner", rec.Body.String())
	}
}

func TestAdvisory(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{"GET get_lyrics", "GET", "/api/v0/get_lyrics", ""},
		{"GET wordcloud", "GET", "/api/v0/wordcloud", ""},
		{"empty POST get_lyrics", "POST", "/api/v0/get_lyrics", ""},
		{"blank POST wordcloud", "POST", "/api/v0/wordcloud", "   \n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &stubProvider{}
			rec := doRequest(newTestHandler(p), tt.method, tt.path, tt.body)

			if rec.Code != http.StatusOK {
				t.Errorf("Status = %d, want %d", rec.Code, http.StatusOK)
			}
			if rec.Body.String() != "GET not supported. Did you mean to POST?" {
				t.Errorf("Body = %q, want advisory", rec.Body.String())
			}
			if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
				t.Errorf("Content-Type = %q, want text/plain", ct)
			}
			if len(p.calls) != 0 {
				t.Errorf("Provider called %d times, want 0", len(p.calls))
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	tests := []struct {
		method string
		path   string
	}{
		{"PUT", "/api/v0/get_lyrics"},
		{"DELETE", "/api/v0/get_lyrics"},
		{"PUT", "/api/v0/wordcloud"},
		{"DELETE", "/api/v0/wordcloud"},
		{"POST", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			p := &stubProvider{}
			rec := doRequest(newTestHandler(p), tt.method, tt.path, `{"track_name":"x"}`)

			if rec.Code != http.StatusMethodNotAllowed {
				t.Errorf("Status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
			}
			if len(p.calls) != 0 {
				t.Errorf("Provider called for a rejected method")
			}
		})
	}
}

func TestGetLyrics(t *testing.T) {
	p := &stubProvider{
		lyrics: map[string]providers.LyricsResult{
			"Yesterday (Remastered)": {Lyrics: "Yesterday\nAll my troubles", Source: providers.SourcePage, Provider: "stub"},
			"Hey Jude":               {Lyrics: "Hey Jude, don't make it bad", Source: providers.SourcePreview, Provider: "stub"},
		},
		errs: map[string]error{
			"Broken": providers.NewProviderError("stub", "invalid_token | The access token is invalid", nil),
		},
	}

	tests := []struct {
		name           string
		body           string
		expected       interface{}
		expectedSource string
	}{
		{
			name:           "page lyrics",
			body:           `{"track_name":"Yesterday (Remastered)","artists":[{"name":"The Beatles","id":"3WrFJ7ztbogyGnTHbHJFl2"}]}`,
			expected:       "Yesterday\nAll my troubles",
			expectedSource: "page",
		},
		{
			name:           "preview lyrics",
			body:           `{"track_name":"Hey Jude","artists":[{"name":"The Beatles"}]}`,
			expected:       "Hey Jude, don't make it bad",
			expectedSource: "preview",
		},
		{
			name:     "no match",
			body:     `{"track_name":"Unknown","artists":[{"name":"Nobody"}]}`,
			expected: nil,
		},
		{
			name:     "no artists",
			body:     `{"track_name":"Yesterday (Remastered)","artists":[]}`,
			expected: nil,
		},
		{
			name:     "provider error",
			body:     `{"track_name":"Broken","artists":[{"name":"Anyone"}]}`,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(newTestHandler(p), "POST", "/api/v0/get_lyrics", tt.body)

			if rec.Code != http.StatusOK {
				t.Fatalf("Status = %d, want %d", rec.Code, http.StatusOK)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q, want application/json", ct)
			}

			var got interface{}
			if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
				t.Fatalf("Invalid JSON body %q: %v", rec.Body.String(), err)
			}
			if got != tt.expected {
				t.Errorf("Body = %#v, want %#v", got, tt.expected)
			}
			if src := rec.Header().Get("X-Lyrics-Source"); src != tt.expectedSource {
				t.Errorf("X-Lyrics-Source = %q, want %q", src, tt.expectedSource)
			}
		})
	}

	for i, allow := range p.preview {
		if !allow {
			t.Errorf("Call %d (%s) did not allow preview fallback", i, p.calls[i])
		}
	}
}

func TestGetLyrics_BadRequest(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"invalid JSON", `{"track_name":`},
		{"missing track name", `{"artists":[{"name":"The Beatles"}]}`},
		{"wrong type", `{"track_name":42}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &stubProvider{}
			rec := doRequest(newTestHandler(p), "POST", "/api/v0/get_lyrics", tt.body)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("Status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
			if len(p.calls) != 0 {
				t.Errorf("Provider called for a rejected body")
			}
		})
	}
}

func TestWordcloud(t *testing.T) {
	p := &stubProvider{
		lyrics: map[string]providers.LyricsResult{
			"Feel Good Inc.": {Lyrics: "[Verse]\nfeel good inc.\n[Chorus]\nfeel good", Source: providers.SourcePage},
			"Clint Eastwood": {Lyrics: "I'm happy, feel glad\nsunshine in a bag", Source: providers.SourcePage},
		},
		errs: map[string]error{
			"Timeout": &providers.FetchError{URL: "https://example.com", Err: errors.New("deadline exceeded")},
		},
	}

	body := `{"top_tracks":[
		{"name":"Feel Good Inc.","artists":[{"name":"Gorillaz"}]},
		{"name":"Not On Genius","artists":[{"name":"Nobody"}]},
		{"name":"Clint Eastwood","artists":[{"name":"Gorillaz"}]},
		{"name":"Timeout","artists":[{"name":"Gorillaz"}]},
		{"name":"","artists":[{"name":"Gorillaz"}]}
	]}`

	rec := doRequest(newTestHandler(p), "POST", "/api/v0/wordcloud", body)

	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d", rec.Code, http.StatusOK)
	}

	var got []nlp.WordCount
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("Invalid JSON body %q: %v", rec.Body.String(), err)
	}

	expected := []nlp.WordCount{
		{Text: "FEEL", Value: 2},
		{Text: "GLAD", Value: 1},
		{Text: "GOOD", Value: 1},
		{Text: "HAPPY", Value: 1},
		{Text: "SUNSHINE", Value: 1},
	}
	if len(got) != len(expected) {
		t.Fatalf("Got %d words %v, want %v", len(got), got, expected)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("Word %d = %v, want %v", i, got[i], expected[i])
		}
	}

	if len(p.calls) != 4 {
		t.Errorf("Provider called %d times, want 4 (empty name skipped)", len(p.calls))
	}
	for _, allow := range p.preview {
		if allow {
			t.Error("Word cloud must not fall back to previews")
		}
	}
}

func TestWordcloud_SingleResolvableTrack(t *testing.T) {
	p := &stubProvider{
		lyrics: map[string]providers.LyricsResult{
			"Feel Good Inc.": {Lyrics: "[Verse]\nfeel good inc.\n[Chorus]\nfeel good"},
		},
	}

	body := `{"top_tracks":[{"name":"Feel Good Inc.","artists":[{"name":"Gorillaz"}]},{"name":"Missing","artists":[{"name":"Nobody"}]}]}`
	rec := doRequest(newTestHandler(p), "POST", "/api/v0/wordcloud", body)

	var got []nlp.WordCount
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("Invalid JSON body: %v", err)
	}

	expected := []nlp.WordCount{{Text: "FEEL", Value: 1}, {Text: "GOOD", Value: 1}}
	if len(got) != 2 || got[0] != expected[0] || got[1] != expected[1] {
		t.Errorf("Got %v, want %v", got, expected)
	}
}

func TestWordcloud_Empty(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no tracks", `{"top_tracks":[]}`},
		{"missing field", `{}`},
		{"nothing resolvable", `{"top_tracks":[{"name":"Missing","artists":[]}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(newTestHandler(&stubProvider{}), "POST", "/api/v0/wordcloud", tt.body)

			if rec.Code != http.StatusOK {
				t.Errorf("Status = %d, want %d", rec.Code, http.StatusOK)
			}
			if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
				t.Errorf("Body = %q, want []", body)
			}
		})
	}
}

func TestWordcloud_BadRequest(t *testing.T) {
	rec := doRequest(newTestHandler(&stubProvider{}), "POST", "/api/v0/wordcloud", `{"top_tracks":"nope"}`)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestCORS(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Origin", "https://example.com")
	rec := httptest.NewRecorder()

	newTestHandler(&stubProvider{}).ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got == "" {
		t.Error("Expected Access-Control-Allow-Origin header")
	}
}
