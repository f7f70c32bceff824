package main

import (
	"encoding/json"
	"lyrical-api/services/providers"
	"net/http"
)

// APIResponse handles consistent header setting for API responses.
// X-Provider and X-Lyrics-Source are only written when set.
type APIResponse struct {
	w            http.ResponseWriter
	provider     string
	lyricsSource providers.LyricsSource
}

// Respond creates a response helper for w
func Respond(w http.ResponseWriter) *APIResponse {
	return &APIResponse{w: w}
}

// SetProvider sets the X-Provider header value
func (a *APIResponse) SetProvider(provider string) *APIResponse {
	a.provider = provider
	return a
}

// SetLyricsSource sets the X-Lyrics-Source header value
func (a *APIResponse) SetLyricsSource(source providers.LyricsSource) *APIResponse {
	a.lyricsSource = source
	return a
}

// SetResult copies provider and source from a lyrics result; nil is ignored
func (a *APIResponse) SetResult(result *providers.LyricsResult) *APIResponse {
	if result == nil {
		return a
	}
	return a.SetProvider(result.Provider).SetLyricsSource(result.Source)
}

func (a *APIResponse) writeHeaders(contentType string) {
	a.w.Header().Set("Content-Type", contentType)

	if a.provider != "" {
		a.w.Header().Set("X-Provider", a.provider)
	}
	if a.lyricsSource != "" {
		a.w.Header().Set("X-Lyrics-Source", string(a.lyricsSource))
	}
}

// JSON writes headers and encodes data as JSON (200 OK)
func (a *APIResponse) JSON(data interface{}) error {
	a.writeHeaders("application/json")
	return json.NewEncoder(a.w).Encode(data)
}

// Text writes a plain-text body with the given status
func (a *APIResponse) Text(statusCode int, message string) error {
	a.writeHeaders("text/plain; charset=utf-8")
	a.w.WriteHeader(statusCode)
	_, err := a.w.Write([]byte(message))
	return err
}
