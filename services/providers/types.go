package providers

import (
	"errors"
	"fmt"
)

// Artist is a credited artist on a track. Only the name is used for matching.
type Artist struct {
	Name string `json:"name"`
}

// TrackQuery identifies a song by name and ordered artist list
type TrackQuery struct {
	Name    string   `json:"name"`
	Artists []Artist `json:"artists"`
}

// PrimaryArtist returns the first artist's name, or "" when there are none
func (q TrackQuery) PrimaryArtist() string {
	if len(q.Artists) == 0 {
		return ""
	}
	return q.Artists[0].Name
}

// LyricsSource tells whether lyrics came from the page or the preview fallback
type LyricsSource string

const (
	SourcePage    LyricsSource = "page"
	SourcePreview LyricsSource = "preview"
)

// LyricsResult is the standardized result from any lyrics provider
type LyricsResult struct {
	// Lyrics holds the page lyrics text or the embedded preview
	Lyrics string `json:"lyrics"`

	// Source is SourcePage or SourcePreview
	Source LyricsSource `json:"source"`

	// Provider is the name of the provider that returned these lyrics
	Provider string `json:"provider"`

	// URL is the canonical web page of the matched song
	URL string `json:"url,omitempty"`
}

var (
	// ErrNoArtist is returned when a query carries no artist to match against
	ErrNoArtist = errors.New("no artist to match against")

	// ErrNoMatch is returned when no search hit has a matching primary artist
	ErrNoMatch = errors.New("no hit matched the primary artist")

	// ErrLyricsNotFound is returned when the lyrics container is missing from the page
	ErrLyricsNotFound = errors.New("lyrics container not found on page")
)

// IsNotFound reports whether err is an expected "nothing to return" outcome
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNoArtist) || errors.Is(err, ErrNoMatch) || errors.Is(err, ErrLyricsNotFound)
}

// ProviderError represents an error from a provider with additional context
type ProviderError struct {
	Provider string
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return e.Provider + ": " + e.Message + ": " + e.Err.Error()
	}
	return e.Provider + ": " + e.Message
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewProviderError creates a new ProviderError
func NewProviderError(provider, message string, err error) *ProviderError {
	return &ProviderError{
		Provider: provider,
		Message:  message,
		Err:      err,
	}
}

// MalformedResponseError is returned when a provider response lacks a required field
type MalformedResponseError struct {
	Endpoint string
	Field    string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response from %s: missing %s", e.Endpoint, e.Field)
}

// FetchError is returned when the lyrics page could not be retrieved or parsed
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: HTTP %d", e.URL, e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return "fetch " + e.URL + ": failed"
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
