package providers

import (
	"context"
)

// Provider defines the interface a lyrics provider must implement
type Provider interface {
	// Name returns the provider's identifier (e.g., "genius")
	Name() string

	// FetchLyrics resolves the track against the provider and returns its lyrics.
	// Parameters:
	//   - ctx: context for cancellation and timeouts
	//   - query: track name and ordered artist list
	//   - opts: whether the preview fallback may be used when the lyrics page fails
	// Returns:
	//   - *LyricsResult: the lyrics and where they came from
	//   - error: ErrNoArtist, ErrNoMatch, ErrLyricsNotFound, *ProviderError,
	//     *MalformedResponseError or *FetchError
	FetchLyrics(ctx context.Context, query TrackQuery, opts FetchOptions) (*LyricsResult, error)
}

// FetchOptions controls the lyrics retrieval policy
type FetchOptions struct {
	// AllowPreview enables the metadata preview fallback after a failed page fetch
	AllowPreview bool
}
