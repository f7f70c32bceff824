package genius

import (
	"fmt"

	"lyrical-api/services/providers"
)

// Meta is the status envelope every API response carries
type Meta struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// SearchResponse represents the /search response.
// Error and ErrorDescription are set instead of Response when the API rejects the call.
type SearchResponse struct {
	Meta             *Meta          `json:"meta"`
	Response         *SearchPayload `json:"response"`
	Error            string         `json:"error"`
	ErrorDescription string         `json:"error_description"`
}

// SearchPayload holds the ranked hits
type SearchPayload struct {
	Hits *[]Hit `json:"hits"`
}

// Hit is a single search candidate
type Hit struct {
	Type   string      `json:"type"`
	Result *SongResult `json:"result"`
}

// SongResult is the song a hit points at
type SongResult struct {
	ID            int        `json:"id"`
	Title         string     `json:"title"`
	FullTitle     string     `json:"full_title"`
	URL           string     `json:"url"`
	APIPath       string     `json:"api_path"`
	PrimaryArtist *ArtistRef `json:"primary_artist"`
}

// ArtistRef is the credited primary artist of a song
type ArtistRef struct {
	Name string `json:"name"`
}

// PrimaryArtistName returns the hit's primary artist name
func (h Hit) PrimaryArtistName() string {
	return h.Result.PrimaryArtist.Name
}

// SongResponse represents the /songs/:id response
type SongResponse struct {
	Meta     *Meta        `json:"meta"`
	Response *SongPayload `json:"response"`
}

// SongPayload wraps the song metadata
type SongPayload struct {
	Song *SongDetails `json:"song"`
}

// SongDetails carries the embed preview.
// EmbedContent is a pointer so a missing field is distinguishable from an empty one.
type SongDetails struct {
	EmbedContent *string `json:"embed_content"`
}

// hits validates the search payload and returns its hits in provider order
func (r *SearchResponse) hits() ([]Hit, error) {
	if r.Response == nil {
		return nil, &providers.MalformedResponseError{Endpoint: "search", Field: "response"}
	}
	if r.Response.Hits == nil {
		return nil, &providers.MalformedResponseError{Endpoint: "search", Field: "response.hits"}
	}

	hits := *r.Response.Hits
	for i, hit := range hits {
		if hit.Result == nil {
			return nil, &providers.MalformedResponseError{Endpoint: "search", Field: fmt.Sprintf("response.hits[%d].result", i)}
		}
		if hit.Result.PrimaryArtist == nil {
			return nil, &providers.MalformedResponseError{Endpoint: "search", Field: fmt.Sprintf("response.hits[%d].result.primary_artist", i)}
		}
	}
	return hits, nil
}

// embedContent validates the song payload and returns the preview
func (r *SongResponse) embedContent() (string, error) {
	if r.Response == nil {
		return "", &providers.MalformedResponseError{Endpoint: "song", Field: "response"}
	}
	if r.Response.Song == nil {
		return "", &providers.MalformedResponseError{Endpoint: "song", Field: "response.song"}
	}
	if r.Response.Song.EmbedContent == nil {
		return "", &providers.MalformedResponseError{Endpoint: "song", Field: "response.song.embed_content"}
	}
	return *r.Response.Song.EmbedContent, nil
}
