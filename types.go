package main

import "lyrical-api/services/providers"

// LyricsRequest is the body of POST /api/v0/get_lyrics
type LyricsRequest struct {
	TrackName string             `json:"track_name"`
	Artists   []providers.Artist `json:"artists"`
}

// Track converts the request into a provider query
func (r LyricsRequest) Track() providers.TrackQuery {
	return providers.TrackQuery{Name: r.TrackName, Artists: r.Artists}
}

// WordcloudRequest is the body of POST /api/v0/wordcloud
type WordcloudRequest struct {
	TopTracks []providers.TrackQuery `json:"top_tracks"`
}
