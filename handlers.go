package main

import (
	"bytes"
	"encoding/json"
	"io"
	"lyrical-api/config"
	"lyrical-api/logcolors"
	"lyrical-api/sentry"
	"lyrical-api/services/nlp"
	"lyrical-api/services/providers"
	"net/http"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	rootBanner    = "Web root for Lyrical API"
	postAdvisory  = "GET not supported. Did you mean to POST?"
	maxBodyBytes  = 1 << 20
	badRequestMsg = "invalid request body"
)

type server struct {
	conf     config.Config
	provider providers.Provider
}

func newServer(conf config.Config, provider providers.Provider) *server {
	return &server{conf: conf, provider: provider}
}

func (s *server) rootHandler(w http.ResponseWriter, r *http.Request) {
	Respond(w).Text(http.StatusOK, rootBanner)
}

// readPostBody returns the request body, or nil when the request is a GET or
// the body is empty. Both cases get the advisory instead of an error.
func readPostBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	if r.Method != http.MethodPost {
		return nil, nil
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}
	return body, nil
}

func (s *server) getLyrics(w http.ResponseWriter, r *http.Request) {
	body, err := readPostBody(w, r)
	if err != nil {
		Respond(w).Text(http.StatusBadRequest, badRequestMsg)
		return
	}
	if body == nil {
		Respond(w).Text(http.StatusOK, postAdvisory)
		return
	}

	var req LyricsRequest
	if err := json.Unmarshal(body, &req); err != nil || req.TrackName == "" {
		log.Warnf("%s Rejected get_lyrics body: %v", logcolors.LogRequest, err)
		Respond(w).Text(http.StatusBadRequest, badRequestMsg)
		return
	}

	query := req.Track()
	log.Infof("%s get_lyrics: %q by %q", logcolors.LogRequest, query.Name, query.PrimaryArtist())

	result, err := s.provider.FetchLyrics(r.Context(), query, providers.FetchOptions{AllowPreview: true})
	if err != nil {
		s.logFetchFailure(r, query, err)
		Respond(w).SetProvider(s.provider.Name()).JSON(nil)
		return
	}

	Respond(w).SetResult(result).JSON(result.Lyrics)
}

func (s *server) wordcloud(w http.ResponseWriter, r *http.Request) {
	body, err := readPostBody(w, r)
	if err != nil {
		Respond(w).Text(http.StatusBadRequest, badRequestMsg)
		return
	}
	if body == nil {
		Respond(w).Text(http.StatusOK, postAdvisory)
		return
	}

	var req WordcloudRequest
	if err := json.Unmarshal(body, &req); err != nil {
		log.Warnf("%s Rejected wordcloud body: %v", logcolors.LogRequest, err)
		Respond(w).Text(http.StatusBadRequest, badRequestMsg)
		return
	}

	log.Infof("%s Building word cloud from %d tracks", logcolors.LogWordcloud, len(req.TopTracks))

	lyrics := s.collectLyrics(r, req.TopTracks)
	words := nlp.WordCloud(lyrics, s.conf.Wordcloud.MaxWords)

	log.Infof("%s %d words from %d tracks", logcolors.LogWordcloud, len(words), len(req.TopTracks))
	Respond(w).SetProvider(s.provider.Name()).JSON(words)
}

// collectLyrics fetches page lyrics for every track with bounded concurrency.
// Tracks that cannot be resolved or fetched leave an empty slot.
func (s *server) collectLyrics(r *http.Request, tracks []providers.TrackQuery) []string {
	lyrics := make([]string, len(tracks))

	workers := s.conf.Wordcloud.Workers
	if workers < 1 {
		workers = 1
	}

	var g errgroup.Group
	g.SetLimit(workers)

	for i, track := range tracks {
		if track.Name == "" {
			continue
		}
		g.Go(func() error {
			result, err := s.provider.FetchLyrics(r.Context(), track, providers.FetchOptions{})
			if err != nil {
				s.logFetchFailure(r, track, err)
				return nil
			}
			lyrics[i] = result.Lyrics
			return nil
		})
	}
	g.Wait()

	return lyrics
}

func (s *server) logFetchFailure(r *http.Request, track providers.TrackQuery, err error) {
	if providers.IsNotFound(err) {
		log.Infof("%s No lyrics for %q by %q: %v", logcolors.LogNoMatch, track.Name, track.PrimaryArtist(), err)
		return
	}

	log.Warnf("%s %q by %q: %v", logcolors.LogProviderError, track.Name, track.PrimaryArtist(), err)
	sentry.SetContext(r.Context(), "track", map[string]interface{}{
		"name":   track.Name,
		"artist": track.PrimaryArtist(),
	})
	sentry.ReportError(r.Context(), err)
}
