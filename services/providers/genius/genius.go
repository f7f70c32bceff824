package genius

import (
	"context"
	"strings"

	"lyrical-api/logcolors"
	"lyrical-api/services/providers"

	log "github.com/sirupsen/logrus"
)

// ProviderName is the identifier for the Genius provider
const ProviderName = "genius"

// GeniusProvider implements providers.Provider on top of the Genius API and lyrics pages
type GeniusProvider struct {
	client *Client
}

// NewProvider creates a new Genius provider around client
func NewProvider(client *Client) *GeniusProvider {
	return &GeniusProvider{client: client}
}

// Name returns the provider identifier
func (p *GeniusProvider) Name() string {
	return ProviderName
}

// BuildQuery builds the free-text search string: the lowercased track name cut at the
// first "(", followed by every artist name lowercased, space-joined.
func BuildQuery(name string, artists []providers.Artist) string {
	q := strings.ToLower(name)
	if i := strings.Index(q, "("); i >= 0 {
		q = q[:i]
	}

	parts := make([]string, 0, len(artists)+1)
	if q = strings.TrimSpace(q); q != "" {
		parts = append(parts, q)
	}
	for _, a := range artists {
		if artist := strings.TrimSpace(strings.ToLower(a.Name)); artist != "" {
			parts = append(parts, artist)
		}
	}
	return strings.Join(parts, " ")
}

// SelectHit returns the first hit whose primary artist contains artist, case-insensitively.
// Provider order is kept; there is no scoring.
func SelectHit(hits []Hit, artist string) (*Hit, bool) {
	needle := strings.ToLower(artist)
	for i := range hits {
		if strings.Contains(strings.ToLower(hits[i].PrimaryArtistName()), needle) {
			return &hits[i], true
		}
	}
	return nil, false
}

// ResolveSong searches for the track and returns the first hit credited to the first artist
func (p *GeniusProvider) ResolveSong(ctx context.Context, name string, artists []providers.Artist) (*Hit, error) {
	if len(artists) == 0 {
		return nil, providers.ErrNoArtist
	}

	query := BuildQuery(name, artists)
	log.Infof("%s [Genius] Searching: %s", logcolors.LogSearch, query)

	hits, err := p.client.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	hit, ok := SelectHit(hits, artists[0].Name)
	if !ok {
		log.Infof("%s [Genius] None of %d hits credited to %q", logcolors.LogNoMatch, len(hits), artists[0].Name)
		return nil, providers.ErrNoMatch
	}

	log.Infof("%s [Genius] %s (%s)", logcolors.LogMatch, hit.Result.FullTitle, hit.Result.URL)
	return hit, nil
}

// FetchPageLyrics scrapes the lyrics text from the hit's web page
func (p *GeniusProvider) FetchPageLyrics(ctx context.Context, hit *Hit) (string, error) {
	return p.client.LyricsPage(ctx, hit.Result.URL)
}

// FetchPreview returns the embed preview from the hit's song metadata
func (p *GeniusProvider) FetchPreview(ctx context.Context, hit *Hit) (string, error) {
	return p.client.EmbedContent(ctx, hit.Result.APIPath)
}

// FetchLyrics resolves the query and fetches its lyrics page. When the page fetch fails
// for any reason and opts.AllowPreview is set, the embed preview is returned instead.
func (p *GeniusProvider) FetchLyrics(ctx context.Context, query providers.TrackQuery, opts providers.FetchOptions) (*providers.LyricsResult, error) {
	hit, err := p.ResolveSong(ctx, query.Name, query.Artists)
	if err != nil {
		return nil, err
	}

	lyrics, pageErr := p.FetchPageLyrics(ctx, hit)
	if pageErr == nil {
		log.Infof("%s [Genius] Fetched page lyrics for: %s", logcolors.LogLyrics, hit.Result.FullTitle)
		return &providers.LyricsResult{
			Lyrics:   lyrics,
			Source:   providers.SourcePage,
			Provider: ProviderName,
			URL:      hit.Result.URL,
		}, nil
	}

	if !opts.AllowPreview {
		return nil, pageErr
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	log.Warnf("%s [Genius] Page fetch failed (%v), using embed preview", logcolors.LogFallback, pageErr)

	preview, err := p.FetchPreview(ctx, hit)
	if err != nil {
		return nil, err
	}

	return &providers.LyricsResult{
		Lyrics:   preview,
		Source:   providers.SourcePreview,
		Provider: ProviderName,
		URL:      hit.Result.URL,
	}, nil
}
