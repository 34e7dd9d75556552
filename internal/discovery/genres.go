package discovery

import (
	"context"
	"sort"
	"sync"

	"github.com/srijanmishra08/playlist-recommender/internal/models"
	"github.com/srijanmishra08/playlist-recommender/internal/services"
)

// aggregateGenres fetches full artist records for the profile's known
// artists (capped, chunked by the catalog's batch limit, fetched
// concurrently) and derives the top genres by occurrence count. A failed
// chunk contributes no artists and never aborts the request.
//
// The returned artist slice preserves first-seen order; genre ties are
// broken by first-seen order as well.
func (e *Engine) aggregateGenres(ctx context.Context, profile *models.TasteProfile) ([]models.Artist, []string) {
	ids := profile.ArtistIDs
	if len(ids) > artistLookupCap {
		ids = ids[:artistLookupCap]
	}
	if len(ids) == 0 {
		return nil, nil
	}

	var chunks [][]string
	for start := 0; start < len(ids); start += services.MaxArtistBatch {
		end := start + services.MaxArtistBatch
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, ids[start:end])
	}

	results := make([][]models.Artist, len(chunks))
	var wg sync.WaitGroup
	for i, chunk := range chunks {
		wg.Add(1)
		go func(i int, chunk []string) {
			defer wg.Done()
			artists, err := e.catalog.GetArtists(ctx, chunk)
			if err != nil {
				e.logger.Warn("artist batch fetch failed", "size", len(chunk), "error", err)
				return
			}
			results[i] = artists
		}(i, chunk)
	}
	wg.Wait()

	var artists []models.Artist
	counts := make(map[string]int)
	var order []string

	for _, batch := range results {
		for _, artist := range batch {
			artists = append(artists, artist)
			for _, genre := range artist.Genres {
				if counts[genre] == 0 {
					order = append(order, genre)
				}
				counts[genre]++
			}
		}
	}

	// Stable sort keeps first-seen order for equal counts.
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > topGenreCount {
		order = order[:topGenreCount]
	}

	return artists, order
}
