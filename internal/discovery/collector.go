package discovery

import (
	"context"
	"math/rand"
	"sync"

	"github.com/srijanmishra08/playlist-recommender/internal/models"
)

// collectDiscoveryTracks fetches top tracks for a random subset of the
// ranked artists and builds the candidate pool: tracks the user already
// knows are dropped, and each artist contributes at most three randomly
// chosen survivors so the same hits don't surface every request.
//
// Top-track fetches fan out concurrently; a failure for one artist yields
// an empty contribution for that artist only.
func (e *Engine) collectDiscoveryTracks(ctx context.Context, ranked []models.RankedArtist, profile *models.TasteProfile, rng *rand.Rand) []models.Track {
	ids := make([]string, len(ranked))
	for i, artist := range ranked {
		ids[i] = artist.ID
	}

	rng.Shuffle(len(ids), func(i, j int) {
		ids[i], ids[j] = ids[j], ids[i]
	})

	count := minDiscoveryArtists + rng.Intn(3)
	if count > len(ids) {
		count = len(ids)
	}
	selected := ids[:count]

	results := make([][]models.Track, len(selected))
	var wg sync.WaitGroup
	for i, artistID := range selected {
		wg.Add(1)
		go func(i int, artistID string) {
			defer wg.Done()
			tracks, err := e.catalog.GetArtistTopTracks(ctx, artistID, e.market)
			if err != nil {
				e.logger.Warn("top track fetch failed", "artist", artistID, "error", err)
				return
			}
			results[i] = tracks
		}(i, artistID)
	}
	wg.Wait()

	var pool []models.Track
	for _, tracks := range results {
		fresh := make([]models.Track, 0, len(tracks))
		for _, track := range tracks {
			if track.ID == "" || profile.KnowsTrack(track.ID) {
				continue
			}
			fresh = append(fresh, track)
		}

		rng.Shuffle(len(fresh), func(i, j int) {
			fresh[i], fresh[j] = fresh[j], fresh[i]
		})

		if len(fresh) > tracksPerArtist {
			fresh = fresh[:tracksPerArtist]
		}
		pool = append(pool, fresh...)
	}

	return pool
}
