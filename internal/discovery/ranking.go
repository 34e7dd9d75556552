package discovery

import (
	"math/rand"
	"sort"

	"github.com/srijanmishra08/playlist-recommender/internal/models"
)

// genreMatchWeight dominates popularity and jitter so genre affinity stays
// the primary ranking signal.
const genreMatchWeight = 20

// rankArtists scores every artist with at least one genre tag and returns
// the top ones by descending score.
//
// score = genreMatches*20 + popularityComponent + jitter[0,10]
//
// The jitter term is drawn fresh per artist per request so repeat requests
// produce different orderings; without it the ranking is deterministic.
func rankArtists(artists []models.Artist, topGenres []string, rng *rand.Rand) []models.RankedArtist {
	genreSet := make(map[string]bool, len(topGenres))
	for _, g := range topGenres {
		genreSet[g] = true
	}

	ranked := make([]models.RankedArtist, 0, len(artists))
	for _, artist := range artists {
		if artist.ID == "" || len(artist.Genres) == 0 {
			continue
		}

		matches := 0
		for _, genre := range artist.Genres {
			if genreSet[genre] {
				matches++
			}
		}

		jitter := rng.Intn(11)
		ranked = append(ranked, models.RankedArtist{
			ID:    artist.ID,
			Name:  artist.Name,
			Score: matches*genreMatchWeight + popularityComponent(artist.Popularity) + jitter,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if len(ranked) > rankedArtistLimit {
		ranked = ranked[:rankedArtistLimit]
	}

	return ranked
}

// popularityComponent rewards moderately popular artists and penalizes
// superstars to favor discovery: popularity above 85 folds back down
// (180 − p), everything else passes through unchanged.
func popularityComponent(popularity int) int {
	if popularity > 85 {
		return 180 - popularity
	}
	return popularity
}
