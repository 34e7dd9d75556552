package discovery

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/srijanmishra08/playlist-recommender/internal/models"
)

// assemblePlaylist builds the final ordered track list from the candidate
// pool. The pool is shuffled, then filled in two passes: a diversity pass
// that takes at most one track per primary artist for the first ten slots,
// and a fill pass ordered by popularity plus fresh jitter for the rest.
func assemblePlaylist(userID string, pool []models.Track, topGenres []string, canSave bool, rng *rand.Rand, now time.Time) *models.GeneratedPlaylist {
	candidates := dedupeByID(pool)

	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	selected := make([]models.Track, 0, playlistSize)
	picked := make(map[int]bool, playlistSize)
	usedArtists := make(map[string]bool, diversityFloor)

	for i, track := range candidates {
		if len(selected) >= diversityFloor {
			break
		}
		primary := track.PrimaryArtistID()
		if primary == "" || usedArtists[primary] {
			continue
		}
		usedArtists[primary] = true
		picked[i] = true
		selected = append(selected, track)
	}

	if len(selected) < playlistSize {
		type scored struct {
			track models.Track
			key   int
		}

		remaining := make([]scored, 0, len(candidates)-len(selected))
		for i, track := range candidates {
			if picked[i] {
				continue
			}
			// Popularity leads, jitter in [-10,10] keeps the tail varied.
			remaining = append(remaining, scored{track, track.Popularity + rng.Intn(21) - 10})
		}

		sort.SliceStable(remaining, func(i, j int) bool {
			return remaining[i].key > remaining[j].key
		})

		for _, s := range remaining {
			if len(selected) >= playlistSize {
				break
			}
			selected = append(selected, s.track)
		}
	}

	tracks := make([]models.PlaylistTrack, 0, len(selected))
	for _, track := range selected {
		tracks = append(tracks, models.PlaylistTrackView(track))
	}

	return &models.GeneratedPlaylist{
		Name:        playlistName(userID, topGenres, rng),
		Description: playlistDescription(topGenres, now),
		Tracks:      tracks,
		CanSave:     canSave,
	}
}

// dedupeByID drops later duplicates so no track identifier appears twice.
// Collaborations can land in the pool through more than one ranked artist.
func dedupeByID(pool []models.Track) []models.Track {
	seen := make(map[string]bool, len(pool))
	out := make([]models.Track, 0, len(pool))
	for _, track := range pool {
		if seen[track.ID] {
			continue
		}
		seen[track.ID] = true
		out = append(out, track)
	}
	return out
}

// playlistName picks one of several templates interpolating the top genre
// and the requesting user.
func playlistName(userID string, topGenres []string, rng *rand.Rand) string {
	genre := "Eclectic"
	if len(topGenres) > 0 {
		genre = topGenres[0]
	}

	options := []string{
		fmt.Sprintf("Fresh Finds: %s Mix", genre),
		fmt.Sprintf("%s Discovery", genre),
		fmt.Sprintf("New %s Picks", genre),
		fmt.Sprintf("%s's %s Radio", userID, genre),
	}
	if len(topGenres) > 1 {
		options = append(options, fmt.Sprintf("%s & %s Explorer", genre, topGenres[1]))
	}

	return options[rng.Intn(len(options))]
}

// playlistDescription embeds the creation date and the user's top genres.
func playlistDescription(topGenres []string, now time.Time) string {
	genres := topGenres
	if len(genres) > 3 {
		genres = genres[:3]
	}
	return fmt.Sprintf("Fresh playlist created on %s based on your favorite genres: %s",
		now.Format("2006-01-02"), strings.Join(genres, ", "))
}
