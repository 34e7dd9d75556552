package discovery

import (
	"fmt"

	"github.com/srijanmishra08/playlist-recommender/internal/models"
)

// fallbackTracks is the fixed safety-net track list. Well-known, broadly
// liked tracks with full metadata so the response shape stays identical to
// a real discovery result.
var fallbackTracks = []models.PlaylistTrack{
	{
		Name:       "Blinding Lights",
		Artists:    []string{"The Weeknd"},
		Album:      "After Hours",
		AlbumImage: "https://i.scdn.co/image/ab67616d0000b273c8b444df094279e70d0ed856",
		ID:         "0VjIjW4GlUZAMYd2vXMi3b",
		URI:        "spotify:track:0VjIjW4GlUZAMYd2vXMi3b",
	},
	{
		Name:       "Don't Start Now",
		Artists:    []string{"Dua Lipa"},
		Album:      "Future Nostalgia",
		AlbumImage: "https://i.scdn.co/image/ab67616d0000b2734eb939af3ac2c3a2dfa6d85a",
		ID:         "3PfIrDoz19wz7qK7tYeu62",
		URI:        "spotify:track:3PfIrDoz19wz7qK7tYeu62",
	},
	{
		Name:       "Shape of You",
		Artists:    []string{"Ed Sheeran"},
		Album:      "÷ (Divide)",
		AlbumImage: "https://i.scdn.co/image/ab67616d0000b273ba5db46f4b838ef6027e6f96",
		ID:         "7qiZfU4dY1lWllzX7mPBI3",
		URI:        "spotify:track:7qiZfU4dY1lWllzX7mPBI3",
	},
	{
		Name:       "Bad Guy",
		Artists:    []string{"Billie Eilish"},
		Album:      "WHEN WE ALL FALL ASLEEP, WHERE DO WE GO?",
		AlbumImage: "https://i.scdn.co/image/ab67616d0000b273a91c10fe9472d9bd89802e5a",
		ID:         "2Fxmhks0bxGSBdJ92vM42m",
		URI:        "spotify:track:2Fxmhks0bxGSBdJ92vM42m",
	},
	{
		Name:       "Levitating",
		Artists:    []string{"Dua Lipa"},
		Album:      "Future Nostalgia",
		AlbumImage: "https://i.scdn.co/image/ab67616d0000b2734eb939af3ac2c3a2dfa6d85a",
		ID:         "5nujrmhLynf4yMoMtj8AQF",
		URI:        "spotify:track:5nujrmhLynf4yMoMtj8AQF",
	},
	{
		Name:       "Watermelon Sugar",
		Artists:    []string{"Harry Styles"},
		Album:      "Fine Line",
		AlbumImage: "https://i.scdn.co/image/ab67616d0000b273d9194aa18fa4c9362b47464f",
		ID:         "6UelLqGlWMcVH1E5c4H7lY",
		URI:        "spotify:track:6UelLqGlWMcVH1E5c4H7lY",
	},
	{
		Name:       "Uptown Funk",
		Artists:    []string{"Mark Ronson", "Bruno Mars"},
		Album:      "Uptown Special",
		AlbumImage: "https://i.scdn.co/image/ab67616d0000b27328a2cbca86dbc4e67d0ac59c",
		ID:         "32OlwWuMpZ6b0aN2RZOeMS",
		URI:        "spotify:track:32OlwWuMpZ6b0aN2RZOeMS",
	},
	{
		Name:       "Shallow",
		Artists:    []string{"Lady Gaga", "Bradley Cooper"},
		Album:      "A Star Is Born Soundtrack",
		AlbumImage: "https://i.scdn.co/image/ab67616d0000b273e2d156fdc691f57159b82601",
		ID:         "2VxeLyX666F8uXCJ0dZF8B",
		URI:        "spotify:track:2VxeLyX666F8uXCJ0dZF8B",
	},
}

// FallbackPlaylist returns the static playlist served whenever the pipeline
// cannot produce sufficient data. Output is identical for every call except
// the embedded user id, and is never saveable.
func FallbackPlaylist(userID string) *models.GeneratedPlaylist {
	tracks := make([]models.PlaylistTrack, len(fallbackTracks))
	copy(tracks, fallbackTracks)

	return &models.GeneratedPlaylist{
		Name:        fmt.Sprintf("Playlist for %s", userID),
		Description: "A collection of popular tracks we think you might enjoy",
		Tracks:      tracks,
		CanSave:     false,
		Fallback:    true,
	}
}
