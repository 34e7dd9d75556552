// package services defines interfaces for interacting with the music catalog API
package services

import (
	"context"

	"github.com/srijanmishra08/playlist-recommender/internal/models"
)

// Catalog defines the read operations the discovery pipeline needs from the
// external music catalog.
type Catalog interface {
	// ResolveUser looks up a user by username.
	// Returns an error wrapping [shared.ErrUserNotFound] if no such user exists.
	ResolveUser(ctx context.Context, username string) (*models.User, error)

	// ListPublicPlaylists retrieves a user's playlists, including the public flag.
	ListPublicPlaylists(ctx context.Context, userID string) ([]models.Playlist, error)

	// GetPlaylistTracks retrieves up to limit tracks from a playlist.
	GetPlaylistTracks(ctx context.Context, playlistID string, limit int) ([]models.Track, error)

	// GetArtists retrieves full artist records for a batch of up to 20 ids.
	GetArtists(ctx context.Context, artistIDs []string) ([]models.Artist, error)

	// GetArtistTopTracks retrieves an artist's top tracks for a market.
	GetArtistTopTracks(ctx context.Context, artistID, market string) ([]models.Track, error)
}

// Publisher defines the authenticated write operations used to save a
// generated playlist to the caller's account.
type Publisher interface {
	// CurrentUser resolves the profile behind an access token.
	CurrentUser(ctx context.Context, accessToken string) (*models.User, error)

	// CreatePlaylist creates an empty public playlist in the user's account.
	CreatePlaylist(ctx context.Context, accessToken, userID, name, description string) (*models.SavedPlaylist, error)

	// AddTracks appends tracks to a playlist, chunking as the API requires.
	AddTracks(ctx context.Context, accessToken, playlistID string, uris []string) error
}
