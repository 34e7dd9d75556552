// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"net/http"
	"os"
	"testing"

	"github.com/srijanmishra08/playlist-recommender/internal/models"
)

// MockCatalog is a configurable test double for [services.Catalog].
// Each field overrides the corresponding method; nil fields return empty
// results without error.
type MockCatalog struct {
	ResolveUserFunc         func(ctx context.Context, username string) (*models.User, error)
	ListPublicPlaylistsFunc func(ctx context.Context, userID string) ([]models.Playlist, error)
	GetPlaylistTracksFunc   func(ctx context.Context, playlistID string, limit int) ([]models.Track, error)
	GetArtistsFunc          func(ctx context.Context, artistIDs []string) ([]models.Artist, error)
	GetArtistTopTracksFunc  func(ctx context.Context, artistID, market string) ([]models.Track, error)
}

func (m *MockCatalog) ResolveUser(ctx context.Context, username string) (*models.User, error) {
	if m.ResolveUserFunc != nil {
		return m.ResolveUserFunc(ctx, username)
	}
	return &models.User{ID: username}, nil
}

func (m *MockCatalog) ListPublicPlaylists(ctx context.Context, userID string) ([]models.Playlist, error) {
	if m.ListPublicPlaylistsFunc != nil {
		return m.ListPublicPlaylistsFunc(ctx, userID)
	}
	return []models.Playlist{}, nil
}

func (m *MockCatalog) GetPlaylistTracks(ctx context.Context, playlistID string, limit int) ([]models.Track, error) {
	if m.GetPlaylistTracksFunc != nil {
		return m.GetPlaylistTracksFunc(ctx, playlistID, limit)
	}
	return []models.Track{}, nil
}

func (m *MockCatalog) GetArtists(ctx context.Context, artistIDs []string) ([]models.Artist, error) {
	if m.GetArtistsFunc != nil {
		return m.GetArtistsFunc(ctx, artistIDs)
	}
	return []models.Artist{}, nil
}

func (m *MockCatalog) GetArtistTopTracks(ctx context.Context, artistID, market string) ([]models.Track, error) {
	if m.GetArtistTopTracksFunc != nil {
		return m.GetArtistTopTracksFunc(ctx, artistID, market)
	}
	return []models.Track{}, nil
}

// MockPublisher is a configurable test double for [services.Publisher].
type MockPublisher struct {
	CurrentUserFunc    func(ctx context.Context, accessToken string) (*models.User, error)
	CreatePlaylistFunc func(ctx context.Context, accessToken, userID, name, description string) (*models.SavedPlaylist, error)
	AddTracksFunc      func(ctx context.Context, accessToken, playlistID string, uris []string) error
}

func (m *MockPublisher) CurrentUser(ctx context.Context, accessToken string) (*models.User, error) {
	if m.CurrentUserFunc != nil {
		return m.CurrentUserFunc(ctx, accessToken)
	}
	return &models.User{ID: "mock-user"}, nil
}

func (m *MockPublisher) CreatePlaylist(ctx context.Context, accessToken, userID, name, description string) (*models.SavedPlaylist, error) {
	if m.CreatePlaylistFunc != nil {
		return m.CreatePlaylistFunc(ctx, accessToken, userID, name, description)
	}
	return &models.SavedPlaylist{ID: "mock-playlist", URL: "https://open.spotify.com/playlist/mock-playlist"}, nil
}

func (m *MockPublisher) AddTracks(ctx context.Context, accessToken, playlistID string, uris []string) error {
	if m.AddTracksFunc != nil {
		return m.AddTracksFunc(ctx, accessToken, playlistID, uris)
	}
	return nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// RoundTripFunc adapts a function into an [http.RoundTripper] so tests can
// inspect the request before answering.
type RoundTripFunc func(*http.Request) (*http.Response, error)

func (f RoundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
