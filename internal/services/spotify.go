// Spotify API implementation of [Catalog] and [Publisher]
//
// Spotify API response types based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/srijanmishra08/playlist-recommender/internal/models"
	"github.com/srijanmishra08/playlist-recommender/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"
)

const (
	spotifyAuthURL  = "https://accounts.spotify.com/authorize"
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyBaseURL  = "https://api.spotify.com/v1"

	// Spotify caps the batch artist lookup at 20 ids per call.
	MaxArtistBatch = 20

	// Spotify caps playlist track additions at 100 uris per call.
	maxTrackChunk = 100
)

// SpotifyImage represents an image resource.
type SpotifyImage struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// SpotifyUser represents a Spotify user profile.
type SpotifyUser struct {
	ID          string         `json:"id"`
	DisplayName string         `json:"display_name"`
	Images      []SpotifyImage `json:"images"`
}

// SpotifyArtist represents a Spotify artist.
type SpotifyArtist struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Genres     []string `json:"genres"`
	Popularity int      `json:"popularity"`
	URI        string   `json:"uri"`
}

// SpotifyAlbum represents a Spotify album.
type SpotifyAlbum struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Images []SpotifyImage `json:"images"`
	URI    string         `json:"uri"`
}

// SpotifyTrack represents a Spotify track.
type SpotifyTrack struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Artists    []SpotifyArtist `json:"artists"`
	Album      SpotifyAlbum    `json:"album"`
	PreviewURL string          `json:"preview_url"`
	Popularity int             `json:"popularity"`
	URI        string          `json:"uri"`
}

type simplePlaylistTrack struct {
	Total int `json:"total"`
}

// SpotifySimplePlaylist represents a simplified playlist object (used in lists).
type SpotifySimplePlaylist struct {
	ID     string              `json:"id"`
	Name   string              `json:"name"`
	Public bool                `json:"public"`
	Tracks simplePlaylistTrack `json:"tracks"`
	URI    string              `json:"uri"`
}

// SpotifyPaginatedPlaylists represents a paginated response of playlists.
type SpotifyPaginatedPlaylists struct {
	Items  []SpotifySimplePlaylist `json:"items"`
	Total  int                     `json:"total"`
	Limit  int                     `json:"limit"`
	Offset int                     `json:"offset"`
	Next   *string                 `json:"next"`
}

// SpotifyPlaylistTrack represents a track within a playlist context.
type SpotifyPlaylistTrack struct {
	AddedAt string       `json:"added_at"`
	Track   SpotifyTrack `json:"track"`
}

type externalURLs struct {
	Spotify string `json:"spotify"`
}

type createdPlaylist struct {
	ID           string       `json:"id"`
	ExternalURLs externalURLs `json:"external_urls"`
}

// SpotifyService implements [Catalog] and [Publisher] against the Spotify Web API.
//
// Catalog reads authenticate with an application token from the
// client-credentials grant; Publisher writes use the caller's access token.
type SpotifyService struct {
	config     *oauth2.Config
	appSource  oauth2.TokenSource
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewSpotifyService creates a new Spotify service with the given credentials.
func NewSpotifyService(cfg shared.SpotifyConfig) (*SpotifyService, error) {
	if cfg.ClientID == "" {
		return nil, fmt.Errorf("%w: client_id", shared.ErrMissingCredentials)
	}
	if cfg.ClientSecret == "" {
		return nil, fmt.Errorf("%w: client_secret", shared.ErrMissingCredentials)
	}
	if cfg.RedirectURI == "" {
		cfg.RedirectURI = "http://localhost:3000/callback"
	}

	config := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURI,
		Scopes: []string{
			"user-read-private",
			"user-read-email",
			"playlist-read-private",
			"playlist-read-collaborative",
			"playlist-modify-public",
			"playlist-modify-private",
		},
		Endpoint: oauth2.Endpoint{
			AuthURL:  spotifyAuthURL,
			TokenURL: spotifyTokenURL,
		},
	}

	appConfig := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     spotifyTokenURL,
	}

	return &SpotifyService{
		config:     config,
		appSource:  appConfig.TokenSource(context.Background()),
		httpClient: http.DefaultClient,
		limiter:    rate.NewLimiter(rate.Limit(10), 5),
	}, nil
}

func (s *SpotifyService) Name() string {
	return "Spotify"
}

// AuthURL returns the OAuth2 authorization URL for user login.
func (s *SpotifyService) AuthURL(state string) string {
	return s.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// Exchange trades an authorization code for an access and refresh token pair.
func (s *SpotifyService) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := s.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}
	return token, nil
}

// Refresh obtains a new access token from a refresh token.
func (s *SpotifyService) Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	source := s.config.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	token, err := source.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrRefreshFailed, err)
	}
	return token, nil
}

// VerifyCredentials requests a client-credentials token to confirm the
// configured client id and secret are accepted by the token endpoint.
func (s *SpotifyService) VerifyCredentials(ctx context.Context) error {
	if _, err := s.appSource.Token(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidCredentials, err)
	}
	return nil
}

// appToken fetches (and caches via the token source) the client-credentials token.
func (s *SpotifyService) appToken() (string, error) {
	token, err := s.appSource.Token()
	if err != nil {
		return "", fmt.Errorf("%w: client credentials grant: %v", shared.ErrAuthFailed, err)
	}
	return token.AccessToken, nil
}

// doRequest performs an authenticated, rate-limited HTTP request to the Spotify API.
func (s *SpotifyService) doRequest(ctx context.Context, method, endpoint, accessToken string, body, result any) error {
	if accessToken == "" {
		return fmt.Errorf("%w: missing access token", shared.ErrNotAuthenticated)
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	apiURL := spotifyBaseURL + endpoint

	var payload *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		payload = bytes.NewReader(data)
	} else {
		payload = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, apiURL, payload)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", shared.ErrNotFound, endpoint)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d for %s", shared.ErrAPIRequest, resp.StatusCode, endpoint)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// get performs a Catalog read using the application token.
func (s *SpotifyService) get(ctx context.Context, endpoint string, result any) error {
	token, err := s.appToken()
	if err != nil {
		return err
	}
	return s.doRequest(ctx, http.MethodGet, endpoint, token, nil, result)
}

// ResolveUser looks up a user profile by username.
func (s *SpotifyService) ResolveUser(ctx context.Context, username string) (*models.User, error) {
	var user SpotifyUser
	endpoint := fmt.Sprintf("/users/%s", url.PathEscape(username))
	if err := s.get(ctx, endpoint, &user); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", shared.ErrUserNotFound, username)
		}
		return nil, err
	}

	resolved := &models.User{ID: user.ID, DisplayName: user.DisplayName}
	if resolved.DisplayName == "" {
		resolved.DisplayName = user.ID
	}
	return resolved, nil
}

// ListPublicPlaylists retrieves a user's playlists (first page of 50).
func (s *SpotifyService) ListPublicPlaylists(ctx context.Context, userID string) ([]models.Playlist, error) {
	endpoint := fmt.Sprintf("/users/%s/playlists?limit=50", url.PathEscape(userID))

	var response SpotifyPaginatedPlaylists
	if err := s.get(ctx, endpoint, &response); err != nil {
		return nil, err
	}

	playlists := make([]models.Playlist, 0, len(response.Items))
	for _, sp := range response.Items {
		playlists = append(playlists, models.Playlist{
			ID:         sp.ID,
			Name:       sp.Name,
			TrackCount: sp.Tracks.Total,
			Public:     sp.Public,
		})
	}

	return playlists, nil
}

// GetPlaylistTracks retrieves up to limit tracks from a playlist.
func (s *SpotifyService) GetPlaylistTracks(ctx context.Context, playlistID string, limit int) ([]models.Track, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 50 {
		limit = 50
	}

	endpoint := fmt.Sprintf("/playlists/%s/tracks?limit=%d", url.PathEscape(playlistID), limit)

	var response struct {
		Items []SpotifyPlaylistTrack `json:"items"`
	}
	if err := s.get(ctx, endpoint, &response); err != nil {
		return nil, err
	}

	tracks := make([]models.Track, 0, len(response.Items))
	for _, item := range response.Items {
		// Local files and removed tracks come back with a null track object.
		if item.Track.ID == "" {
			continue
		}
		tracks = append(tracks, toTrack(item.Track))
	}

	return tracks, nil
}

// GetArtists retrieves full artist records for a batch of up to 20 ids.
func (s *SpotifyService) GetArtists(ctx context.Context, artistIDs []string) ([]models.Artist, error) {
	if len(artistIDs) == 0 {
		return nil, fmt.Errorf("%w: no artist ids provided", shared.ErrInvalidArgument)
	}
	if len(artistIDs) > MaxArtistBatch {
		return nil, fmt.Errorf("%w: maximum %d artist ids allowed", shared.ErrInvalidArgument, MaxArtistBatch)
	}

	ids := strings.Join(artistIDs, ",")
	endpoint := fmt.Sprintf("/artists?ids=%s", url.QueryEscape(ids))

	var response struct {
		Artists []SpotifyArtist `json:"artists"`
	}
	if err := s.get(ctx, endpoint, &response); err != nil {
		return nil, err
	}

	artists := make([]models.Artist, 0, len(response.Artists))
	for _, sa := range response.Artists {
		if sa.ID == "" {
			continue
		}
		artists = append(artists, models.Artist{
			ID:         sa.ID,
			Name:       sa.Name,
			Popularity: sa.Popularity,
			Genres:     sa.Genres,
		})
	}

	return artists, nil
}

// GetArtistTopTracks retrieves an artist's top tracks for a market.
func (s *SpotifyService) GetArtistTopTracks(ctx context.Context, artistID, market string) ([]models.Track, error) {
	if market == "" {
		market = "US"
	}

	endpoint := fmt.Sprintf("/artists/%s/top-tracks?market=%s", url.PathEscape(artistID), url.QueryEscape(market))

	var response struct {
		Tracks []SpotifyTrack `json:"tracks"`
	}
	if err := s.get(ctx, endpoint, &response); err != nil {
		return nil, err
	}

	tracks := make([]models.Track, 0, len(response.Tracks))
	for _, st := range response.Tracks {
		tracks = append(tracks, toTrack(st))
	}

	return tracks, nil
}

// CurrentUser resolves the profile behind an access token.
func (s *SpotifyService) CurrentUser(ctx context.Context, accessToken string) (*models.User, error) {
	var user SpotifyUser
	if err := s.doRequest(ctx, http.MethodGet, "/me", accessToken, nil, &user); err != nil {
		return nil, err
	}
	return &models.User{ID: user.ID, DisplayName: user.DisplayName}, nil
}

// CreatePlaylist creates an empty public playlist in the user's account.
func (s *SpotifyService) CreatePlaylist(ctx context.Context, accessToken, userID, name, description string) (*models.SavedPlaylist, error) {
	endpoint := fmt.Sprintf("/users/%s/playlists", url.PathEscape(userID))
	body := map[string]any{
		"name":        name,
		"description": description,
		"public":      true,
	}

	var created createdPlaylist
	if err := s.doRequest(ctx, http.MethodPost, endpoint, accessToken, body, &created); err != nil {
		return nil, err
	}

	return &models.SavedPlaylist{ID: created.ID, URL: created.ExternalURLs.Spotify}, nil
}

// AddTracks appends tracks to a playlist in chunks of 100 uris.
func (s *SpotifyService) AddTracks(ctx context.Context, accessToken, playlistID string, uris []string) error {
	if len(uris) == 0 {
		return fmt.Errorf("%w: no track uris provided", shared.ErrInvalidArgument)
	}

	endpoint := fmt.Sprintf("/playlists/%s/tracks", url.PathEscape(playlistID))

	for start := 0; start < len(uris); start += maxTrackChunk {
		end := start + maxTrackChunk
		if end > len(uris) {
			end = len(uris)
		}

		body := map[string]any{"uris": uris[start:end]}
		if err := s.doRequest(ctx, http.MethodPost, endpoint, accessToken, body, nil); err != nil {
			return err
		}
	}

	return nil
}

// toTrack converts a Spotify track response into the domain model.
func toTrack(st SpotifyTrack) models.Track {
	refs := make([]models.ArtistRef, 0, len(st.Artists))
	for _, a := range st.Artists {
		refs = append(refs, models.ArtistRef{ID: a.ID, Name: a.Name})
	}

	track := models.Track{
		ID:         st.ID,
		Name:       st.Name,
		Artists:    refs,
		Album:      st.Album.Name,
		PreviewURL: st.PreviewURL,
		URI:        st.URI,
		Popularity: st.Popularity,
	}
	if len(st.Album.Images) > 0 {
		track.AlbumImage = st.Album.Images[0].URL
	}

	return track
}
