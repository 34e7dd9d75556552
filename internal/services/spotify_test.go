package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/srijanmishra08/playlist-recommender/internal/shared"
	tu "github.com/srijanmishra08/playlist-recommender/internal/testing"
	"golang.org/x/oauth2"
)

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}

func newTestService(t *testing.T, rt http.RoundTripper) *SpotifyService {
	t.Helper()
	service, err := NewSpotifyService(shared.SpotifyConfig{
		ClientID:     "test-client-id",
		ClientSecret: "test-client-secret",
		RedirectURI:  "http://localhost:3000/callback",
	})
	if err != nil {
		t.Fatalf("NewSpotifyService failed: %v", err)
	}
	service.appSource = oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "app-token"})
	if rt != nil {
		service.httpClient = &http.Client{Transport: rt}
	}
	return service
}

func TestNewSpotifyService(t *testing.T) {
	t.Run("requires client id", func(t *testing.T) {
		_, err := NewSpotifyService(shared.SpotifyConfig{ClientSecret: "secret"})
		if !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("err = %v, want ErrMissingCredentials", err)
		}
	})

	t.Run("requires client secret", func(t *testing.T) {
		_, err := NewSpotifyService(shared.SpotifyConfig{ClientID: "id"})
		if !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("err = %v, want ErrMissingCredentials", err)
		}
	})

	t.Run("defaults redirect uri", func(t *testing.T) {
		service, err := NewSpotifyService(shared.SpotifyConfig{ClientID: "id", ClientSecret: "secret"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if service.config.RedirectURL != "http://localhost:3000/callback" {
			t.Errorf("RedirectURL = %q", service.config.RedirectURL)
		}
	})
}

func TestAuthURL(t *testing.T) {
	service := newTestService(t, nil)
	authURL := service.AuthURL("state-token")

	for _, want := range []string{
		"client_id=test-client-id",
		"state=state-token",
		"playlist-modify-public",
		"response_type=code",
	} {
		if !strings.Contains(authURL, want) {
			t.Errorf("auth url missing %q: %s", want, authURL)
		}
	}
}

func TestResolveUser(t *testing.T) {
	t.Run("maps user profile", func(t *testing.T) {
		service := newTestService(t, tu.RoundTripFunc(func(r *http.Request) (*http.Response, error) {
			if !strings.HasSuffix(r.URL.Path, "/users/alice") {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			if got := r.Header.Get("Authorization"); got != "Bearer app-token" {
				t.Errorf("Authorization = %q", got)
			}
			return jsonResponse(200, `{"id": "alice", "display_name": "Alice"}`), nil
		}))

		user, err := service.ResolveUser(context.Background(), "alice")
		if err != nil {
			t.Fatalf("ResolveUser failed: %v", err)
		}
		if user.ID != "alice" || user.DisplayName != "Alice" {
			t.Errorf("user = %+v", user)
		}
	})

	t.Run("defaults display name to id", func(t *testing.T) {
		service := newTestService(t, tu.NewMockRoundTripper(jsonResponse(200, `{"id": "alice"}`), nil))

		user, err := service.ResolveUser(context.Background(), "alice")
		if err != nil {
			t.Fatalf("ResolveUser failed: %v", err)
		}
		if user.DisplayName != "alice" {
			t.Errorf("DisplayName = %q, want alice", user.DisplayName)
		}
	})

	t.Run("404 becomes ErrUserNotFound", func(t *testing.T) {
		service := newTestService(t, tu.NewMockRoundTripper(jsonResponse(404, `{}`), nil))

		_, err := service.ResolveUser(context.Background(), "ghost")
		if !errors.Is(err, shared.ErrUserNotFound) {
			t.Errorf("err = %v, want ErrUserNotFound", err)
		}
	})

	t.Run("server error becomes ErrAPIRequest", func(t *testing.T) {
		service := newTestService(t, tu.NewMockRoundTripper(jsonResponse(500, `{}`), nil))

		_, err := service.ResolveUser(context.Background(), "alice")
		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("err = %v, want ErrAPIRequest", err)
		}
	})
}

func TestListPublicPlaylists(t *testing.T) {
	body := `{"items": [
		{"id": "p1", "name": "Faves", "public": true, "tracks": {"total": 12}},
		{"id": "p2", "name": "Private", "public": false, "tracks": {"total": 3}}
	]}`

	service := newTestService(t, tu.RoundTripFunc(func(r *http.Request) (*http.Response, error) {
		if got := r.URL.Query().Get("limit"); got != "50" {
			t.Errorf("limit = %q, want 50", got)
		}
		return jsonResponse(200, body), nil
	}))

	playlists, err := service.ListPublicPlaylists(context.Background(), "alice")
	if err != nil {
		t.Fatalf("ListPublicPlaylists failed: %v", err)
	}
	if len(playlists) != 2 {
		t.Fatalf("len(playlists) = %d, want 2", len(playlists))
	}
	if !playlists[0].Public || playlists[1].Public {
		t.Errorf("public flags = %v, %v", playlists[0].Public, playlists[1].Public)
	}
	if playlists[0].TrackCount != 12 {
		t.Errorf("TrackCount = %d, want 12", playlists[0].TrackCount)
	}
}

func TestGetPlaylistTracks(t *testing.T) {
	body := `{"items": [
		{"track": {"id": "t1", "name": "One", "uri": "spotify:track:t1", "popularity": 61,
			"artists": [{"id": "a1", "name": "Artist"}],
			"album": {"name": "Album", "images": [{"url": "https://img/large"}, {"url": "https://img/small"}]}}},
		{"track": {"id": "", "name": "local file"}}
	]}`

	service := newTestService(t, tu.RoundTripFunc(func(r *http.Request) (*http.Response, error) {
		if got := r.URL.Query().Get("limit"); got != "50" {
			t.Errorf("limit = %q, want clamped to 50", got)
		}
		return jsonResponse(200, body), nil
	}))

	tracks, err := service.GetPlaylistTracks(context.Background(), "p1", 500)
	if err != nil {
		t.Fatalf("GetPlaylistTracks failed: %v", err)
	}
	if len(tracks) != 1 {
		t.Fatalf("len(tracks) = %d, want 1 (null track dropped)", len(tracks))
	}

	track := tracks[0]
	if track.ID != "t1" || track.Album != "Album" || track.Popularity != 61 {
		t.Errorf("track = %+v", track)
	}
	if track.AlbumImage != "https://img/large" {
		t.Errorf("AlbumImage = %q, want first image", track.AlbumImage)
	}
	if track.PrimaryArtistID() != "a1" {
		t.Errorf("PrimaryArtistID = %q", track.PrimaryArtistID())
	}
}

func TestGetArtists(t *testing.T) {
	t.Run("rejects empty batch", func(t *testing.T) {
		service := newTestService(t, nil)
		_, err := service.GetArtists(context.Background(), nil)
		if !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("err = %v, want ErrInvalidArgument", err)
		}
	})

	t.Run("rejects oversize batch", func(t *testing.T) {
		service := newTestService(t, nil)
		ids := make([]string, MaxArtistBatch+1)
		for i := range ids {
			ids[i] = fmt.Sprintf("a%d", i)
		}
		_, err := service.GetArtists(context.Background(), ids)
		if !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("err = %v, want ErrInvalidArgument", err)
		}
	})

	t.Run("maps artists and drops null entries", func(t *testing.T) {
		body := `{"artists": [
			{"id": "a1", "name": "One", "popularity": 70, "genres": ["indie rock"]},
			{"id": "", "name": ""},
			{"id": "a2", "name": "Two", "popularity": 90, "genres": []}
		]}`
		service := newTestService(t, tu.NewMockRoundTripper(jsonResponse(200, body), nil))

		artists, err := service.GetArtists(context.Background(), []string{"a1", "bad", "a2"})
		if err != nil {
			t.Fatalf("GetArtists failed: %v", err)
		}
		if len(artists) != 2 {
			t.Fatalf("len(artists) = %d, want 2", len(artists))
		}
		if artists[0].Genres[0] != "indie rock" || artists[1].Popularity != 90 {
			t.Errorf("artists = %+v", artists)
		}
	})
}

func TestGetArtistTopTracks(t *testing.T) {
	service := newTestService(t, tu.RoundTripFunc(func(r *http.Request) (*http.Response, error) {
		if got := r.URL.Query().Get("market"); got != "US" {
			t.Errorf("market = %q, want default US", got)
		}
		return jsonResponse(200, `{"tracks": [{"id": "t1", "name": "Hit", "uri": "spotify:track:t1"}]}`), nil
	}))

	tracks, err := service.GetArtistTopTracks(context.Background(), "a1", "")
	if err != nil {
		t.Fatalf("GetArtistTopTracks failed: %v", err)
	}
	if len(tracks) != 1 || tracks[0].ID != "t1" {
		t.Errorf("tracks = %+v", tracks)
	}
}

func TestCurrentUser(t *testing.T) {
	t.Run("uses caller token", func(t *testing.T) {
		service := newTestService(t, tu.RoundTripFunc(func(r *http.Request) (*http.Response, error) {
			if got := r.Header.Get("Authorization"); got != "Bearer user-token" {
				t.Errorf("Authorization = %q", got)
			}
			return jsonResponse(200, `{"id": "alice", "display_name": "Alice"}`), nil
		}))

		user, err := service.CurrentUser(context.Background(), "user-token")
		if err != nil {
			t.Fatalf("CurrentUser failed: %v", err)
		}
		if user.ID != "alice" {
			t.Errorf("user = %+v", user)
		}
	})

	t.Run("empty token rejected", func(t *testing.T) {
		service := newTestService(t, nil)
		_, err := service.CurrentUser(context.Background(), "")
		if !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("err = %v, want ErrNotAuthenticated", err)
		}
	})
}

func TestCreatePlaylist(t *testing.T) {
	service := newTestService(t, tu.RoundTripFunc(func(r *http.Request) (*http.Response, error) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		payload, _ := io.ReadAll(r.Body)
		for _, want := range []string{`"name":"Fresh Mix"`, `"public":true`} {
			if !strings.Contains(string(payload), want) {
				t.Errorf("body missing %s: %s", want, payload)
			}
		}
		return jsonResponse(201, `{"id": "pl1", "external_urls": {"spotify": "https://open.spotify.com/playlist/pl1"}}`), nil
	}))

	saved, err := service.CreatePlaylist(context.Background(), "user-token", "alice", "Fresh Mix", "desc")
	if err != nil {
		t.Fatalf("CreatePlaylist failed: %v", err)
	}
	if saved.ID != "pl1" || !strings.Contains(saved.URL, "pl1") {
		t.Errorf("saved = %+v", saved)
	}
}

func TestAddTracks(t *testing.T) {
	t.Run("rejects empty uris", func(t *testing.T) {
		service := newTestService(t, nil)
		err := service.AddTracks(context.Background(), "user-token", "pl1", nil)
		if !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("err = %v, want ErrInvalidArgument", err)
		}
	})

	t.Run("single chunk", func(t *testing.T) {
		calls := 0
		service := newTestService(t, tu.RoundTripFunc(func(r *http.Request) (*http.Response, error) {
			calls++
			return jsonResponse(201, `{}`), nil
		}))

		if err := service.AddTracks(context.Background(), "user-token", "pl1", []string{"u1", "u2"}); err != nil {
			t.Fatalf("AddTracks failed: %v", err)
		}
		if calls != 1 {
			t.Errorf("calls = %d, want 1", calls)
		}
	})

	t.Run("splits into chunks of one hundred", func(t *testing.T) {
		uris := make([]string, 250)
		for i := range uris {
			uris[i] = fmt.Sprintf("spotify:track:u%d", i)
		}

		var sizes []int
		service := newTestService(t, tu.RoundTripFunc(func(r *http.Request) (*http.Response, error) {
			payload, _ := io.ReadAll(r.Body)
			sizes = append(sizes, strings.Count(string(payload), "spotify:track:"))
			return jsonResponse(201, `{}`), nil
		}))

		if err := service.AddTracks(context.Background(), "user-token", "pl1", uris); err != nil {
			t.Fatalf("AddTracks failed: %v", err)
		}
		want := []int{100, 100, 50}
		if len(sizes) != 3 || sizes[0] != want[0] || sizes[1] != want[1] || sizes[2] != want[2] {
			t.Errorf("chunk sizes = %v, want %v", sizes, want)
		}
	})

	t.Run("stops on chunk failure", func(t *testing.T) {
		calls := 0
		service := newTestService(t, tu.RoundTripFunc(func(r *http.Request) (*http.Response, error) {
			calls++
			if calls == 2 {
				return jsonResponse(500, `{}`), nil
			}
			return jsonResponse(201, `{}`), nil
		}))

		uris := make([]string, 250)
		for i := range uris {
			uris[i] = fmt.Sprintf("spotify:track:u%d", i)
		}

		err := service.AddTracks(context.Background(), "user-token", "pl1", uris)
		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("err = %v, want ErrAPIRequest", err)
		}
		if calls != 2 {
			t.Errorf("calls = %d, want 2", calls)
		}
	})
}
