package discovery

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/srijanmishra08/playlist-recommender/internal/models"
	"github.com/srijanmishra08/playlist-recommender/internal/shared"
)

// CleanUserID normalizes raw username input: a full profile URL is reduced to
// its user segment, and surrounding whitespace is stripped.
func CleanUserID(raw string) string {
	const marker = "spotify.com/user/"
	if idx := strings.Index(raw, marker); idx >= 0 {
		raw = raw[idx+len(marker):]
		if end := strings.IndexAny(raw, "?/#"); end >= 0 {
			raw = raw[:end]
		}
	}
	return strings.TrimSpace(raw)
}

// usernameCandidates returns the ordered list of usernames to try when
// resolving a user: the input itself, then common case and whitespace
// variants. Duplicates of earlier candidates are dropped.
func usernameCandidates(userID string) []string {
	variants := []string{
		userID,
		strings.ToLower(userID),
		strings.ToUpper(userID),
		capitalizeFirst(userID),
		strings.ReplaceAll(userID, " ", ""),
	}

	seen := make(map[string]bool, len(variants))
	candidates := make([]string, 0, len(variants))
	for _, v := range variants {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		candidates = append(candidates, v)
	}

	return candidates
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

// resolveUser tries each username candidate in order and returns the first
// profile the catalog resolves.
func (e *Engine) resolveUser(ctx context.Context, userID string) (*models.User, error) {
	var lastErr error
	for _, candidate := range usernameCandidates(userID) {
		user, err := e.catalog.ResolveUser(ctx, candidate)
		if err == nil {
			return user, nil
		}
		lastErr = err
		e.logger.Debug("username candidate did not resolve", "candidate", candidate, "error", err)
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("%w: %s", shared.ErrUserNotFound, userID)
	}
	return nil, lastErr
}

// extractProfile builds the user's taste profile from their public playlists.
// Per-playlist track fetches fan out concurrently; a failed fetch contributes
// nothing. Returns an error wrapping [shared.ErrInsufficientData] when the
// user has no public playlists or they yield no tracks.
func (e *Engine) extractProfile(ctx context.Context, userID string) (*models.TasteProfile, error) {
	playlists, err := e.catalog.ListPublicPlaylists(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: listing playlists: %v", shared.ErrInsufficientData, err)
	}

	public := make([]models.Playlist, 0, len(playlists))
	for _, pl := range playlists {
		if pl.Public {
			public = append(public, pl)
		}
	}

	if len(public) == 0 {
		return nil, fmt.Errorf("%w: no public playlists", shared.ErrInsufficientData)
	}

	results := make([][]models.Track, len(public))
	var wg sync.WaitGroup
	for i, pl := range public {
		wg.Add(1)
		go func(i int, playlistID string) {
			defer wg.Done()
			tracks, err := e.catalog.GetPlaylistTracks(ctx, playlistID, playlistTrackLimit)
			if err != nil {
				e.logger.Warn("playlist track fetch failed", "playlist", playlistID, "error", err)
				return
			}
			results[i] = tracks
		}(i, pl.ID)
	}
	wg.Wait()

	profile := models.NewTasteProfile()
	for _, tracks := range results {
		for _, track := range tracks {
			profile.AddTrack(track)
		}
	}

	if profile.Empty() {
		return nil, fmt.Errorf("%w: public playlists contain no tracks", shared.ErrInsufficientData)
	}

	return profile, nil
}
