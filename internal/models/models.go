package models

import "time"

// User represents a resolved Spotify user.
type User struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}

// Playlist represents basic playlist metadata from the catalog service.
type Playlist struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	TrackCount int    `json:"trackCount"`
	Public     bool   `json:"public"`
}

// ArtistRef is the minimal artist reference carried on a track.
// The first entry in a track's artist list is its primary artist.
type ArtistRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Track represents a catalog track. Immutable once fetched.
type Track struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Artists    []ArtistRef `json:"artists"`
	Album      string      `json:"album"`
	AlbumImage string      `json:"albumImage,omitempty"`
	PreviewURL string      `json:"previewUrl,omitempty"`
	URI        string      `json:"uri"`
	Popularity int         `json:"popularity"`
}

// PrimaryArtistID returns the identifier of the track's first-listed artist,
// or an empty string when the track carries no artist references.
func (t Track) PrimaryArtistID() string {
	if len(t.Artists) == 0 {
		return ""
	}
	return t.Artists[0].ID
}

// Artist represents a catalog artist record. Immutable once fetched.
type Artist struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Popularity int      `json:"popularity"`
	Genres     []string `json:"genres"`
}

// TasteProfile captures what a user already knows: every track identifier and
// artist identifier found in their public playlists. Built fresh per request.
type TasteProfile struct {
	TrackIDs  map[string]bool // known track identifiers (dedup key)
	ArtistIDs []string        // known artist identifiers in first-seen order
}

// NewTasteProfile returns an empty TasteProfile.
func NewTasteProfile() *TasteProfile {
	return &TasteProfile{TrackIDs: make(map[string]bool)}
}

// AddTrack records a track and its artists in the profile, preserving
// first-seen artist order.
func (p *TasteProfile) AddTrack(t Track) {
	if t.ID == "" {
		return
	}
	p.TrackIDs[t.ID] = true
	for _, artist := range t.Artists {
		if artist.ID == "" {
			continue
		}
		seen := false
		for _, id := range p.ArtistIDs {
			if id == artist.ID {
				seen = true
				break
			}
		}
		if !seen {
			p.ArtistIDs = append(p.ArtistIDs, artist.ID)
		}
	}
}

// KnowsTrack reports whether the track identifier appears in the user's
// public playlist history.
func (p *TasteProfile) KnowsTrack(trackID string) bool {
	return p.TrackIDs[trackID]
}

// Empty reports whether the profile yielded no usable seed data.
func (p *TasteProfile) Empty() bool {
	return len(p.TrackIDs) == 0 && len(p.ArtistIDs) == 0
}

// RankedArtist is an artist with its computed discovery score.
// Ephemeral, recomputed per request.
type RankedArtist struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// PlaylistTrack is the response-facing view of a recommended track.
type PlaylistTrack struct {
	Name       string   `json:"name"`
	Artists    []string `json:"artists"`
	Album      string   `json:"album"`
	AlbumImage string   `json:"albumImage,omitempty"`
	ID         string   `json:"id"`
	PreviewURL string   `json:"previewUrl,omitempty"`
	URI        string   `json:"uri"`
}

// GeneratedPlaylist is the final recommendation returned to the caller.
type GeneratedPlaylist struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Tracks      []PlaylistTrack `json:"tracks"`
	CanSave     bool            `json:"canSave"`

	// Fallback marks playlists produced by the static safety net.
	// Internal bookkeeping only, never part of the response body.
	Fallback bool `json:"-"`
}

// PlaylistTrackView converts a catalog track into its response shape.
func PlaylistTrackView(t Track) PlaylistTrack {
	names := make([]string, 0, len(t.Artists))
	for _, a := range t.Artists {
		names = append(names, a.Name)
	}
	return PlaylistTrack{
		Name:       t.Name,
		Artists:    names,
		Album:      t.Album,
		AlbumImage: t.AlbumImage,
		ID:         t.ID,
		PreviewURL: t.PreviewURL,
		URI:        t.URI,
	}
}

// PlaylistRecord is a persisted summary of a generated playlist.
type PlaylistRecord struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	Name       string    `json:"name"`
	TrackCount int       `json:"trackCount"`
	Fallback   bool      `json:"fallback"`
	CreatedAt  time.Time `json:"createdAt"`
}

// SavedPlaylist describes a playlist created in the caller's Spotify account.
type SavedPlaylist struct {
	ID  string `json:"playlistId"`
	URL string `json:"playlistUrl"`
}
