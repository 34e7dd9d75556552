package discovery

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/srijanmishra08/playlist-recommender/internal/models"
	"github.com/srijanmishra08/playlist-recommender/internal/services"
	"github.com/srijanmishra08/playlist-recommender/internal/shared"
)

const (
	// playlistTrackLimit caps how many tracks are read from each public playlist.
	playlistTrackLimit = 50

	// artistLookupCap bounds how many known artists are sent to the batch lookup.
	artistLookupCap = 50

	// rankedArtistLimit is how many scored artists survive ranking.
	rankedArtistLimit = 20

	// minDiscoveryArtists is the smallest random subset of ranked artists
	// whose top tracks are fetched; the actual count is 8, 9, or 10.
	minDiscoveryArtists = 8

	// tracksPerArtist caps how many unheard tracks each artist contributes.
	tracksPerArtist = 3

	// playlistSize is the target length of the final playlist.
	playlistSize = 15

	// diversityFloor guarantees at most one track per primary artist among
	// the first selections.
	diversityFloor = 10

	// topGenreCount is how many genres the taste profile keeps.
	topGenreCount = 5
)

// Engine orchestrates the discovery pipeline against a catalog service.
// Safe for concurrent use: each Generate call builds its own request-scoped
// state and random source.
type Engine struct {
	catalog services.Catalog
	logger  *log.Logger
	market  string
	source  Source
	now     func() time.Time
}

// EngineOpts contains configuration options for creating an Engine.
type EngineOpts struct {
	Catalog services.Catalog
	Logger  *log.Logger
	Market  string           // top-track market, defaults to "US"
	Source  Source           // random source factory, defaults to EntropySource
	Now     func() time.Time // clock, defaults to time.Now
}

// NewEngine creates an Engine with the provided options.
func NewEngine(opts EngineOpts) *Engine {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Market == "" {
		opts.Market = "US"
	}
	if opts.Source == nil {
		opts.Source = EntropySource()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Engine{
		catalog: opts.Catalog,
		logger:  opts.Logger,
		market:  opts.Market,
		source:  opts.Source,
		now:     opts.Now,
	}
}

// Generate runs the full pipeline for a username and always returns a
// playlist: the discovery result when enough data exists, the static
// fallback otherwise. Errors below the configuration level are absorbed
// here and logged, never propagated.
func (e *Engine) Generate(ctx context.Context, rawUserID string, canSave bool) *models.GeneratedPlaylist {
	rng := e.source()
	userID := CleanUserID(rawUserID)
	logger := e.logger.With("user", userID)

	user, err := e.resolveUser(ctx, userID)
	if err != nil {
		logger.Warn("user resolution failed, serving fallback", "error", err)
		return FallbackPlaylist(userID)
	}
	logger.Info("resolved user", "id", user.ID, "display_name", user.DisplayName)

	profile, err := e.extractProfile(ctx, user.ID)
	if err != nil {
		logger.Warn("taste profile unavailable, serving fallback", "error", err)
		return FallbackPlaylist(user.ID)
	}
	logger.Info("extracted taste profile",
		"known_tracks", len(profile.TrackIDs), "known_artists", len(profile.ArtistIDs))

	artists, topGenres := e.aggregateGenres(ctx, profile)
	logger.Info("aggregated genres", "artists", len(artists), "top_genres", topGenres)

	ranked := rankArtists(artists, topGenres, rng)
	if len(ranked) == 0 {
		logger.Warn("no rankable artists, serving fallback")
		return FallbackPlaylist(user.ID)
	}

	pool := e.collectDiscoveryTracks(ctx, ranked, profile, rng)
	if len(pool) == 0 {
		logger.Warn("empty discovery pool, serving fallback")
		return FallbackPlaylist(user.ID)
	}
	logger.Info("collected discovery tracks", "candidates", len(pool))

	playlist := assemblePlaylist(user.ID, pool, topGenres, canSave, rng, e.now())
	logger.Info("assembled playlist", "name", playlist.Name, "tracks", len(playlist.Tracks))
	return playlist
}
