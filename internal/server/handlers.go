package server

import (
	"context"
	"encoding/json"
	"net/http"
	"regexp"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/srijanmishra08/playlist-recommender/internal/discovery"
	"github.com/srijanmishra08/playlist-recommender/internal/models"
	"github.com/srijanmishra08/playlist-recommender/internal/services"
)

// Generator runs the discovery pipeline for a username.
// Implemented by [discovery.Engine].
type Generator interface {
	Generate(ctx context.Context, userID string, canSave bool) *models.GeneratedPlaylist
}

// Recorder persists and lists generated playlist summaries.
// Implemented by [repositories.HistoryRepository].
type Recorder interface {
	Record(userID string, playlist *models.GeneratedPlaylist) (*models.PlaylistRecord, error)
	Recent(limit int) ([]models.PlaylistRecord, error)
}

// Usernames are alphanumeric plus dot, underscore, hyphen; spaces are
// allowed in the raw input because a whitespace-stripped variant is tried
// during resolution.
var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9._ -]+$`)

// createPlaylistRequest is the body for POST /api/playlists.
type createPlaylistRequest struct {
	UserID      string `json:"userId"`
	AccessToken string `json:"accessToken"`
}

// PlaylistHandler serves the playlist generation endpoint.
type PlaylistHandler struct {
	engine  Generator
	history Recorder
	logger  *log.Logger
	credErr error
}

// NewPlaylistHandler creates the generation handler. credErr carries a
// configuration failure from startup; when non-nil the handler reports a
// diagnostic 500 instead of running the pipeline.
func NewPlaylistHandler(engine Generator, history Recorder, logger *log.Logger, credErr error) *PlaylistHandler {
	return &PlaylistHandler{engine: engine, history: history, logger: logger, credErr: credErr}
}

// Routes returns the HTTP routes this handler serves.
func (h *PlaylistHandler) Routes() []string {
	return []string{"/api/playlists"}
}

// ServeHTTP generates a playlist for the requested user. The response is
// always 200 with a playlist body except for malformed input (400) and
// missing service credentials (500).
func (h *PlaylistHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	if h.credErr != nil || h.engine == nil {
		details := "catalog service is not configured"
		if h.credErr != nil {
			details = h.credErr.Error()
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "Service is not configured",
			"details": details,
		})
		return
	}

	var req createPlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	userID := discovery.CleanUserID(req.UserID)
	if userID == "" {
		writeError(w, http.StatusBadRequest, "User ID is required")
		return
	}
	if !usernamePattern.MatchString(userID) {
		writeError(w, http.StatusBadRequest, "User ID contains invalid characters")
		return
	}

	playlist := h.engine.Generate(r.Context(), userID, req.AccessToken != "")

	if h.history != nil {
		if _, err := h.history.Record(userID, playlist); err != nil {
			h.logger.Warn("failed to record playlist history", "user", userID, "error", err)
		}
	}

	writeJSON(w, http.StatusOK, playlist)
}

// savePlaylistRequest is the body for POST /api/playlists/save.
type savePlaylistRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	TrackURIs   []string `json:"trackUris"`
	AccessToken string   `json:"accessToken"`
}

// SaveHandler persists a generated playlist to the caller's Spotify account.
type SaveHandler struct {
	publisher services.Publisher
	logger    *log.Logger
}

// NewSaveHandler creates the save handler.
func NewSaveHandler(publisher services.Publisher, logger *log.Logger) *SaveHandler {
	return &SaveHandler{publisher: publisher, logger: logger}
}

// Routes returns the HTTP routes this handler serves.
func (h *SaveHandler) Routes() []string {
	return []string{"/api/playlists/save"}
}

func (h *SaveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	if h.publisher == nil {
		writeError(w, http.StatusInternalServerError, "Service is not configured")
		return
	}

	var req savePlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.AccessToken == "" {
		writeError(w, http.StatusUnauthorized, "Authentication token is required")
		return
	}
	if len(req.TrackURIs) == 0 {
		writeError(w, http.StatusBadRequest, "Track URIs are required")
		return
	}
	if req.Description == "" {
		req.Description = "Created by Spotify Playlist Recommender"
	}

	ctx := r.Context()

	me, err := h.publisher.CurrentUser(ctx, req.AccessToken)
	if err != nil {
		h.logger.Warn("failed to resolve caller profile", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "Failed to save playlist to Spotify",
			"details": err.Error(),
		})
		return
	}

	saved, err := h.publisher.CreatePlaylist(ctx, req.AccessToken, me.ID, req.Name, req.Description)
	if err != nil {
		h.logger.Warn("failed to create playlist", "user", me.ID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "Failed to save playlist to Spotify",
			"details": err.Error(),
		})
		return
	}

	if err := h.publisher.AddTracks(ctx, req.AccessToken, saved.ID, req.TrackURIs); err != nil {
		h.logger.Warn("failed to add tracks", "playlist", saved.ID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "Failed to save playlist to Spotify",
			"details": err.Error(),
		})
		return
	}

	h.logger.Info("saved playlist", "user", me.ID, "playlist", saved.ID, "tracks", len(req.TrackURIs))
	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"playlistId":  saved.ID,
		"playlistUrl": saved.URL,
	})
}

// HistoryHandler lists recently generated playlists.
type HistoryHandler struct {
	history Recorder
}

// NewHistoryHandler creates the history handler.
func NewHistoryHandler(history Recorder) *HistoryHandler {
	return &HistoryHandler{history: history}
}

// Routes returns the HTTP routes this handler serves.
func (h *HistoryHandler) Routes() []string {
	return []string{"/api/history"}
}

func (h *HistoryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	if h.history == nil {
		writeError(w, http.StatusServiceUnavailable, "History is not available")
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	records, err := h.history.Recent(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load history")
		return
	}
	if records == nil {
		records = []models.PlaylistRecord{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"playlists": records})
}

// HealthHandler reports service liveness.
type HealthHandler struct{}

// Routes returns the HTTP routes this handler serves.
func (h *HealthHandler) Routes() []string {
	return []string{"/health"}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
