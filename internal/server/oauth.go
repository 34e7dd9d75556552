package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
	"github.com/srijanmishra08/playlist-recommender/internal/shared"
	"golang.org/x/oauth2"
)

// Authenticator performs the OAuth authorization code flow.
// Implemented by [services.SpotifyService].
type Authenticator interface {
	AuthURL(state string) string
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
	Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error)
}

// AuthHandler serves the OAuth endpoints: GET returns an authorize URL,
// POST exchanges an authorization code, PUT refreshes an access token.
type AuthHandler struct {
	auth   Authenticator
	logger *log.Logger
}

// NewAuthHandler creates the OAuth handler.
func NewAuthHandler(auth Authenticator, logger *log.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

// Routes returns the HTTP routes this handler serves.
func (h *AuthHandler) Routes() []string {
	return []string{"/api/auth"}
}

func (h *AuthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.auth == nil {
		writeError(w, http.StatusInternalServerError, "Service is not configured")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.authorizeURL(w)
	case http.MethodPost:
		h.exchange(w, r)
	case http.MethodPut:
		h.refresh(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (h *AuthHandler) authorizeURL(w http.ResponseWriter) {
	state := shared.GenerateID()
	writeJSON(w, http.StatusOK, map[string]string{
		"authorizeUrl": h.auth.AuthURL(state),
		"state":        state,
	})
}

func (h *AuthHandler) exchange(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Code == "" {
		writeError(w, http.StatusBadRequest, "Authorization code is required")
		return
	}

	token, err := h.auth.Exchange(r.Context(), req.Code)
	if err != nil {
		h.logger.Warn("code exchange failed", "error", err)
		writeError(w, http.StatusUnauthorized, "Failed to exchange authorization code")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"accessToken":  token.AccessToken,
		"refreshToken": token.RefreshToken,
		"expiresIn":    expiresIn(token),
	})
}

func (h *AuthHandler) refresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		writeError(w, http.StatusBadRequest, "Refresh token is required")
		return
	}

	token, err := h.auth.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		h.logger.Warn("token refresh failed", "error", err)
		writeError(w, http.StatusUnauthorized, "Failed to refresh token")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"accessToken": token.AccessToken,
		"expiresIn":   expiresIn(token),
	})
}

// expiresIn converts a token expiry to a lifetime in seconds.
func expiresIn(token *oauth2.Token) int {
	if token.Expiry.IsZero() {
		return 3600
	}
	seconds := int(time.Until(token.Expiry).Seconds())
	if seconds < 0 {
		return 0
	}
	return seconds
}

// CallbackHandler receives the OAuth redirect and bounces the browser back
// to the UI with the code or error in the query string.
type CallbackHandler struct{}

// Routes returns the HTTP routes this handler serves.
func (h *CallbackHandler) Routes() []string {
	return []string{"/callback"}
}

func (h *CallbackHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	query := r.URL.Query()
	values := url.Values{}

	switch {
	case query.Get("error") != "":
		values.Set("error", query.Get("error"))
	case query.Get("code") != "":
		values.Set("code", query.Get("code"))
		if state := query.Get("state"); state != "" {
			values.Set("state", state)
		}
	default:
		values.Set("error", "unknown_error")
	}

	http.Redirect(w, r, "/?"+values.Encode(), http.StatusFound)
}

// CredentialsVerifier confirms configured credentials against the token
// endpoint. Implemented by [services.SpotifyService].
type CredentialsVerifier interface {
	VerifyCredentials(ctx context.Context) error
}

// CredentialsHandler reports non-secret diagnostics about the configured
// API credentials. Only lengths and short prefixes are exposed.
type CredentialsHandler struct {
	creds    shared.SpotifyConfig
	verifier CredentialsVerifier
}

// NewCredentialsHandler creates the diagnostics handler. verifier may be nil
// when the service could not be constructed.
func NewCredentialsHandler(creds shared.SpotifyConfig, verifier CredentialsVerifier) *CredentialsHandler {
	return &CredentialsHandler{creds: creds, verifier: verifier}
}

// Routes returns the HTTP routes this handler serves.
func (h *CredentialsHandler) Routes() []string {
	return []string{"/api/credentials/check"}
}

func (h *CredentialsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	tokenEndpoint := "not checked"
	if h.verifier != nil {
		if err := h.verifier.VerifyCredentials(r.Context()); err != nil {
			tokenEndpoint = "rejected"
		} else {
			tokenEndpoint = "ok"
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"clientIdExists":     h.creds.ClientID != "",
		"clientIdLength":     len(h.creds.ClientID),
		"clientIdPrefix":     prefix(h.creds.ClientID, 4),
		"clientSecretExists": h.creds.ClientSecret != "",
		"clientSecretLength": len(h.creds.ClientSecret),
		"clientSecretPrefix": prefix(h.creds.ClientSecret, 4),
		"redirectUriExists":  h.creds.RedirectURI != "",
		"tokenEndpoint":      tokenEndpoint,
	})
}

func prefix(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
