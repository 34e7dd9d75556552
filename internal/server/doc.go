// Package server provides HTTP routing, middleware, and the JSON API for the playlist recommender.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # API Handlers
//
// Each endpoint is a [Handler] that registers its own routes and dispatches
// on method internally, returning 405 for anything it does not serve:
//
//   - [PlaylistHandler] : POST /api/playlists — runs the discovery pipeline
//   - [SaveHandler] : POST /api/playlists/save — saves a playlist to the caller's account
//   - [AuthHandler] : GET/POST/PUT /api/auth — authorize URL, code exchange, token refresh
//   - [CallbackHandler] : GET /callback — OAuth redirect bounce back to the UI
//   - [CredentialsHandler] : GET /api/credentials/check — configuration diagnostics
//   - [HistoryHandler] : GET /api/history — recent generated playlists
//
// # Error Contract
//
// The playlist endpoint returns 200 with a playlist body for every
// syntactically valid username, falling back to the static playlist rather
// than failing. Only missing credentials surface as a 5xx, with a
// diagnostic payload.
package server
