// Package services defines the [Catalog] and [Publisher] interfaces for the
// external music catalog and implements both for the Spotify Web API.
//
// # Catalog Interface
//
// The discovery pipeline only needs five read operations: resolve a user,
// list their public playlists, fetch a playlist's tracks, fetch artist
// records in batches, and fetch an artist's top tracks. The pipeline never
// talks to Spotify directly, which keeps it testable with an in-memory fake.
//
// # Publisher Interface
//
// [Publisher] covers the authenticated write path: resolving the caller's
// own profile and saving a generated playlist back to their account. Every
// Publisher call carries the caller's access token explicitly since tokens
// are request-scoped in the web service.
//
// # Spotify Implementation
//
// [SpotifyService] holds two credentials:
//   - an application token obtained through the client-credentials grant,
//     refreshed automatically by [clientcredentials.Config.TokenSource],
//     used for all Catalog reads
//   - per-request user access tokens passed in by the HTTP layer, used for
//     Publisher writes and the authorization-code exchange
//
// Outbound requests share a [rate.Limiter] so that bursts of fan-out
// fetches stay inside Spotify's rate limits.
//
// # Error Handling
//
// Services use typed errors from the shared package:
//   - [shared.ErrUserNotFound] : the username does not resolve
//   - [shared.ErrNotFound] : any other 404 from the catalog
//   - [shared.ErrAPIRequest] : HTTP request failed or non-2xx status
//   - [shared.ErrMissingCredentials] : service constructed without credentials
package services
