// Package models defines domain entities for the playlist recommender service.
//
// The package contains two categories of types:
//
// 1. Catalog entities: immutable snapshots of external service data
//   - [User] : A resolved Spotify user
//   - [Playlist] : Basic playlist metadata
//   - [Track] : Song metadata with artist references and popularity
//   - [Artist] : Artist metadata with genre tags and popularity
//
// 2. Pipeline entities: request-scoped values produced by the discovery pipeline
//   - [TasteProfile] : Known track and artist identifiers for a user
//   - [RankedArtist] : An artist with its computed discovery score
//   - [GeneratedPlaylist] : The final recommendation returned to the caller
//   - [PlaylistRecord] : A persisted summary of a generated playlist
//
// Catalog and pipeline entities are constructed fresh per request and discarded
// once the response is written; only [PlaylistRecord] outlives a request.
package models
