// Package repositories implements SQLite persistence for the service.
//
// The discovery pipeline itself is stateless per request; the only thing
// that outlives a request is a summary row for each generated playlist,
// handled by [HistoryRepository]. History writes are best-effort: a failed
// insert is logged by the caller and never changes the HTTP response.
package repositories
