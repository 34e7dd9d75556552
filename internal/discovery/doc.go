// Package discovery implements the playlist recommendation pipeline.
//
// The core abstraction is [Engine], which turns a Spotify username into a
// [models.GeneratedPlaylist] through a fixed sequence of stages:
//
//	resolve user → extract taste profile → aggregate genres →
//	rank artists → collect discovery tracks → assemble playlist
//
// Any stage that cannot produce sufficient data short-circuits to the static
// fallback playlist; the pipeline never fails outward. Within a stage,
// independent catalog fetches fan out concurrently and a failed fetch
// degrades to an empty result for that unit only.
//
// All shuffles and jitter draw from a per-request rand.Rand supplied by the
// Engine's source factory, so tests can run the whole pipeline
// deterministically with a fixed seed while production seeds from entropy.
package discovery
