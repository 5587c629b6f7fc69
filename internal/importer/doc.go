// Package importer merges a user's BoardGameGeek collection into the
// local shelf.
//
// [Engine.Run] is the orchestration entry point: it validates the
// username, polls the collection, fetches detail batches, and hands the
// accumulated records to the reconciler in one pass. Reconciliation
// resolves identity by BGG id first and by case-insensitive name second
// (claiming hand-entered games exactly once), so re-importing the same
// collection never duplicates a shelf entry.
//
// Long-running phases emit [ProgressUpdate] values over a non-blocking
// channel for the CLI layer to display.
package importer
