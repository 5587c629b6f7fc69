// Package bgg implements a client for the BoardGameGeek XML API ("xmlapi2").
//
// The API is slow and eventually consistent: collection requests are
// answered asynchronously with 202 until BGG has prepared the data, the
// service intermittently fails with transient 500/503 responses, and it
// enforces an unwritten minimum interval between requests. The client
// deals with all three:
//
//   - [Client] paces every outbound request through a single
//     [rate.Limiter] and retries transient server errors with
//     exponential backoff (retryablehttp).
//   - [Client.FetchCollection] polls the owned-collection endpoint until
//     BGG finishes preparing it, then returns deduplicated game ids.
//   - [Client.FetchThings] fetches detail records in fixed-size batches,
//     strictly in sequence, with an extra pause between batches.
//   - [ParseCollection] and [ParseThings] are the pure normalization
//     layer from the XML tree to flat typed records.
package bgg
