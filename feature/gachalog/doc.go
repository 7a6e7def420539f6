// Package gachalog synchronizes an account's gacha log into its archive.
//
// # Refresh
//
// Engine.Refresh walks the four query types in a fixed order (100 novice,
// 200 permanent, 301 character event, 302 weapon event). Records of the
// second character banner (gacha type 400) come back under 301. Each query
// type is paged newest first with end_id set to the last kept id, and a
// randomized delay separates consecutive requests.
//
// The merge strategy decides which fetched records are kept:
//
//   - lazy: only records newer than the highest stored id. The first older
//     record ends the query type.
//   - aggressive: every record. When the query type completes, stored records
//     from the lowest fetched id upwards are replaced in one transaction.
//
// Records of a query type are written when the type completes, so an
// interrupted type leaves no trace. An expired auth query is not an error:
// the refresh stops, and the last progress snapshot has AuthExpired set.
//
// The archive of an account is created on the first record carrying its
// uid. Item names are resolved against the metadata catalog once per run.
//
// # Service
//
// Service serializes refreshes, keeps the current archive and exposes the
// statistics of an archive.
//
// # HTTP Endpoints
//
//   - POST /gachalog/refresh : Runs a refresh ({"query": "...", "strategy": "lazy|aggressive"}).
//   - GET /gachalog/archives : Lists archives.
//   - GET /gachalog/archives/:uid/statistics : Computes the statistics of an archive.
package gachalog
