// Package integrity provides system health checks for the archive.
//
// # Checks Provided
//
//   - Catalog: Verifies that the metadata documents (Avatar.json, Weapon.json,
//     GachaEvent.json) exist under the configured prefix of the bucket.
//   - Schema: Validates that the connected database matches the archive
//     entities (columns, declared types).
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/catalog : Runs the catalog check.
//   - GET /integrity/schema : Runs the schema check.
package integrity
