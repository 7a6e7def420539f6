// Package catalog provides read-only access to the game metadata that pulls
// are resolved and evaluated against.
//
// Three JSON documents are read from the storage bucket under a configurable
// prefix (default "metadata"):
//
//   - Avatar.json: playable characters (Id, Name, Quality).
//   - Weapon.json: weapons (Id, Name, RankLevel).
//   - GachaEvent.json: rate-up banner windows (From, To, Type, UpOrangeList, UpPurpleList).
//
// The Loader downloads them concurrently and builds an immutable Catalog
// indexed by id and by display name. Banner windows are grouped by gacha type
// and ordered by start time so that FindWindow can locate the window of a pull
// with a binary search.
//
// Cache keeps the last Catalog for the configured TTL. Concurrent misses are
// collapsed with singleflight so that a burst of statistics requests triggers
// a single download.
//
// Item ids carry their category in their length: 8 digits for avatars and 5
// for weapons. CategoryOf panics on anything else except the unresolved id 0.
package catalog
