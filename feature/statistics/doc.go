// Package statistics turns an archive's pulls into pity and rate-up figures.
//
// Compute walks the pulls once, oldest first, and feeds every pull to three
// independent pool trackers:
//
//   - permanent: gacha types 100 and 200, hard pity 90, soft pity from 74.
//   - avatar_event: gacha types 301 and 400, hard pity 90, soft pity from 74.
//   - weapon_event: gacha type 302, hard pity 80, soft pity from 65.
//
// A tracker ignores gacha types it does not own. Its pity counter includes the
// current pull, so 89 lower pulls followed by a top-rarity pull record pity 90.
// Counting continues past the hard pity; such data is reported as is.
//
// Each pull is also matched to the banner window of its gacha type that
// contains its timestamp. The window settles rate-up outcomes:
//
//   - Character banners: losing a 50/50 makes the next top-rarity character of
//     the same window a guaranteed up.
//   - Weapon banners: losing a 75/25 makes the next top-rarity weapon an up.
//     The first up weapon is the chosen one; every other top-rarity weapon
//     adds a fate point, and two points guarantee the chosen weapon.
//
// Pool definitions can be overridden with a YAML file (see LoadPools).
package statistics
