// Package resolve maps raw record names to catalog items for one refresh.
package resolve

import (
	"fmt"

	"wish-archive/feature/catalog"
)

// Lookup is the part of the catalog the resolver reads.
type Lookup interface {
	AvatarByName(name string) (catalog.Avatar, bool)
	WeaponByName(name string) (catalog.Weapon, bool)
}

// Resolver memoizes name lookups. It is not safe for concurrent use and must
// not outlive the refresh it was created for.
type Resolver struct {
	lookup Lookup
	cache  map[string]catalog.Item
	hits   int
}

// New creates an empty resolver over lookup.
func New(lookup Lookup) *Resolver {
	return &Resolver{
		lookup: lookup,
		cache:  make(map[string]catalog.Item),
	}
}

// Resolve returns the catalog item named name. Names missing from the catalog
// resolve to the zero Item. The tag must be ItemTypeAvatar or ItemTypeWeapon;
// anything else panics.
func (r *Resolver) Resolve(name string, tag catalog.ItemType) catalog.Item {
	if item, ok := r.cache[name]; ok {
		r.hits++
		return item
	}

	var item catalog.Item
	switch tag {
	case catalog.ItemTypeAvatar:
		if a, ok := r.lookup.AvatarByName(name); ok {
			item = catalog.ItemFromAvatar(a)
		}
	case catalog.ItemTypeWeapon:
		if w, ok := r.lookup.WeaponByName(name); ok {
			item = catalog.ItemFromWeapon(w)
		}
	default:
		panic(fmt.Sprintf("resolve: unsupported item type %q for %q", tag, name))
	}

	// Misses are cached too
	if item.Name == "" {
		item.Name = name
	}
	r.cache[name] = item
	return item
}

// ResolveRaw parses the API's raw item_type tag and resolves name.
func (r *Resolver) ResolveRaw(name, rawTag string) catalog.Item {
	return r.Resolve(name, catalog.ParseItemType(rawTag))
}

// Len returns the number of cached names.
func (r *Resolver) Len() int {
	return len(r.cache)
}

// Hits returns how many lookups were served from the cache.
func (r *Resolver) Hits() int {
	return r.hits
}
