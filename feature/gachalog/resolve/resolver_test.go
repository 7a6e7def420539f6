package resolve

import (
	"testing"

	"wish-archive/feature/catalog"

	"github.com/stretchr/testify/assert"
)

type countingLookup struct {
	*catalog.Catalog
	calls int
}

func (l *countingLookup) AvatarByName(name string) (catalog.Avatar, bool) {
	l.calls++
	return l.Catalog.AvatarByName(name)
}

func (l *countingLookup) WeaponByName(name string) (catalog.Weapon, bool) {
	l.calls++
	return l.Catalog.WeaponByName(name)
}

func newLookup() *countingLookup {
	return &countingLookup{Catalog: catalog.New(
		[]catalog.Avatar{{Id: 10000016, Name: "Diluc", Quality: catalog.QualityOrange}},
		[]catalog.Weapon{{Id: 13303, Name: "White Tassel", RankLevel: catalog.QualityBlue}},
		nil,
	)}
}

func TestResolver_Resolve(t *testing.T) {
	lookup := newLookup()
	r := New(lookup)

	item := r.Resolve("Diluc", catalog.ItemTypeAvatar)
	assert.Equal(t, int64(10000016), item.ID)
	assert.Equal(t, catalog.QualityOrange, item.Quality)

	item = r.ResolveRaw("White Tassel", "武器")
	assert.Equal(t, int64(13303), item.ID)
	assert.Equal(t, catalog.ItemTypeWeapon, item.Type)
}

func TestResolver_CachesByName(t *testing.T) {
	lookup := newLookup()
	r := New(lookup)

	r.Resolve("Diluc", catalog.ItemTypeAvatar)
	r.Resolve("Diluc", catalog.ItemTypeAvatar)
	r.Resolve("Diluc", catalog.ItemTypeAvatar)

	assert.Equal(t, 1, lookup.calls)
	assert.Equal(t, 1, r.Len())
	assert.Equal(t, 2, r.Hits())
}

func TestResolver_UnknownNameIsZero(t *testing.T) {
	lookup := newLookup()
	r := New(lookup)

	item := r.Resolve("Brand New Hero", catalog.ItemTypeAvatar)
	assert.True(t, item.IsZero())
	assert.Equal(t, "Brand New Hero", item.Name)

	r.Resolve("Brand New Hero", catalog.ItemTypeAvatar)
	assert.Equal(t, 1, lookup.calls, "misses are memoized as well")
}

func TestResolver_UnknownTagPanics(t *testing.T) {
	r := New(newLookup())
	assert.Panics(t, func() { r.Resolve("Gladiator's Finale", catalog.ItemTypeUnknown) })
	assert.Panics(t, func() { r.ResolveRaw("Gladiator's Finale", "Artifact") })
}

func TestResolver_FreshPerRun(t *testing.T) {
	lookup := newLookup()
	New(lookup).Resolve("Diluc", catalog.ItemTypeAvatar)
	New(lookup).Resolve("Diluc", catalog.ItemTypeAvatar)
	assert.Equal(t, 2, lookup.calls)
}
