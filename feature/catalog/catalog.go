package catalog

import (
	"sort"
	"time"
)

// Catalog is an immutable, indexed snapshot of the metadata documents.
type Catalog struct {
	avatarsByID   map[int64]Avatar
	avatarsByName map[string]Avatar
	weaponsByID   map[int64]Weapon
	weaponsByName map[string]Weapon
	windows       map[int][]BannerWindow

	// Version identifies the documents the snapshot was built from.
	Version string
	// Loaded is when the snapshot was built.
	Loaded time.Time
}

// New indexes the given definitions. Windows are grouped by gacha type and
// ordered by start time.
func New(avatars []Avatar, weapons []Weapon, windows []BannerWindow) *Catalog {
	c := &Catalog{
		avatarsByID:   make(map[int64]Avatar, len(avatars)),
		avatarsByName: make(map[string]Avatar, len(avatars)),
		weaponsByID:   make(map[int64]Weapon, len(weapons)),
		weaponsByName: make(map[string]Weapon, len(weapons)),
		windows:       make(map[int][]BannerWindow),
		Loaded:        time.Now(),
	}

	for _, a := range avatars {
		c.avatarsByID[a.Id] = a
		c.avatarsByName[a.Name] = a
	}
	for _, w := range weapons {
		c.weaponsByID[w.Id] = w
		c.weaponsByName[w.Name] = w
	}
	for _, w := range windows {
		c.windows[w.Type] = append(c.windows[w.Type], w)
	}
	for t := range c.windows {
		list := c.windows[t]
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].From.Before(list[j].From)
		})
	}

	return c
}

// AvatarByName looks up an avatar by display name.
func (c *Catalog) AvatarByName(name string) (Avatar, bool) {
	a, ok := c.avatarsByName[name]
	return a, ok
}

// WeaponByName looks up a weapon by display name.
func (c *Catalog) WeaponByName(name string) (Weapon, bool) {
	w, ok := c.weaponsByName[name]
	return w, ok
}

// AvatarByID looks up an avatar by id.
func (c *Catalog) AvatarByID(id int64) (Avatar, bool) {
	a, ok := c.avatarsByID[id]
	return a, ok
}

// WeaponByID looks up a weapon by id.
func (c *Catalog) WeaponByID(id int64) (Weapon, bool) {
	w, ok := c.weaponsByID[id]
	return w, ok
}

// ItemByID resolves an id of either category.
func (c *Catalog) ItemByID(id int64) (Item, bool) {
	if a, ok := c.avatarsByID[id]; ok {
		return ItemFromAvatar(a), true
	}
	if w, ok := c.weaponsByID[id]; ok {
		return ItemFromWeapon(w), true
	}
	return Item{}, false
}

// Windows returns the banner windows of a gacha type ordered by start time.
func (c *Catalog) Windows(gachaType int) []BannerWindow {
	return c.windows[gachaType]
}

// AllWindows returns every window, grouped by ascending gacha type.
func (c *Catalog) AllWindows() []BannerWindow {
	types := make([]int, 0, len(c.windows))
	for t := range c.windows {
		types = append(types, t)
	}
	sort.Ints(types)

	var out []BannerWindow
	for _, t := range types {
		out = append(out, c.windows[t]...)
	}
	return out
}

// WindowAt returns the index of the window of gachaType containing t, or -1.
func (c *Catalog) WindowAt(gachaType int, t time.Time) int {
	return FindWindow(c.windows[gachaType], t)
}

// FindWindow binary-searches windows ordered by start time for the one containing t.
// It returns -1 when none does.
func FindWindow(windows []BannerWindow, t time.Time) int {
	// First window starting after t; the candidate is the one before it
	i := sort.Search(len(windows), func(i int) bool {
		return windows[i].From.After(t)
	})
	if i == 0 {
		return -1
	}
	if windows[i-1].Contains(t) {
		return i - 1
	}
	return -1
}

// Counts reports the number of indexed definitions per document.
func (c *Catalog) Counts() (avatars, weapons, windows int) {
	for _, list := range c.windows {
		windows += len(list)
	}
	return len(c.avatarsByID), len(c.weaponsByID), windows
}
