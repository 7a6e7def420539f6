package catalog

import (
	"fmt"
	"time"
)

// ItemType tags a pulled item as an avatar or a weapon.
type ItemType int

const (
	// ItemTypeUnknown is any raw tag outside the two drawable categories.
	ItemTypeUnknown ItemType = iota
	// ItemTypeAvatar is a playable character.
	ItemTypeAvatar
	// ItemTypeWeapon is a weapon.
	ItemTypeWeapon
)

// String implements fmt.Stringer.
func (t ItemType) String() string {
	switch t {
	case ItemTypeAvatar:
		return "avatar"
	case ItemTypeWeapon:
		return "weapon"
	default:
		return "unknown"
	}
}

// ParseItemType maps the raw item_type tag returned by the gacha log API.
// The API localizes the tag, so every known spelling is accepted.
func ParseItemType(raw string) ItemType {
	switch raw {
	case "角色", "Character", "avatar", "Avatar":
		return ItemTypeAvatar
	case "武器", "Weapon", "weapon":
		return ItemTypeWeapon
	default:
		return ItemTypeUnknown
	}
}

// Quality is the rarity of an item.
type Quality int

const (
	QualityNone     Quality = 0
	QualityWhite    Quality = 1
	QualityGreen    Quality = 2
	QualityBlue     Quality = 3
	QualityPurple   Quality = 4
	QualityOrange   Quality = 5
	QualityOrangeSP Quality = 105
)

// Normalize folds special variants into their base rarity.
func (q Quality) Normalize() Quality {
	if q == QualityOrangeSP {
		return QualityOrange
	}
	return q
}

// Avatar is an entry of Avatar.json.
type Avatar struct {
	Id      int64   `json:"Id"`
	Name    string  `json:"Name"`
	Quality Quality `json:"Quality"`
	Icon    string  `json:"Icon,omitempty"`
}

// Weapon is an entry of Weapon.json.
type Weapon struct {
	Id        int64   `json:"Id"`
	Name      string  `json:"Name"`
	RankLevel Quality `json:"RankLevel"`
	Icon      string  `json:"Icon,omitempty"`
}

// Item is a resolved catalog definition. The zero Item means "not in the catalog".
type Item struct {
	ID      int64    `json:"id"`
	Name    string   `json:"name"`
	Type    ItemType `json:"type"`
	Quality Quality  `json:"quality"`
}

// IsZero reports whether the item failed to resolve.
func (i Item) IsZero() bool {
	return i.ID == 0
}

// ItemFromAvatar converts an avatar definition.
func ItemFromAvatar(a Avatar) Item {
	return Item{ID: a.Id, Name: a.Name, Type: ItemTypeAvatar, Quality: a.Quality.Normalize()}
}

// ItemFromWeapon converts a weapon definition.
func ItemFromWeapon(w Weapon) Item {
	return Item{ID: w.Id, Name: w.Name, Type: ItemTypeWeapon, Quality: w.RankLevel.Normalize()}
}

// Id ranges reserved for drawable items, measured in decimal digits.
const (
	AvatarIDPlace = 8
	WeaponIDPlace = 5
)

// Place returns the number of decimal digits of id, 0 for id 0.
func Place(id int64) int {
	if id < 0 {
		id = -id
	}
	n := 0
	for id > 0 {
		id /= 10
		n++
	}
	return n
}

// CategoryOf classifies a catalog id by its place.
// Id 0 is ItemTypeUnknown; any other place panics since the id space has
// exactly two drawable ranges.
func CategoryOf(id int64) ItemType {
	switch Place(id) {
	case 0:
		return ItemTypeUnknown
	case AvatarIDPlace:
		return ItemTypeAvatar
	case WeaponIDPlace:
		return ItemTypeWeapon
	default:
		panic(fmt.Sprintf("catalog: id %d is outside the avatar and weapon ranges", id))
	}
}

// BannerWindow is an entry of GachaEvent.json: one rate-up banner run.
type BannerWindow struct {
	Name         string    `json:"Name"`
	Version      string    `json:"Version"`
	Order        int       `json:"Order"`
	Banner       string    `json:"Banner,omitempty"`
	From         time.Time `json:"From"`
	To           time.Time `json:"To"`
	Type         int       `json:"Type"`
	UpOrangeList []string  `json:"UpOrangeList"`
	UpPurpleList []string  `json:"UpPurpleList"`
}

// Contains reports whether t falls inside the window, both ends inclusive.
func (w BannerWindow) Contains(t time.Time) bool {
	return !t.Before(w.From) && !t.After(w.To)
}

// Key identifies the window in reports.
func (w BannerWindow) Key() string {
	return fmt.Sprintf("%d:%s:%d", w.Type, w.Version, w.Order)
}
