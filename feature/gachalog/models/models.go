package models

import (
	"fmt"
	"time"

	"wish-archive/feature/catalog"
)

// QueryType is the gacha_type parameter a page is requested with.
type QueryType int

const (
	QueryNovice      QueryType = 100
	QueryPermanent   QueryType = 200
	QueryAvatarEvent QueryType = 301
	QueryWeaponEvent QueryType = 302
)

// QueryTypes lists every query type in the order a refresh walks them.
var QueryTypes = []QueryType{QueryNovice, QueryPermanent, QueryAvatarEvent, QueryWeaponEvent}

// String implements fmt.Stringer.
func (q QueryType) String() string {
	switch q {
	case QueryNovice:
		return "novice"
	case QueryPermanent:
		return "permanent"
	case QueryAvatarEvent:
		return "avatar_event"
	case QueryWeaponEvent:
		return "weapon_event"
	default:
		return fmt.Sprintf("query_type(%d)", int(q))
	}
}

// Gacha types reported on records. GachaAvatarEvent2 is the second concurrent
// character banner and is returned under QueryAvatarEvent.
const (
	GachaNovice       = 100
	GachaPermanent    = 200
	GachaAvatarEvent  = 301
	GachaWeaponEvent  = 302
	GachaAvatarEvent2 = 400
)

// Archive is one external account.
type Archive struct {
	InnerID    uint      `gorm:"column:inner_id;primaryKey;autoIncrement" json:"inner_id"`
	UID        string    `gorm:"column:uid;type:varchar(32);uniqueIndex;not null" json:"uid"`
	IsSelected bool      `gorm:"column:is_selected;not null;default:false" json:"is_selected"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName implements gorm's Tabler.
func (Archive) TableName() string {
	return "gacha_archives"
}

// Record is one persisted pull. Records of the same (archive, query type)
// partition have unique, increasing ids.
type Record struct {
	InnerID   uint      `gorm:"column:inner_id;primaryKey;autoIncrement" json:"-"`
	ArchiveID uint      `gorm:"column:archive_id;not null;uniqueIndex:idx_gacha_items_partition,priority:1" json:"archive_id"`
	QueryType int       `gorm:"column:query_type;not null;uniqueIndex:idx_gacha_items_partition,priority:2" json:"query_type"`
	ID        int64     `gorm:"column:id;not null;uniqueIndex:idx_gacha_items_partition,priority:3" json:"id"`
	GachaType int       `gorm:"column:gacha_type;not null" json:"gacha_type"`
	ItemID    int64     `gorm:"column:item_id;not null;default:0" json:"item_id"`
	Name      string    `gorm:"column:name;type:varchar(64)" json:"name"`
	Time      time.Time `gorm:"column:time;not null" json:"time"`
}

// TableName implements gorm's Tabler.
func (Record) TableName() string {
	return "gacha_items"
}

// SequenceID returns the external id the merge engine orders by.
func (r Record) SequenceID() int64 {
	return r.ID
}

// FetchState is the progress of a running refresh.
type FetchState struct {
	// QueryType is the query type being fetched.
	QueryType QueryType `json:"query_type"`
	// Items holds the records kept from the current page only.
	Items []catalog.Item `json:"items"`
	// AuthExpired reports that the API stopped accepting the auth query.
	AuthExpired bool `json:"auth_expired"`
}

// Clone returns a copy that does not share Items with the receiver.
func (s FetchState) Clone() FetchState {
	out := s
	if s.Items != nil {
		out.Items = make([]catalog.Item, len(s.Items))
		copy(out.Items, s.Items)
	}
	return out
}
