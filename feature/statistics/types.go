package statistics

import (
	"time"

	"wish-archive/feature/catalog"
)

// Pull is one record fed to the aggregator.
type Pull struct {
	ID        int64
	GachaType int
	ItemID    int64
	Time      time.Time
}

// TopEvent is a top-rarity pull within a pool.
type TopEvent struct {
	// Index is the 1-based position of the event in its pool.
	Index int `json:"index"`
	// Pity is the number of pool pulls since the previous top-rarity pull, this one included.
	Pity        int          `json:"pity"`
	IsUp        bool         `json:"is_up"`
	IsGuarantee bool         `json:"is_guarantee"`
	InSoftPity  bool         `json:"in_soft_pity"`
	Item        catalog.Item `json:"item"`
	Time        time.Time    `json:"time"`
}

// PoolSummary is the state of one pity pool.
type PoolSummary struct {
	Name            string `json:"name"`
	GachaTypes      []int  `json:"gacha_types"`
	HardPity        int    `json:"hard_pity"`
	SoftPity        int    `json:"soft_pity"`
	PurpleGuarantee int    `json:"purple_guarantee"`

	// Events lists top-rarity pulls, oldest first.
	Events []TopEvent `json:"events"`
	// LastOrangePull is the running pity.
	LastOrangePull int `json:"last_orange_pull"`
	// LastPurplePull is the running second-rarity count.
	LastPurplePull int `json:"last_purple_pull"`

	TotalCount  int `json:"total_count"`
	OrangeCount int `json:"orange_count"`
	PurpleCount int `json:"purple_count"`
	BlueCount   int `json:"blue_count"`
	UpCount     int `json:"up_count"`

	MinOrangePull       int     `json:"min_orange_pull"`
	MaxOrangePull       int     `json:"max_orange_pull"`
	AverageOrangePull   float64 `json:"average_orange_pull"`
	AverageUpOrangePull float64 `json:"average_up_orange_pull"`
	OrangePercent       float64 `json:"orange_percent"`
	PurplePercent       float64 `json:"purple_percent"`
	BluePercent         float64 `json:"blue_percent"`

	From *time.Time `json:"from,omitempty"`
	To   *time.Time `json:"to,omitempty"`
}

// Tally counts pulls of one item.
type Tally struct {
	Item  catalog.Item `json:"item"`
	Count int          `json:"count"`
}

// BannerHistory is the outcome of one banner window.
type BannerHistory struct {
	Name     string    `json:"name"`
	Version  string    `json:"version"`
	Order    int       `json:"order"`
	Type     int       `json:"type"`
	From     time.Time `json:"from"`
	To       time.Time `json:"to"`
	UpOrange []string  `json:"up_orange"`
	UpPurple []string  `json:"up_purple"`

	TotalCount      int `json:"total_count"`
	OrangeCount     int `json:"orange_count"`
	PurpleCount     int `json:"purple_count"`
	BlueCount       int `json:"blue_count"`
	UpOrangeCount   int `json:"up_orange_count"`
	LoseOrangeCount int `json:"lose_orange_count"`
	UpPurpleCount   int `json:"up_purple_count"`

	// GuaranteeOwed reports an unresolved lost 50/50 at the end of the window.
	GuaranteeOwed bool `json:"guarantee_owed"`
	// FatePoints is the epitomized path progress at the end of the window.
	FatePoints int `json:"fate_points"`

	Items []Tally `json:"items"`
}

// Report is the result of Compute.
type Report struct {
	Permanent   PoolSummary `json:"permanent"`
	AvatarEvent PoolSummary `json:"avatar_event"`
	WeaponEvent PoolSummary `json:"weapon_event"`

	// Histories lists the windows that saw at least one pull, oldest first.
	Histories []BannerHistory `json:"histories"`

	OrangeAvatars []Tally `json:"orange_avatars"`
	PurpleAvatars []Tally `json:"purple_avatars"`
	OrangeWeapons []Tally `json:"orange_weapons"`
	PurpleWeapons []Tally `json:"purple_weapons"`
	BlueWeapons   []Tally `json:"blue_weapons"`

	// Unresolved counts pulls whose item is missing from the catalog.
	Unresolved int `json:"unresolved"`
	TotalCount int `json:"total_count"`
}
