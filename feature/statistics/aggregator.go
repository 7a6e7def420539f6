package statistics

import (
	"sort"

	"wish-archive/feature/catalog"
)

// Catalog is the part of the metadata catalog the aggregator reads.
type Catalog interface {
	ItemByID(id int64) (catalog.Item, bool)
	AllWindows() []catalog.BannerWindow
}

// tallySet counts items of one rarity and category.
type tallySet map[int64]*Tally

func (s tallySet) add(item catalog.Item) {
	if t, ok := s[item.ID]; ok {
		t.Count++
		return
	}
	s[item.ID] = &Tally{Item: item, Count: 1}
}

func (s tallySet) list() []Tally {
	out := make([]Tally, 0, len(s))
	for _, t := range s {
		out = append(out, *t)
	}
	sortTallies(out)
	return out
}

// sortTallies orders by count descending, then id ascending.
func sortTallies(list []Tally) {
	sort.Slice(list, func(i, j int) bool {
		if list[i].Count != list[j].Count {
			return list[i].Count > list[j].Count
		}
		return list[i].Item.ID < list[j].Item.ID
	})
}

// Compute folds pulls into a report in a single forward pass.
//
// Pulls must be sorted ascending by id; the order is not checked. An item id
// that is neither an avatar nor a weapon id panics. Id 0 and ids missing from
// the catalog count as non-top-rarity pulls and are reported in Unresolved.
func Compute(pulls []Pull, cat Catalog, pools Pools) *Report {
	permanent := newPoolTracker(pools.Permanent)
	avatarEvent := newPoolTracker(pools.AvatarEvent)
	weaponEvent := newPoolTracker(pools.WeaponEvent)

	windows, trackers := indexWindows(cat.AllWindows())

	orangeAvatars := tallySet{}
	purpleAvatars := tallySet{}
	orangeWeapons := tallySet{}
	purpleWeapons := tallySet{}
	blueWeapons := tallySet{}

	report := &Report{}

	for _, pull := range pulls {
		report.TotalCount++

		var item catalog.Item
		if catalog.CategoryOf(pull.ItemID) != catalog.ItemTypeUnknown {
			item, _ = cat.ItemByID(pull.ItemID)
		}
		if item.IsZero() {
			report.Unresolved++
		}

		var isUp, isGuarantee bool
		if i := catalog.FindWindow(windows[pull.GachaType], pull.Time); i >= 0 {
			isUp, isGuarantee = trackers[pull.GachaType][i].track(item)
		}

		switch item.Type {
		case catalog.ItemTypeAvatar:
			switch item.Quality {
			case catalog.QualityOrange:
				orangeAvatars.add(item)
			case catalog.QualityPurple:
				purpleAvatars.add(item)
			}
		case catalog.ItemTypeWeapon:
			switch item.Quality {
			case catalog.QualityOrange:
				orangeWeapons.add(item)
			case catalog.QualityPurple:
				purpleWeapons.add(item)
			case catalog.QualityBlue:
				blueWeapons.add(item)
			}
		}

		permanent.track(pull, item, isUp, isGuarantee)
		avatarEvent.track(pull, item, isUp, isGuarantee)
		weaponEvent.track(pull, item, isUp, isGuarantee)
	}

	report.Permanent = permanent.summary()
	report.AvatarEvent = avatarEvent.summary()
	report.WeaponEvent = weaponEvent.summary()

	report.OrangeAvatars = orangeAvatars.list()
	report.PurpleAvatars = purpleAvatars.list()
	report.OrangeWeapons = orangeWeapons.list()
	report.PurpleWeapons = purpleWeapons.list()
	report.BlueWeapons = blueWeapons.list()

	report.Histories = []BannerHistory{}
	for _, list := range trackers {
		for _, t := range list {
			if t.total > 0 {
				report.Histories = append(report.Histories, t.history())
			}
		}
	}
	sort.SliceStable(report.Histories, func(i, j int) bool {
		a, b := report.Histories[i], report.Histories[j]
		if !a.From.Equal(b.From) {
			return a.From.Before(b.From)
		}
		return a.Type < b.Type
	})

	return report
}

// indexWindows groups windows by gacha type, ordered by start time, with one
// tracker per window at the same position.
func indexWindows(all []catalog.BannerWindow) (map[int][]catalog.BannerWindow, map[int][]*windowTracker) {
	windows := make(map[int][]catalog.BannerWindow)
	for _, w := range all {
		windows[w.Type] = append(windows[w.Type], w)
	}

	trackers := make(map[int][]*windowTracker, len(windows))
	for t, list := range windows {
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].From.Before(list[j].From)
		})
		for _, w := range list {
			trackers[t] = append(trackers[t], newWindowTracker(w))
		}
	}

	return windows, trackers
}
