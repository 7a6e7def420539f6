package statistics

import (
	"wish-archive/feature/catalog"
)

// fatePointCap is the number of fate points that guarantees the chosen weapon.
const fatePointCap = 2

// windowTracker follows the guarantees of one banner window.
type windowTracker struct {
	window   catalog.BannerWindow
	upOrange map[string]struct{}
	upPurple map[string]struct{}

	// guaranteeOwed is set by a lost 50/50 on a character banner.
	guaranteeOwed bool

	// Epitomized path: the first up weapon is the chosen one.
	chosen          string
	fatePoints      int
	weaponGuarantee bool

	counts map[int64]*Tally

	total      int
	orange     int
	purple     int
	blue       int
	upOrangeN  int
	loseOrange int
	upPurpleN  int
}

func newWindowTracker(w catalog.BannerWindow) *windowTracker {
	t := &windowTracker{
		window:   w,
		upOrange: toSet(w.UpOrangeList),
		upPurple: toSet(w.UpPurpleList),
		counts:   make(map[int64]*Tally),
	}
	if len(w.UpOrangeList) > 0 {
		t.chosen = w.UpOrangeList[0]
	}
	return t
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

// track records a pull inside the window and returns its rate-up outcome.
// Only top-rarity pulls can be up.
func (w *windowTracker) track(item catalog.Item) (isUp, isGuarantee bool) {
	w.total++
	if !item.IsZero() {
		if t, ok := w.counts[item.ID]; ok {
			t.Count++
		} else {
			w.counts[item.ID] = &Tally{Item: item, Count: 1}
		}
	}

	switch item.Quality {
	case catalog.QualityOrange:
		w.orange++
		if item.Type == catalog.ItemTypeWeapon {
			isUp, isGuarantee = w.orangeWeapon(item)
		} else {
			isUp, isGuarantee = w.orangeAvatar(item)
		}
		if isUp {
			w.upOrangeN++
		} else {
			w.loseOrange++
		}
	case catalog.QualityPurple:
		w.purple++
		if _, ok := w.upPurple[item.Name]; ok {
			w.upPurpleN++
		}
	case catalog.QualityBlue:
		w.blue++
	}

	return isUp, isGuarantee
}

// orangeAvatar settles a 50/50. An owed guarantee makes the pull up.
func (w *windowTracker) orangeAvatar(item catalog.Item) (isUp, isGuarantee bool) {
	_, listed := w.upOrange[item.Name]
	isGuarantee = w.guaranteeOwed
	isUp = listed || isGuarantee
	w.guaranteeOwed = !isUp
	return isUp, isGuarantee
}

// orangeWeapon settles a 75/25 and advances the epitomized path.
func (w *windowTracker) orangeWeapon(item catalog.Item) (isUp, isGuarantee bool) {
	if w.chosen != "" && w.fatePoints >= fatePointCap {
		// The full path awards the chosen weapon
		w.fatePoints = 0
		w.weaponGuarantee = false
		return true, true
	}

	_, listed := w.upOrange[item.Name]
	if w.weaponGuarantee {
		isUp, isGuarantee = true, true
		w.weaponGuarantee = false
	} else {
		isUp = listed
		w.weaponGuarantee = !listed
	}

	if w.chosen != "" {
		if item.Name == w.chosen {
			w.fatePoints = 0
		} else {
			w.fatePoints++
		}
	}

	return isUp, isGuarantee
}

func (w *windowTracker) history() BannerHistory {
	items := make([]Tally, 0, len(w.counts))
	for _, t := range w.counts {
		items = append(items, *t)
	}
	sortTallies(items)

	return BannerHistory{
		Name:            w.window.Name,
		Version:         w.window.Version,
		Order:           w.window.Order,
		Type:            w.window.Type,
		From:            w.window.From,
		To:              w.window.To,
		UpOrange:        w.window.UpOrangeList,
		UpPurple:        w.window.UpPurpleList,
		TotalCount:      w.total,
		OrangeCount:     w.orange,
		PurpleCount:     w.purple,
		BlueCount:       w.blue,
		UpOrangeCount:   w.upOrangeN,
		LoseOrangeCount: w.loseOrange,
		UpPurpleCount:   w.upPurpleN,
		GuaranteeOwed:   w.guaranteeOwed,
		FatePoints:      w.fatePoints,
		Items:           items,
	}
}
