package statistics

import (
	"time"

	"wish-archive/feature/catalog"
)

// poolTracker accumulates the pity state of one pool.
type poolTracker struct {
	cfg   PoolConfig
	types map[int]struct{}

	events []TopEvent

	lastOrange   int
	lastPurple   int
	lastUpOrange int

	total  int
	orange int
	purple int
	blue   int
	up     int

	minOrange   int
	maxOrange   int
	sumOrange   int
	sumUpOrange int

	from time.Time
	to   time.Time
}

func newPoolTracker(cfg PoolConfig) *poolTracker {
	types := make(map[int]struct{}, len(cfg.GachaTypes))
	for _, t := range cfg.GachaTypes {
		types[t] = struct{}{}
	}
	return &poolTracker{cfg: cfg, types: types}
}

func (p *poolTracker) accepts(gachaType int) bool {
	_, ok := p.types[gachaType]
	return ok
}

// track counts a pull of the pool's gacha types and ignores the rest.
func (p *poolTracker) track(pull Pull, item catalog.Item, isUp, isGuarantee bool) {
	if !p.accepts(pull.GachaType) {
		return
	}

	// Counters include the current pull
	p.total++
	p.lastOrange++
	p.lastPurple++
	p.lastUpOrange++

	if p.from.IsZero() {
		p.from = pull.Time
	}
	p.to = pull.Time

	switch item.Quality {
	case catalog.QualityOrange:
		pity := p.lastOrange
		p.events = append(p.events, TopEvent{
			Index:       len(p.events) + 1,
			Pity:        pity,
			IsUp:        isUp,
			IsGuarantee: isGuarantee,
			InSoftPity:  pity >= p.cfg.SoftPity,
			Item:        item,
			Time:        pull.Time,
		})

		p.orange++
		p.sumOrange += pity
		if p.minOrange == 0 || pity < p.minOrange {
			p.minOrange = pity
		}
		if pity > p.maxOrange {
			p.maxOrange = pity
		}
		if isUp {
			p.up++
			p.sumUpOrange += p.lastUpOrange
			p.lastUpOrange = 0
		}
		p.lastOrange = 0
	case catalog.QualityPurple:
		p.purple++
		p.lastPurple = 0
	case catalog.QualityBlue:
		p.blue++
	}
}

func (p *poolTracker) summary() PoolSummary {
	s := PoolSummary{
		Name:            p.cfg.Name,
		GachaTypes:      p.cfg.GachaTypes,
		HardPity:        p.cfg.HardPity,
		SoftPity:        p.cfg.SoftPity,
		PurpleGuarantee: p.cfg.PurpleGuarantee,
		Events:          p.events,
		LastOrangePull:  p.lastOrange,
		LastPurplePull:  p.lastPurple,
		TotalCount:      p.total,
		OrangeCount:     p.orange,
		PurpleCount:     p.purple,
		BlueCount:       p.blue,
		UpCount:         p.up,
		MinOrangePull:   p.minOrange,
		MaxOrangePull:   p.maxOrange,
	}

	if s.Events == nil {
		s.Events = []TopEvent{}
	}
	if p.orange > 0 {
		s.AverageOrangePull = float64(p.sumOrange) / float64(p.orange)
	}
	if p.up > 0 {
		s.AverageUpOrangePull = float64(p.sumUpOrange) / float64(p.up)
	}
	if p.total > 0 {
		s.OrangePercent = percent(p.orange, p.total)
		s.PurplePercent = percent(p.purple, p.total)
		s.BluePercent = percent(p.blue, p.total)

		from, to := p.from, p.to
		s.From, s.To = &from, &to
	}

	return s
}

func percent(part, total int) float64 {
	return float64(part) * 100 / float64(total)
}
