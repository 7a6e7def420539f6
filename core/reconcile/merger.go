package reconcile

import (
	"fmt"
	"sort"
)

// Merger decides, record by record, what a merge keeps for one partition.
// A Merger belongs to a single refresh of a single partition.
type Merger[T Sequenced] struct {
	strategy  Strategy
	cursor    int64
	hasCursor bool
	kept      []T
	offered   int
	done      bool
}

// NewMerger creates a merger for the given strategy.
// It panics when the strategy is outside the closed set.
func NewMerger[T Sequenced](strategy Strategy) *Merger[T] {
	strategy.mustBeKnown()
	return &Merger[T]{strategy: strategy}
}

// Strategy returns the merger's strategy.
func (m *Merger[T]) Strategy() Strategy {
	return m.strategy
}

// NeedsCursor reports whether the dedup cursor must be provided before the next Offer.
func (m *Merger[T]) NeedsCursor() bool {
	return m.strategy == StrategyLazy && !m.hasCursor
}

// SetCursor sets the dedup cursor: the highest id already stored for the partition.
// Only the first call has an effect.
func (m *Merger[T]) SetCursor(id int64) {
	if m.hasCursor {
		return
	}
	m.cursor = id
	m.hasCursor = true
}

// Offer submits the next fetched record and reports whether it was kept.
// Once Offer returns false under StrategyLazy the merger is Done and later
// offers are ignored.
func (m *Merger[T]) Offer(item T) bool {
	if m.done {
		return false
	}
	m.offered++

	switch m.strategy {
	case StrategyAggressive:
		m.kept = append(m.kept, item)
		return true
	case StrategyLazy:
		if !m.hasCursor {
			panic("reconcile: lazy merge offered a record before the cursor was set")
		}
		if item.SequenceID() > m.cursor {
			m.kept = append(m.kept, item)
			return true
		}
		m.done = true
		return false
	default:
		panic(fmt.Sprintf("reconcile: unknown merge strategy %q", string(m.strategy)))
	}
}

// Done reports whether a lazy merge reached already stored records.
func (m *Merger[T]) Done() bool {
	return m.done
}

// Kept returns the kept records in the order they were offered.
func (m *Merger[T]) Kept() []T {
	return m.kept
}

// EndID returns the id of the last kept record, used as the next page cursor.
// It is 0 when nothing was kept.
func (m *Merger[T]) EndID() int64 {
	if len(m.kept) == 0 {
		return 0
	}
	return m.kept[len(m.kept)-1].SequenceID()
}

// Plan computes the insert/delete set for the partition.
func (m *Merger[T]) Plan(p Partition) *Plan[T] {
	plan := &Plan[T]{
		Partition: p,
		Strategy:  m.strategy,
		Summary: PlanSummary{
			Offered:      m.offered,
			Kept:         len(m.kept),
			StoppedEarly: m.done,
		},
	}

	if len(m.kept) == 0 {
		return plan
	}

	inserts := make([]T, len(m.kept))
	copy(inserts, m.kept)
	sort.SliceStable(inserts, func(i, j int) bool {
		return inserts[i].SequenceID() < inserts[j].SequenceID()
	})

	// Repeated ids would break the per-partition uniqueness
	unique := inserts[:1]
	for _, item := range inserts[1:] {
		if item.SequenceID() == unique[len(unique)-1].SequenceID() {
			plan.Summary.Duplicates++
			continue
		}
		unique = append(unique, item)
	}
	plan.Inserts = unique

	if m.strategy == StrategyAggressive {
		plan.DeleteFrom = unique[0].SequenceID()
		plan.Actions = append(plan.Actions, Action{
			Type:   ActionDeleteTail,
			FromID: plan.DeleteFrom,
			Reason: fmt.Sprintf("aggressive merge replaces stored ids >= %d", plan.DeleteFrom),
		})
	}

	plan.Actions = append(plan.Actions, Action{
		Type:   ActionInsert,
		Count:  len(unique),
		Reason: fmt.Sprintf("%s merge kept %d record(s)", m.strategy, len(unique)),
	})

	return plan
}
