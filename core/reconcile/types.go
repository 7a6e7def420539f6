package reconcile

import (
	"fmt"
	"strings"
)

// Strategy selects how fetched records are merged with stored ones.
type Strategy string

const (
	// StrategyLazy appends only records newer than the stored maximum.
	StrategyLazy Strategy = "lazy"
	// StrategyAggressive replaces the stored tail with everything fetched.
	StrategyAggressive Strategy = "aggressive"
)

// ParseStrategy converts user input into a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lazy", "lazy_merge", "lazymerge":
		return StrategyLazy, nil
	case "aggressive", "aggressive_merge", "aggressivemerge", "full":
		return StrategyAggressive, nil
	default:
		return "", fmt.Errorf("unknown merge strategy: %q", s)
	}
}

// mustBeKnown panics for values outside the closed Strategy set.
func (s Strategy) mustBeKnown() {
	switch s {
	case StrategyLazy, StrategyAggressive:
	default:
		panic(fmt.Sprintf("reconcile: unknown merge strategy %q", string(s)))
	}
}

// Sequenced is implemented by records carrying a remote sequence id.
// Ids are positive and grow with time.
type Sequenced interface {
	SequenceID() int64
}

// Partition identifies the slice of storage a plan targets.
type Partition struct {
	// ArchiveID is the internal id of the owning archive.
	ArchiveID uint `json:"archive_id"`
	// QueryType is the query type the records were fetched with.
	QueryType int `json:"query_type"`
}

// String renders the partition for logs and error messages.
func (p Partition) String() string {
	return fmt.Sprintf("archive=%d query_type=%d", p.ArchiveID, p.QueryType)
}

// ActionType represents the type of mutation action.
type ActionType string

const (
	// ActionDeleteTail deletes stored records with id >= FromID.
	ActionDeleteTail ActionType = "delete_tail"
	// ActionInsert inserts the kept records.
	ActionInsert ActionType = "insert"
)

// Action represents a planned mutation operation.
type Action struct {
	// Type specifies the action to perform.
	Type ActionType `json:"type"`

	// FromID is the lowest id removed by ActionDeleteTail.
	FromID int64 `json:"from_id,omitempty"`

	// Count is the number of records written by ActionInsert.
	Count int `json:"count,omitempty"`

	// Reason explains why this action is needed.
	Reason string `json:"reason"`
}

// PlanSummary provides aggregate counts for a plan.
type PlanSummary struct {
	// Offered counts records passed to the merger.
	Offered int `json:"offered"`

	// Kept counts records accepted by the strategy.
	Kept int `json:"kept"`

	// Duplicates counts kept records dropped because their id repeated.
	Duplicates int `json:"duplicates"`

	// StoppedEarly reports a lazy merge hitting an already stored record.
	StoppedEarly bool `json:"stopped_early"`
}

// Plan contains the mutations needed to merge one partition.
type Plan[T Sequenced] struct {
	// Partition is the storage slice the plan targets.
	Partition Partition `json:"partition"`

	// Strategy is the strategy the plan was built with.
	Strategy Strategy `json:"strategy"`

	// Inserts holds the records to insert, ascending by sequence id.
	Inserts []T `json:"-"`

	// DeleteFrom is the lowest stored id to delete before inserting; 0 means none.
	DeleteFrom int64 `json:"delete_from,omitempty"`

	// Actions lists the planned operations in execution order.
	Actions []Action `json:"actions"`

	// Summary provides aggregate counts.
	Summary PlanSummary `json:"summary"`
}

// IsEmpty reports whether the plan mutates nothing.
func (p *Plan[T]) IsEmpty() bool {
	return len(p.Actions) == 0
}

// ApplyOptions controls plan execution.
type ApplyOptions struct {
	// DryRun prevents execution of any mutations if true.
	DryRun bool
}
