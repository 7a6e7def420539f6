package reconcile

import (
	"context"
	"fmt"
)

// Mutator applies plan actions to a store. Each call must be atomic.
type Mutator[T Sequenced] interface {
	// DeleteFrom deletes records of the partition with id >= fromID.
	DeleteFrom(ctx context.Context, p Partition, fromID int64) error

	// Insert inserts records into the partition.
	Insert(ctx context.Context, p Partition, items []T) error
}

// TailReplacer is implemented by mutators able to delete a tail and insert
// its replacement in one transaction.
type TailReplacer[T Sequenced] interface {
	ReplaceTail(ctx context.Context, p Partition, fromID int64, items []T) error
}

// ApplyPlan executes the actions in a plan.
// Returns the number of actions executed and any error encountered.
func ApplyPlan[T Sequenced](ctx context.Context, mutator Mutator[T], plan *Plan[T], opts ApplyOptions) (executed int, err error) {
	if opts.DryRun || plan.IsEmpty() {
		return 0, nil
	}

	var (
		deleteFrom int64
		hasDelete  bool
		hasInsert  bool
	)

	for _, action := range plan.Actions {
		switch action.Type {
		case ActionDeleteTail:
			deleteFrom = action.FromID
			hasDelete = true
		case ActionInsert:
			hasInsert = true
		default:
			return 0, fmt.Errorf("unknown action type %q", action.Type)
		}
	}

	// Prefer the transactional path when both halves are present
	if hasDelete && hasInsert {
		if replacer, ok := mutator.(TailReplacer[T]); ok {
			if err := replacer.ReplaceTail(ctx, plan.Partition, deleteFrom, plan.Inserts); err != nil {
				return 0, fmt.Errorf("failed to replace tail of %s: %w", plan.Partition, err)
			}
			return 2, nil
		}
	}

	if hasDelete {
		if err := mutator.DeleteFrom(ctx, plan.Partition, deleteFrom); err != nil {
			return executed, fmt.Errorf("failed to delete tail of %s: %w", plan.Partition, err)
		}
		executed++
	}

	if hasInsert {
		if err := mutator.Insert(ctx, plan.Partition, plan.Inserts); err != nil {
			return executed, fmt.Errorf("failed to insert into %s: %w", plan.Partition, err)
		}
		executed++
	}

	return executed, nil
}
