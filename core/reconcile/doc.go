// Package reconcile merges freshly fetched, sequence-numbered records into an
// existing ordered store without duplicating or losing records.
//
// The engine is generic over any record exposing a sequence id and works on
// one partition (archive + query type) at a time.
//
// # Architecture
//
// 1. Merger: consumes fetched records page by page (newest first) and decides
// per record whether it is kept, according to a Strategy:
//   - StrategyLazy keeps only records strictly newer than the stored maximum
//     (the dedup cursor) and reports Done at the first overlap, so the caller
//     stops requesting pages.
//   - StrategyAggressive keeps everything and, at completion, replaces the
//     stored tail starting at the lowest kept id.
//
// 2. Plan: the insert/delete set computed from a Merger. Inserts are sorted
// ascending so persisted order matches sequence order.
//
// 3. ApplyPlan: executes a plan through a Mutator. Mutators implementing
// TailReplacer run the delete and the insert in one transaction.
//
// # Preconditions
//
// The lazy strategy assumes the remote source returns records strictly
// newest-first without gaps or repeated ids. If that does not hold, a lazy
// merge under-fetches silently; an aggressive merge repairs the tail.
//
// # Usage Example
//
//	m := reconcile.NewMerger[models.Record](reconcile.StrategyLazy)
//	m.SetCursor(maxStoredID)
//	for _, r := range page {
//	    if !m.Offer(r) {
//	        break
//	    }
//	}
//	plan := m.Plan(reconcile.Partition{ArchiveID: 1, QueryType: 301})
//	executed, err := reconcile.ApplyPlan(ctx, store, plan, reconcile.ApplyOptions{})
package reconcile
