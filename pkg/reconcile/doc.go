// Package reconcile plans the structural changes that turn one keyed list
// into another. Keys on the longest increasing subsequence of retained
// positions stay where they are and only the rest are moved.
//
// The consumer is a bindList runtime written in Go, for example one
// driving a server-rendered DOM or a WebAssembly build. The compiler emits
// the key function into bindList's options; the runtime keys the old and
// new items with it and replays the plan in two passes. Removed and moved
// nodes are detached first, then inserted and moved nodes are attached at
// their target index in plan order:
//
//	plan, err := reconcile.Diff(oldKeys, newKeys)
//	if err != nil {
//		return err // a key function returned the same key twice
//	}
//	for _, op := range plan.Ops {
//		if op.Kind != reconcile.OpInsert {
//			region.Detach(op.Key)
//		}
//	}
//	for _, op := range plan.Ops {
//		switch op.Kind {
//		case reconcile.OpInsert:
//			region.Attach(op.Index, render(op.Key))
//		case reconcile.OpMove:
//			region.Attach(op.Index, region.Detached(op.Key))
//		}
//	}
//
// Nodes of Plan.Stable keys are never detached. [Apply] performs the same
// replay on a slice of keys.
package reconcile
