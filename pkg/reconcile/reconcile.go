package reconcile

import (
	"errors"
	"fmt"
	"sort"
)

// ErrDuplicateKey is returned when a list contains the same key twice.
var ErrDuplicateKey = errors.New("duplicate key")

// OpKind is the kind of a plan operation.
type OpKind int

const (
	OpRemove OpKind = iota
	OpInsert
	OpMove
)

func (k OpKind) String() string {
	switch k {
	case OpRemove:
		return "remove"
	case OpInsert:
		return "insert"
	case OpMove:
		return "move"
	default:
		return "unknown"
	}
}

// Op is one step of a plan. For removals Index is the key's position in
// the old list; for inserts and moves it is the target position in the new
// list.
type Op[K comparable] struct {
	Kind  OpKind
	Key   K
	Index int
}

// Plan describes how to turn an old key list into a new one. Ops lists all
// removals in old order followed by inserts and moves in ascending target
// index.
type Plan[K comparable] struct {
	Ops []Op[K]

	// Stable are the retained keys that never move, in list order.
	Stable []K
}

// Count returns the number of operations of the given kind.
func (p Plan[K]) Count(kind OpKind) int {
	n := 0
	for _, op := range p.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Diff computes the plan that turns old into new.
func Diff[K comparable](old, new []K) (Plan[K], error) {
	oldIndex, err := indexKeys(old)
	if err != nil {
		return Plan[K]{}, fmt.Errorf("old list: %w", err)
	}
	if _, err := indexKeys(new); err != nil {
		return Plan[K]{}, fmt.Errorf("new list: %w", err)
	}

	newSet := make(map[K]bool, len(new))
	for _, k := range new {
		newSet[k] = true
	}

	var plan Plan[K]
	for i, k := range old {
		if !newSet[k] {
			plan.Ops = append(plan.Ops, Op[K]{Kind: OpRemove, Key: k, Index: i})
		}
	}

	// Old positions of retained keys, in new order.
	var positions []int
	var retainedAt []int // index into new for each entry of positions
	for i, k := range new {
		if j, ok := oldIndex[k]; ok {
			positions = append(positions, j)
			retainedAt = append(retainedAt, i)
		}
	}

	stable := make(map[int]bool) // new indices that stay in place
	for _, p := range longestIncreasing(positions) {
		stable[retainedAt[p]] = true
	}

	for i, k := range new {
		_, retained := oldIndex[k]
		switch {
		case !retained:
			plan.Ops = append(plan.Ops, Op[K]{Kind: OpInsert, Key: k, Index: i})
		case stable[i]:
			plan.Stable = append(plan.Stable, k)
		default:
			plan.Ops = append(plan.Ops, Op[K]{Kind: OpMove, Key: k, Index: i})
		}
	}
	return plan, nil
}

// Apply replays plan on old and returns the resulting list. Applying the
// plan returned by Diff(old, new) yields new.
func Apply[K comparable](old []K, plan Plan[K]) []K {
	detach := make(map[K]bool)
	for _, op := range plan.Ops {
		if op.Kind == OpRemove || op.Kind == OpMove {
			detach[op.Key] = true
		}
	}

	cur := make([]K, 0, len(old))
	for _, k := range old {
		if !detach[k] {
			cur = append(cur, k)
		}
	}

	for _, op := range plan.Ops {
		if op.Kind == OpRemove {
			continue
		}
		i := min(op.Index, len(cur))
		cur = append(cur, op.Key)
		copy(cur[i+1:], cur[i:])
		cur[i] = op.Key
	}
	return cur
}

func indexKeys[K comparable](keys []K) (map[K]int, error) {
	index := make(map[K]int, len(keys))
	for i, k := range keys {
		if _, dup := index[k]; dup {
			return nil, fmt.Errorf("%w: %v", ErrDuplicateKey, k)
		}
		index[k] = i
	}
	return index, nil
}

// longestIncreasing returns the indices into seq of one longest strictly
// increasing subsequence.
func longestIncreasing(seq []int) []int {
	if len(seq) == 0 {
		return nil
	}
	tails := make([]int, 0, len(seq)) // tails[l] = index of the smallest tail of a run of length l+1
	prev := make([]int, len(seq))
	for i, v := range seq {
		l := sort.Search(len(tails), func(j int) bool { return seq[tails[j]] >= v })
		if l > 0 {
			prev[i] = tails[l-1]
		} else {
			prev[i] = -1
		}
		if l == len(tails) {
			tails = append(tails, i)
		} else {
			tails[l] = i
		}
	}

	out := make([]int, len(tails))
	for i, k := len(tails)-1, tails[len(tails)-1]; i >= 0; i, k = i-1, prev[k] {
		out[i] = k
	}
	return out
}
