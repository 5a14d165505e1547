package reconcile

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDiff(t *testing.T) {
	type tc struct {
		old    []string
		new    []string
		ops    []Op[string]
		stable []string
	}

	tests := map[string]tc{
		"identical": {
			old:    []string{"a", "b", "c"},
			new:    []string{"a", "b", "c"},
			stable: []string{"a", "b", "c"},
		},
		"both empty": {},
		"all new": {
			new: []string{"a", "b"},
			ops: []Op[string]{
				{Kind: OpInsert, Key: "a", Index: 0},
				{Kind: OpInsert, Key: "b", Index: 1},
			},
		},
		"all removed": {
			old: []string{"a", "b"},
			ops: []Op[string]{
				{Kind: OpRemove, Key: "a", Index: 0},
				{Kind: OpRemove, Key: "b", Index: 1},
			},
		},
		"last to front is one move": {
			old:    []string{"a", "b", "c", "d"},
			new:    []string{"d", "a", "b", "c"},
			ops:    []Op[string]{{Kind: OpMove, Key: "d", Index: 0}},
			stable: []string{"a", "b", "c"},
		},
		"first to back is one move": {
			old:    []string{"a", "b", "c", "d"},
			new:    []string{"b", "c", "d", "a"},
			ops:    []Op[string]{{Kind: OpMove, Key: "a", Index: 3}},
			stable: []string{"b", "c", "d"},
		},
		"remove insert and move": {
			old: []string{"a", "b", "c", "d"},
			new: []string{"c", "x", "a", "d"},
			ops: []Op[string]{
				{Kind: OpRemove, Key: "b", Index: 1},
				{Kind: OpMove, Key: "c", Index: 0},
				{Kind: OpInsert, Key: "x", Index: 1},
			},
			stable: []string{"a", "d"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			plan, err := Diff(tt.old, tt.new)
			if err != nil {
				t.Fatalf("Diff: %v", err)
			}
			if diff := cmp.Diff(tt.ops, plan.Ops); diff != "" {
				t.Errorf("ops mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.stable, plan.Stable); diff != "" {
				t.Errorf("stable mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.new, Apply(tt.old, plan), cmp.Comparer(equalKeys)); diff != "" {
				t.Errorf("Apply mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// equalKeys treats nil and empty key lists alike.
func equalKeys(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestDiff_Reverse(t *testing.T) {
	old := []int{1, 2, 3, 4, 5}
	new := []int{5, 4, 3, 2, 1}
	plan, err := Diff(old, new)
	if err != nil {
		t.Fatal(err)
	}
	if got := plan.Count(OpMove); got != 4 {
		t.Errorf("moves = %d, want 4", got)
	}
	if len(plan.Stable) != 1 {
		t.Errorf("stable = %v, want one key", plan.Stable)
	}
}

func TestDiff_DuplicateKey(t *testing.T) {
	if _, err := Diff([]string{"a", "a"}, nil); !errors.Is(err, ErrDuplicateKey) {
		t.Errorf("old duplicate: err = %v", err)
	}
	if _, err := Diff(nil, []string{"b", "b"}); !errors.Is(err, ErrDuplicateKey) {
		t.Errorf("new duplicate: err = %v", err)
	}
}

// node is a rendered item; its identity must survive moves.
type node struct{ key string }

// region is a keyed list of nodes replayed with the two-pass protocol.
type region struct {
	nodes    []*node
	detached map[string]*node
	created  int
}

func (r *region) detach(key string) {
	for i, n := range r.nodes {
		if n.key == key {
			r.detached[key] = n
			r.nodes = append(r.nodes[:i], r.nodes[i+1:]...)
			return
		}
	}
}

func (r *region) attach(i int, n *node) {
	i = min(i, len(r.nodes))
	r.nodes = append(r.nodes, nil)
	copy(r.nodes[i+1:], r.nodes[i:])
	r.nodes[i] = n
}

func (r *region) replay(plan Plan[string]) {
	for _, op := range plan.Ops {
		if op.Kind != OpInsert {
			r.detach(op.Key)
		}
	}
	for _, op := range plan.Ops {
		switch op.Kind {
		case OpInsert:
			r.created++
			r.attach(op.Index, &node{key: op.Key})
		case OpMove:
			r.attach(op.Index, r.detached[op.Key])
		}
	}
}

func TestPlan_ReplayOnRegion(t *testing.T) {
	type tc struct {
		old []string
		new []string
	}

	tests := map[string]tc{
		"insert before a later move": {old: []string{"m", "a", "b"}, new: []string{"a", "x", "b", "m"}},
		"swap":                       {old: []string{"a", "b"}, new: []string{"b", "a"}},
		"mixed":                      {old: []string{"a", "b", "c", "d", "e"}, new: []string{"e", "c", "f", "a", "d"}},
		"from empty":                 {old: nil, new: []string{"a", "b"}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			plan, err := Diff(tt.old, tt.new)
			if err != nil {
				t.Fatal(err)
			}

			r := &region{detached: make(map[string]*node)}
			before := make(map[string]*node)
			for _, k := range tt.old {
				n := &node{key: k}
				r.nodes = append(r.nodes, n)
				before[k] = n
			}
			r.replay(plan)

			var got []string
			for _, n := range r.nodes {
				got = append(got, n.key)
			}
			if diff := cmp.Diff(tt.new, got); diff != "" {
				t.Fatalf("replayed keys mismatch (-want +got):\n%s", diff)
			}
			for _, n := range r.nodes {
				if old, ok := before[n.key]; ok && old != n {
					t.Errorf("retained key %q was re-created", n.key)
				}
			}
			for _, k := range plan.Stable {
				if _, ok := r.detached[k]; ok {
					t.Errorf("stable key %q was detached", k)
				}
			}
			if want := plan.Count(OpInsert); r.created != want {
				t.Errorf("created %d nodes, want %d", r.created, want)
			}
		})
	}
}

func TestDiff_MinimalMoves(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for n := 0; n < 200; n++ {
		old := r.Perm(8)
		new := r.Perm(8)[:r.Intn(9)]
		new = append(new, 100+n)

		plan, err := Diff(old, new)
		if err != nil {
			t.Fatal(err)
		}
		if got := Apply(old, plan); !cmp.Equal(new, got) {
			t.Fatalf("Apply(%v) = %v, want %v", old, got, new)
		}

		retained := 0
		oldPos := make(map[int]int)
		for i, k := range old {
			oldPos[k] = i
		}
		var positions []int
		for _, k := range new {
			if p, ok := oldPos[k]; ok {
				positions = append(positions, p)
				retained++
			}
		}
		if want := retained - bruteLIS(positions); plan.Count(OpMove) != want {
			t.Fatalf("Diff(%v, %v) moves = %d, want %d", old, new, plan.Count(OpMove), want)
		}
	}
}

func bruteLIS(seq []int) int {
	best := make([]int, len(seq))
	longest := 0
	for i := range seq {
		best[i] = 1
		for j := 0; j < i; j++ {
			if seq[j] < seq[i] && best[j]+1 > best[i] {
				best[i] = best[j] + 1
			}
		}
		longest = max(longest, best[i])
	}
	return longest
}

func TestOpKind_String(t *testing.T) {
	for kind, want := range map[OpKind]string{OpRemove: "remove", OpInsert: "insert", OpMove: "move", OpKind(9): "unknown"} {
		if got := kind.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", kind, got, want)
		}
	}
}
