package depgraph

import "sort"

// Delta is the change between two id sets
type Delta struct {
	Added   []int `json:"added"`
	Removed []int `json:"removed"`
}

// Empty reports whether nothing changed.
func (d Delta) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0
}

// Diff returns removed = old - next and added = next - old, both sorted.
func Diff(old, next []int) Delta {
	oldSet := toSet(old)
	nextSet := toSet(next)

	var d Delta
	for id := range oldSet {
		if _, ok := nextSet[id]; !ok {
			d.Removed = append(d.Removed, id)
		}
	}
	for id := range nextSet {
		if _, ok := oldSet[id]; !ok {
			d.Added = append(d.Added, id)
		}
	}
	sort.Ints(d.Added)
	sort.Ints(d.Removed)
	return d
}

// Without returns ids with every occurrence of id removed.
func Without(ids []int, id int) []int {
	out := make([]int, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// With returns ids with id appended unless it is already present.
func With(ids []int, id int) []int {
	for _, v := range ids {
		if v == id {
			return ids
		}
	}
	return append(ids, id)
}

func toSet(ids []int) map[int]struct{} {
	set := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
