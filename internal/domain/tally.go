package domain

import "sort"

// Tally counts strings and ranks them most-common-first.
// Equal counts keep the order in which values were first seen.
type Tally struct {
	order  []string
	counts map[string]int
}

// NewTally creates an empty Tally.
func NewTally() *Tally {
	return &Tally{counts: make(map[string]int)}
}

// Add counts every value once.
func (t *Tally) Add(values ...string) {
	for _, v := range values {
		if _, seen := t.counts[v]; !seen {
			t.order = append(t.order, v)
		}
		t.counts[v]++
	}
}

// Count returns how many times v was added.
func (t *Tally) Count(v string) int {
	return t.counts[v]
}

// Len returns the number of distinct values.
func (t *Tally) Len() int {
	return len(t.order)
}

// MostCommon returns all values ranked by count. Never nil.
func (t *Tally) MostCommon() []TermCount {
	out := make([]TermCount, len(t.order))
	for i, v := range t.order {
		out[i] = TermCount{Term: v, Count: t.counts[v]}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}
