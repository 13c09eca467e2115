// Package remote implements remote prioritization — the total ordering
// over remotes used to pick a canonical head among competing refs
// (component D of the dit core).
package remote

import (
	"sort"

	"github.com/git-dit/dit/pkg/refclass"
)

// LocalSentinel is the name "local". Local refs sort before every remote
// ref whether or not it appears in a Prioritization list; its position in
// the list does not change the ordering.
const LocalSentinel = "local"

// Prioritization is an ordered list of remote names. Lower index is higher
// priority. A remote absent from the list is less preferred than any
// listed remote; ties are broken by reference name.
type Prioritization struct {
	order []string
	index map[string]int
}

// New builds a Prioritization from an ordered remote-name list.
func New(order []string) Prioritization {
	idx := make(map[string]int, len(order))
	for i, name := range order {
		if _, exists := idx[name]; !exists {
			idx[name] = i
		}
	}
	return Prioritization{order: order, index: idx}
}

// indexOf returns the priority rank of remote name, or len(order) (i.e.
// "after every listed remote") if it is unlisted.
func (p Prioritization) indexOf(name string) int {
	if i, ok := p.index[name]; ok {
		return i
	}
	return len(p.order)
}

// sortKey returns the (locality, priority-index, name) tuple used for
// comparison (spec §8 testable property 6). Local refs always sort first.
func (p Prioritization) sortKey(r refclass.Ref) (int, int, string) {
	if r.Local == refclass.Local {
		return 0, 0, r.Name
	}
	return 1, p.indexOf(r.Remote), r.Name
}

// Less reports whether a should sort before b under this prioritization.
func (p Prioritization) Less(a, b refclass.Ref) bool {
	la, ia, na := p.sortKey(a)
	lb, ib, nb := p.sortKey(b)
	if la != lb {
		return la < lb
	}
	if ia != ib {
		return ia < ib
	}
	return na < nb
}

// SelectRef groups candidates by locality (local wins outright), then
// picks the most-preferred remote by priority index, breaking ties by ref
// name. Returns ok == false only when candidates is empty (spec §4.D).
func (p Prioritization) SelectRef(candidates []refclass.Ref) (refclass.Ref, bool) {
	if len(candidates) == 0 {
		return refclass.Ref{}, false
	}
	sorted := append([]refclass.Ref(nil), candidates...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return p.Less(sorted[i], sorted[j])
	})
	return sorted[0], true
}
