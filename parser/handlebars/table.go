package handlebars

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
)

type actionKind uint8

const (
	actionError actionKind = iota
	actionShift
	actionReduce
	actionAccept
)

// action is one cell of the action table. target is the next state for a
// shift and the production for a reduce.
type action struct {
	kind   actionKind
	target int
}

type parseTables struct {
	actions [][numTerminals]action
	gotos   [][numSymbols - numTerminals]int
	// defaults holds, per state, the production to reduce without reading
	// a lookahead, or -1. A state gets one when a reduce is its only entry.
	defaults []int
}

var (
	tablesOnce sync.Once
	lalr       *parseTables
)

// tables returns the LALR(1) tables of the grammar, building them on first
// use. They are read-only afterwards.
func tables() *parseTables {
	tablesOnce.Do(func() {
		lalr = buildTables()
	})
	return lalr
}

// lrItem is a production with a dot before its dot'th symbol.
type lrItem struct {
	prod int
	dot  int
}

func (it lrItem) next() (symbol, bool) {
	rhs := productions[it.prod].rhs
	if it.dot < len(rhs) {
		return rhs[it.dot], true
	}
	return 0, false
}

type lrState struct {
	kernel []lrItem
	la     map[lrItem]termSet
	trans  map[symbol]int
}

type grammarSets struct {
	nullable [numSymbols]bool
	first    [numSymbols]termSet
}

func computeSets() *grammarSets {
	g := &grammarSets{}
	for s := symbol(0); s < numTerminals; s++ {
		g.first[s] = termBit(s)
	}
	for changed := true; changed; {
		changed = false
		for _, p := range productions {
			first, nullable := g.firstOf(p.rhs)
			if g.first[p.lhs]|first != g.first[p.lhs] {
				g.first[p.lhs] |= first
				changed = true
			}
			if nullable && !g.nullable[p.lhs] {
				g.nullable[p.lhs] = true
				changed = true
			}
		}
	}
	return g
}

// firstOf returns the terminals that can start seq and whether seq can
// derive the empty string.
func (g *grammarSets) firstOf(seq []symbol) (termSet, bool) {
	var set termSet
	for _, s := range seq {
		set |= g.first[s]
		if s.terminal() || !g.nullable[s] {
			return set, false
		}
	}
	return set, true
}

func (g *grammarSets) closure(kernel []lrItem, la map[lrItem]termSet) ([]lrItem, map[lrItem]termSet) {
	items := append([]lrItem(nil), kernel...)
	sets := make(map[lrItem]termSet, len(kernel))
	for _, it := range kernel {
		sets[it] = la[it]
	}

	for changed := true; changed; {
		changed = false
		for i := 0; i < len(items); i++ {
			it := items[i]
			b, ok := it.next()
			if !ok || b.terminal() {
				continue
			}
			follow, nullable := g.firstOf(productions[it.prod].rhs[it.dot+1:])
			if nullable {
				follow |= sets[it]
			}
			for p := range productions {
				if productions[p].lhs != b {
					continue
				}
				added := lrItem{prod: p}
				old, seen := sets[added]
				if !seen {
					items = append(items, added)
				}
				if !seen || old|follow != old {
					sets[added] = old | follow
					changed = true
				}
			}
		}
	}
	return items, sets
}

func coreKey(kernel []lrItem) string {
	var sb strings.Builder
	for _, it := range kernel {
		sb.WriteString(strconv.Itoa(it.prod))
		sb.WriteByte('.')
		sb.WriteString(strconv.Itoa(it.dot))
		sb.WriteByte(' ')
	}
	return sb.String()
}

// buildTables builds the canonical LR(1) collection with states merged by
// core as they are found, which yields the LALR(1) automaton. A state is
// reprocessed whenever a merge grows its lookaheads.
func buildTables() *parseTables {
	g := computeSets()

	start := lrItem{}
	states := []*lrState{{
		kernel: []lrItem{start},
		la:     map[lrItem]termSet{start: termBit(symEnd)},
	}}
	index := map[string]int{coreKey(states[0].kernel): 0}
	queued := []bool{true}
	work := []int{0}

	for len(work) > 0 {
		si := work[0]
		work = work[1:]
		queued[si] = false
		st := states[si]

		items, sets := g.closure(st.kernel, st.la)
		var order []symbol
		kernels := map[symbol][]lrItem{}
		lookaheads := map[symbol]map[lrItem]termSet{}
		for _, it := range items {
			x, ok := it.next()
			if !ok {
				continue
			}
			if _, seen := kernels[x]; !seen {
				order = append(order, x)
				lookaheads[x] = map[lrItem]termSet{}
			}
			adv := lrItem{prod: it.prod, dot: it.dot + 1}
			kernels[x] = append(kernels[x], adv)
			lookaheads[x][adv] |= sets[it]
		}

		st.trans = make(map[symbol]int, len(order))
		for _, x := range order {
			kernel := kernels[x]
			sort.Slice(kernel, func(i, j int) bool {
				if kernel[i].prod != kernel[j].prod {
					return kernel[i].prod < kernel[j].prod
				}
				return kernel[i].dot < kernel[j].dot
			})
			key := coreKey(kernel)

			ti, ok := index[key]
			if !ok {
				ti = len(states)
				states = append(states, &lrState{kernel: kernel, la: lookaheads[x]})
				index[key] = ti
				queued = append(queued, true)
				work = append(work, ti)
			} else {
				target := states[ti]
				grew := false
				for it, set := range lookaheads[x] {
					if target.la[it]|set != target.la[it] {
						target.la[it] |= set
						grew = true
					}
				}
				if grew && !queued[ti] {
					queued[ti] = true
					work = append(work, ti)
				}
			}
			st.trans[x] = ti
		}
	}

	return fillTables(g, states)
}

func fillTables(g *grammarSets, states []*lrState) *parseTables {
	t := &parseTables{
		actions:  make([][numTerminals]action, len(states)),
		gotos:    make([][numSymbols - numTerminals]int, len(states)),
		defaults: make([]int, len(states)),
	}

	for si, st := range states {
		set := func(term symbol, a action) {
			if old := t.actions[si][term]; old.kind != actionError && old != a {
				panic(fmt.Sprintf("handlebars: grammar conflict in state %d on %s", si, term))
			}
			t.actions[si][term] = a
		}

		for i := range t.gotos[si] {
			t.gotos[si][i] = -1
		}
		entries := 0
		for x, target := range st.trans {
			if x.terminal() {
				set(x, action{kind: actionShift, target: target})
			} else {
				t.gotos[si][x-numTerminals] = target
				entries++
			}
		}

		items, sets := g.closure(st.kernel, st.la)
		for _, it := range items {
			if _, ok := it.next(); ok {
				continue
			}
			if it.prod == 0 {
				set(symEnd, action{kind: actionAccept})
				continue
			}
			for term := symbol(0); term < numTerminals; term++ {
				if sets[it].has(term) {
					set(term, action{kind: actionReduce, target: it.prod})
				}
			}
		}

		t.defaults[si] = -1
		var only action
		for _, a := range t.actions[si] {
			if a.kind != actionError {
				entries++
				only = a
			}
		}
		if entries == 1 && only.kind == actionReduce {
			t.defaults[si] = only.target
		}
	}
	return t
}
