// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package qmc

import (
	"sort"
	"strconv"

	"github.com/pkg/errors"
	"github.com/retroenv/retrogolib/set"
)

// A PrimeSelector chooses a subset of prime implicants that covers all
// the required minterms.
//
type PrimeSelector interface {
	// Select returns the selected primes, in the order they appear in primes.
	// It returns a *ContractError if a minterm is not covered by any prime.
	Select(primes []Implicant, mustCover []int) ([]Implicant, error)
}

// ContractError is returned by selectors when a required minterm is not
// covered by any prime implicant.
//
type ContractError struct {
	Minterm int
}

func (e *ContractError) Error() string {
	return "minterm " + strconv.Itoa(e.Minterm) + " not covered by any prime implicant"
}

// SelectorByName returns the selector with the given name: "greedy" or
// "exhaustive".
//
func SelectorByName(name string) (PrimeSelector, error) {
	switch name {
	case "greedy":
		return Greedy{}, nil
	case "exhaustive":
		return &Exhaustive{}, nil
	}
	return nil, errors.Errorf("unknown prime selector %q", name)
}

// cover holds the covering relation between primes and required minterms.
type cover struct {
	minterms []int   // required minterms, ascending, unique
	by       [][]int // by[k]: indices of the primes covering minterms[k]
}

func newCover(primes []Implicant, mustCover []int) (*cover, error) {
	ms := make([]int, 0, len(mustCover))
	seen := set.New[int]()
	for _, m := range mustCover {
		if !seen.Contains(m) {
			seen.Add(m)
			ms = append(ms, m)
		}
	}
	sort.Ints(ms)
	c := &cover{minterms: ms, by: make([][]int, len(ms))}
	for k, m := range ms {
		for i := range primes {
			if primes[i].Covers(m) {
				c.by[k] = append(c.by[k], i)
			}
		}
		if len(c.by[k]) == 0 {
			return nil, &ContractError{Minterm: m}
		}
	}
	return c, nil
}

func pick(primes []Implicant, idx []int) []Implicant {
	sort.Ints(idx)
	out := make([]Implicant, len(idx))
	for i, k := range idx {
		out[i] = primes[k]
	}
	return out
}

// Greedy is a fast heuristic selector. Essential primes are selected first,
// then the prime covering the most uncovered minterms is selected until all
// minterms are covered. Ties are broken by fewest literals, then by order in
// the prime list.
//
// The result is not guaranteed to be minimal.
//
type Greedy struct{}

// Select implements PrimeSelector.
func (Greedy) Select(primes []Implicant, mustCover []int) ([]Implicant, error) {
	c, err := newCover(primes, mustCover)
	if err != nil {
		return nil, err
	}
	uncovered := set.New[int]()
	for k := range c.minterms {
		uncovered.Add(k)
	}
	selected := set.New[int]()
	var idx []int
	take := func(p int) {
		if selected.Contains(p) {
			return
		}
		selected.Add(p)
		idx = append(idx, p)
		for k, m := range c.minterms {
			if primes[p].Covers(m) {
				delete(uncovered, k)
			}
		}
	}

	// essential primes
	for _, ps := range c.by {
		if len(ps) == 1 {
			take(ps[0])
		}
	}

	for len(uncovered) > 0 {
		best, bestCount, bestLits := -1, 0, 0
		for p := range primes {
			if selected.Contains(p) {
				continue
			}
			n := 0
			for k, m := range c.minterms {
				if uncovered.Contains(k) && primes[p].Covers(m) {
					n++
				}
			}
			if n == 0 {
				continue
			}
			l := primes[p].Literals()
			if n > bestCount || n == bestCount && l < bestLits {
				best, bestCount, bestLits = p, n, l
			}
		}
		take(best)
	}
	return pick(primes, idx), nil
}
