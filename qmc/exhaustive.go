// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package qmc

import (
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/retroenv/retrogolib/set"
)

// DefaultPrimeLimit is the default maximum prime count for Exhaustive.
//
const DefaultPrimeLimit = 64

// ErrTooManyPrimes is returned by Exhaustive when the prime count exceeds its
// limit.
//
var ErrTooManyPrimes = errors.New("too many prime implicants for exhaustive selection")

// Exhaustive is a selector that always returns a minimal cover: the cover
// with the fewest terms, then the fewest literals. It runs in exponential
// time and is meant for small functions and for checking other selectors.
//
type Exhaustive struct {
	// Limit is the maximum number of primes accepted. 0 means
	// DefaultPrimeLimit.
	Limit int
}

// Select implements PrimeSelector.
func (x *Exhaustive) Select(primes []Implicant, mustCover []int) ([]Implicant, error) {
	sols, err := x.search(primes, mustCover)
	if err != nil {
		return nil, err
	}
	return pick(primes, sols[0]), nil
}

// SelectAll returns all the covers with the minimal number of terms, sorted
// by literal count, then by prime order.
//
func (x *Exhaustive) SelectAll(primes []Implicant, mustCover []int) ([][]Implicant, error) {
	sols, err := x.search(primes, mustCover)
	if err != nil {
		return nil, err
	}
	out := make([][]Implicant, len(sols))
	for i, s := range sols {
		out[i] = pick(primes, s)
	}
	return out, nil
}

func (x *Exhaustive) limit() int {
	if x.Limit <= 0 {
		return DefaultPrimeLimit
	}
	return x.Limit
}

type search struct {
	by     [][]int // primes covering each minterm
	covers [][]int // minterms covered by each prime
	counts []int   // how many chosen primes cover each minterm
	chosen []int
	sols   [][]int
	seen   set.Set[string]
}

func (x *Exhaustive) search(primes []Implicant, mustCover []int) ([][]int, error) {
	c, err := newCover(primes, mustCover)
	if err != nil {
		return nil, err
	}
	if len(primes) > x.limit() {
		return nil, ErrTooManyPrimes
	}
	s := &search{
		by:     c.by,
		covers: make([][]int, len(primes)),
		counts: make([]int, len(c.minterms)),
		seen:   set.New[string](),
	}
	for k, ps := range c.by {
		for _, p := range ps {
			s.covers[p] = append(s.covers[p], k)
		}
	}
	// iterative deepening: the first depth with a solution is minimal.
	for d := 0; d <= len(primes); d++ {
		s.dfs(d)
		if len(s.sols) > 0 {
			break
		}
	}

	lits := func(sol []int) int {
		n := 0
		for _, p := range sol {
			n += primes[p].Literals()
		}
		return n
	}
	sort.SliceStable(s.sols, func(i, j int) bool {
		a, b := s.sols[i], s.sols[j]
		if la, lb := lits(a), lits(b); la != lb {
			return la < lb
		}
		for k := range a {
			if a[k] != b[k] {
				return a[k] < b[k]
			}
		}
		return false
	})
	return s.sols, nil
}

func (s *search) dfs(depth int) {
	k := -1
	for i, n := range s.counts {
		if n == 0 {
			k = i
			break
		}
	}
	if k < 0 {
		s.record()
		return
	}
	if depth == 0 {
		return
	}
	for _, p := range s.by[k] {
		s.add(p, 1)
		s.chosen = append(s.chosen, p)
		s.dfs(depth - 1)
		s.chosen = s.chosen[:len(s.chosen)-1]
		s.add(p, -1)
	}
}

func (s *search) add(p, delta int) {
	for _, k := range s.covers[p] {
		s.counts[k] += delta
	}
}

func (s *search) record() {
	sol := append([]int(nil), s.chosen...)
	sort.Ints(sol)
	var b strings.Builder
	for _, p := range sol {
		b.WriteString(strconv.Itoa(p))
		b.WriteByte(',')
	}
	key := b.String()
	if s.seen.Contains(key) {
		return
	}
	s.seen.Add(key)
	s.sols = append(s.sols, sol)
}
