// Package fixture generates randomized inputs for parameterized tests.
package fixture

import (
	"math/rand/v2"

	"github.com/samber/lo"
)

const (
	intCount        = 10
	intSliceCount   = 2 * intCount
	maxSliceLen     = 30
	stringCollCount = 10
)

var stringInstances = []string{
	"", "abc", "Abjh45", "ch1", "5662", "ch2", "ch3", "ch4", "ch5",
	"chaine6", "chaine7", "chaine8", "chaine10", "chaine11", "chaine12",
}

var objectInstances = []any{nil, struct{}{}, "abc", 1}

// Source produces test data from a seeded random generator, so a failing
// test can be reproduced by reusing its seed.
type Source struct {
	rand *rand.Rand
	seed uint64
}

func New(seed uint64) *Source {
	return &Source{
		rand: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		seed: seed,
	}
}

func (this *Source) Seed() uint64 {
	return this.seed
}

func (this *Source) Bool() bool {
	return this.rand.IntN(2) == 1
}

// Intn returns a number in [0, n). It panics if n <= 0.
func (this *Source) Intn(n int) int {
	return this.rand.IntN(n)
}

// Int returns a number from the whole int range, negatives included.
func (this *Source) Int() int {
	return int(this.rand.Uint64())
}

// Ints returns n numbers in [min, max).
func (this *Source) Ints(n, min, max int) []int {
	return lo.Times(n, func(int) int {
		return min + this.rand.IntN(max-min)
	})
}

// IntSlices returns a nil slice, an empty slice and a batch of slices of
// random length whose random-length prefix holds random values.
func (this *Source) IntSlices() [][]int {
	slices := make([][]int, 0, intSliceCount+2)
	slices = append(slices, nil, []int{})
	for range intSliceCount {
		size := this.rand.IntN(maxSliceLen)
		s := make([]int, size)
		filled := 0
		if size > 0 {
			filled = this.rand.IntN(size)
		}
		for j := range filled {
			s[j] = this.Int()
		}
		slices = append(slices, s)
	}
	return slices
}

// Strings returns at most max of the fixed string instances.
func (this *Source) Strings(max int) []string {
	if max > len(stringInstances) {
		max = len(stringInstances)
	}
	return append([]string(nil), stringInstances[:max]...)
}

// Objects returns values of assorted dynamic types, nil included.
func (this *Source) Objects() []any {
	objects := make([]any, 0, len(stringInstances)+len(objectInstances))
	for _, s := range stringInstances {
		objects = append(objects, s)
	}
	return append(objects, objectInstances...)
}

// StringCollections returns n string collections: nil, empty and random
// sub-lists of the fixed strings. Roughly half of the sub-lists have set
// semantics and hold no duplicates.
func (this *Source) StringCollections(n int) [][]string {
	colls := make([][]string, 0, n)
	colls = append(colls, []string{}, nil)
	for len(colls) < n {
		list := RandomSubList(this, stringInstances)
		if this.Bool() {
			list = lo.Uniq(list)
		}
		colls = append(colls, list)
	}
	return colls[:n]
}

func (this *Source) DefaultStringCollections() [][]string {
	return this.StringCollections(stringCollCount)
}

// RandomSubList returns a random contiguous part of l, possibly empty.
func RandomSubList[T any](src *Source, l []T) []T {
	if len(l) == 0 {
		return []T{}
	}
	upper := src.rand.IntN(len(l))
	lower := src.rand.IntN(upper + 1)
	sub := make([]T, upper-lower)
	copy(sub, l[lower:upper])
	return sub
}

// RandomElement returns a random element of l. It panics if l is empty.
func RandomElement[T any](src *Source, l []T) T {
	return l[src.rand.IntN(len(l))]
}
