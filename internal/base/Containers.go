package base

import (
	"sort"
	"strings"

	"golang.org/x/exp/constraints"
)

/***************************************
 * Container helpers
 ***************************************/

func CopySlice[T any](in ...T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}

func CopyMap[K comparable, V any](in map[K]V) map[K]V {
	out := make(map[K]V, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}

func IndexOf[T comparable](match T, values ...T) (int, bool) {
	for i, x := range values {
		if x == match {
			return i, true
		}
	}
	return -1, false
}

func Contains[T comparable](arr []T, values ...T) bool {
	for _, x := range values {
		if _, ok := IndexOf(x, arr...); !ok {
			return false
		}
	}
	return true
}

func Keys[K comparable, V any](elts ...map[K]V) []K {
	n := 0
	for _, it := range elts {
		n += len(it)
	}
	off := 0
	result := make([]K, n)
	for _, it := range elts {
		for key := range it {
			result[off] = key
			off++
		}
	}
	return result
}

func SortedKeys[K constraints.Ordered, V any](elts ...map[K]V) []K {
	result := Keys(elts...)
	sort.Slice(result, func(i, j int) bool {
		return result[i] < result[j]
	})
	return result
}

/***************************************
 * String set
 ***************************************/

type StringSet []string

func NewStringSet(x ...string) StringSet {
	return StringSet(CopySlice(x...))
}

func (set StringSet) Len() int        { return len(set) }
func (set StringSet) Slice() []string { return set }
func (set StringSet) At(i int) string { return set[i] }
func (set StringSet) IsEmpty() bool   { return len(set) == 0 }
func (set StringSet) Join(delim string) string {
	return strings.Join(set, delim)
}
func (set StringSet) Contains(it ...string) bool {
	return Contains(set, it...)
}
func (set *StringSet) Append(it ...string) *StringSet {
	*set = append(*set, it...)
	return set
}
func (set *StringSet) AppendUniq(it ...string) (modified bool) {
	for _, x := range it {
		if !set.Contains(x) {
			*set = append(*set, x)
			modified = true
		}
	}
	return
}
func (set *StringSet) Prepend(it ...string) *StringSet {
	*set = append(CopySlice(it...), *set...)
	return set
}
func (set StringSet) Sort() {
	sort.Strings(set)
}
func (set StringSet) String() string {
	return set.Join(" ")
}
