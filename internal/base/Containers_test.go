package base

import (
	"slices"
	"sort"
	"testing"
)

func TestIndexOfInts(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	if i, ok := IndexOf(1, items...); !ok || i != 0 {
		t.Errorf("invalid indexof: %v != %v || %v != %v", ok, true, i, 0)
	}
	if i, ok := IndexOf(5, items...); !ok || i != len(items)-1 {
		t.Errorf("invalid indexof: %v != %v || %v != %v", ok, true, i, len(items)-1)
	}
	if i, ok := IndexOf(6, items...); ok || i != -1 {
		t.Errorf("invalid indexof: %v != %v || %v != %v", ok, false, i, -1)
	}
}

func TestContainsInts(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	if !Contains(items, 1, 3, 5) {
		t.Errorf("expected %v to contain 1, 3 and 5", items)
	}
	if Contains(items, 1, 6) {
		t.Errorf("did not expect %v to contain 6", items)
	}
	if !Contains(items) {
		t.Errorf("expected every slice to contain nothing")
	}
}

func TestCopySliceIsDetached(t *testing.T) {
	items := []int{1, 2, 3}
	copied := CopySlice(items...)
	copied[0] = 42
	if items[0] != 1 {
		t.Errorf("copy should not alias its input, got %v", items)
	}
}

func TestCopyMapIsDetached(t *testing.T) {
	items := map[string]int{"a": 1, "b": 2}
	copied := CopyMap(items)
	copied["a"] = 42
	copied["c"] = 3
	if items["a"] != 1 || len(items) != 2 {
		t.Errorf("copy should not alias its input, got %v", items)
	}
}

func TestKeys(t *testing.T) {
	keys := Keys(map[int]bool{1: true, 2: false}, map[int]bool{3: true})
	sort.Ints(keys)
	if !slices.Equal(keys, []int{1, 2, 3}) {
		t.Errorf("invalid keys: %v", keys)
	}
}

func TestSortedKeys(t *testing.T) {
	keys := SortedKeys(map[string]int{"c": 3, "a": 1, "b": 2})
	if !slices.Equal(keys, []string{"a", "b", "c"}) {
		t.Errorf("invalid sorted keys: %v", keys)
	}
}

func TestStringSetAppendUniq(t *testing.T) {
	set := NewStringSet("b", "a")
	if !set.AppendUniq("a", "c") {
		t.Errorf("expected AppendUniq to modify the set")
	}
	if set.AppendUniq("c") {
		t.Errorf("did not expect AppendUniq to modify the set")
	}
	set.Prepend("z")
	if got := set.Join(","); got != "z,b,a,c" {
		t.Errorf("invalid set: %q", got)
	}
	set.Sort()
	if got := set.String(); got != "a b c z" {
		t.Errorf("invalid sorted set: %q", got)
	}
}
