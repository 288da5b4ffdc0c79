package cmp_test

import (
	"strconv"
	"testing"

	"github.com/plmio/go-3dx/pkg/cmp"
)

func TestSliceEq(t *testing.T) {
	if !cmp.SliceEq([]int{1, 2, 3}, []int{1, 2, 3}) {
		t.Error("equal slices should compare equal")
	}
	if cmp.SliceEq([]int{1, 2, 3}, []int{1, 2}) {
		t.Error("slices of different lengths should not compare equal")
	}
	if cmp.SliceEq([]int{1, 2, 3}, []int{3, 2, 1}) {
		t.Error("ordering should matter")
	}
}

func TestSliceEqWith(t *testing.T) {
	ok := cmp.SliceEqWith(
		[]int{1, 2, 3}, []string{"1", "2", "3"},
		func(a int, b string) bool { return strconv.Itoa(a) == b },
	)
	if !ok {
		t.Error("predicate-based comparison should succeed")
	}
}

func TestMapEq(t *testing.T) {
	if !cmp.MapEq(map[string]int{"a": 1}, map[string]int{"a": 1}) {
		t.Error("equal maps should compare equal")
	}
	if cmp.MapEq(map[string]int{"a": 1}, map[string]int{"a": 2}) {
		t.Error("maps with different values should not compare equal")
	}
	if cmp.MapEq(map[string]int{"a": 1}, map[string]int{"b": 1}) {
		t.Error("maps with different keys should not compare equal")
	}
}
