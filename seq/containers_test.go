package seq

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSet_ZeroValue(t *testing.T) {
	var s Set[string]
	if s.Len() != 0 || s.Contains("a") {
		t.Fatal("zero Set should be empty")
	}
	s.Insert("a")
	s.Insert("a")
	if s.Len() != 1 || !s.Contains("a") {
		t.Errorf("expected {a}, got len %d", s.Len())
	}
}

func TestNewSet_All(t *testing.T) {
	s := NewSet(3, 1, 2, 3)
	got := slices.Sorted(s.All())
	if diff := cmp.Diff([]int{1, 2, 3}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestSortedSet_ZeroValue(t *testing.T) {
	var s SortedSet[int]
	if s.Len() != 0 || s.Contains(1) {
		t.Fatal("zero SortedSet should be empty")
	}
	if _, ok := s.Min(); ok {
		t.Error("Min on empty set should report false")
	}
	if _, ok := s.Max(); ok {
		t.Error("Max on empty set should report false")
	}
	if got := s.Values(); len(got) != 0 {
		t.Errorf("expected no values, got %v", got)
	}
}

func TestSortedSet_OrderAndBounds(t *testing.T) {
	var s SortedSet[int]
	for _, v := range []int{42, 7, 19, 7, -3} {
		s.Insert(v)
	}
	if diff := cmp.Diff([]int{-3, 7, 19, 42}, s.Values()); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if lo, _ := s.Min(); lo != -3 {
		t.Errorf("expected min -3, got %d", lo)
	}
	if hi, _ := s.Max(); hi != 42 {
		t.Errorf("expected max 42, got %d", hi)
	}
	if !s.Contains(19) || s.Contains(8) {
		t.Error("unexpected Contains result")
	}
}

func TestSortedSet_AllStopsEarly(t *testing.T) {
	s := ToSortedSet(Range(0, 100))
	first := Entry(s.All()).Take(3).Collect().Slice()
	if diff := cmp.Diff([]int{0, 1, 2}, first); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}
