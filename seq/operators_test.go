package seq

import (
	"fmt"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kbukum/seqkit/errors"
)

func TestFilter(t *testing.T) {
	src := []int{1, 2, 3, 4, 5, 6}
	got := View(src).Filter(func(n int) bool { return n%2 == 0 }).Collect().Slice()
	if diff := cmp.Diff([]int{2, 4, 6}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestMap_SameLengthAndOrder(t *testing.T) {
	src := []int{3, 1, 2}
	got := Map(View(src), func(n int) string { return fmt.Sprintf("#%d", n) }).Collect().Slice()
	if diff := cmp.Diff([]string{"#3", "#1", "#2"}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestMap_Method(t *testing.T) {
	got := View([]int{1, 2, 3}).Map(func(n int) int { return n + 1 }).Collect().Slice()
	if diff := cmp.Diff([]int{2, 3, 4}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestTake(t *testing.T) {
	src := []int{1, 2, 3, 4, 5}
	tests := []struct {
		n    int
		want []int
	}{
		{0, []int{}},
		{1, []int{1}},
		{3, []int{1, 2, 3}},
		{5, []int{1, 2, 3, 4, 5}},
		{10, []int{1, 2, 3, 4, 5}},
	}
	for _, tc := range tests {
		t.Run(fmt.Sprintf("n=%d", tc.n), func(t *testing.T) {
			got := View(src).Take(tc.n).Collect().Slice()
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTake_ZeroNeverPullsSource(t *testing.T) {
	pulls := 0
	got := Entry(counted(Naturals(), &pulls)).Take(0).Collect().Slice()
	if len(got) != 0 {
		t.Errorf("expected empty, got %v", got)
	}
	if pulls != 0 {
		t.Errorf("expected no pulls, got %d", pulls)
	}
}

func TestDrop(t *testing.T) {
	src := []int{1, 2, 3, 4, 5}
	tests := []struct {
		n    int
		want []int
	}{
		{0, []int{1, 2, 3, 4, 5}},
		{2, []int{3, 4, 5}},
		{5, []int{}},
		{7, []int{}},
	}
	for _, tc := range tests {
		t.Run(fmt.Sprintf("n=%d", tc.n), func(t *testing.T) {
			got := View(src).Drop(tc.n).Collect().Slice()
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTakeWhile_StopsAtFirstFailure(t *testing.T) {
	src := []int{1, 2, 3, 10, 1, 2}
	got := View(src).TakeWhile(func(n int) bool { return n < 5 }).Collect().Slice()
	if diff := cmp.Diff([]int{1, 2, 3}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestTakeWhile_AllPassAndNonePass(t *testing.T) {
	src := []int{1, 2, 3}
	all := View(src).TakeWhile(func(int) bool { return true }).Collect().Slice()
	if diff := cmp.Diff(src, all); diff != "" {
		t.Errorf("all-pass mismatch (-want +got):\n%s", diff)
	}
	none := View(src).TakeWhile(func(int) bool { return false }).Collect().Slice()
	if len(none) != 0 {
		t.Errorf("expected empty, got %v", none)
	}
}

func TestNegativeCountPanics(t *testing.T) {
	expectPanicCode(t, errors.ErrCodeInvalidArgument, func() { View([]int{1}).Take(-1) })
	expectPanicCode(t, errors.ErrCodeInvalidArgument, func() { View([]int{1}).Drop(-3) })
}

func TestScenario_FilterEvenThenHalfSquare(t *testing.T) {
	got := Map(
		View([]int{1, 2, 3, 4, 5}).Filter(func(n int) bool { return n%2 == 0 }),
		func(n int) float64 { return float64(n*n) / 2.0 },
	).Collect().Slice()
	if diff := cmp.Diff([]float64{2.0, 8.0}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestScenario_TakeThenSquare(t *testing.T) {
	got := View([]int{1, 2, 3, 4, 5}).Take(3).Map(func(n int) int { return n * n }).Collect().Slice()
	if diff := cmp.Diff([]int{1, 4, 9}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestScenario_EmptySourceAnyPipeline(t *testing.T) {
	build := func() *Adaptor[int] {
		return Map(
			View([]int{}).
				Filter(func(int) bool { return true }).
				Drop(1).
				TakeWhile(func(int) bool { return true }).
				Take(4),
			func(n int) int { return n * 2 },
		)
	}
	if got := build().Collect().Slice(); len(got) != 0 {
		t.Errorf("slice: expected empty, got %v", got)
	}
	if got := ToSet(build().Iter()); got.Len() != 0 {
		t.Errorf("set: expected empty, got %d values", got.Len())
	}
	if got := As[SortedSet[int]](build().Collect()); got.Len() != 0 {
		t.Errorf("sorted set: expected empty, got %d values", got.Len())
	}
	if got := Into(Map(build(), func(n int) Pair[int, int] { return KV(n, n) }).Collect(), ToMap[int, int]); len(got) != 0 {
		t.Errorf("map: expected empty, got %v", got)
	}
}

func TestChainOrderIsPreserved(t *testing.T) {
	src := []int{1, 2, 3, 4, 5, 6}
	isEven := func(n int) bool { return n%2 == 0 }
	inc := func(n int) int { return n + 1 }

	filterThenMap := View(src).Filter(isEven).Map(inc).Collect().Slice()
	mapThenFilter := View(src).Map(inc).Filter(isEven).Collect().Slice()

	if diff := cmp.Diff([]int{3, 5, 7}, filterThenMap); diff != "" {
		t.Errorf("filter->map mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{2, 4, 6}, mapThenFilter); diff != "" {
		t.Errorf("map->filter mismatch (-want +got):\n%s", diff)
	}

	dropThenTake := View(src).Drop(2).Take(2).Collect().Slice()
	takeThenDrop := View(src).Take(2).Drop(2).Collect().Slice()
	if diff := cmp.Diff([]int{3, 4}, dropThenTake); diff != "" {
		t.Errorf("drop->take mismatch (-want +got):\n%s", diff)
	}
	if len(takeThenDrop) != 0 {
		t.Errorf("take->drop: expected empty, got %v", takeThenDrop)
	}
}

func TestLaziness_NoCallsUntilMaterialized(t *testing.T) {
	calls := 0
	pulls := 0
	m := Map(
		Entry(counted(slices.Values([]int{1, 2, 3}), &pulls)).
			Filter(func(int) bool { calls++; return true }).
			TakeWhile(func(int) bool { calls++; return true }),
		func(n int) int { calls++; return n },
	).Drop(0).Take(3).Collect()

	if calls != 0 || pulls != 0 {
		t.Fatalf("expected no work before materialization, got %d calls and %d pulls", calls, pulls)
	}

	got := m.Slice()
	if len(got) != 3 {
		t.Fatalf("expected 3 values, got %v", got)
	}
	if calls != 9 {
		t.Errorf("expected each function once per element (9 calls), got %d", calls)
	}
}

func TestLaziness_ShortCircuitSkipsDownstreamWork(t *testing.T) {
	mapped := 0
	got := Map(View([]int{1, 2, 3, 4, 5}), func(n int) int { mapped++; return n }).
		Take(2).Collect().Slice()
	if len(got) != 2 {
		t.Fatalf("expected 2 values, got %v", got)
	}
	if mapped != 2 {
		t.Errorf("expected map to run only for pulled elements (2), got %d", mapped)
	}
}

func TestInfinite_TakeTerminates(t *testing.T) {
	pulls := 0
	got := Entry(counted(Naturals(), &pulls)).
		Filter(func(n int) bool { return n%3 == 0 }).
		Take(4).Collect().Slice()
	if diff := cmp.Diff([]int{0, 3, 6, 9}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if pulls != 10 {
		t.Errorf("expected 10 pulls (0..9), got %d", pulls)
	}
}

func TestInfinite_TakeWhileTerminates(t *testing.T) {
	pulls := 0
	got := Entry(counted(Naturals(), &pulls)).
		Drop(1).
		TakeWhile(func(n int) bool { return n*n < 20 }).
		Collect().Slice()
	if diff := cmp.Diff([]int{1, 2, 3, 4}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	// 0 is dropped, 1..4 pass, 5 fails and ends traversal.
	if pulls != 6 {
		t.Errorf("expected 6 pulls, got %d", pulls)
	}
}
