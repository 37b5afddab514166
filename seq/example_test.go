package seq_test

import (
	"fmt"

	"github.com/kbukum/seqkit/seq"
)

func Example() {
	values := []int{1, 2, 3, 4, 5}
	halves := seq.Map(
		seq.View(values).Filter(func(n int) bool { return n%2 == 0 }),
		func(n int) float64 { return float64(n*n) / 2 },
	).Collect().Slice()
	fmt.Println(halves)
	// Output: [2 8]
}

func ExampleAs() {
	ids := seq.As[seq.SortedSet[string]](seq.FromSlice([]string{"b", "c", "a", "b"}).Collect())
	fmt.Println(ids.Values())
	// Output: [a b c]
}

func ExampleAdaptor_TakeWhile() {
	squares := seq.Map(seq.Entry(seq.Naturals()).Drop(1), func(n int) int { return n * n })
	fmt.Println(squares.TakeWhile(func(n int) bool { return n < 50 }).Collect().Slice())
	// Output: [1 4 9 16 25 36 49]
}
