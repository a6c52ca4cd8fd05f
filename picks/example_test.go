package picks_test

import (
	"fmt"

	"github.com/cwbudde/algo-picks/picks"
)

func ExampleDecode() {
	for _, cell := range []string{"[1234]", "87", "null", "[]", "[12"} {
		v, outcome := picks.Decode(cell)
		fmt.Println(v, outcome)
	}
	// Output:
	// 1234 decoded
	// 87 decoded
	// 0 null
	// 0 empty
	// 0 malformed
}

func ExampleSelect() {
	cells := []string{"[100]", "null", "[130]", "[5000]"}
	s := picks.Select(cells, 4, picks.Range{Max: picks.At(1000)})
	fmt.Println(s.Offsets, s.Times)
	// Output:
	// [4 6] [100 130]
}
