package panel_test

import (
	"fmt"

	"github.com/matzehuels/graphbash/pkg/panel"
)

func ExampleDirections_String() {
	fmt.Println(panel.Left | panel.UpRight)
	fmt.Println(panel.UpRight | panel.DownLeft)
	fmt.Println(panel.UpDown | panel.AllAtOnce)
	// Output:
	// L
	// UR|DL
	// UD
}

func ExampleShortestCode() {
	g := panel.NewGraph()
	g.AddMove(0, 1, panel.Right)
	g.AddMove(1, 2, panel.Right)
	g.AddMove(0, 2, panel.DownRight)

	code, cost, err := panel.ShortestCode(g, 0, 2, panel.DefaultCostPolicy())
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(panel.FormatCode(code), cost)
	// Output:
	// DR 1.1
}
