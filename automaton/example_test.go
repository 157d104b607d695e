// SPDX-License-Identifier: MIT

package automaton_test

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/lvmatch/arena"
	"github.com/katalvlaran/lvmatch/automaton"
	"github.com/katalvlaran/lvmatch/pattern"
)

// ExampleAutomaton_Scan reports every keyword occurrence in "ushers",
// overlapping ones included.
func ExampleAutomaton_Scan() {
	a, err := automaton.Compile([]pattern.Pattern{
		pattern.New(1, "he"),
		pattern.New(2, "she"),
		pattern.New(3, "his"),
		pattern.New(4, "hers"),
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	var ms automaton.Matches
	found := a.Scan([]byte("ushers"), &ms)
	fmt.Println("found:", found)
	for _, m := range ms {
		fmt.Printf("id=%d [%d,%d)\n", m.Pattern, m.Start, m.End)
	}
	// Output:
	// found: true
	// id=2 [1,4)
	// id=1 [2,4)
	// id=4 [2,6)
}

// ExampleScanner_Feed streams a keyword split across two chunks.
func ExampleScanner_Feed() {
	a, _ := automaton.Compile([]pattern.Pattern{pattern.New(7, "token")})
	sc := a.NewScanner()
	report := func(m automaton.Match) { fmt.Printf("id=%d end=%d\n", m.Pattern, m.End) }

	sc.Feed([]byte("my tok"), report)
	sc.Feed([]byte("en here"), report)
	// Output:
	// id=7 end=8
}

// ExampleBuild draws an automaton from a shared, fixed-capacity pool and
// shows the exhaustion error when the pool is too small.
func ExampleBuild() {
	ps := []pattern.Pattern{pattern.New(1, "abc"), pattern.New(2, "abd")}

	pool, _ := arena.NewPool(arena.Capacity{States: 4, Transitions: 8, QueueElems: 8})
	lease, _ := pool.Begin()
	_, err := automaton.Build(lease, 1, ps)
	fmt.Println(strings.Contains(err.Error(), "state capacity exhausted"))
	lease.Release()

	pool, _ = arena.NewPool(arena.Capacity{States: 5, Transitions: 8, QueueElems: 8})
	lease, _ = pool.Begin()
	a, err := automaton.Build(lease, 1, ps)
	fmt.Println(err, a.Len(), a.Contains([]byte("xxabd")))
	// Output:
	// true
	// <nil> 5 true
}
