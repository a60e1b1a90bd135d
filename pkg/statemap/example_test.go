package statemap_test

import (
	"errors"
	"fmt"

	"github.com/routeworks/wayfind/pkg/statemap"
)

func ExampleGraph_FindPath() {
	g, _ := statemap.FromTransitions([]statemap.Transition{
		{From: "login", To: "lobby"},
		{From: "lobby", To: "settings"},
		{From: "lobby", To: "match"},
		{From: "settings", To: "lobby"},
	})

	route, err := g.FindPath("login", "match")
	if err != nil {
		fmt.Println("no route")
		return
	}

	fmt.Println(route)
	fmt.Println("hops:", route.Hops())
	// Output:
	// [login lobby match]
	// hops: 2
}

func ExampleGraph_FindPath_noRoute() {
	g, _ := statemap.FromTransitions([]statemap.Transition{
		{From: "login", To: "lobby"},
	})

	// Directed transitions are not traversed in reverse.
	_, err := g.FindPath("lobby", "login")
	fmt.Println(errors.Is(err, statemap.ErrNoRoute))
	// Output:
	// true
}
