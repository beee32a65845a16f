package main

import (
	"fmt"
	"log"
	"os"

	g "github.com/anacrolix/generics"

	"github.com/aglyzov/go-veb/veb"
)

func show(o g.Option[int]) string {
	if !o.Ok {
		return "none"
	}
	return fmt.Sprint(o.Value)
}

func main() {
	s, err := veb.New[int](16)
	if err != nil {
		log.Fatal(err)
	}

	for _, key := range []int{3, 7, 10, 1} {
		if _, err := s.Add(key); err != nil {
			log.Fatal(err)
		}
	}

	if err := s.Dump(os.Stdout); err != nil {
		log.Fatal(err)
	}

	println("------")

	fmt.Printf("min=%s max=%s\n", show(s.Min()), show(s.Max()))

	for _, key := range []int{0, 3, 7, 15} {
		succ, _ := s.Successor(key)
		pred, _ := s.Predecessor(key)
		fmt.Printf("key=%-2d succ=%s pred=%s\n", key, show(succ), show(pred))
	}

	s.Del(7)

	visitor := func(key int) bool {
		fmt.Printf("%d\n", key)
		return true
	}
	s.Iter(visitor)

	if _, err := s.Add(16); err != nil {
		fmt.Printf("Add(16): %v\n", err)
	}
}
