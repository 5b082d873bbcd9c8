package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mirelis/flux/demo"
)

func main() {
	first := flag.Int("first", 1, "first integer emitted")
	last := flag.Int("last", 10, "last integer emitted")
	flag.Parse()

	if err := demo.Run(*first, *last, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "flux-demo:", err)
		os.Exit(1)
	}
}
