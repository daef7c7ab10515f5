package main

import (
	"os"

	"github.com/arthur-debert/jungle/cmd/jungle"
)

func main() {
	os.Exit(jungle.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
