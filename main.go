package main

import (
	"os"

	"github.com/reithediver/lol-smurfguard-sub000/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
