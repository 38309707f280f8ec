package main

import (
	"os"

	"github.com/masonpham16/TalkDoc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
