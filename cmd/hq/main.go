package main

import (
	"fmt"
	"os"

	"github.com/hq-cli/hq"
	_ "github.com/mtibben/androiddnsfix"
)

func main() {
	if err := hq.Main(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}
