package main

import (
	"fmt"
	"os"

	"github.com/aketzali/minic/cmd/minic/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
