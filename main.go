package main

import (
	"os"

	"github.com/chrysalisp-go/lisp/cmd"
)

func main() {
	if err := cmd.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
