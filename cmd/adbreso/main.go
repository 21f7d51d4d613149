package main

import (
	"fmt"
	"os"
)

var Version = "1.0.0"

func main() {
	app := NewApp(os.Stdin, os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
