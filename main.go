package main

import (
	"os"

	"github.com/csentry/csentry/cmd"
)

func main() {
	code := cmd.Execute()
	os.Exit(code)
}
