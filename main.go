package main

import (
	"os"

	"github.com/sarif-view/sarif-view/cmd"
)

func main() {
	code := cmd.Execute()
	os.Exit(code)
}
