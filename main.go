package main

import (
	"github.com/docfold/docfold/cmd"
)

func main() {
	cmd.Execute()
}
