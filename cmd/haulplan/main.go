package main

import (
	"github.com/andrescamacho/haulplan/internal/adapters/cli"
)

func main() {
	cli.Execute()
}
