package main

import (
	"github.com/jurdabos/countries-visited/internal/cli"
)

func main() {
	cli.Execute()
}
