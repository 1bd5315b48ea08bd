package main

import (
	"github.com/dcerda/craftflow/internal/adapters/cli"
)

func main() {
	cli.Execute()
}
