package main

import (
	"github.com/tkdr/teamgate/internal/cli"
)

func main() {
	cli.Execute()
}
