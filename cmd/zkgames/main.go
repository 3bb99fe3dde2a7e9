package main

import (
	"github.com/zkgames/zkgames-go/internal/cli"
)

func main() {
	cli.Execute()
}
