package main

import "github.com/lvaldes/statecraft/internal/adapters/cli"

func main() {
	cli.Execute()
}
