package main

import "github.com/pfrederiksen/mma-picks/internal/cli"

func main() {
	cli.Execute()
}
