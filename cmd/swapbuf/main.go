package main

import "github.com/rustyeddy/swapbuffer/internal/cli"

func main() {
	cli.Execute()
}
