package main

import "github.com/mkaran/planetary-api/internal/cli"

func main() {
	cli.Execute()
}
