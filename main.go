package main

import "github.com/velium/velium/internal/cli"

func main() {
	cli.Execute()
}
