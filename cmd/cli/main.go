package main

import "github.com/pressframe/pctl/pkg/cli"

func main() {
	cli.Execute()
}
