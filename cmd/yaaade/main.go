package main

import "github.com/yrrapt/yaaade/internal/cli"

func main() {
	cli.Execute()
}
