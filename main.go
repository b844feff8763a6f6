package main

import "github.com/sqclip/sqclip/internal/cli"

func main() {
	cli.Main()
}
