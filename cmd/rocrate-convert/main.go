package main

import "rocrate-convert/internal/cli"

func main() {
	cli.Execute()
}
