package main

import "keymap-tools/internal/cli"

func main() {
	cli.Execute()
}
