package main

import "github.com/sail-dex/pokedex/cmd"

func main() {
	cmd.Execute()
}
