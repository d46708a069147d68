package main

import (
	"sponge/cmd"
)

func main() {
	cmd.Execute() // initialize cobra commands
}
