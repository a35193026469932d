package main

import "tastycorner/cmd/tastyctl/commands"

func main() {
	commands.Execute()
}
