package main

import "fanctl/cmd/fanctl/commands"

func main() {
	commands.Execute()
}
