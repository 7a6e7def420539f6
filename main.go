package main

import "wish-archive/cmd"

func main() {
	cmd.Execute()
}
