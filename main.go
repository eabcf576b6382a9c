package main

import "github.com/bloodmagesoftware/motoed/cmd"

func main() {
	cmd.Execute()
}
