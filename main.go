package main

import "commitpulse/cmd"

func main() {
	cmd.Execute()
}
