package main

import "github.com/cronman/cronman/cmd"

func main() {
	cmd.Execute()
}
