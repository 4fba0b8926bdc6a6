package main

import "github.com/rlackeyseattle/vynl-pro/cmd"

func main() {
	cmd.Execute()
}
