package main

import "github.com/tabletalk/tabletalk/cmd"

func main() {
	cmd.Execute()
}
