package main

import "github.com/aweris/plist/cmd/plist/cmd"

func main() {
	cmd.Execute()
}
