package main

import "github.com/astrandb/vader/cmd"

func main() {
	cmd.Execute()
}
