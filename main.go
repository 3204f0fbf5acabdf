package main

import "github.com/kasuboski/gapz/cmd"

func main() {
	cmd.Execute()
}
