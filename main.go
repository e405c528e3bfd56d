package main

import "github.com/gaurav-prasanna/markgen/cmd"

func main() {
	cmd.Execute()
}
