package main

import "github.com/gaurav-prasanna/markpipe/cmd"

func main() {
	cmd.Execute()
}
