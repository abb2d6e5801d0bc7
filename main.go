package main

import "github.com/gaurav-prasanna/accesslens/cmd"

func main() {
	cmd.Execute()
}
