package main

import "github.com/jsphweid/hovertone/cmd"

func main() {
	cmd.Execute()
}
