package main

import "github.com/jsphweid/scorelayout/cmd"

func main() {
	cmd.Execute()
}
