package main

import "github.com/twiced-technology-gmbh/weightboard/cmd"

func main() {
	cmd.Execute()
}
