package main

import "github.com/docuforge/docuforge/cmd"

func main() {
	cmd.Execute()
}
