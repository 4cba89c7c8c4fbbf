package main

import "ikonograf/cmd/ikonograf-cli/cmd"

func main() {
	cmd.Execute()
}
