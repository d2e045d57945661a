package main

import "github.com/iksnae/opencode-chat/cmd"

func main() {
	cmd.Execute()
}
