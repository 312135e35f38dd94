package main

import "github.com/KaramelBytes/bibloom-cli/cmd"

func main() {
	cmd.Execute()
}
