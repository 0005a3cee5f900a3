package main

import "github.com/Beastly713/pensieve/cmd"

func main() {
	cmd.Execute()
}
