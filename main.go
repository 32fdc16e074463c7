package main

import "github.com/icmd-sh/icmd/cmd"

func main() {
	cmd.Execute()
}
