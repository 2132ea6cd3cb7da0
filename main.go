package main

import "github.com/duyet/i/cmd"

func main() {
	cmd.Execute()
}
