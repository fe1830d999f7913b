package main

import "github.com/inovacc/odoocli/cmd"

func main() {
	cmd.Execute()
}
