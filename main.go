package main

import "github.com/nickng/chopsticks/cmd"

func main() {
	cmd.Execute()
}
