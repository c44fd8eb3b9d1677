package main

import "tripletmatch/cmd"

func main() {
	cmd.Execute()
}
