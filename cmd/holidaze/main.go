package main

import "github.com/vicwinsj/holidaze/cmd"

func main() {
	cmd.Execute()
}
