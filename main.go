package main

import "github.com/KaramelBytes/wardbot/cmd"

func main() {
	cmd.Execute()
}
