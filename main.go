package main

import "github.com/yeremiapane/resto-backoffice/cmd"

func main() {
	cmd.Execute()
}
