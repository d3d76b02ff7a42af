package main

import "migration-manager/cmd"

func main() {
	cmd.Execute()
}
