package main

import "github.com/LegacyCodeHQ/sweep/cmd"

func main() {
	cmd.Execute()
}
