package main

import "github.com/LegacyCodeHQ/revstamp/cmd"

func main() {
	cmd.Execute()
}
