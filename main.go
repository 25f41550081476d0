// main.go
package main

import "github.com/fauxchat/fauxchat-cli/cmd"

func main() {
	cmd.Execute()
}
