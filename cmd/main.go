// cmd/main.go
package main

import cmd "github.com/mwiater/plottimings/cmd/plottimings"

// main starts the plottimings CLI by delegating to the cobra root command.
func main() {
	cmd.Execute()
}
