// Command planifica plans and tracks savings goals from the terminal.
package main

import "github.com/theirongolddev/planifica/cmd"

func main() {
	cmd.Execute()
}
