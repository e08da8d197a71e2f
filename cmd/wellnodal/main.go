// Command wellnodal is the CLI for offline geometry merging and database
// administration.
package main

import "github.com/turtacn/WellNodal/internal/interfaces/cli"

func main() {
	cli.Execute()
}
