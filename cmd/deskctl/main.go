// Command deskctl is the operator CLI: CSV export and archiving, search,
// token minting and fixture seeding against the configured database.
package main

import (
	"fmt"
	"os"
)

func main() {
	a := &App{}
	err := newRootCmd(a).Execute()
	a.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
