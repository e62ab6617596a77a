package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/cmd"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/cli"
)

func main() {
	err := cmd.Execute()
	if err != nil {
		// a *cli.CommandError was already reported by the output formatter
		var cmdErr *cli.CommandError
		if !errors.As(err, &cmdErr) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
	}
	os.Exit(cli.ExitCodeFor(err))
}
