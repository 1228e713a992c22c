// SPDX-License-Identifier: MIT

// Command orgchart lists the sub-organization led by an employee of a reporting hierarchy.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/afero"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := execute(ctx, afero.NewOsFs(), os.Stdin, os.Stdout, os.Stderr, os.Args[1:])
	stop()

	if err != nil {
		os.Exit(1)
	}
}
