package main

import (
	"fmt"
	"os"

	"github.com/go-git/go-billy/v5/osfs"

	"mybundle/cmd"
	"mybundle/pkg/logging"
	"mybundle/pkg/rsp"
)

func main() {
	// @file arguments hold a saved command line, see create-rsp.
	args, err := rsp.Expand(osfs.New("/"), os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	err = cmd.Execute(args)
	logging.Sync()
	if err != nil {
		os.Exit(1)
	}
}
