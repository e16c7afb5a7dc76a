package main

import (
	"fmt"
	"os"

	"github.com/go-spatial/gridoverlay/cmd/gridoverlay/cmd"
)

// registry cleanup hooks, appended to by the *_reg.go files
var cleanupFns []func()

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	if e, ok := err.(cmd.ErrExitWith); ok {
		if e.ShowUsage {
			cmd.Root.Usage()
		}
		fmt.Fprintln(os.Stderr, e.Error())
		return e.ExitCode
	}
	fmt.Fprintln(os.Stderr, "error:", err)
	return 1
}

func main() {
	code := exitCode(cmd.Root.Execute())
	for i := len(cleanupFns) - 1; i >= 0; i-- {
		if cleanupFns[i] != nil {
			cleanupFns[i]()
		}
	}
	os.Exit(code)
}
