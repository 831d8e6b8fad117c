// Command stepstone solves transportation problems with the stepping-stone
// method and prints a step-by-step report.
//
// Usage:
//
//	stepstone solve [flags] FILE     solve a YAML or JSON problem file ("-" reads stdin)
//	stepstone gen [flags]            write a random problem file
//	stepstone version                print the version
//
// Problem files hold supply, demand, costs and the optional
// supply_penalty/demand_penalty vectors.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/katalvlaran/stepstone/transport"
)

// Exit codes.
const (
	exitOK           = 0 // success
	exitError        = 1 // bad input, I/O failure or internal error
	exitNotOptimal   = 2 // the iteration limit stopped the solve
	exitVerifyFailed = 3 // --verify found a different LP optimum
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := newRootCommand(stdin, stdout, stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}

	fmt.Fprintf(stderr, "stepstone: %v\n", err)
	switch {
	case errors.Is(err, transport.ErrNonConvergence):
		return exitNotOptimal
	case errors.Is(err, errVerify):
		return exitVerifyFailed
	default:
		return exitError
	}
}
