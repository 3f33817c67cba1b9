// Command cothread-demo runs one of the ported original_source demos
// through the hosted bootstrap.Run driver.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/nmxmxh/cothread/internal/bootstrap"
	"github.com/nmxmxh/cothread/internal/demos"
	"github.com/nmxmxh/cothread/internal/threadcore"
)

var setups = map[string]func(*threadcore.Table){
	"yielding":        demos.Yielding,
	"exyielding":      demos.ExYielding,
	"message":         demos.Message,
	"exit":            demos.Exit,
	"printthreadname": demos.PrintThreadName,
}

func main() {
	name := flag.String("demo", "yielding", "demo to run: yielding, exyielding, message, exit, printthreadname")
	flag.Parse()

	setup, ok := setups[*name]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown demo %q\n", *name)
		os.Exit(2)
	}

	if err := bootstrap.Run(bootstrap.Params{
		Config: threadcore.DefaultConfig(),
		Setup:  setup,
	}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
