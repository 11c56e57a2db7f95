// Command gobench is a host binary for running a package's registered
// benchmark families from the command line, without any benchmarks of
// its own registered: real usage imports gobench, registers families in
// an init(), and reuses this cmd package from its own main().
package main

import (
	"github.com/gobench-project/gobench/cmd/gobench/cmd"
)

func main() {
	cmd.Execute()
}
