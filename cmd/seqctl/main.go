// Command seqctl validates and runs pipeline definition files locally.
package main

import "os"

func main() {
	os.Exit(int(Run(os.Args[1:])))
}
