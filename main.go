// Command cxls is a persistent code-intelligence server: an editor attaches
// over stdin/stdout and keeps a long-lived libclang session alive for
// completion, diagnostics, and cross-file symbol location.
package main

import "github.com/daedaleanai/cxls/internal/cli"

func main() {
	cli.Execute()
}
