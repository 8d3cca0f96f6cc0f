// Package main provides the tfnp CLI, which inspects the TensorFlow-shaped
// namespace and the configuration it is built with.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
