// Command libraryctl runs the library circulation service and its maintenance tasks.
package main

import (
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
