// Command foundry inspects a geometry foundry directory.
//
//	foundry describe
//	foundry boundaries
//	foundry name boundary 12
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
