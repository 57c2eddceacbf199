package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// ENVELOPE_* settings may come from a .env file in the working directory.
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	_ = logger.Sync()
}
