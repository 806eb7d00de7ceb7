package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/silver-fir/taxon/cmd/taxon/cmd"
)

func main() {
	// A missing .env is fine; explicit environment always wins.
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
