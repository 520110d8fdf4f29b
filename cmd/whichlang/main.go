package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/whichlang/whichlang/internal/cli"
)

func main() {
	// A local .env may carry GITHUB_TOKEN; absence is fine.
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
