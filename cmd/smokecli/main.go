package main

import (
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// AWS_REGION, AWS_PROFILE and friends may live in a local .env
	_ = godotenv.Load()

	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
