package main

import (
	"log"
	"telegram-calls/cmd"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional, deployments usually set env vars directly
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		log.Fatalf("could not start application: %v", err)
	}
}
