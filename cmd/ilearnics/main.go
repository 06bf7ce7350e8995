package main

import (
	"github.com/joho/godotenv"

	"ilearnics/internal/cli"
)

func main() {
	// Local runs keep credentials and course ids in .env; CI injects
	// real environment variables and has no .env file, so a miss is fine.
	_ = godotenv.Load()

	cli.Execute()
}
