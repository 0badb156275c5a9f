package config

import (
	"log"

	"github.com/joho/godotenv"
)

// LoadEnv pulls a local .env file into the process environment when
// present. Missing files are fine, production sets real env vars.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using process environment")
	}
}
