package main

import (
	"github.com/joho/godotenv"

	"yumyum/internal/cli"
	"yumyum/internal/logger"
)

func main() {
	// A .env in the working directory is optional.
	_ = godotenv.Load()

	logger.Init()
	defer logger.Sync()

	cli.Execute()
}
