package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"hrdesk/internal/app/server"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("could not load .env file", "err", err)
	}
	server.Run()
}
