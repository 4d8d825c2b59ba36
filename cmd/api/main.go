package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/voltshop/storefront-api/internal/app/api"
)

func main() {
	// Local development keeps its settings in .env; production injects real
	// environment variables, so a missing file is fine.
	_ = godotenv.Load()

	if err := api.Run(context.Background()); err != nil {
		log.Fatalf("storefront api failed: %v", err)
	}
}
