package main

import (
	"fmt"
	"log"
	"os"

	"github.com/dimitrije/collaborate-api/internal/config"
	"github.com/dimitrije/collaborate-api/internal/services"
	"github.com/google/uuid"
)

// issue-token prints an access token for a user id, for local use against the API.
func main() {
	if len(os.Args) < 2 || len(os.Args) > 3 {
		fmt.Println("Usage: issue-token <user-uuid> [locale]")
		os.Exit(1)
	}

	userID, err := uuid.Parse(os.Args[1])
	if err != nil {
		log.Fatalf("Invalid user id: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	locale := cfg.DefaultLocale
	if len(os.Args) == 3 {
		locale = os.Args[2]
	}

	token, err := services.NewJWTService(cfg.JWTSecret, cfg.JWTAccessExpiry).GenerateAccessToken(userID, locale)
	if err != nil {
		log.Fatalf("Failed to sign token: %v", err)
	}

	fmt.Println(token)
}
