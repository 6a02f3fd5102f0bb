package main

import (
	"flag"
	"fmt"
	"os"

	"guideadmin/internal/shared/auth"
	"guideadmin/internal/shared/config"
)

func main() {
	token := flag.String("token", "", "Session token to verify")
	flag.Parse()

	if *token == "" {
		fmt.Fprintln(os.Stderr, "Error: -token flag is required")
		fmt.Fprintln(os.Stderr, "Usage: go run ./cmd/verify-session -token=<SESSION_TOKEN>")
		os.Exit(1)
	}

	cfg := config.Load()

	fmt.Printf("🔍 Verifying session token...\n\n")
	fmt.Printf("Config loaded from: %s\n", os.Getenv("CONFIG_DIR"))
	fmt.Printf("Session expiry: %d minutes\n\n", cfg.Session.ExpiryMinutes)

	claims, err := auth.NewSessionService(cfg.Session).Validate(*token)
	if err != nil {
		fmt.Printf("❌ Token validation FAILED: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Token is VALID!\n\n")
	fmt.Printf("Claims:\n")
	fmt.Printf("  User ID:     %s\n", claims.UserID)
	fmt.Printf("  Email:       %s\n", claims.Email)
	fmt.Printf("  Name:        %s\n", claims.DisplayName())
	fmt.Printf("  Role:        %s\n", claims.Role)
	fmt.Printf("  Session key: %s\n", claims.SessionKey())
	fmt.Printf("  Backend JWT: %t\n", claims.BackendToken != "")
	fmt.Printf("  Issued At:   %s\n", claims.IssuedAt.Time)
	fmt.Printf("  Expires At:  %s\n", claims.ExpiresAt.Time)
}
