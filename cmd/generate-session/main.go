package main

import (
	"flag"
	"fmt"
	"os"

	"guideadmin/internal/shared/auth"
	"guideadmin/internal/shared/config"
)

func main() {
	userID := flag.String("user", "1", "Admin user id")
	email := flag.String("email", "admin@guidemenepal.com", "Email address")
	name := flag.String("name", "Admin", "Display name")
	role := flag.String("role", "admin", "Role")
	backendToken := flag.String("backend-token", "", "Backend JWT forwarded to the API")
	flag.Parse()

	cfg := config.Load()
	sessions := auth.NewSessionService(cfg.Session)

	token, err := sessions.Mint(auth.Identity{
		UserID:       *userID,
		Email:        *email,
		Name:         *name,
		Role:         *role,
		BackendToken: *backendToken,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating session token: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\n✅ Session token generated (valid %s)\n\n", sessions.TTL())
	fmt.Printf("User ID: %s\n", *userID)
	fmt.Printf("Email:   %s\n", *email)
	fmt.Printf("Role:    %s\n", *role)
	fmt.Printf("\nToken:\n%s\n", token)
	fmt.Printf("\n📋 Dashboard cookie:\n")
	fmt.Printf("%s=%s\n", cfg.Session.CookieName, token)
	fmt.Printf("\n💡 Audit API:\n")
	fmt.Printf("curl http://localhost:%d/actions?limit=20 \\\n", cfg.Services.AuditPort)
	fmt.Printf("  -H 'Authorization: Bearer %s'\n\n", token)
}
