// Command devtoken prints a bearer token for a user, signed with the
// configured JWT_SECRET. Accounts live outside this service, so this is the
// way to call the API locally.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/comitanigiacomo/kanso-wellness/internal/config"
	"github.com/comitanigiacomo/kanso-wellness/internal/core/clock"
	"github.com/comitanigiacomo/kanso-wellness/internal/core/services"
)

func main() {
	userID := flag.String("user", "", "user id to issue the token for")
	ttl := flag.Duration("ttl", 0, "token lifetime (defaults to TOKEN_EXPIRY)")
	flag.Parse()

	if *userID == "" {
		fmt.Fprintln(os.Stderr, "usage: devtoken -user <id> [-ttl 24h]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	expiry := cfg.TokenExpiry
	if *ttl > 0 {
		expiry = *ttl
	}

	tokens := services.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, expiry, clock.Real{})
	token, err := tokens.GenerateToken(*userID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to sign token: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(token)
	fmt.Fprintf(os.Stderr, "expires %s\n", time.Now().Add(expiry).Format(time.RFC3339))
}
