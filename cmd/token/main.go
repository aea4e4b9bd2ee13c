// Package main mints an operator access token signed with JWT_SECRET.
//
// Usage:
//
//	token -user ops-1 -email ops@example.com -role operator
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"stocktake/internal/config"
	"stocktake/internal/domain/auth"
)

func main() {
	userID := flag.String("user", "operator", "subject (user id)")
	email := flag.String("email", "", "operator email")
	roles := flag.String("role", auth.RoleOperator, "comma-separated roles")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}
	if !cfg.AuthEnabled() {
		fmt.Fprintln(os.Stderr, "JWT_SECRET is not set")
		os.Exit(1)
	}

	jwtCfg := auth.DefaultJWTConfig(cfg.JWTSecret)
	jwtCfg.Issuer = cfg.JWTIssuer
	jwtCfg.AccessTokenTTL = cfg.JWTTTL

	token, expiresAt, err := auth.NewJWTService(jwtCfg).
		GenerateAccessToken(*userID, *email, strings.Split(*roles, ","))
	if err != nil {
		fmt.Fprintf(os.Stderr, "sign token: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(token)
	fmt.Fprintf(os.Stderr, "expires at %s\n", expiresAt.Format(time.RFC3339))
}
