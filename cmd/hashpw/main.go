// Command hashpw mints an Argon2id hash for the admin credential. The
// output goes into RIVAYA_ADMIN_PASSWORD_HASH, which takes precedence
// over the plaintext RIVAYA_ADMIN_PASSWORD at first-boot seeding.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/rivayastudio/rivaya-backend/pkg/config"
	"github.com/rivayastudio/rivaya-backend/pkg/security"
)

func main() {
	password := flag.String("password", "", "password to hash; defaults to RIVAYA_ADMIN_PASSWORD")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	plain := *password
	if plain == "" {
		plain = cfg.Admin.Password
	}
	if plain == "" {
		fmt.Fprintln(os.Stderr, "no password given: pass -password or set RIVAYA_ADMIN_PASSWORD")
		os.Exit(1)
	}

	hash, err := security.HashPassword(plain, cfg.Password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hash password: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}
