package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"

	"trekbooking/internal/adminuser"
	"trekbooking/pkg/config"
	"trekbooking/pkg/db"
)

// seedadmin creates or updates a back-office account. Passwords never land in
// the database in the clear.
//
//	go run ./cmd/dev/seedadmin -username admin -password '...' -email admin@example.com -name "Site Admin"
func main() {
	username := flag.String("username", "admin", "admin username")
	password := flag.String("password", "", "admin password (required)")
	email := flag.String("email", "", "admin email")
	fullName := flag.String("name", "Administrator", "display name")
	role := flag.String("role", "admin", "admin role")
	flag.Parse()

	if *password == "" {
		fmt.Fprintln(os.Stderr, "-password is required")
		os.Exit(2)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hash password: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	cfg := config.Load()

	pool, err := db.Open(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "db open: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	admins := adminuser.NewRepository(pool)
	a, err := admins.Upsert(ctx, *username, string(hash), *email, *fullName, *role)
	if err != nil {
		fmt.Fprintf(os.Stderr, "seed admin: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("admin %s (%s) ready, id=%s\n", a.Username, a.Role, a.ID)
}
