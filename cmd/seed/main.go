// Package main provides a tool to provision admin users.
//
// Admin users cannot be created through the API; this tool writes them
// directly to the database.
//
// Usage:
//
//	DATA_PATH=~/LinkStash/data go run ./cmd/seed --username root --password secret
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/linkstashapp/linkstash-server/internal/auth"
	"github.com/linkstashapp/linkstash-server/internal/domain"
	"github.com/linkstashapp/linkstash-server/internal/id"
	"github.com/linkstashapp/linkstash-server/internal/store/sqlite"
)

var (
	username = flag.String("username", "", "Admin username (required)")
	password = flag.String("password", "", "Admin password (required)")
)

func main() {
	flag.Parse()

	if *username == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "Both --username and --password are required")
		flag.Usage()
		os.Exit(1)
	}

	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		dataPath = os.ExpandEnv("$HOME/LinkStash/data")
	}
	dbPath := filepath.Join(dataPath, "linkstash.db")

	fmt.Printf("Opening database at: %s\n", dbPath)

	s, err := sqlite.Open(dbPath, nil)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	hash, err := auth.HashPassword(*password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	admin := &domain.AdminUser{
		ID:           id.MustGenerate("user"),
		Username:     *username,
		PasswordHash: hash,
	}

	if err := s.CreateAdminUser(context.Background(), admin); err != nil {
		log.Fatalf("Failed to create admin user: %v", err)
	}

	fmt.Printf("Created admin user %q (%s)\n", admin.Username, admin.ID)
}
